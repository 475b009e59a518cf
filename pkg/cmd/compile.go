package cmd

import (
	"fmt"
	"os"

	"github.com/pbglang/pbg/pkg/binfile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile [flags] expr_or_file",
	Short: "Compile a given rule expression into a binary rule file.",
	Long: `Compile a given rule expression into a binary rule file which can
	be loaded by the eval and check commands without reparsing.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			expr   = readExprArg(args[0])
			output = getString(cmd, "output")
		)
		//
		bytes, err := binfile.Encode(expr)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		if err := os.WriteFile(output, bytes, 0644); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		log.Debugf("wrote %d bytes to %s", len(bytes), output)
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("output", "o", "rule.pbgb", "output file for the compiled rule")
}
