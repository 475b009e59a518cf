package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// fmtCmd represents the fmt command
var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] expr_or_file",
	Short: "Reprint a given rule expression in canonical form.",
	Long: `Reprint a given rule expression in canonical form.  Observe this
	is a structural round trip rather than a textual one; for example,
	numbers are normalised to two decimal places.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		expr := readExprArg(args[0])
		//
		fmt.Println(expr.String())
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
}
