package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] expr_or_file",
	Short: "Check a given rule expression is well formed.",
	Long: `Check a given rule expression is well formed.
	Rules can be given directly, or as text files, or as compiled
	.pbgb rule files.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		expr := readExprArg(args[0])
		//
		static, dynamic := expr.Segments()
		log.Debugf("parsed %d static and %d dynamic nodes", len(static), len(dynamic))
		//
		if getFlag(cmd, "debug") {
			fmt.Print(expr.Debug())
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("debug", false, "print the parsed expression tree")
}
