package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// evalCmd represents the eval command
var evalCmd = &cobra.Command{
	Use:   "eval [flags] expr_or_file",
	Short: "Evaluate a given rule expression against a values file.",
	Long: `Evaluate a given rule expression against a values file.  Keys in
	the expression are resolved against the values file, which can be
	given as JSON, YAML or TOML.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		expr := readExprArg(args[0])
		resolver := &valuesResolver{}
		// An absent values file simply leaves every key unresolved.
		if filename := getString(cmd, "values"); filename != "" {
			values, err := readValuesFile(filename)
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			//
			resolver.values = values
		}
		//
		result, err := expr.Evaluate(resolver)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		fmt.Println(result)
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().String("values", "", "values file resolving keys in the expression")
}
