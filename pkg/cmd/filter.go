package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/bluele/gcache"
	"github.com/pbglang/pbg/pkg/pbg"
	"github.com/pbglang/pbg/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Upper bound on the number of parsed rules retained by the filter cache.
const ruleCacheSize = 128

// filterCmd represents the filter command
var filterCmd = &cobra.Command{
	Use:   "filter [flags] rules_file values_file...",
	Short: "Report which values files satisfy a set of rules.",
	Long: `Report which values files satisfy a set of rules.  The rules file
	contains one rule expression per line (blank lines and lines
	beginning with # are ignored); a values file matches when every
	rule evaluates to true against it.  Parsed rules are cached, so
	repeated rules across large rule files cost one parse each.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		rules, err := readRulesFile(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		for _, filename := range args[1:] {
			values, err := readValuesFile(filename)
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			//
			if matchesAll(rules, &valuesResolver{values}) {
				fmt.Println(filename)
			}
		}
	},
}

// Cache of parsed rules, keyed by rule text.  Parsing happens through the
// cache loader, hence each distinct rule line is parsed at most once whilst
// cached.
var ruleCache = gcache.New(ruleCacheSize).LRU().
	LoaderFunc(func(key any) (any, error) {
		expr, err := pbg.Parse(key.(string))
		if err != nil {
			// Retain the structured error for reporting.
			return nil, err
		}
		//
		return expr, nil
	}).Build()

// Read a rules file into a list of rule lines, skipping blanks and comments.
func readRulesFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	//
	defer file.Close()
	//
	var (
		rules   []string
		scanner = bufio.NewScanner(file)
	)
	//
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		//
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		//
		rules = append(rules, line)
	}
	//
	return rules, scanner.Err()
}

// Check whether every rule evaluates to true under a given resolver.
func matchesAll(rules []string, resolver pbg.Resolver) bool {
	for _, rule := range rules {
		cached, err := ruleCache.Get(rule)
		if err != nil {
			if serr, ok := err.(*source.SyntaxError); ok {
				printSyntaxError(serr)
			} else {
				fmt.Println(err)
			}
			//
			os.Exit(2)
		}
		//
		result, err := cached.(*pbg.Expr).Evaluate(resolver)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		log.Debugf("rule %q evaluated to %t", rule, result)
		//
		if !result {
			return false
		}
	}
	//
	return true
}

func init() {
	rootCmd.AddCommand(filterCmd)
}
