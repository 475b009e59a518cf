package cmd

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/pbglang/pbg/pkg/binfile"
	"github.com/pbglang/pbg/pkg/pbg"
	"github.com/pbglang/pbg/pkg/util/source"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Get an expected boolean flag, or panic if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string flag, or panic if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Read a rule expression given either directly on the command line, or as a
// filename, using a parser based on the extension of the filename.
func readExprArg(arg string) *pbg.Expr {
	// Check whether the argument names a file
	if _, err := os.Stat(arg); err != nil {
		// Not a file, parse the argument itself.
		return parseExpr(source.NewSourceFile("expr", []byte(arg)))
	}
	// Check file extension
	ext := path.Ext(arg)
	//
	switch ext {
	case ".pbgb":
		// Compiled rule file
		bytes, err := os.ReadFile(arg)
		if err == nil {
			var expr *pbg.Expr
			//
			expr, err = binfile.Decode(bytes)
			if err == nil {
				return expr
			}
		}
		// Handle error
		fmt.Println(err)
		os.Exit(2)
	default:
		// Rule text
		srcfile, err := source.ReadFile(arg)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		return parseExpr(srcfile)
	}
	// unreachable
	return nil
}

// Parse a rule expression from a given source file, exiting with a suitable
// report should a syntax error arise.
func parseExpr(srcfile *source.File) *pbg.Expr {
	expr, err := pbg.ParseSourceFile(srcfile)
	if err != nil {
		printSyntaxError(err)
		os.Exit(2)
	}
	//
	return expr
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	var (
		span = err.Span()
		line = err.FirstEnclosingLine()
		// Determine highlight bounds within the enclosing line.
		start = span.Start() - line.Start()
		width = span.Length()
	)
	// Clamp a highlight reported at (or beyond) the end of the line.
	if start > line.Length() {
		start = line.Length()
	}
	//
	if start+width > line.Length() {
		width = line.Length() - start
	}
	//
	if width == 0 {
		width = 1
	}
	// Print error + line number
	fmt.Printf("%s:%d: %s\n", err.SourceFile().Filename(), line.Number(), err.Message())
	// Print line
	fmt.Println(line.String())
	// Print indent (todo: account for tabs)
	fmt.Print(strings.Repeat(" ", start))
	// Print highlight
	fmt.Println(maybeColour(strings.Repeat("^", width)))
}

// Apply ANSI colouring to a highlight when connected to a terminal.
func maybeColour(highlight string) string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Sprintf("\033[31m%s\033[0m", highlight)
	}
	//
	return highlight
}
