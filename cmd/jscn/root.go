package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	flagLocale   string
	flagNoColor  bool
	flagVerbose  bool
	flagOutput   string
	flagFormat   string
	flagListDefs bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLocale, "locale", "", "diagnostic message locale (default \"en\")")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable ANSI color in diagnostics")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log compilation steps to stderr")

	for _, cmd := range []*cobra.Command{rootCmd, compileCmd} {
		cmd.Flags().StringVarP(&flagOutput, "output", "o", "-", "output file, or '-' for stdout")
		cmd.Flags().StringVar(&flagFormat, "format", "", "json or json-pretty (default \"json-pretty\")")
		cmd.Flags().BoolVar(&flagListDefs, "list-defs", false, "print declared definition names to stderr")
	}

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:     "jscn [file|-]",
	Short:   "Compile JSON Schema Compact Notation (JSCN) into JSON Schema",
	Version: Version,
	Long: `jscn compiles JSCN source into a JSON Schema draft-07 document.

It reads from a named file or '-' for stdin and writes the compiled
document to a named file or stdout.

Example:
  jscn schema.jscn -o schema.json
  cat schema.jscn | jscn - --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompile(cmd, args)
	},
}

// colorEnabled reports whether stderr diagnostics should carry ANSI
// color: disabled by --no-color, by a config file's no_color, or when
// stderr is not a terminal (redirected to a file or pipe).
func colorEnabled() bool {
	if flagNoColor {
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd())
}
