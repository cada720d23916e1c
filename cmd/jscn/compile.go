package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/kaptinlin/go-i18n"
	"github.com/spf13/cobra"

	"github.com/jscompile/jscn"
	"github.com/jscompile/jscn/internal/config"
	"github.com/jscompile/jscn/lower"
)

var compileCmd = &cobra.Command{
	Use:   "compile [file|-]",
	Short: "Compile a JSCN file (or stdin) to JSON Schema",
	Long: `Compile reads JSCN source from a named file or '-' for stdin
and writes the compiled JSON Schema draft-07 document to --output.

Example:
  jscn compile schema.jscn
  jscn compile - --format json < schema.jscn`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return &ioError{err: fmt.Errorf("loading config: %w", err)}
	}
	applyConfigDefaults(cmd, cfg)

	inputPath := "-"
	if len(args) == 1 {
		inputPath = args[0]
	}

	if flagVerbose {
		log.Printf("reading %s", inputPath)
	}
	src, err := readInput(inputPath)
	if err != nil {
		return &ioError{err: fmt.Errorf("reading %s: %w", inputPath, err)}
	}

	schema, err := jscn.CompileSchema(src)
	if err != nil {
		return localizedError(err)
	}

	if flagVerbose {
		log.Printf("parsed schema with %d definition(s)", len(schema.Definitions()))
	}
	if flagListDefs {
		for _, name := range schema.Definitions() {
			fmt.Fprintln(os.Stderr, name)
		}
	}

	frag, err := schema.JSONSchema()
	if err != nil {
		return localizedError(err)
	}
	if cfg.SchemaOverride != "" {
		frag.Set("$schema", cfg.SchemaOverride)
	}

	out, err := marshalFragment(frag, cfg.IndentWidth)
	if err != nil {
		return &ioError{err: fmt.Errorf("encoding output: %w", err)}
	}

	if flagVerbose {
		log.Printf("writing %d bytes to %s", len(out), flagOutput)
	}
	if err := writeOutput(flagOutput, out); err != nil {
		return &ioError{err: fmt.Errorf("writing %s: %w", flagOutput, err)}
	}
	return nil
}

// applyConfigDefaults fills in flags the user did not pass explicitly
// from the project's .jscnrc.yaml. Explicit flags always win over the
// config file.
func applyConfigDefaults(cmd *cobra.Command, cfg *config.File) {
	if !cmd.Flags().Changed("locale") && cfg.Locale != "" {
		flagLocale = cfg.Locale
	}
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		flagFormat = cfg.Format
	}
	if !cmd.Flags().Changed("no-color") && cfg.NoColor {
		flagNoColor = true
	}
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func writeOutput(path string, data []byte) error {
	if path == "-" || path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func marshalFragment(frag *lower.Fragment, indentWidth int) ([]byte, error) {
	if flagFormat == "json" {
		return lower.Marshal(frag)
	}
	if indentWidth <= 0 {
		indentWidth = 2
	}
	return lower.MarshalIndent(frag, strings.Repeat(" ", indentWidth))
}

// localizedError renders a *jscn.Diagnostic through the embedded
// locale catalog selected by --locale/.jscnrc.yaml, colorized unless
// disabled.
func localizedError(err error) error {
	diag, ok := err.(interface{ Localize(*i18n.Localizer) string })
	if !ok {
		return err
	}

	locale := flagLocale
	if locale == "" {
		locale = "en"
	}

	bundle, bundleErr := jscn.I18n()
	var msg string
	if bundleErr != nil {
		msg = err.Error()
	} else {
		localizer := bundle.NewLocalizer(locale)
		msg = diag.Localize(localizer)
	}

	if colorEnabled() {
		msg = color.New(color.FgRed, color.Bold).Sprint(msg)
	}
	return &displayError{msg: msg, cause: err}
}

// displayError carries a rendered (possibly localized, possibly
// colorized) message for main to print, while preserving the original
// *jscn.Diagnostic behind Unwrap so exitCodeFor can still classify it.
type displayError struct {
	msg   string
	cause error
}

func (e *displayError) Error() string { return e.msg }
func (e *displayError) Unwrap() error { return e.cause }
