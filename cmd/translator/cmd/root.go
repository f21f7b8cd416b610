// Package cmd implements the translator CLI: tokenize, parse-check, or
// fully translate a single source file, matching the exact flag
// surface the tool is required to expose.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/sourcehindi/hindic/internal/errors"
	"github.com/sourcehindi/hindic/internal/lexer"
	"github.com/sourcehindi/hindic/internal/parser"
	"github.com/sourcehindi/hindic/internal/translator"
	"github.com/sourcehindi/hindic/pkg/token"
)

var (
	outputFile   string
	tokenizeOnly bool
	parseOnly    bool
)

var rootCmd = &cobra.Command{
	Use:                   "translator <input> [-o <output>] [-t] [-p]",
	Short:                 "Translate a small Devanagari-keyword imperative language to C",
	Args:                  cobra.ExactArgs(1),
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	RunE:                  run,
}

func init() {
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output path (default: <input> with extension replaced by .c)")
	rootCmd.Flags().BoolVarP(&tokenizeOnly, "tokenize", "t", false, "tokenize only, printing one line per token")
	rootCmd.Flags().BoolVarP(&parseOnly, "parse", "p", false, "parse only, reporting success or failure")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func run(_ *cobra.Command, args []string) error {
	filename := args[0]

	raw, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source, err := decodeSource(raw)
	if err != nil {
		return fmt.Errorf("failed to decode file %s: %w", filename, err)
	}

	if tokenizeOnly {
		return runTokenize(source)
	}
	if parseOnly {
		return runParseOnly(source)
	}
	return runTranslate(source, filename)
}

// decodeSource strips a UTF-8 BOM if present; the translator's own
// source text is always UTF-8 without one, but editors may add it. Per
// spec, no BOM is required or expected: this only tolerates one.
func decodeSource(raw []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func runTokenize(source string) error {
	l := lexer.New(source)
	for {
		tok := l.NextToken()
		fmt.Printf("Token: %s, Line: %d, Column: %d, Text: '%s'\n",
			tok.Type, tok.Pos.Line, tok.Pos.Column, tok.Literal)
		if tok.Type == token.EOF {
			break
		}
	}
	return nil
}

func runParseOnly(source string) error {
	l := lexer.New(source)
	p := parser.New(l)
	p.ParseProgram()

	if p.HadError() {
		compilerErrors := make([]*errors.CompilerError, 0, len(p.Errors()))
		for _, perr := range p.Errors() {
			compilerErrors = append(compilerErrors, errors.NewCompilerError(perr.Pos, perr.Message, source, ""))
		}
		fmt.Fprint(os.Stderr, errors.FormatErrors(compilerErrors, false))
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	fmt.Println("Parsing successful!")
	return nil
}

func runTranslate(source, filename string) error {
	result, err := translator.Translate(source, filename)
	if err != nil {
		fail, ok := err.(*translator.Failure)
		if ok {
			fmt.Fprint(os.Stderr, errors.FormatErrors(fail.Errors, false))
		}
		return err
	}

	out := outputFile
	if out == "" {
		out = defaultOutputPath(filename)
	}
	if err := os.WriteFile(out, []byte(result.Output), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", out, err)
	}
	fmt.Printf("Translated output written to %s\n", out)
	return nil
}

func defaultOutputPath(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		return filename + ".c"
	}
	return strings.TrimSuffix(filename, ext) + ".c"
}
