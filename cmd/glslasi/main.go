// Command glslasi inserts missing punctuation into GLSL shaders.
//
// Usage:
//
//	glslasi [options] [input...]
//
// Examples:
//
//	glslasi shader.frag                  # Print the repaired shader
//	glslasi -w shader.frag               # Repair the file in place
//	glslasi -l shader.frag               # List insertions without applying
//	glslasi -conversions=false shader.vert
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gogpu/asi"
	"github.com/gogpu/asi/glsl"
)

var (
	output  = flag.String("o", "", "output file (default: stdout)")
	write   = flag.Bool("w", false, "write result to the input file instead of stdout")
	list    = flag.Bool("l", false, "list insertions instead of printing the repaired shader")
	quiet   = flag.Bool("q", false, "do not print the summary")
	tokens  = flag.Bool("tokens", false, "print the token stream and exit")
	ast     = flag.Bool("ast", false, "print the syntax tree outline and exit")
	typeMap = flag.Bool("types", false, "print every expression with its inferred type and exit")
	version = flag.Bool("version", false, "print version")

	semicolons  = flag.Bool("semicolons", true, "insert semicolons at line ends")
	inline      = flag.Bool("inline", true, "insert semicolons between statements on one line")
	colons      = flag.Bool("colons", true, "insert colons after case labels and in conditionals")
	parens      = flag.Bool("parens", true, "insert parentheses around conditions")
	commas      = flag.Bool("commas", true, "insert commas between arguments")
	conversions = flag.Bool("conversions", true, "wrap initializers in explicit type constructors")
)

const asiVersion = "0.1.0-dev"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("glslasi version %s\n", asiVersion)
		return
	}

	inputs := flag.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	if *output != "" && len(inputs) > 1 {
		fmt.Fprintln(os.Stderr, "Error: -o requires a single input")
		os.Exit(1)
	}

	var mode outputMode
	switch {
	case *tokens:
		mode = modeTokens
	case *ast:
		mode = modeAST
	case *typeMap:
		mode = modeTypes
	case *list:
		mode = modeList
	}

	failed := false
	for _, path := range inputs {
		if err := run(path, mode); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// run processes one input file, "-" being standard input.
func run(inputPath string, mode outputMode) error {
	if *write && inputPath == "-" {
		return errors.New("-w requires an input file")
	}

	source, err := readInput(inputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}

	out, summary, err := process(source, options(), mode)
	if err != nil {
		if perr, ok := err.(*glsl.ParseError); ok {
			return fmt.Errorf("%s: %s", inputPath, strings.TrimSuffix(perr.FormatWithContext(), "\n"))
		}
		return fmt.Errorf("%s: %w", inputPath, err)
	}

	target := *output
	if *write && mode == modeFix {
		target = inputPath
	}
	if err := writeOutput(target, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if !*quiet && summary != "" {
		fmt.Fprintf(os.Stderr, "%s: %s\n", inputPath, summary)
	}
	return nil
}

func options() asi.Options {
	return asi.Options{
		AddSemicolons:              *semicolons,
		AddInlineSemicolons:        *inline,
		AddColons:                  *colons,
		AddParentheses:             *parens,
		AddCommas:                  *commas,
		AddExplicitTypeConversions: *conversions,
	}
}

func readInput(path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	return string(data), err
}

func writeOutput(path, out string) error {
	if path == "" {
		_, err := io.WriteString(os.Stdout, out)
		return err
	}
	return os.WriteFile(path, []byte(out), 0o644)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: glslasi [options] [input.glsl...]\n\n")
	fmt.Fprintf(os.Stderr, "Reads standard input when no file is given.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  glslasi shader.frag               Print the repaired shader\n")
	fmt.Fprintf(os.Stderr, "  glslasi -w shader.frag            Repair in place\n")
	fmt.Fprintf(os.Stderr, "  glslasi -l shader.frag            List insertions\n")
}
