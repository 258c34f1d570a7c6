package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/erdc/pkg/erdc"
	"github.com/dshills/erdc/pkg/render"
)

const version = "1.0.0"

var (
	output    = flag.String("o", "", "Output file path (default: stdout)")
	viewName  = flag.String("v", "", "Name of a declared view to render (default: every entity)")
	detail    = flag.String("d", "all", "Detail level: tables, pk, pk_fk, or all")
	stylePath = flag.String("style", "", "Path to a YAML style override file")
	verbose   = flag.Bool("verbose", false, "Print a schema summary to stderr before rendering")
	versionF  = flag.Bool("version", false, "Print version and exit")
	help      = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("erdc version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one input path")
		printUsage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0)); err != nil {
		if ioErr, ok := err.(ioError); ok {
			fmt.Fprintf(os.Stderr, "Error: %v\n", ioErr.err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// ioError wraps a filesystem-level failure so main can distinguish it
// from a compile error and choose exit code 2 instead of 1.
type ioError struct{ err error }

func (e ioError) Error() string { return e.err.Error() }

func run(path string) error {
	style := render.DefaultStyle()
	if *stylePath != "" {
		s, err := render.LoadStyle(*stylePath)
		if err != nil {
			return ioError{err}
		}
		style = s
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return ioError{err}
	}

	if *verbose {
		schema, err := erdc.ParseOnly(string(source))
		if err == nil {
			fmt.Fprintf(os.Stderr, "Schema: %s\n", schema.String())
			fmt.Fprintf(os.Stderr, "Entities: %s\n", schema.EntityNames())
		}
	}

	svg, err := erdc.Compile(string(source), *viewName, *detail, style)
	if err != nil {
		return err
	}

	if *output == "" {
		if _, err := os.Stdout.Write(svg); err != nil {
			return ioError{err}
		}
		return nil
	}

	if err := os.WriteFile(*output, svg, 0644); err != nil {
		return ioError{err}
	}
	if *verbose {
		fmt.Fprintf(os.Stderr, "Wrote %d bytes to %s\n", len(svg), *output)
	}
	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage: erdc [options] <input.erd>")
	fmt.Fprintln(os.Stderr, "\nRun 'erdc -help' for detailed help")
}

func printHelp() {
	fmt.Printf("erdc version %s\n\n", version)
	fmt.Println("Compiles an ERD DSL source file to a deterministic SVG diagram.")
	fmt.Println("\nUsage:")
	fmt.Println("  erdc [options] <input.erd>")
	fmt.Println("\nOptions:")
	fmt.Println("  -o string")
	fmt.Println("        Output file path (default: stdout)")
	fmt.Println("  -v string")
	fmt.Println("        Name of a declared view to render (default: every entity)")
	fmt.Println("  -d string")
	fmt.Println("        Detail level: tables, pk, pk_fk, or all (default: all)")
	fmt.Println("  -style string")
	fmt.Println("        Path to a YAML style override file")
	fmt.Println("  -verbose")
	fmt.Println("        Print a schema summary to stderr before rendering")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  erdc -o schema.svg schema.erd")
	fmt.Println("  erdc -v public -d pk_fk schema.erd")
	fmt.Println("\nExit codes:")
	fmt.Println("  0  success")
	fmt.Println("  1  compile error (lex/parse/validate/project failure)")
	fmt.Println("  2  I/O error (unreadable input, unwritable output)")
}
