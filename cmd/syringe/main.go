package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/toyz/syringe/internal/cli"
	"github.com/toyz/syringe/internal/utils"
)

func main() {
	var (
		moduleFlag  = flag.String("module", "", "Custom module name for imports (defaults to go.mod module)")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flag.Bool("quiet", false, "Only show errors and final results")
		checkFlag   = flag.Bool("check", false, "Validate constructor annotations without writing files")
		cleanFlag   = flag.Bool("clean", false, "Delete all syringe_gen.go files from the specified directories")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Syringe Code Generator\n")
		fmt.Fprintf(os.Stderr, "Scans directories for Go files with syringe:: annotations and generates constructor registrations.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  directory-paths    One or more directories to scan for annotated Go files\n")
		fmt.Fprintf(os.Stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                                  # Scan everything recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s ./internal/...                         # Scan internal directory recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --module github.com/myorg/myapp ./...  # Specify custom module name\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --check ./...                          # Validate without writing files\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --clean ./...                          # Delete all syringe_gen.go files\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case *quietFlag:
		diagnostics = utils.NewQuietDiagnostics()
	case *verboseFlag:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	if *cleanFlag {
		diagnostics.Header("Cleaning generated files")
		removed, err := cli.NewCleaner().CleanGeneratedFiles(args)
		if err != nil {
			diagnostics.Error("Clean operation failed: %v", err)
			os.Exit(1)
		}
		diagnostics.Success("%d syringe_gen.go file(s) removed", len(removed))
		return
	}

	if *checkFlag {
		diagnostics.Header("Checking constructor annotations")
	} else {
		diagnostics.Header("Generating constructor registrations")
	}
	diagnostics.Verbose("target directories: %s", strings.Join(args, ", "))

	runner := cli.NewRunner(cli.Config{
		Directories: args,
		ModuleName:  *moduleFlag,
		CheckOnly:   *checkFlag,
		Verbose:     *verboseFlag,
	}, diagnostics)

	if err := runner.Run(); err != nil {
		diagnostics.Error("%v", err)
		os.Exit(1)
	}
}
