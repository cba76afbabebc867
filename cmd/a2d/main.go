// Package main provides the a2d command line tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/born-ml/a2d/internal/elasticity"
	"github.com/born-ml/a2d/internal/selfcheck"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("a2d %s\n", version)
	case "check":
		os.Exit(check(os.Args[2:]))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("a2d - first and second derivatives of fixed-shape tensor expressions")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  check      Verify every operation against complex-step and finite differences")
}

// check runs the derivative self-check and returns the exit code.
func check(args []string) int {
	opts := selfcheck.DefaultOptions()

	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.Int64Var(&opts.Seed, "seed", opts.Seed, "Random seed for inputs and directions")
	fs.Float64Var(&opts.ComplexTol, "tol", opts.ComplexTol, "Relative tolerance against the complex step")
	fs.Float64Var(&opts.FDTol, "fdtol", opts.FDTol, "Relative tolerance against central differences")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cases := selfcheck.DefaultCases()
	cases = append(cases, elasticity.Material{Mu: 0.8, Lambda: 1.2}.CheckCase())

	results, passed := selfcheck.RunAll(cases, opts)
	if err := selfcheck.WriteReport(os.Stdout, results); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !passed {
		fmt.Println("\nFAIL")
		return 1
	}
	fmt.Printf("\nPASS (%d cases)\n", len(results))
	return 0
}
