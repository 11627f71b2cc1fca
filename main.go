// Package main provides the entry point for m88sim.
// m88sim is an instruction-level MC88100-subset simulator with a data-cache
// directory model.
//
// For the full CLI, use: go run ./cmd/m88sim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("m88sim - MC88100 subset simulator")
	fmt.Println("")
	fmt.Println("Usage: m88sim [options] [program.hex]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -t             Instruction trace plus final register dump")
	fmt.Println("  -v             Instructions, registers, and memory")
	fmt.Println("  -cache         Model the data-cache directory (default true)")
	fmt.Println("  -cache-config  Path to cache geometry JSON file")
	fmt.Println("")
	fmt.Println("Input is read as hex 32-bit values from the named file or stdin.")
	fmt.Println("Run 'go run ./cmd/m88sim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/m88sim' instead.")
	}
}
