// Package main provides the entry point for m88sim.
// m88sim is an instruction-level MC88100-subset simulator with a data-cache
// directory model.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/m88sim/cache"
	"github.com/sarchlab/m88sim/emu"
	"github.com/sarchlab/m88sim/loader"
)

var (
	trace           = flag.Bool("t", false, "Instruction trace plus final register dump")
	full            = flag.Bool("v", false, "Instructions, registers, and memory")
	cacheEnabled    = flag.Bool("cache", true, "Model the data-cache directory")
	cacheConfigPath = flag.String("cache-config", "", "Path to cache geometry JSON file")
)

func main() {
	flag.Parse()

	verbose := 0
	if *trace {
		verbose = 1
	}
	if *full {
		verbose = 2
	}

	// Load the program image from the named file, or stdin.
	var prog *loader.Program
	var err error
	if flag.NArg() > 0 {
		prog, err = loader.LoadFile(flag.Arg(0))
	} else {
		prog, err = loader.Load(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	if verbose > 1 {
		fmt.Println("reading words in hex from stdin:")
		for _, w := range prog.Words {
			fmt.Printf("  0%08x\n", w)
		}
		fmt.Println()
	}

	// Set up the cache directory model.
	var dataCache cache.Model
	if *cacheEnabled {
		config := cache.DefaultConfig()
		if *cacheConfigPath != "" {
			loaded, err := cache.LoadConfig(*cacheConfigPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading cache config: %v\n", err)
				os.Exit(1)
			}
			config = *loaded
		}

		dataCache, err = cache.New(config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building cache model: %v\n", err)
			os.Exit(1)
		}
	}

	// Set up the emulator with trace hooks per the verbosity level.
	opts := []emu.EmulatorOption{}
	if dataCache != nil {
		opts = append(opts, emu.WithDataCache(dataCache))
	}
	if verbose > 0 {
		tracer := emu.NewTextTracer(os.Stdout)
		tracer.DumpRegisters = verbose > 1
		opts = append(opts, emu.WithTracer(tracer))
	}

	emulator := emu.NewEmulator(opts...)
	if fault := emulator.LoadImage(prog.Words); fault != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", fault)
		os.Exit(1)
	}

	if verbose > 0 {
		fmt.Println("instruction trace:")
	}

	if fault := emulator.Run(); fault != nil {
		fmt.Fprintf(os.Stderr, "%v\n", fault)
		fmt.Fprintln(os.Stderr, "program terminates")
		os.Exit(1)
	}

	if verbose == 1 {
		emu.WriteRegisters(os.Stdout, emulator.RegFile())
	}
	if verbose > 0 {
		fmt.Println()
	}

	printExecStats(emulator.Stats())
	if dataCache != nil {
		printCacheStats(dataCache.Stats())
	}
}

// printExecStats prints the execution counters in the classic format.
func printExecStats(stats emu.Stats) {
	fmt.Println("execution statistics (in decimal):")
	fmt.Printf("  instruction fetches = %d\n", stats.InstFetches)
	fmt.Printf("  data words read     = %d\n", stats.MemReads)
	fmt.Printf("  data words written  = %d\n", stats.MemWrites)
	fmt.Printf("  branches executed   = %d\n", stats.Branches)
	if stats.TakenBranches == 0 {
		fmt.Printf("  branches taken      = 0\n")
	} else {
		fmt.Printf("  branches taken      = %d (%.1f%%)\n",
			stats.TakenBranches, 100.0*stats.TakenRate())
	}
}

// printCacheStats prints the cache directory counters.
func printCacheStats(stats cache.Stats) {
	fmt.Println("cache statistics (in decimal):")
	fmt.Printf("  cache reads       = %d\n", stats.Reads)
	fmt.Printf("  cache writes      = %d\n", stats.Writes)
	fmt.Printf("  cache hits        = %d\n", stats.Hits)
	fmt.Printf("  cache misses      = %d\n", stats.Misses)
	fmt.Printf("  cache write backs = %d\n", stats.WriteBacks)
}
