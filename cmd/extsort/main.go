// Command extsort drives the external merge sort engine from the command
// line: generate sample record files, sort them, and inspect the page
// framing of a scratch file.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const (
	version   = "0.1.0"
	buildDate = "2026-07-29"
)

var (
	shutdownChan = make(chan os.Signal, 1)
	cleanupFuncs []func()
)

func main() {
	setupSignalHandler()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "sort":
		runSort(os.Args[2:])
	case "gen":
		runGen(os.Args[2:])
	case "inspect":
		runInspect(os.Args[2:])
	case "version":
		fmt.Printf("extsort v%s (%s)\n", version, buildDate)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func setupSignalHandler() {
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)
	go handleShutdown()
}

func handleShutdown() {
	<-shutdownChan
	fmt.Fprintln(os.Stderr, "\nreceived shutdown signal, cleaning up...")
	for i := len(cleanupFuncs) - 1; i >= 0; i-- {
		cleanupFuncs[i]()
	}
	fmt.Fprintln(os.Stderr, "cleanup complete")
	os.Exit(130)
}

func printUsage() {
	fmt.Println(`extsort - external merge sort engine

Usage:
    extsort <command> [arguments]

Commands:
    sort     Sort a file of fixed-size records
    gen      Generate a sample file of fixed-size records
    inspect  Dump page headers from a scratch file
    version  Show version
    help     Show this help

Use "extsort <command> --help" for command-specific options.`)
}
