// sbhasm reconstructs contigs from fixed-length sequencing-by-
// hybridization reads using a de-Bruijn-style multigraph decomposition
// followed by overlap-based merging.
//
// Please see https://github.com/sbhtools/sbhasm for a documentation of
// the tool.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sbhtools/sbhasm/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: assemble")
	fmt.Fprint(os.Stderr, "\n", cmd.AssembleHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage, "\n")
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "assemble":
		err = cmd.Assemble()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Println("Unknown command: ", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
