package cmd

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/sbhtools/sbhasm/contig"
	"github.com/sbhtools/sbhasm/fasta"
	"github.com/sbhtools/sbhasm/graph"
	"github.com/sbhtools/sbhasm/kmer"
)

// AssembleHelp is the help string for this command.
const AssembleHelp = "\nassemble parameters:\n" +
	"sbhasm assemble reads-file contigs-file\n" +
	"[--kmer-size nr]\n" +
	"[--min-overlap nr]\n" +
	"[--min-path-length nr]\n" +
	"[--min-cycle-length nr]\n" +
	"[--nr-of-threads nr]\n" +
	"[--timed]\n" +
	"[--profile prefix]\n" +
	"[--log-path path]\n"

// Assemble implements the sbhasm assemble command. It reconstructs
// contigs from the fixed-length reads in reads-file and writes them to
// contigs-file as FASTA records.
func Assemble() error {
	var (
		kmerSize       int
		minOverlap     int
		minPathLength  int
		minCycleLength int
		nrOfThreads    int
		timed          bool
		profile        string
		logPath        string
	)

	var flags flag.FlagSet
	flags.IntVar(&kmerSize, "kmer-size", 15, "k-mer size; reads must be twice this long")
	flags.IntVar(&minOverlap, "min-overlap", 0, "minimum suffix/prefix overlap for merging contigs (default kmer-size)")
	flags.IntVar(&minPathLength, "min-path-length", graph.MinPathLength, "minimum number of nodes for a path to be retained")
	flags.IntVar(&minCycleLength, "min-cycle-length", graph.MinCycleLength, "minimum number of nodes for a cycle to be retained")
	flags.IntVar(&nrOfThreads, "nr-of-threads", 0, "number of worker threads")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(flags, 4, AssembleHelp)

	input := getFilename(os.Args[2], AssembleHelp)
	output := getFilename(os.Args[3], AssembleHelp)

	setLogOutput(logPath)

	sanityChecksFailed := false
	if kmerSize < 1 || kmerSize > kmer.MaxSize {
		log.Println("Error: Invalid kmer-size: ", kmerSize)
		sanityChecksFailed = true
	}
	if minOverlap < 0 {
		log.Println("Error: Invalid min-overlap: ", minOverlap)
		sanityChecksFailed = true
	}
	if minPathLength < 1 || minCycleLength < 1 {
		log.Println("Error: Invalid retention thresholds: ", minPathLength, minCycleLength)
		sanityChecksFailed = true
	}
	if nrOfThreads < 0 {
		log.Println("Error: Invalid nr-of-threads: ", nrOfThreads)
		sanityChecksFailed = true
	}
	if !checkExist("", input) {
		sanityChecksFailed = true
	}
	if !checkCreate("", output) {
		sanityChecksFailed = true
	}
	if sanityChecksFailed {
		os.Exit(1)
	}

	if minOverlap == 0 {
		minOverlap = kmerSize
	}
	if nrOfThreads > 0 {
		runtime.GOMAXPROCS(nrOfThreads)
	}
	readLength := 2 * kmerSize

	var reads [][]byte
	timedRun(timed, profile, "Reading reads into memory.", 1, func() {
		reads = fasta.ParseReads(input, readLength)
	})
	log.Println("Read", len(reads), "reads of length", readLength, "from", input)

	var g *graph.Multigraph
	timedRun(timed, profile, "Building the read multigraph.", 2, func() {
		g = graph.New(reads, kmerSize)
	})
	log.Println("Built a multigraph with", g.NumNodes(), "nodes and", g.NumEdges(), "edges.")

	var paths, cycles []graph.Walk
	timedRun(timed, profile, "Populating paths.", 3, func() {
		paths = g.Populate(graph.Path, minPathLength)
	})
	log.Println("Generated", len(paths), "total paths.")
	log.Println("Longest generated path was", longestWalk(paths), "nodes.")

	timedRun(timed, profile, "Populating cycles.", 4, func() {
		cycles = g.Populate(graph.Cycle, minCycleLength)
	})
	log.Println("Generated", len(cycles), "total cycles.")
	log.Println("Longest generated cycle was", longestWalk(cycles), "nodes.")

	var contigs []contig.Contig
	timedRun(timed, profile, "Converting paths and cycles to contigs.", 5, func() {
		contigs = contig.FromWalks(g, append(paths, cycles...))
	})
	log.Println("Generated", len(contigs), "contigs.")

	timedRun(timed, profile, "Condensing contigs.", 6, func() {
		// Repeat remove+merge until the contig count stops shrinking.
		// Only the count decides the fixed point; a round where both
		// tallies happen to be zero is just one way to get there.
		for previous := -1; previous != len(contigs); {
			previous = len(contigs)
			var removed, merged int
			contigs, removed = contig.RemoveContained(contigs)
			log.Println("Removed", removed, "contained contigs.")
			contigs, merged = contig.Merge(contigs, minOverlap)
			log.Println("Merged", merged, "contigs.")
		}
	})
	log.Println("Successfully condensed to", len(contigs), "contigs.")
	log.Println("Longest generated contig was", longestContig(contigs), "nucleotides.")

	var err error
	timedRun(timed, profile, "Writing contigs to file.", 7, func() {
		err = fasta.WriteContigs(output, contigs)
	})
	return err
}

func longestWalk(walks []graph.Walk) int {
	longest := 0
	for _, walk := range walks {
		if len(walk) > longest {
			longest = len(walk)
		}
	}
	return longest
}

func longestContig(contigs []contig.Contig) int {
	longest := 0
	for _, sequence := range contigs {
		if len(sequence) > longest {
			longest = len(sequence)
		}
	}
	return longest
}
