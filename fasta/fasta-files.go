// Package fasta reads fixed-length sequencing reads from FASTA files
// and writes assembled contigs back out as FASTA records.
package fasta

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/sbhtools/sbhasm/contig"
	"github.com/sbhtools/sbhasm/internal"
)

// ParseReads extracts the reads from a FASTA file. Header lines and
// sequence lines whose length differs from readLength are skipped, so
// the result is already filtered to the uniform read length the
// assembler core expects.
func ParseReads(filename string, readLength int) [][]byte {
	file := internal.FileOpen(filename)
	defer internal.Close(file)

	var reads [][]byte

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || line[0] == '>' || line[0] == ';' {
			continue
		}
		if len(line) != readLength {
			continue
		}
		read := make([]byte, readLength)
		copy(read, line)
		reads = append(reads, read)
	}
	if err := scanner.Err(); err != nil {
		log.Panic(err)
	}

	return reads
}

// WriteContigs stores contigs in a FASTA file, one >sequenceN record
// per contig. The records are first written to a uniquely named
// temporary file next to the destination, which is renamed into place
// only after a successful flush, so a failed run never leaves a
// truncated output file behind.
func WriteContigs(filename string, contigs []contig.Contig) (err error) {
	pathname, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	tmpname := pathname + "-" + uuid.New().String() + ".tmp"
	output, err := os.Create(tmpname)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = output.Close()
			_ = os.Remove(tmpname)
		}
	}()
	writer := bufio.NewWriter(output)
	for i, sequence := range contigs {
		if _, err = fmt.Fprintf(writer, ">sequence%v\n", i+1); err != nil {
			return err
		}
		if _, err = writer.Write(sequence); err != nil {
			return err
		}
		if err = writer.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err = writer.Flush(); err != nil {
		return err
	}
	if err = output.Close(); err != nil {
		return err
	}
	return os.Rename(tmpname, pathname)
}
