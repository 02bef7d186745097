package fasta

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/sbhtools/sbhasm/contig"
)

func TestParseReads(t *testing.T) {
	dir, err := ioutil.TempDir("", "fasta")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	filename := filepath.Join(dir, "reads.fasta")
	data := ">read1\n" +
		"AACC\n" +
		">read2 too short\n" +
		"AAC\n" +
		"; a comment line\n" +
		"CCGGTT\n" +
		"\n" +
		"GGTT\n"
	if err := ioutil.WriteFile(filename, []byte(data), 0666); err != nil {
		t.Fatal(err)
	}
	reads := ParseReads(filename, 4)
	if len(reads) != 2 {
		t.Fatal("read filtering failed")
	}
	if string(reads[0]) != "AACC" || string(reads[1]) != "GGTT" {
		t.Error("read extraction failed")
	}
}

func TestWriteContigs(t *testing.T) {
	dir, err := ioutil.TempDir("", "fasta")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	filename := filepath.Join(dir, "contigs.fasta")
	contigs := []contig.Contig{
		contig.Contig("AACCGGTT"),
		contig.Contig("TTTT"),
	}
	if err := WriteContigs(filename, contigs); err != nil {
		t.Fatal(err)
	}
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	want := ">sequence1\nAACCGGTT\n>sequence2\nTTTT\n"
	if string(data) != want {
		t.Error("contig record format failed")
	}
	// The temporary file is renamed away, not left behind.
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Error("temporary output file left behind")
	}
}

func TestWriteContigsEmpty(t *testing.T) {
	dir, err := ioutil.TempDir("", "fasta")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	filename := filepath.Join(dir, "contigs.fasta")
	if err := WriteContigs(filename, nil); err != nil {
		t.Fatal(err)
	}
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Error("empty contig collection output failed")
	}
}
