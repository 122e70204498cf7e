// Package main provides the chunkdup CLI: it reads two chunksums files
// and reports file pairs that share content, ranked by similarity.
//
// Usage:
//
//	chunkdup <chunksums1> <chunksums2>
//
// Each report line is "<percent>  <pathA> (<sizeA>B)  <pathB> (<sizeB>B)",
// most similar pairs first. Comparing a chunksums file against itself
// finds duplicates within one tree; exact self-matches are suppressed.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"chunkdup/internal/catalog"
	"chunkdup/internal/compare"
)

func main() {
	flag.Usage = func() {
		prog := filepath.Base(os.Args[0])
		fmt.Fprintf(os.Stderr, "Find (partial content) duplicate files.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s <chunksums1> <chunksums2>\n", prog)
		fmt.Fprintf(os.Stderr, "\nExamples:\n\n")
		fmt.Fprintf(os.Stderr, "  $ chunksum dir1/ -f chunksums.dir1\n")
		fmt.Fprintf(os.Stderr, "  $ chunksum dir2/ -f chunksums.dir2\n")
		fmt.Fprintf(os.Stderr, "  $ %s chunksums.dir1 chunksums.dir2\n", prog)
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	c1, err := loadCatalog(flag.Arg(0))
	if err != nil {
		fail(err)
	}
	c2, err := loadCatalog(flag.Arg(1))
	if err != nil {
		fail(err)
	}

	for _, r := range compare.New(c1, c2).Duplicates() {
		fmt.Printf("%6.2f%%  %s (%dB)  %s (%dB)\n",
			r.Ratio*100,
			r.FileA.Path(), r.FileA.Size(),
			r.FileB.Path(), r.FileB.Size())
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := catalog.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
