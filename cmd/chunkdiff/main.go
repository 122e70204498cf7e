// Package main provides the chunkdiff CLI: it renders the difference of
// two chunked files as a fixed-width colored bar.
//
// Usage:
//
//	chunkdiff -s <chunksums> [-s <chunksums2>] [flags] <file1> <file2>
//
// One -s flag serves both sides; a second one compares files across two
// different chunksums sets. Bar defaults (width, style, color) may come
// from a TOML config file (-config, $CHUNKDUP_CONFIG or
// ~/.config/chunkdup/config.toml); explicit flags win.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"chunkdup/internal/bar"
	"chunkdup/internal/catalog"
	"chunkdup/internal/compare"
	"chunkdup/internal/config"
)

// stringList collects repeated flag values.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	flag.Usage = func() {
		prog := filepath.Base(os.Args[0])
		fmt.Fprintf(os.Stderr, "Show the difference of two files.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s -s <chunksums> [-s <chunksums2>] [flags] <file1> <file2>\n", prog)
		fmt.Fprintf(os.Stderr, "\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n\n")
		fmt.Fprintf(os.Stderr, "  $ chunksum dir1/ -f chunksums.dir1\n")
		fmt.Fprintf(os.Stderr, "  $ chunksum dir2/ -f chunksums.dir2\n")
		fmt.Fprintf(os.Stderr, "  $ %s -s chunksums.dir1 -s chunksums.dir2 dir1/file1 dir2/file2\n", prog)
		fmt.Fprintf(os.Stderr, "  $ %s -s chunksums ./file1 ./file2\n", prog)
	}

	var sumsPaths stringList
	flag.Var(&sumsPaths, "s", "path to chunksums file (repeat for two sides)")
	styleFlag := flag.String("b", "", "bar style: oneline or twolines (default from config)")
	widthFlag := flag.Int("w", -1, "bar width in columns; 0 sizes to the terminal (default from config)")
	noColor := flag.Bool("n", false, "do not colorize output")
	configFlag := flag.String("config", "", "path to config file")
	flag.Parse()

	if len(sumsPaths) == 0 || flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fail(err)
	}

	opt, err := resolveOptions(cfg, *styleFlag, *widthFlag, *noColor)
	if err != nil {
		fail(err)
	}

	c1, err := loadCatalog(sumsPaths[0])
	if err != nil {
		fail(err)
	}
	c2 := c1
	if len(sumsPaths) > 1 {
		if c2, err = loadCatalog(sumsPaths[1]); err != nil {
			fail(err)
		}
	}

	res, err := compare.New(c1, c2).Compare(flag.Arg(0), flag.Arg(1))
	if err != nil {
		fail(err)
	}

	if opt.Width == 0 {
		opt.Width = autoWidth(res, opt.Style)
	}

	out, err := bar.Format(res, opt)
	if err != nil {
		fail(err)
	}
	fmt.Println(out)
}

// resolveOptions layers explicit flags over config defaults.
func resolveOptions(cfg config.Config, styleFlag string, widthFlag int, noColor bool) (bar.Options, error) {
	styleName := cfg.Bar.Style
	if styleFlag != "" {
		styleName = styleFlag
	}
	style, err := bar.ParseStyle(styleName)
	if err != nil {
		return bar.Options{}, err
	}

	width := cfg.Bar.Width
	if widthFlag >= 0 {
		width = widthFlag
	}

	profile := termenv.ColorProfile()
	color := false
	switch {
	case noColor || cfg.Bar.Color == "never":
	case cfg.Bar.Color == "always":
		color = true
	default: // auto
		color = profile != termenv.Ascii
	}

	return bar.Options{Width: width, Color: color, Style: style, Profile: profile}, nil
}

// autoWidth sizes the bar to the terminal, leaving room for the prefix.
func autoWidth(res *compare.Result, style bar.Style) int {
	const fallback = 40
	cols, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 {
		return fallback
	}
	w := cols - bar.PrefixWidth(res, style)
	if w < 4 {
		return fallback
	}
	return w
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
