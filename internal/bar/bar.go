// Package bar renders comparison results as fixed-width character bars.
// Two styles exist: "oneline" merges both sides into a single row using
// half-block glyphs, "twolines" renders each side on its own row. Colors
// are emitted through termenv styles so the output degrades with the
// terminal's color profile.
package bar

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"chunkdup/internal/align"
	"chunkdup/internal/compare"
	"chunkdup/internal/render"
	"chunkdup/internal/sizeutil"
)

// Style selects the bar layout.
type Style string

const (
	OneLine  Style = "oneline"
	TwoLines Style = "twolines"
)

// Styles lists the accepted style names.
func Styles() []string { return []string{string(OneLine), string(TwoLines)} }

// ParseStyle validates a style name from the CLI.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case OneLine, TwoLines:
		return Style(s), nil
	}
	return "", fmt.Errorf("no such bar style: %q (want %s)", s, strings.Join(Styles(), " or "))
}

// Options controls bar rendering.
type Options struct {
	Width   int
	Color   bool
	Style   Style
	Profile termenv.Profile // color profile when Color is set
}

// Format renders the result as one line (or two, for TwoLines) including
// the percent/size prefix and the bar itself.
func Format(r *compare.Result, opt Options) (string, error) {
	p, err := render.Build(r.Align, opt.Width)
	if err != nil {
		return "", err
	}
	lineA, lineB := planRuns(p)
	switch opt.Style {
	case TwoLines:
		return formatTwoLines(r, lineA, lineB, opt), nil
	default:
		return formatOneLine(r, lineA, lineB, opt), nil
	}
}

// PrefixWidth is the display width of everything preceding the bar in the
// given style, including the trailing separator. Used to size the bar to
// the terminal.
func PrefixWidth(r *compare.Result, style Style) int {
	if style == TwoLines {
		return runewidth.StringWidth(fmt.Sprintf("%7s  %6s  ", percent(r.Ratio), sizeutil.Humanize(r.FileA.Size())))
	}
	return runewidth.StringWidth(prefixOneLine(r) + "  ")
}

func percent(ratio float64) string {
	return fmt.Sprintf("%6.2f%%", ratio*100)
}

func prefixOneLine(r *compare.Result) string {
	return fmt.Sprintf("%s  ▀%s  ▄%s",
		percent(r.Ratio),
		sizeutil.Humanize(r.FileA.Size()),
		sizeutil.Humanize(r.FileB.Size()))
}

// planRuns expands a plan into the per-side character runs. Every cell
// contributes its symbol run and a space pad up to the cell width on the
// shorter side; the ellipsis marker contributes "..." on both sides.
func planRuns(p render.Plan) (lineA, lineB []string) {
	for _, c := range p.Cells {
		if c.Elided {
			if c.Marker {
				lineA = append(lineA, "...")
				lineB = append(lineB, "...")
			}
			continue
		}
		symA, symB := opSymbols(c)
		w := c.Width()
		if c.WidthA > 0 {
			lineA = append(lineA, strings.Repeat(symA, c.WidthA))
		}
		if pad := w - c.WidthA; pad > 0 {
			lineA = append(lineA, strings.Repeat(" ", pad))
		}
		if c.WidthB > 0 {
			lineB = append(lineB, strings.Repeat(symB, c.WidthB))
		}
		if pad := w - c.WidthB; pad > 0 {
			lineB = append(lineB, strings.Repeat(" ", pad))
		}
	}
	return lineA, lineB
}

// opSymbols is the per-side character class of an op. A space marks bytes
// absent on that side; padding up to the op's max width is also a space.
func opSymbols(c render.Cell) (a, b string) {
	switch c.Op.Type {
	case align.Equal:
		return "=", "="
	case align.Insert:
		return " ", "+"
	case align.Delete:
		return "-", " "
	default:
		return "-", "+"
	}
}

// oneLineGlyphs maps a (side A char, side B char) pair to the merged
// glyph for plain output.
var oneLineGlyphs = map[string]string{
	"==": "▒",
	"-+": "█",
	"- ": "▀",
	" +": "▄",
	"..": ".",
}

type colorPair struct {
	glyph string
	fg    termenv.Color
	bg    termenv.Color
}

// Colored oneline output paints the top half (side A) as the foreground
// of "▀" and the bottom half (side B) as its background.
var oneLineColors = map[string]colorPair{
	"==": {glyph: "▒", fg: termenv.ANSIBrightBlack, bg: termenv.ANSIBrightBlack},
	"-+": {glyph: "▀", fg: termenv.ANSIBrightRed, bg: termenv.ANSIBrightGreen},
	"- ": {glyph: "▀", fg: termenv.ANSIBrightRed, bg: termenv.ANSIBrightYellow},
	" +": {glyph: "▀", fg: termenv.ANSIBrightYellow, bg: termenv.ANSIBrightGreen},
	"..": {glyph: ".", bg: termenv.ANSIBrightBlack},
}

// twoLinesColors maps a character class to its background.
var twoLinesColors = map[byte]termenv.Color{
	'=': termenv.ANSIBrightBlack,
	'-': termenv.ANSIBrightRed,
	'+': termenv.ANSIBrightGreen,
	' ': termenv.ANSIBrightYellow,
}

func formatOneLine(r *compare.Result, lineA, lineB []string, opt Options) string {
	a := strings.Join(lineA, "")
	b := strings.Join(lineB, "")
	ra, rb := []rune(a), []rune(b)
	var sb strings.Builder
	// group consecutive identical (A,B) char pairs into runs
	for i := 0; i < len(ra); {
		key := string(ra[i]) + string(rb[i])
		j := i
		for j < len(ra) && string(ra[j])+string(rb[j]) == key {
			j++
		}
		n := j - i
		if opt.Color {
			cp := oneLineColors[key]
			run := strings.Repeat(cp.glyph, n)
			st := opt.Profile.String(run)
			if cp.fg != nil {
				st = st.Foreground(cp.fg)
			}
			if cp.bg != nil {
				st = st.Background(cp.bg)
			}
			sb.WriteString(st.String())
		} else {
			sb.WriteString(strings.Repeat(oneLineGlyphs[key], n))
		}
		i = j
	}
	return prefixOneLine(r) + "  " + sb.String()
}

func formatTwoLines(r *compare.Result, lineA, lineB []string, opt Options) string {
	colorize := func(runs []string) string {
		var sb strings.Builder
		for _, run := range runs {
			if !opt.Color || run == "" {
				sb.WriteString(run)
				continue
			}
			bg, ok := twoLinesColors[run[0]]
			if !ok {
				sb.WriteString(run)
				continue
			}
			sb.WriteString(opt.Profile.String(run).Background(bg).String())
		}
		return sb.String()
	}
	rows := []string{
		fmt.Sprintf("%7s  %6s  %s", percent(r.Ratio), sizeutil.Humanize(r.FileA.Size()), colorize(lineA)),
		fmt.Sprintf("%7s  %6s  %s", "", sizeutil.Humanize(r.FileB.Size()), colorize(lineB)),
	}
	return strings.Join(rows, "\n")
}
