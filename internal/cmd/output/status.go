package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/CameronBrooks11/projects-registry/pkg/validation"
)

// StatusPrinter writes validation status lines, coloring the [OK] and
// [FAIL] markers when color is enabled.
type StatusPrinter struct {
	w    io.Writer
	ok   *color.Color
	fail *color.Color
}

// NewStatusPrinter returns a printer writing to w. Color follows the
// fatih/color terminal detection unless noColor is set.
func NewStatusPrinter(w io.Writer, noColor bool) *StatusPrinter {
	p := &StatusPrinter{
		w:    w,
		ok:   color.New(color.FgGreen),
		fail: color.New(color.FgRed, color.Bold),
	}
	if noColor {
		p.ok.DisableColor()
		p.fail.DisableColor()
	}
	return p
}

// File prints the lines of one file report.
func (p *StatusPrinter) File(r validation.FileReport) {
	for i, line := range r.Lines() {
		if i == 0 {
			line = p.mark(line)
		}
		_, _ = fmt.Fprintln(p.w, line)
	}
}

// Summary prints the closing line preceded by a blank line.
func (p *StatusPrinter) Summary(r *validation.Report) {
	if err := r.Error(); err != nil {
		_, _ = fmt.Fprintf(p.w, "\n%s\n", p.fail.Sprint(err.Error()))
		return
	}
	_, _ = fmt.Fprintf(p.w, "\n%s\n", p.ok.Sprint("All project files validated"))
}

func (p *StatusPrinter) mark(line string) string {
	for _, m := range []struct {
		tag string
		c   *color.Color
	}{{"[OK]", p.ok}, {"[FAIL]", p.fail}} {
		if rest, found := strings.CutPrefix(line, m.tag); found {
			return m.c.Sprint(m.tag) + rest
		}
	}
	return line
}
