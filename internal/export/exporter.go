// Package export renders a task view as a JSON, CSV or PDF report.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"netlist/internal/storage"
	"netlist/internal/view"
)

// Formats lists the supported report formats.
var Formats = []string{"json", "csv", "pdf"}

// ErrUnsupportedText is returned when a PDF without a UTF-8 font would have
// to drop characters of a task.
var ErrUnsupportedText = errors.New("text not supported by the built-in PDF font")

const bodyFamily = "body"

// Exporter renders projections. Title is printed at the top of PDF reports.
// FontPath, if set, names a UTF-8 TrueType font used for task lines.
type Exporter struct {
	Title    string
	FontPath string
	Now      func() time.Time
}

// New returns an exporter with the default title.
func New() *Exporter {
	return &Exporter{Title: "netlist report", Now: time.Now}
}

// Export renders p in format. The format name is case-insensitive.
func (e *Exporter) Export(p view.Projection, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(p, "", "  ")
	case "csv":
		return e.csv(p)
	case "pdf":
		return e.pdf(p)
	default:
		return nil, fmt.Errorf("unknown format %s (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

func (e *Exporter) csv(p view.Projection) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "text", "priority", "completed", "created_at"})
	for _, t := range p.Tasks {
		_ = w.Write([]string{
			t.ID,
			t.Text,
			string(t.Priority),
			strconv.FormatBool(t.Completed),
			t.CreatedAt.UTC().Format(storage.TimeLayout),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (e *Exporter) pdf(p view.Projection) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(e.now())

	// Task lines go through the UTF-8 font when one is configured. Otherwise
	// the core font only covers cp1252 and anything else is refused.
	bodyFont := "Arial"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if e.FontPath != "" {
		if _, err := os.Stat(e.FontPath); err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		pdf.AddUTF8Font(bodyFamily, "", e.FontPath)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("load font %s: %w", e.FontPath, err)
		}
		bodyFont = bodyFamily
		tr = func(s string) string { return s }
	} else {
		for _, t := range p.Tasks {
			if r, ok := firstNonCP1252(t.Text); ok {
				return nil, fmt.Errorf("%w: task %s contains %q; configure a UTF-8 TrueType font", ErrUnsupportedText, t.ID, r)
			}
		}
	}

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, e.Title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	s := p.Stats
	pdf.Cell(0, 6, fmt.Sprintf("%s / %s: %d total, %d pending, %d completed, %d%% done",
		p.Selection.Filter, p.Selection.Sort, s.Total, s.Pending, s.Completed, s.CompletionRate))
	pdf.Ln(10)

	if p.Empty() {
		pdf.MultiCell(0, 6, view.EmptyMessage(p.Selection.Filter), "0", "L", false)
	}
	pdf.SetFont(bodyFont, "", 10)
	for i, t := range p.Tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		line := fmt.Sprintf("%d. %s %-6s %s  (%s)", i+1, box, t.Priority,
			strings.Join(strings.Fields(t.Text), " "), t.CreatedAt.UTC().Format("2006-01-02 15:04"))
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// cp1252Extra holds the printable runes cp1252 places in 0x80-0x9F.
var cp1252Extra = map[rune]bool{
	'€': true, '‚': true, 'ƒ': true, '„': true, '…': true, '†': true, '‡': true,
	'ˆ': true, '‰': true, 'Š': true, '‹': true, 'Œ': true, 'Ž': true, '‘': true,
	'’': true, '“': true, '”': true, '•': true, '–': true, '—': true, '˜': true,
	'™': true, 'š': true, '›': true, 'œ': true, 'ž': true, 'Ÿ': true,
}

// firstNonCP1252 returns the first rune of s the core PDF fonts cannot show.
// Line breaks and tabs are fine since lines are rebuilt from fields.
func firstNonCP1252(s string) (rune, bool) {
	for _, r := range s {
		switch {
		case r < 0x80, r >= 0xA0 && r <= 0xFF, cp1252Extra[r]:
			continue
		}
		return r, true
	}
	return 0, false
}
