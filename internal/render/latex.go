package render

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

// LaTeXRenderer writes the schedule as a standalone LaTeX longtable document
// beneath an output directory. The artifact filename is derived from the
// document contents, so regenerating an unchanged request overwrites the
// same file instead of accumulating copies.
type LaTeXRenderer struct {
	outputDir   string
	idGenerator func() string
	now         func() time.Time
}

// NewLaTeXRenderer constructs a renderer rooted at outputDir.
func NewLaTeXRenderer(outputDir string, idGenerator func() string, now func() time.Time) *LaTeXRenderer {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &LaTeXRenderer{outputDir: outputDir, idGenerator: idGenerator, now: now}
}

// Render implements Renderer.
func (r *LaTeXRenderer) Render(ctx context.Context, doc Document) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, &RenderError{Stage: "render", Err: err}
	}

	body := composeDocument(doc)

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return Artifact{}, &RenderError{Stage: "prepare output directory", Diagnostic: err.Error(), Err: err}
	}

	filename := documentFilename(doc)
	path := filepath.Join(r.outputDir, filename)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return Artifact{}, &RenderError{Stage: "write document", Diagnostic: err.Error(), Err: err}
	}

	return Artifact{
		ID:          r.idGenerator(),
		Path:        path,
		Filename:    filename,
		GeneratedAt: r.now().UTC(),
	}, nil
}

// documentFilename derives a stable name from the document's identity fields.
func documentFilename(doc Document) string {
	hasher, _ := blake2b.New256(nil)
	fmt.Fprintf(hasher, "%s\x00%s\x00%t\x00", doc.Title, doc.Caption, doc.ShowResidents)
	for _, row := range doc.Rows {
		fmt.Fprintf(hasher, "%s|%s|%s|%t|%s\n",
			row.Date.Format("2006-01-02"), row.Room, row.Resident, row.IsHoliday, row.HolidayName)
	}
	return fmt.Sprintf("schedule_%s.tex", hex.EncodeToString(hasher.Sum(nil)[:8]))
}

func composeDocument(doc Document) string {
	var b strings.Builder

	b.WriteString("\\documentclass{article}\n")
	b.WriteString("\\usepackage[table,xcdraw]{xcolor}\n")
	b.WriteString("\\usepackage{longtable}\n")
	b.WriteString("\\usepackage[left=1cm,right=2.2cm,top=1cm,bottom=1cm]{geometry}\n")
	b.WriteString("\\usepackage[utf8]{inputenc}\n")
	b.WriteString("\\usepackage[T2A]{fontenc}\n")
	b.WriteString("\\setlength{\\parindent}{0pt}\n")
	b.WriteString("\\renewcommand{\\familydefault}{\\sfdefault}\n")
	b.WriteString("\\pagenumbering{gobble}\n")
	b.WriteString("\\begin{document}\n")
	b.WriteString("\\fontsize{14pt}{16pt}\\selectfont\n")
	b.WriteString("\\begin{center}\n")
	if doc.Title != "" {
		fmt.Fprintf(&b, "\\textbf{%s}\n", escapeLaTeX(doc.Title))
	}

	if doc.ShowResidents {
		b.WriteString("\\begin{longtable}{|p{0.25\\textwidth}|p{0.5\\textwidth}|p{0.1\\textwidth}|p{0.15\\textwidth}|}\n")
	} else {
		b.WriteString("\\begin{longtable}{|p{0.3\\textwidth}|p{0.55\\textwidth}|p{0.15\\textwidth}|}\n")
	}
	b.WriteString("\\hline\n")
	writeHeaderRow(&b, doc)
	b.WriteString("\\hline\n\\endhead\n")

	for _, row := range doc.Rows {
		date := fmt.Sprintf("%s\\hfill %s", row.DayOfWeek(), row.Date.Format("02.01.2006"))
		switch {
		case row.IsHoliday:
			// Holiday rows keep the room column empty; the name shares the
			// date cell so the rotation gap is visible at a glance.
			writeBodyRow(&b, doc.ShowResidents, "", escapeLaTeX(row.HolidayName)+"\\hfill "+row.Date.Format("02.01.2006"), row.Checkin, "")
		default:
			writeBodyRow(&b, doc.ShowResidents, escapeLaTeX(row.Room), date, row.Checkin, escapeLaTeX(row.Resident))
		}
		b.WriteString("\\hline\n")
	}

	b.WriteString("\\end{longtable}\n")
	if doc.Caption != "" {
		fmt.Fprintf(&b, "%s\n", escapeLaTeX(doc.Caption))
	}
	b.WriteString("\\end{center}\n")
	b.WriteString("\\end{document}\n")

	return b.String()
}

func writeHeaderRow(b *strings.Builder, doc Document) {
	if doc.ShowResidents {
		fmt.Fprintf(b, "%s & %s & %s & %s \\\\\n",
			escapeLaTeX(doc.Headers.Room), escapeLaTeX(doc.Headers.Date), escapeLaTeX(doc.Headers.Checkin), escapeLaTeX(doc.Headers.Residents))
		return
	}
	fmt.Fprintf(b, "%s & %s & %s \\\\\n",
		escapeLaTeX(doc.Headers.Room), escapeLaTeX(doc.Headers.Date), escapeLaTeX(doc.Headers.Checkin))
}

func writeBodyRow(b *strings.Builder, showResidents bool, room, date, checkin, resident string) {
	if showResidents {
		fmt.Fprintf(b, "%s & %s & %s & %s \\\\\n", room, date, checkin, resident)
		return
	}
	fmt.Fprintf(b, "%s & %s & %s \\\\\n", room, date, checkin)
}

var latexEscaper = strings.NewReplacer(
	"\\", "\\textbackslash{}",
	"&", "\\&",
	"%", "\\%",
	"$", "\\$",
	"#", "\\#",
	"_", "\\_",
	"{", "\\{",
	"}", "\\}",
	"~", "\\textasciitilde{}",
	"^", "\\textasciicircum{}",
)

func escapeLaTeX(value string) string {
	return latexEscaper.Replace(value)
}
