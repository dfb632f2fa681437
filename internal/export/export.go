// Package export renders a board for download: CSV for spreadsheets and a
// printable HTML document that feeds a print/PDF pipeline.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/retroboard-dev/retroboard/internal/domain"
)

var columnTitles = map[domain.Column]string{
	domain.ColumnWentWell:    "Went Well",
	domain.ColumnToImprove:   "To Improve",
	domain.ColumnActionItems: "Action Items",
}

// WriteCSV writes one row per item, grouped by column in display order.
// encoding/csv handles quoting and escaping of embedded commas/quotes.
func WriteCSV(w io.Writer, grouped map[domain.Column][]domain.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Column", "Content", "Votes", "Created At"}); err != nil {
		return err
	}
	for _, c := range domain.Columns {
		for _, it := range grouped[c] {
			row := []string{
				columnTitles[c],
				it.Content,
				strconv.Itoa(it.Votes),
				formatTimestamp(it.CreatedAt),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename suggests a download name, dated like team-feedback-2026-08-30.csv.
func Filename(ext string, now time.Time) string {
	return fmt.Sprintf("team-feedback-%s.%s", now.Format("2006-01-02"), ext)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

var htmlTemplate = template.Must(template.New("board").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
h1 { margin-bottom: 0; }
.exported { color: #666; font-size: 0.9rem; }
.column { margin-top: 1.5rem; page-break-inside: avoid; }
.card { border: 1px solid #ccc; border-radius: 4px; padding: 0.5rem 0.75rem; margin: 0.5rem 0; }
.meta { color: #666; font-size: 0.8rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="exported">Exported {{.ExportedAt}}</p>
{{range .Columns}}
<div class="column">
<h2>{{.Title}} ({{len .Cards}})</h2>
{{range .Cards}}
<div class="card">
<div>{{.Content}}</div>
<div class="meta">{{.Votes}} votes &middot; {{.CreatedAt}}</div>
</div>
{{end}}
</div>
{{end}}
</body>
</html>
`))

type htmlCard struct {
	Content   template.HTML
	Votes     int
	CreatedAt string
}

type htmlColumn struct {
	Title string
	Cards []htmlCard
}

type htmlBoard struct {
	Title      string
	ExportedAt string
	Columns    []htmlColumn
}

// WriteHTML renders the printable document. Item content is treated as
// markdown and sanitized after rendering, so pasted markup cannot escape
// into the page.
func WriteHTML(w io.Writer, board domain.Board, grouped map[domain.Column][]domain.Item, now time.Time) error {
	md := goldmark.New()
	policy := bluemonday.UGCPolicy()

	doc := htmlBoard{
		Title:      board.Title,
		ExportedAt: now.Format("2006-01-02 15:04"),
	}
	for _, c := range domain.Columns {
		col := htmlColumn{Title: columnTitles[c]}
		for _, it := range grouped[c] {
			var buf bytes.Buffer
			if err := md.Convert([]byte(it.Content), &buf); err != nil {
				return err
			}
			col.Cards = append(col.Cards, htmlCard{
				Content:   template.HTML(policy.Sanitize(buf.String())),
				Votes:     it.Votes,
				CreatedAt: formatTimestamp(it.CreatedAt),
			})
		}
		doc.Columns = append(doc.Columns, col)
	}
	return htmlTemplate.Execute(w, doc)
}
