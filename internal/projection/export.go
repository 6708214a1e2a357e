package projection

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"samadhan/backend/internal/config"
	"samadhan/backend/internal/models"
)

// Row is the flat export record shape shared by both target formats.
type Row struct {
	ID          string
	Category    string
	Description string
	Status      string
	Priority    string
	Location    string
	Date        string
	UserID      string
}

// Rows projects a filtered collection into flat export records, keeping
// the collection's order. Category values go through the label table and
// an empty description is replaced with the export placeholder.
func Rows(filtered []models.Grievance) []Row {
	rows := make([]Row, 0, len(filtered))
	for _, g := range filtered {
		description := g.Description
		if description == "" {
			description = config.ExportEmptyDescription
		}
		rows = append(rows, Row{
			ID:          g.ID,
			Category:    config.CategoryLabel(g.Category),
			Description: description,
			Status:      string(g.Status),
			Priority:    string(g.Priority),
			Location:    g.Location,
			Date:        g.CreatedAt.Format("2006-01-02"),
			UserID:      g.UserID,
		})
	}
	return rows
}

// CSVFilename names the delimited export with the generation date.
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", config.ExportFilePrefix, now.Format("2006-01-02"))
}

// quoteField wraps a value in double quotes, doubling embedded quotes.
func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// maybeQuoteField quotes only when the value would break the row.
func maybeQuoteField(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return quoteField(s)
	}
	return s
}

// WriteCSV writes the header row followed by one row per grievance.
// The description field is double-quoted on every row; other free-text
// fields are quoted when they contain a separator, quote or newline.
func WriteCSV(w io.Writer, rows []Row) error {
	if _, err := io.WriteString(w, "ID,Category,Description,Status,Priority,Location,Date,User ID\n"); err != nil {
		return err
	}
	for _, row := range rows {
		line := strings.Join([]string{
			row.ID,
			maybeQuoteField(row.Category),
			quoteField(row.Description),
			row.Status,
			row.Priority,
			maybeQuoteField(row.Location),
			row.Date,
			row.UserID,
		}, ",") + "\n"
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

var printableTmpl = template.Must(template.New("printable").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Grievance Report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #444; padding: 6px 10px; text-align: left; }
th { background: #eee; }
</style>
</head>
<body>
<h1>Grievance Report</h1>
<p>Generated: {{.Generated}}</p>
<p>Total grievances: {{.Total}}</p>
<table>
<tr><th>ID</th><th>Category</th><th>Description</th><th>Status</th><th>Priority</th><th>Location</th><th>Date</th></tr>
{{range .Rows}}<tr><td>{{.ID}}</td><td>{{.Category}}</td><td>{{.Description}}</td><td>{{.Status}}</td><td>{{.Priority}}</td><td>{{.Location}}</td><td>{{.Date}}</td></tr>
{{end}}</table>
</body>
</html>
`))

// WritePrintable renders the printable HTML document: title, generation
// timestamp, total count and the seven display columns. The submitter id
// column is omitted in this format.
func WritePrintable(w io.Writer, rows []Row, generatedAt time.Time) error {
	return printableTmpl.Execute(w, struct {
		Generated string
		Total     int
		Rows      []Row
	}{
		Generated: generatedAt.Format("2006-01-02 15:04:05"),
		Total:     len(rows),
		Rows:      rows,
	})
}
