// Package export renders an audit report as a self-contained HTML document.
// All interpolation goes through html/template so escaping happens at one
// choke point; resource names and groups never reach the markup raw.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/de-tools/storage-audit/pkg/models/domain"
	"github.com/de-tools/storage-audit/pkg/services/rules"
)

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Azure Storage Security Report</title>
<style>
body { font-family: "Segoe UI", Arial, sans-serif; margin: 24px; color: #1b1b1b; }
h1 { font-size: 1.5em; }
h2 { font-size: 1.2em; margin-top: 1.6em; }
p.meta { color: #555; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #c8c8c8; padding: 6px 10px; text-align: left; }
th { background: #2f3b52; color: #fff; }
td.good { background: #d9f2d9; }
td.bad { background: #f6d0d0; }
td.warning { background: #fdf3cf; }
td.error { background: #f6d0d0; font-style: italic; }
td a, span.swatch { white-space: nowrap; }
span.swatch { display: inline-block; padding: 2px 10px; margin-right: 6px; border: 1px solid #c8c8c8; }
</style>
</head>
<body>
<h1>Azure Storage Security Report</h1>
<p class="meta">Subscription {{.SubscriptionName}} ({{.Subscription}}), generated at {{.GeneratedAt}}</p>
<p class="legend">
<span class="swatch" style="background:#d9f2d9">Good</span> follows the best practice
<span class="swatch" style="background:#f6d0d0">Bad</span> violates the best practice
<span class="swatch" style="background:#fdf3cf">Warning</span> unknown or needs review
</p>
{{range .Sections}}
<h2>{{.Title}}</h2>
<table>
<tr>
<th>Storage Account</th>
{{- range .Columns}}
<th>{{.}}</th>
{{- end}}
</tr>
{{- range .Rows}}
<tr>
<td class="name"><a href="{{.PortalURL}}">{{.Name}}</a></td>
{{- if .Error}}
<td class="error" colspan="{{.Colspan}}">{{.Error}}</td>
{{- else}}
{{- range .Cells}}
<td class="{{.Class}}">{{.Label}}{{if .Reference}} (<a href="{{.Reference}}">docs</a>){{end}}</td>
{{- end}}
{{- end}}
</tr>
{{- end}}
</table>
{{end}}
</body>
</html>
`

type cellView struct {
	Class     string
	Label     string
	Reference string
}

type rowView struct {
	Name      string
	PortalURL string
	Cells     []cellView
	Error     string
	Colspan   int
}

type sectionView struct {
	Title   string
	Columns []string
	Rows    []rowView
}

type documentView struct {
	Subscription     string
	SubscriptionName string
	GeneratedAt      string
	Sections         []sectionView
}

// Reporter writes audit reports as HTML.
type Reporter struct {
	writer io.Writer
	tmpl   *template.Template
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		tmpl:   template.Must(template.New("report").Parse(documentTemplate)),
	}
}

// Handle renders the full document. Output is byte-identical for identical
// report content; the generated-at line is the only run metadata.
func (r *Reporter) Handle(report *domain.AuditReport) error {
	view := documentView{
		Subscription:     report.Subscription,
		SubscriptionName: report.SubscriptionName,
		GeneratedAt:      report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"),
		Sections: []sectionView{
			buildSection("Storage Account Level Best Practices", rules.AccountColumns, report.AccountRows, report.Subscription),
			buildSection("Blob Service Level Best Practices", rules.BlobColumns, report.BlobRows, report.Subscription),
		},
	}

	if err := r.tmpl.Execute(r.writer, view); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func buildSection(title string, columns []string, rows []domain.ResourceRow, subscription string) sectionView {
	section := sectionView{
		Title:   title,
		Columns: columns,
		Rows:    make([]rowView, 0, len(rows)),
	}

	for _, row := range rows {
		view := rowView{
			Name:      row.Account.Name,
			PortalURL: portalURL(subscription, row.Account),
		}
		if row.FetchErr != "" {
			view.Error = row.FetchErr
			view.Colspan = len(columns)
		} else {
			for _, v := range row.Verdicts {
				view.Cells = append(view.Cells, cellView{
					Class:     v.Status.String(),
					Label:     v.Label,
					Reference: v.Reference,
				})
			}
		}
		section.Rows = append(section.Rows, view)
	}

	return section
}

// portalURL deep-links to the account's configuration view. Path segments
// are escaped here; the template escapes the rest. Construction never fails,
// whatever characters the resource identifiers contain.
func portalURL(subscription string, acct domain.StorageAccount) string {
	return fmt.Sprintf(
		"https://portal.azure.com/#@/resource/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Storage/storageAccounts/%s/overview",
		url.PathEscape(subscription),
		url.PathEscape(acct.ResourceGroup),
		url.PathEscape(acct.Name),
	)
}

// WriteFile materializes the whole document in memory and moves it into
// place with a rename, so a failed run never leaves a half-written report at
// the destination path.
func WriteFile(path string, report *domain.AuditReport) error {
	var buf bytes.Buffer
	if err := NewReporter(&buf).Handle(report); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".storage-report-*")
	if err != nil {
		return fmt.Errorf("failed to create temp report file: %w", err)
	}

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close report file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move report into place: %w", err)
	}
	return nil
}
