package render

import (
	"html/template"
	"io"

	"unsafemeter/internal/stats"
)

// htmlData is the template context for the HTML report.
type htmlData struct {
	Crate  string
	Total  stats.CodeStats
	Files  []htmlFileRow
	Diff   *stats.DiffReport
	Ratio  float64
	Change []htmlDiffRow
}

type htmlFileRow struct {
	Name    string
	Perfect bool
	Stats   stats.CodeStats
}

type htmlDiffRow struct {
	Name string
	Diff stats.FileDiff
}

var htmlFuncs = template.FuncMap{
	"countClass": func(count int) string { return string(CountSeverity(count)) },
	"ratioClass": func(unsafeCount, totalCount int) string {
		return string(RatioSeverity(unsafeCount, totalCount))
	},
	"delta": FormatChangeDelta,
}

var htmlTemplate = template.Must(template.New("report").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Crate Safety Report</title>
<style>
body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; color: #333; background: #f8f9fa; }
.container { max-width: 1200px; margin: 0 auto; padding: 20px; }
.header { background: white; border-radius: 8px; padding: 30px; margin-bottom: 30px; }
.summary { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 20px; margin-bottom: 30px; }
.metric { background: white; border-radius: 8px; padding: 20px; text-align: center; }
.metric-value { font-size: 2em; font-weight: bold; }
.metric-label { color: #7f8c8d; font-size: 0.9em; }
.safe { color: #27ae60; }
.warning { color: #f39c12; }
.danger { color: #e74c3c; }
.neutral { color: #7f8c8d; }
table { width: 100%; background: white; border-collapse: collapse; }
th, td { padding: 12px 15px; text-align: left; border-bottom: 1px solid #ecf0f1; }
th { background: #34495e; color: white; }
.perfect-file { color: #27ae60; }
.diff-section { background: white; border-radius: 8px; padding: 20px; margin-top: 30px; }
.diff-change { margin: 10px 0; padding: 10px; border-radius: 4px; background: #f8f9fa; }
.diff-added { border-left: 4px solid #27ae60; }
.diff-removed { border-left: 4px solid #e74c3c; }
.diff-changed { border-left: 4px solid #f39c12; }
</style>
</head>
<body>
<div class="container">
<div class="header">
<h1>Crate Safety Report</h1>
<div class="neutral">Analysis of unsafe code usage{{if .Crate}} in {{.Crate}}{{end}}</div>
</div>
<div class="summary">
<div class="metric"><div class="metric-value neutral">{{.Total.TotalLines}}</div><div class="metric-label">Total Lines</div></div>
<div class="metric"><div class="metric-value {{ratioClass .Total.UnsafeFns .Total.TotalFns}}">{{printf "%.1f" .Ratio}}%</div><div class="metric-label">Unsafe Functions</div></div>
<div class="metric"><div class="metric-value {{countClass .Total.UnsafeStatements}}">{{.Total.UnsafeStatements}}</div><div class="metric-label">Unsafe Statements</div></div>
<div class="metric"><div class="metric-value {{countClass .Total.StaticMutItems}}">{{.Total.StaticMutItems}}</div><div class="metric-label">Static Mut Items</div></div>
<div class="metric"><div class="metric-value {{countClass .Total.Unwraps}}">{{.Total.Unwraps}}</div><div class="metric-label">Unwrap Calls</div></div>
</div>
<table>
<thead>
<tr><th>File</th><th>Unsafe/Total Functions</th><th>Unsafe Statements</th><th>Static Mut</th><th>Unwraps</th></tr>
</thead>
<tbody>
{{range .Files}}<tr>
<td{{if .Perfect}} class="perfect-file"{{end}}>{{.Name}}</td>
<td class="{{ratioClass .Stats.UnsafeFns .Stats.TotalFns}}">{{.Stats.UnsafeFns}}/{{.Stats.TotalFns}}</td>
<td class="{{countClass .Stats.UnsafeStatements}}">{{.Stats.UnsafeStatements}}</td>
<td class="{{countClass .Stats.StaticMutItems}}">{{.Stats.StaticMutItems}}</td>
<td class="{{countClass .Stats.Unwraps}}">{{.Stats.Unwraps}}</td>
</tr>
{{end}}</tbody>
</table>
{{if .Change}}
<div class="diff-section">
<h2>Changes from Baseline</h2>
<div class="diff-change">
<strong>Summary Changes:</strong><br>
Unsafe functions: {{.Diff.BeforeTotal.UnsafeFns}} &rarr; {{.Diff.AfterTotal.UnsafeFns}} ({{delta .Diff.BeforeTotal.UnsafeFns .Diff.AfterTotal.UnsafeFns}})<br>
Unsafe statements: {{.Diff.BeforeTotal.UnsafeStatements}} &rarr; {{.Diff.AfterTotal.UnsafeStatements}} ({{delta .Diff.BeforeTotal.UnsafeStatements .Diff.AfterTotal.UnsafeStatements}})<br>
Static mut items: {{.Diff.BeforeTotal.StaticMutItems}} &rarr; {{.Diff.AfterTotal.StaticMutItems}} ({{delta .Diff.BeforeTotal.StaticMutItems .Diff.AfterTotal.StaticMutItems}})<br>
Unwrap calls: {{.Diff.BeforeTotal.Unwraps}} &rarr; {{.Diff.AfterTotal.Unwraps}} ({{delta .Diff.BeforeTotal.Unwraps .Diff.AfterTotal.Unwraps}})
</div>
{{range .Change}}{{if eq .Diff.Kind "added"}}
<div class="diff-change diff-added">
<strong>{{.Name}} [NEW FILE]</strong><br>
Unsafe functions: {{.Diff.After.UnsafeFns}}, Unsafe statements: {{.Diff.After.UnsafeStatements}}, Unwraps: {{.Diff.After.Unwraps}}
</div>
{{else if eq .Diff.Kind "removed"}}
<div class="diff-change diff-removed">
<strong>{{.Name}} [REMOVED]</strong><br>
Had {{.Diff.Before.UnsafeFns}} unsafe functions, {{.Diff.Before.UnsafeStatements}} unsafe statements, {{.Diff.Before.Unwraps}} unwraps
</div>
{{else}}
<div class="diff-change diff-changed">
<strong>{{.Name}} [MODIFIED]</strong><br>
Unsafe functions: {{.Diff.Before.UnsafeFns}} &rarr; {{.Diff.After.UnsafeFns}} ({{delta .Diff.Before.UnsafeFns .Diff.After.UnsafeFns}})<br>
Unsafe statements: {{.Diff.Before.UnsafeStatements}} &rarr; {{.Diff.After.UnsafeStatements}} ({{delta .Diff.Before.UnsafeStatements .Diff.After.UnsafeStatements}})<br>
Unwraps: {{.Diff.Before.Unwraps}} &rarr; {{.Diff.After.Unwraps}} ({{delta .Diff.Before.Unwraps .Diff.After.Unwraps}})
</div>
{{end}}{{end}}
</div>
{{end}}
</div>
</body>
</html>
`))

// HTML renders the report as a standalone document embedding the same
// metrics and severity classes as the terminal output.
type HTML struct {
	Crate string
}

// Render writes the HTML document. diff may be nil.
func (h HTML) Render(w io.Writer, report *stats.Report, diff *stats.DiffReport) error {
	data := htmlData{
		Crate: h.Crate,
		Total: report.Total,
		Diff:  diff,
	}
	if report.Total.TotalFns > 0 {
		data.Ratio = float64(report.Total.UnsafeFns) / float64(report.Total.TotalFns) * 100.0
	}
	for _, name := range report.SortedFiles() {
		cs := report.Files[name]
		data.Files = append(data.Files, htmlFileRow{
			Name:    name,
			Perfect: cs.IsPerfect(),
			Stats:   cs,
		})
	}
	if diff != nil {
		for _, name := range diff.SortedFiles() {
			data.Change = append(data.Change, htmlDiffRow{Name: name, Diff: diff.Changes[name]})
		}
	}
	return htmlTemplate.Execute(w, data)
}
