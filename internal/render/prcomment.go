package render

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"unsafemeter/internal/stats"
)

// PRComment renders a compact summary suitable for posting on a pull
// request. Without a baseline there is nothing to compare, so the
// output is empty.
type PRComment struct {
	Crate string
}

type prData struct {
	Crate      string
	Before     stats.CodeStats
	After      stats.CodeStats
	Rows       []prRow
	Files      []string
	Collapse   bool
	Assessment string
}

type prRow struct {
	Metric string
	Before int
	After  int
	Delta  string
}

var prTemplate = template.Must(template.New("prcomment").Parse(`## Unsafe Code Report{{if .Crate}} ({{.Crate}}){{end}}

| Metric | Baseline | Current | Change |
| :--- | ---: | ---: | ---: |
{{range .Rows}}| {{.Metric}} | {{.Before}} | {{.After}} | {{.Delta}} |
{{end}}
{{.Assessment}}
{{if .Files}}
{{if .Collapse}}<details>
<summary>{{len .Files}} files with safety-relevant changes</summary>

{{range .Files}}- ` + "`{{.}}`" + `
{{end}}
</details>
{{else}}Changed files:
{{range .Files}}- ` + "`{{.}}`" + `
{{end}}{{end}}{{end}}`))

const prNoChanges = `## Unsafe Code Report%s

| Metric | Baseline | Current | Change |
| :--- | ---: | ---: | ---: |
| Unsafe functions | %d | %d | no change |
| Unsafe statements | %d | %d | no change |
| Static mut items | %d | %d | no change |
| Unwrap calls | %d | %d | no change |

No safety-relevant changes compared to the baseline.
`

// Render writes the PR comment. A nil diff produces no output.
func (p PRComment) Render(w io.Writer, report *stats.Report, diff *stats.DiffReport) error {
	if diff == nil {
		return nil
	}

	if !diff.HasChanges() {
		crate := ""
		if p.Crate != "" {
			crate = fmt.Sprintf(" (%s)", p.Crate)
		}
		b, a := diff.BeforeTotal, diff.AfterTotal
		_, err := fmt.Fprintf(w, prNoChanges, crate,
			b.UnsafeFns, a.UnsafeFns,
			b.UnsafeStatements, a.UnsafeStatements,
			b.StaticMutItems, a.StaticMutItems,
			b.Unwraps, a.Unwraps)
		return err
	}

	data := prData{
		Crate:  p.Crate,
		Before: diff.BeforeTotal,
		After:  diff.AfterTotal,
		Rows: []prRow{
			prDelta("Unsafe functions", diff.BeforeTotal.UnsafeFns, diff.AfterTotal.UnsafeFns),
			prDelta("Unsafe statements", diff.BeforeTotal.UnsafeStatements, diff.AfterTotal.UnsafeStatements),
			prDelta("Static mut items", diff.BeforeTotal.StaticMutItems, diff.AfterTotal.StaticMutItems),
			prDelta("Unwrap calls", diff.BeforeTotal.Unwraps, diff.AfterTotal.Unwraps),
		},
		Files:      diff.SortedFiles(),
		Assessment: assess(diff),
	}
	data.Collapse = len(data.Files) > 5

	var buf strings.Builder
	if err := prTemplate.Execute(&buf, data); err != nil {
		return err
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

func prDelta(metric string, before, after int) prRow {
	return prRow{
		Metric: metric,
		Before: before,
		After:  after,
		Delta:  FormatChangeDelta(before, after),
	}
}

// assess summarizes the direction of the safety-relevant totals.
func assess(diff *stats.DiffReport) string {
	score := 0
	score += diff.AfterTotal.UnsafeFns - diff.BeforeTotal.UnsafeFns
	score += diff.AfterTotal.UnsafeStatements - diff.BeforeTotal.UnsafeStatements
	score += diff.AfterTotal.StaticMutItems - diff.BeforeTotal.StaticMutItems
	score += diff.AfterTotal.Unwraps - diff.BeforeTotal.Unwraps

	switch {
	case score > 0:
		return ":warning: This change increases the amount of unsafe code."
	case score < 0:
		return ":white_check_mark: This change reduces the amount of unsafe code."
	default:
		return "This change shuffles unsafe code around without changing the totals."
	}
}
