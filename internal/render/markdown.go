package render

import (
	"fmt"
	"io"

	"unsafemeter/internal/stats"
)

// Markdown renders the report as a human-readable summary plus an
// aligned table, optionally followed by a diff section.
type Markdown struct {
	Style Style
	Crate string // crate name shown in the header, may be empty
}

// Render writes the full markdown report.
func (m Markdown) Render(w io.Writer, report *stats.Report, diff *stats.DiffReport) error {
	total := report.Total

	if _, err := fmt.Fprintf(w, "Code Report\n===========\n"); err != nil {
		return err
	}
	if m.Crate != "" {
		if _, err := fmt.Fprintf(w, "- Crate: %s\n", m.Crate); err != nil {
			return err
		}
	}
	ratio := m.Style.Paint(
		Percentage(total.UnsafeFns, total.TotalFns),
		RatioSeverity(total.UnsafeFns, total.TotalFns),
	)
	_, err := fmt.Fprintf(w,
		"- Total lines: %d\n"+
			"- Total unsafe functions: %s\n"+
			"- Total statements in unsafe blocks: %d\n"+
			"- Total static mut items: %d\n"+
			"- Total unwrap calls: %d\n\n",
		total.TotalLines, ratio, total.UnsafeStatements,
		total.StaticMutItems, total.Unwraps)
	if err != nil {
		return err
	}

	if err := m.writeTable(w, report); err != nil {
		return err
	}

	if diff != nil {
		if _, err := fmt.Fprint(w, "\n\n"); err != nil {
			return err
		}
		if err := m.renderDiff(w, diff); err != nil {
			return err
		}
	}

	_, err = fmt.Fprint(w, "\nGenerated by unsafemeter\n")
	return err
}

func (m Markdown) writeTable(w io.Writer, report *stats.Report) error {
	table := NewTable("", "(unsafe/total) fns", "statements", "static mut", "unwrap")
	for _, name := range report.SortedFiles() {
		cs := report.Files[name]

		nameSev := Severity("")
		if cs.IsPerfect() {
			nameSev = SeveritySafe
		}

		table.AddRow(
			Cell{Text: name, Sev: nameSev},
			Cell{
				Text: fmt.Sprintf("%d/%d", cs.UnsafeFns, cs.TotalFns),
				Sev:  RatioSeverity(cs.UnsafeFns, cs.TotalFns),
			},
			PlainCell(fmt.Sprintf("%d/%d", cs.UnsafeStatements, cs.TotalStatements)),
			Cell{Text: fmt.Sprintf("%d", cs.StaticMutItems), Sev: CountSeverity(cs.StaticMutItems)},
			Cell{Text: fmt.Sprintf("%d", cs.Unwraps), Sev: CountSeverity(cs.Unwraps)},
		)
	}
	return table.WriteMarkdown(w, m.Style)
}

// renderDiff writes the baseline comparison: totals first, then changed,
// added, and removed files in that order.
func (m Markdown) renderDiff(w io.Writer, diff *stats.DiffReport) error {
	st := m.Style

	if !diff.HasChanges() {
		if _, err := fmt.Fprintln(w, "No changes"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w,
		"Summary\n=======\n"+
			"unsafe fn  : %s\n"+
			"total fn   : %s\n"+
			"unsafe stmt: %s\n"+
			"static mut : %s\n"+
			"unwraps    : %s\n\n",
		st.FormatDelta(diff.BeforeTotal.UnsafeFns, diff.AfterTotal.UnsafeFns, DecreaseIsGood),
		st.FormatDelta(diff.BeforeTotal.TotalFns, diff.AfterTotal.TotalFns, DecreaseIsNeutral),
		st.FormatDelta(diff.BeforeTotal.UnsafeStatements, diff.AfterTotal.UnsafeStatements, DecreaseIsGood),
		st.FormatDelta(diff.BeforeTotal.StaticMutItems, diff.AfterTotal.StaticMutItems, DecreaseIsGood),
		st.FormatDelta(diff.BeforeTotal.Unwraps, diff.AfterTotal.Unwraps, DecreaseIsGood),
	)
	if err != nil {
		return err
	}

	files := diff.SortedFiles()

	for _, name := range files {
		fd := diff.Changes[name]
		if fd.Kind != stats.DiffChanged {
			continue
		}
		_, err := fmt.Fprintf(w,
			"%s\nunsafe fn   : %s\nunsafe stmt : %s\nstatic mut  : %s\nunwraps     : %s\n\n",
			name,
			st.FormatDelta(fd.Before.UnsafeFns, fd.After.UnsafeFns, DecreaseIsGood),
			st.FormatDelta(fd.Before.UnsafeStatements, fd.After.UnsafeStatements, DecreaseIsGood),
			st.FormatDelta(fd.Before.StaticMutItems, fd.After.StaticMutItems, DecreaseIsGood),
			st.FormatDelta(fd.Before.Unwraps, fd.After.Unwraps, DecreaseIsGood),
		)
		if err != nil {
			return err
		}
	}

	for _, name := range files {
		fd := diff.Changes[name]
		if fd.Kind != stats.DiffAdded {
			continue
		}
		_, err := fmt.Fprintf(w,
			"%s [NEW FILE]\n  Unsafe funcs: %d\n   Total funcs: %d\n  Unsafe stmts: %d\n       unwraps: %d\n\n",
			name, fd.After.UnsafeFns, fd.After.TotalFns, fd.After.UnsafeStatements, fd.After.Unwraps,
		)
		if err != nil {
			return err
		}
	}

	for _, name := range files {
		fd := diff.Changes[name]
		if fd.Kind != stats.DiffRemoved {
			continue
		}
		_, err := fmt.Fprintf(w,
			"%s [REMOVED]\n  Had %d unsafe / %d total fns, %d unsafe statements\n\n",
			name, fd.Before.UnsafeFns, fd.Before.TotalFns, fd.Before.UnsafeStatements,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
