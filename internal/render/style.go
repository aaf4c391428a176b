// Package render turns reports and diff reports into the user-facing
// output formats: markdown, CSV, HTML, YAML, and PR comments.
package render

import "fmt"

// Severity classifies a counter for styling: zero findings are safe,
// single digits are a warning, ten or more (or half the functions of a
// file) are danger.
type Severity string

const (
	SeveritySafe    Severity = "safe"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
	SeverityNeutral Severity = "neutral"
)

// CountSeverity classifies a bare counter.
func CountSeverity(count int) Severity {
	switch {
	case count == 0:
		return SeveritySafe
	case count < 10:
		return SeverityWarning
	default:
		return SeverityDanger
	}
}

// RatioSeverity classifies an unsafe/total ratio.
func RatioSeverity(unsafeCount, totalCount int) Severity {
	switch {
	case totalCount == 0:
		return SeverityNeutral
	case unsafeCount == 0:
		return SeveritySafe
	case float64(unsafeCount)/float64(totalCount) < 0.5:
		return SeverityWarning
	default:
		return SeverityDanger
	}
}

// Style is the rendering configuration threaded through every call that
// may style terminal output. There is deliberately no process-wide
// toggle: a renderer writing to a file gets a colorless Style value.
type Style struct {
	Color bool
}

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiGray   = "\x1b[90m"
)

var severityColors = map[Severity]string{
	SeveritySafe:    ansiGreen,
	SeverityWarning: ansiYellow,
	SeverityDanger:  ansiRed,
	SeverityNeutral: ansiGray,
}

// Paint wraps s in the ANSI color of the severity when color is enabled.
func (st Style) Paint(s string, sev Severity) string {
	if !st.Color {
		return s
	}
	color, ok := severityColors[sev]
	if !ok {
		return s
	}
	return color + s + ansiReset
}

// DeltaDirection says whether a decrease of a metric is an improvement
// or merely neutral bookkeeping.
type DeltaDirection int

const (
	DecreaseIsGood DeltaDirection = iota
	DecreaseIsNeutral
)

// FormatDelta renders a before -> after transition with a signed delta,
// colored by whether the metric moved in the right direction.
func (st Style) FormatDelta(before, after int, dir DeltaDirection) string {
	delta := after - before
	if delta == 0 {
		return st.Paint(fmt.Sprintf("%d (no change)", before), SeverityNeutral)
	}

	sign := ""
	if delta > 0 {
		sign = "+"
	}

	sev := SeverityNeutral
	if dir == DecreaseIsGood {
		if delta > 0 {
			sev = SeverityDanger
		} else {
			sev = SeveritySafe
		}
	}

	return st.Paint(fmt.Sprintf("%d -> %d (%s%d)", before, after, sign, delta), sev)
}

// FormatDeltaShort renders just the signed delta, "0" when unchanged.
func FormatDeltaShort(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}

// FormatChangeDelta renders a before/after delta as "+n", "-n", or
// "no change".
func FormatChangeDelta(before, after int) string {
	delta := after - before
	if delta == 0 {
		return "no change"
	}
	return FormatDeltaShort(delta)
}

// Percentage renders an unsafe/total ratio, guarding the zero divisor.
func Percentage(unsafeCount, totalCount int) string {
	pct := 0.0
	if totalCount > 0 {
		pct = float64(unsafeCount) / float64(totalCount) * 100.0
	}
	return fmt.Sprintf("%.2f%% (%d / %d)", pct, unsafeCount, totalCount)
}
