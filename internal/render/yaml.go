package render

import (
	"io"

	"gopkg.in/yaml.v3"

	"unsafemeter/internal/stats"
)

// YAML renders the report as a machine-readable document. The diff, if
// present, is emitted as a second YAML document in the same stream.
type YAML struct{}

type yamlReport struct {
	Total stats.CodeStats            `yaml:"total"`
	Files map[string]stats.CodeStats `yaml:"files"`
}

type yamlDiff struct {
	BeforeTotal stats.CodeStats           `yaml:"before_total"`
	AfterTotal  stats.CodeStats           `yaml:"after_total"`
	Changes     map[string]stats.FileDiff `yaml:"changes"`
}

// Render encodes the report, then the diff when one is given.
func (YAML) Render(w io.Writer, report *stats.Report, diff *stats.DiffReport) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	doc := yamlReport{Total: report.Total, Files: report.Files}
	if err := enc.Encode(doc); err != nil {
		return err
	}

	if diff != nil {
		dd := yamlDiff{
			BeforeTotal: diff.BeforeTotal,
			AfterTotal:  diff.AfterTotal,
			Changes:     diff.Changes,
		}
		if err := enc.Encode(dd); err != nil {
			return err
		}
	}
	return nil
}
