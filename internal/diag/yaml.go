package diag

import (
	"io"

	"gopkg.in/yaml.v3"
)

type yamlReport struct {
	Diagnostics []yamlDiagnostic `yaml:"diagnostics"`
}

type yamlDiagnostic struct {
	File      string   `yaml:"file,omitempty"`
	Line      int      `yaml:"line,omitempty"`
	Column    int      `yaml:"column,omitempty"`
	EndLine   int      `yaml:"end_line,omitempty"`
	EndColumn int      `yaml:"end_column,omitempty"`
	Stage     Stage    `yaml:"stage"`
	Severity  Severity `yaml:"severity"`
	Kind      Kind     `yaml:"kind"`
	Code      Code     `yaml:"code,omitempty"`
	Name      string   `yaml:"name,omitempty"`
	Message   string   `yaml:"message"`
	Notes     []string `yaml:"notes,omitempty"`
	Help      string   `yaml:"help,omitempty"`
}

// WriteYAML writes diagnostics as a YAML document for tools that consume
// compiler output.
func WriteYAML(w io.Writer, diags []Diagnostic) error {
	report := yamlReport{Diagnostics: make([]yamlDiagnostic, 0, len(diags))}
	for _, d := range diags {
		report.Diagnostics = append(report.Diagnostics, yamlDiagnostic{
			File:      d.Span.Filename,
			Line:      d.Span.Start.Line,
			Column:    d.Span.Start.Column,
			EndLine:   d.Span.End.Line,
			EndColumn: d.Span.End.Column,
			Stage:     d.Stage,
			Severity:  d.Severity,
			Kind:      d.Kind,
			Code:      d.Code,
			Name:      d.Name,
			Message:   d.Message,
			Notes:     d.Notes,
			Help:      d.Help,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}
