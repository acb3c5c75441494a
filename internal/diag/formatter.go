package diag

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))
	noteStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	gutterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	primaryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	helpStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
)

// Formatter formats diagnostics in a Rust-style format with source code snippets.
type Formatter struct {
	out         io.Writer
	color       bool
	sourceCache map[string]string // Cache of source files by filename
}

// NewFormatter creates a diagnostic formatter writing to out. Color enables
// terminal styling of headers and underlines.
func NewFormatter(out io.Writer, color bool) *Formatter {
	if out == nil {
		out = os.Stderr
	}
	return &Formatter{
		out:         out,
		color:       color,
		sourceCache: make(map[string]string),
	}
}

// AddSource registers in-memory source text for filename so snippets can be
// rendered without touching the filesystem.
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = src
}

// LoadSource loads source code for a file (cached).
func (f *Formatter) LoadSource(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("no filename")
	}
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// FormatAll prints every diagnostic followed by a blank line.
func (f *Formatter) FormatAll(diags []Diagnostic) {
	for _, d := range diags {
		f.Format(d)
		fmt.Fprintln(f.out)
	}
}

// Format formats and prints a diagnostic in Rust-style format.
func (f *Formatter) Format(d Diagnostic) {
	spans := f.collectSpans(d)
	if len(spans) == 0 {
		f.formatSimple(d)
		return
	}

	src, err := f.LoadSource(spans[0].Span.Filename)
	if err != nil {
		f.formatSimple(d)
		return
	}

	f.printHeader(d)
	f.printFileSpans(spans[0].Span.String(), src, spans)
	f.printHelp(d)
}

// collectSpans collects all spans from the diagnostic, prioritizing LabeledSpans.
// Spans from other files than the first are dropped; gecko diagnostics never
// cross files.
func (f *Formatter) collectSpans(d Diagnostic) []LabeledSpan {
	var spans []LabeledSpan
	if len(d.LabeledSpans) > 0 {
		spans = d.LabeledSpans
	} else if d.Span.IsValid() {
		spans = []LabeledSpan{{Span: d.Span, Style: "primary"}}
	}
	if len(spans) == 0 {
		return nil
	}

	filename := spans[0].Span.Filename
	out := make([]LabeledSpan, 0, len(spans))
	for _, s := range spans {
		if s.Span.IsValid() && s.Span.Filename == filename {
			out = append(out, s)
		}
	}
	return out
}

func (f *Formatter) style(s lipgloss.Style, text string) string {
	if !f.color {
		return text
	}
	return s.Render(text)
}

// printHeader prints the error header (error[CODE]: Kind: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = string(SeverityError)
	}

	label := severity
	if d.Code != "" {
		label = fmt.Sprintf("%s[%s]", severity, d.Code)
	}

	var style lipgloss.Style
	switch Severity(severity) {
	case SeverityWarning:
		style = warningStyle
	case SeverityNote:
		style = noteStyle
	default:
		style = errorStyle
	}

	msg := d.Message
	if d.Kind != "" {
		msg = fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	fmt.Fprintf(f.out, "%s: %s\n", f.style(style, label), msg)
}

// printFileSpans prints source code with underlines for spans in a file.
func (f *Formatter) printFileSpans(location string, src string, spans []LabeledSpan) {
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Span.Start.Before(spans[j].Span.Start)
	})

	lines := strings.Split(src, "\n")
	maxLine := len(lines)

	spansByLine := make(map[int][]LabeledSpan)
	for _, span := range spans {
		line := span.Span.Start.Line
		if line > 0 && line <= maxLine {
			spansByLine[line] = append(spansByLine[line], span)
		}
	}
	if len(spansByLine) == 0 {
		return
	}

	lineNumbers := make([]int, 0, len(spansByLine))
	for line := range spansByLine {
		lineNumbers = append(lineNumbers, line)
	}
	sort.Ints(lineNumbers)

	// One line of context either side.
	contextStart := max(1, lineNumbers[0]-1)
	contextEnd := min(maxLine, lineNumbers[len(lineNumbers)-1]+1)
	lineNumWidth := len(fmt.Sprintf("%d", contextEnd))
	gutter := strings.Repeat(" ", lineNumWidth)

	fmt.Fprintf(f.out, "%s %s\n", f.style(gutterStyle, gutter+"-->"), location)
	fmt.Fprintf(f.out, "%s\n", f.style(gutterStyle, gutter+" |"))

	for lineNum := contextStart; lineNum <= contextEnd; lineNum++ {
		lineContent := strings.TrimSuffix(lines[lineNum-1], "\r")
		prefix := fmt.Sprintf("%*d |", lineNumWidth, lineNum)
		fmt.Fprintf(f.out, "%s %s\n", f.style(gutterStyle, prefix), lineContent)

		if lineSpans := spansByLine[lineNum]; len(lineSpans) > 0 {
			f.printUnderlines(gutter, lineContent, lineSpans)
		}
	}

	fmt.Fprintf(f.out, "%s\n", f.style(gutterStyle, gutter+" |"))
}

// printUnderlines prints underlines (^ for primary, ~ for secondary) for spans
// starting on a line.
func (f *Formatter) printUnderlines(gutter string, lineContent string, spans []LabeledSpan) {
	runes := []rune(lineContent)
	underline := make([]rune, len(runes)+1)
	for i := range underline {
		underline[i] = ' '
	}

	mark := func(span LabeledSpan, ch rune, overwrite bool) {
		start := max(0, span.Span.Start.Column-1)
		end := len(runes)
		if span.Span.End.Line == span.Span.Start.Line {
			end = span.Span.End.Column - 1
		}
		end = max(end, start+1)
		for i := start; i < end && i < len(underline); i++ {
			if overwrite || underline[i] == ' ' {
				underline[i] = ch
			}
		}
	}

	for _, span := range spans {
		if span.Style != "secondary" {
			mark(span, '^', true)
		}
	}
	for _, span := range spans {
		if span.Style == "secondary" {
			mark(span, '~', false)
		}
	}

	var labels []string
	for _, span := range spans {
		if span.Label != "" {
			labels = append(labels, span.Label)
		}
	}

	text := strings.TrimRight(string(underline), " ")
	if len(labels) > 0 {
		text += " " + strings.Join(labels, "; ")
	}
	fmt.Fprintf(f.out, "%s %s\n", f.style(gutterStyle, gutter+" |"), f.style(primaryStyle, text))
}

// printHelp prints notes and help text.
func (f *Formatter) printHelp(d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.out, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.out, "%s %s\n", f.style(helpStyle, "help:"), d.Help)
	}
}

// formatSimple formats a diagnostic without source code (fallback).
func (f *Formatter) formatSimple(d Diagnostic) {
	f.printHeader(d)
	if d.Span.IsValid() {
		fmt.Fprintf(f.out, "  --> %s\n", d.Span.String())
	}
	f.printHelp(d)
}
