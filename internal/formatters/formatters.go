package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"atsscore/internal/ats"
	"atsscore/internal/types"

	"github.com/charmbracelet/lipgloss"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a registry with the default formatters. When
// color is set, text output styles ratings and headings with lipgloss.
func NewFormatterRegistry(color bool) *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}
	st := newStyles(color)

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ScoredResume", &ScoreTextFormatter{styles: st})
	registry.RegisterFormatter("markdown", "ScoredResume", &ScoreMarkdownFormatter{})
	registry.RegisterFormatter("text", "ScoreBatch", &BatchTextFormatter{styles: st})
	registry.RegisterFormatter("markdown", "ScoreBatch", &BatchMarkdownFormatter{})
	registry.RegisterFormatter("text", "ValidationReports", &ValidationTextFormatter{styles: st})
	registry.RegisterFormatter("markdown", "ValidationReports", &ValidationMarkdownFormatter{})
	registry.RegisterFormatter("text", "EnhanceOutput", &EnhanceTextFormatter{styles: st})
	registry.RegisterFormatter("markdown", "EnhanceOutput", &EnhanceMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ScoredResume:
		return "ScoredResume"
	case types.ScoreBatch:
		return "ScoreBatch"
	case []types.ValidationReport:
		return "ValidationReports"
	case types.EnhanceOutput:
		return "EnhanceOutput"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData) + "\n", nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// styles renders headings and ratings; a zero value renders plain text
type styles struct {
	color   bool
	heading lipgloss.Style
	muted   lipgloss.Style
	issue   lipgloss.Style
}

// ratingColors maps the scorer's colour names to ANSI colours
var ratingColors = map[string]lipgloss.Color{
	"green":  lipgloss.Color("10"),
	"blue":   lipgloss.Color("12"),
	"yellow": lipgloss.Color("11"),
	"orange": lipgloss.Color("208"),
	"red":    lipgloss.Color("9"),
}

func newStyles(color bool) styles {
	if !color {
		return styles{}
	}
	return styles{
		color:   true,
		heading: lipgloss.NewStyle().Bold(true),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		issue:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (s styles) render(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return style.Render(text)
}

func (s styles) rating(report types.ScoreReport, text string) string {
	c, ok := ratingColors[report.RatingColor]
	if !s.color || !ok {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c).Render(text)
}

type category struct {
	label  string
	points int
	max    int
}

func categories(b types.Breakdown) []category {
	return []category{
		{"Contact info", b.ContactInfo, ats.MaxContactPoints},
		{"Summary", b.Summary, ats.MaxSummaryPoints},
		{"Experience", b.Experience, ats.MaxExperiencePoints},
		{"Education", b.Education, ats.MaxEducationPoints},
		{"Skills", b.Skills, ats.MaxSkillsPoints},
		{"Projects", b.Projects, ats.MaxProjectsPoints},
		{"Certifications", b.Certifications, ats.MaxCertificationsPoints},
	}
}

// messageSections lists the report's message lists, most severe first
func messageSections(r types.ScoreReport) []struct {
	title    string
	messages []string
} {
	return []struct {
		title    string
		messages []string
	}{
		{"Critical issues", r.CriticalIssues},
		{"Warnings", r.Warnings},
		{"Suggestions", r.Suggestions},
		{"Feedback", r.Feedback},
	}
}

// ScoreTextFormatter renders one scored resume for a terminal
type ScoreTextFormatter struct{ styles styles }

func (f *ScoreTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScoredResume)
	if !ok {
		return "", fmt.Errorf("expected ScoredResume, got %T", data)
	}
	var out strings.Builder
	writeScoreText(&out, f.styles, result)
	return out.String(), nil
}

func (f *ScoreTextFormatter) SupportedType() string {
	return "ScoredResume"
}

func writeScoreText(out *strings.Builder, st styles, r types.ScoredResume) {
	title := "ATS SCORE"
	if r.Source != "" {
		title += ": " + r.Source
	}
	out.WriteString(st.render(st.heading, "=== "+title+" ===") + "\n")
	fmt.Fprintf(out, "Score: %s\n", st.rating(r.ScoreReport, fmt.Sprintf("%d/100 (%s)", r.Score, r.Rating)))
	out.WriteString(r.RatingMessage + "\n\n")

	out.WriteString(st.render(st.heading, "Breakdown:") + "\n")
	for _, c := range categories(r.Breakdown) {
		fmt.Fprintf(out, "  %-15s %2d/%d\n", c.label, c.points, c.max)
	}

	for _, section := range messageSections(r.ScoreReport) {
		if len(section.messages) == 0 {
			continue
		}
		out.WriteString("\n" + st.render(st.heading, section.title+":") + "\n")
		for _, m := range section.messages {
			out.WriteString("  - " + m + "\n")
		}
	}

	if len(r.Diagnostics) > 0 {
		out.WriteString("\n" + st.render(st.heading, "Schema issues:") + "\n")
		for _, issue := range r.Diagnostics {
			out.WriteString("  - " + st.render(st.issue, issue.Field) + ": " + issue.Description + "\n")
		}
	}

	out.WriteString("\n" + st.render(st.muted, r.ContextualSummary) + "\n")
}

// ScoreMarkdownFormatter renders one scored resume as markdown
type ScoreMarkdownFormatter struct{}

func (f *ScoreMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScoredResume)
	if !ok {
		return "", fmt.Errorf("expected ScoredResume, got %T", data)
	}
	var out strings.Builder
	writeScoreMarkdown(&out, result, "#")
	return out.String(), nil
}

func (f *ScoreMarkdownFormatter) SupportedType() string {
	return "ScoredResume"
}

func writeScoreMarkdown(out *strings.Builder, r types.ScoredResume, level string) {
	title := "ATS Score"
	if r.Source != "" {
		title += ": " + r.Source
	}
	fmt.Fprintf(out, "%s %s\n\n", level, title)
	fmt.Fprintf(out, "**Score:** %d/100 (%s)\n\n", r.Score, r.Rating)
	fmt.Fprintf(out, "_%s_\n\n", r.RatingMessage)

	fmt.Fprintf(out, "%s# Breakdown\n\n", level)
	out.WriteString("| Category | Points | Max |\n|---|---:|---:|\n")
	for _, c := range categories(r.Breakdown) {
		fmt.Fprintf(out, "| %s | %d | %d |\n", c.label, c.points, c.max)
	}
	out.WriteString("\n")

	for _, section := range messageSections(r.ScoreReport) {
		if len(section.messages) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s# %s\n\n", level, section.title)
		for _, m := range section.messages {
			out.WriteString("- " + m + "\n")
		}
		out.WriteString("\n")
	}

	if len(r.Diagnostics) > 0 {
		fmt.Fprintf(out, "%s# Schema issues\n\n", level)
		for _, issue := range r.Diagnostics {
			fmt.Fprintf(out, "- `%s`: %s\n", issue.Field, issue.Description)
		}
		out.WriteString("\n")
	}

	fmt.Fprintf(out, "> %s\n", r.ContextualSummary)
}

// BatchTextFormatter renders several results followed by failures
type BatchTextFormatter struct{ styles styles }

func (f *BatchTextFormatter) Format(data any) (string, error) {
	batch, ok := data.(types.ScoreBatch)
	if !ok {
		return "", fmt.Errorf("expected ScoreBatch, got %T", data)
	}

	var out strings.Builder
	for i, r := range batch.Results {
		if i > 0 {
			out.WriteString("\n")
		}
		writeScoreText(&out, f.styles, r)
	}
	writeFailuresText(&out, f.styles, batch.Failed)
	fmt.Fprintf(&out, "\nScored %d resume(s), %d failed\n", len(batch.Results), len(batch.Failed))
	return out.String(), nil
}

func (f *BatchTextFormatter) SupportedType() string {
	return "ScoreBatch"
}

func writeFailuresText(out *strings.Builder, st styles, failed []types.BatchFailure) {
	if len(failed) == 0 {
		return
	}
	out.WriteString("\n" + st.render(st.heading, "=== FAILED ===") + "\n")
	for _, f := range failed {
		out.WriteString("  - " + st.render(st.issue, f.Source) + ": " + f.Error + "\n")
	}
}

// BatchMarkdownFormatter renders a summary table and one section per resume
type BatchMarkdownFormatter struct{}

func (f *BatchMarkdownFormatter) Format(data any) (string, error) {
	batch, ok := data.(types.ScoreBatch)
	if !ok {
		return "", fmt.Errorf("expected ScoreBatch, got %T", data)
	}

	var out strings.Builder
	out.WriteString("# ATS Scores\n\n")
	out.WriteString("| Resume | Score | Rating |\n|---|---:|---|\n")
	for _, r := range batch.Results {
		fmt.Fprintf(&out, "| %s | %d | %s |\n", r.Source, r.Score, r.Rating)
	}
	out.WriteString("\n")

	for _, r := range batch.Results {
		writeScoreMarkdown(&out, r, "##")
		out.WriteString("\n")
	}

	if len(batch.Failed) > 0 {
		out.WriteString("## Failed\n\n")
		for _, failure := range batch.Failed {
			fmt.Fprintf(&out, "- `%s`: %s\n", failure.Source, failure.Error)
		}
	}
	return out.String(), nil
}

func (f *BatchMarkdownFormatter) SupportedType() string {
	return "ScoreBatch"
}

// ValidationTextFormatter lists schema issues per document
type ValidationTextFormatter struct{ styles styles }

func (f *ValidationTextFormatter) Format(data any) (string, error) {
	reports, ok := data.([]types.ValidationReport)
	if !ok {
		return "", fmt.Errorf("expected []ValidationReport, got %T", data)
	}

	var out strings.Builder
	for _, r := range reports {
		if r.Valid {
			fmt.Fprintf(&out, "%s: OK\n", r.Source)
			continue
		}
		fmt.Fprintf(&out, "%s: %d issue(s)\n", f.styles.render(f.styles.issue, r.Source), len(r.Issues))
		for _, issue := range r.Issues {
			fmt.Fprintf(&out, "  - %s: %s\n", issue.Field, issue.Description)
		}
	}
	return out.String(), nil
}

func (f *ValidationTextFormatter) SupportedType() string {
	return "ValidationReports"
}

// ValidationMarkdownFormatter lists schema issues per document as markdown
type ValidationMarkdownFormatter struct{}

func (f *ValidationMarkdownFormatter) Format(data any) (string, error) {
	reports, ok := data.([]types.ValidationReport)
	if !ok {
		return "", fmt.Errorf("expected []ValidationReport, got %T", data)
	}

	var out strings.Builder
	out.WriteString("# Resume Validation\n\n")
	for _, r := range reports {
		fmt.Fprintf(&out, "## %s\n\n", r.Source)
		if r.Valid {
			out.WriteString("No issues found.\n\n")
			continue
		}
		for _, issue := range r.Issues {
			fmt.Fprintf(&out, "- `%s`: %s\n", issue.Field, issue.Description)
		}
		out.WriteString("\n")
	}
	return out.String(), nil
}

func (f *ValidationMarkdownFormatter) SupportedType() string {
	return "ValidationReports"
}

// EnhanceTextFormatter shows the rewrite and its alternatives
type EnhanceTextFormatter struct{ styles styles }

func (f *EnhanceTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.EnhanceOutput)
	if !ok {
		return "", fmt.Errorf("expected EnhanceOutput, got %T", data)
	}

	var out strings.Builder
	out.WriteString(f.styles.render(f.styles.heading, fmt.Sprintf("=== ENHANCED %s ===", strings.ToUpper(string(result.Section)))) + "\n\n")
	out.WriteString(result.Enhanced + "\n")
	if len(result.Alternatives) > 0 {
		out.WriteString("\n" + f.styles.render(f.styles.heading, "Alternatives:") + "\n")
		for _, alt := range result.Alternatives {
			out.WriteString("  - " + alt + "\n")
		}
	}
	out.WriteString("\n" + f.styles.render(f.styles.muted, "Original: "+result.Original) + "\n")
	return out.String(), nil
}

func (f *EnhanceTextFormatter) SupportedType() string {
	return "EnhanceOutput"
}

// EnhanceMarkdownFormatter shows the rewrite as markdown
type EnhanceMarkdownFormatter struct{}

func (f *EnhanceMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.EnhanceOutput)
	if !ok {
		return "", fmt.Errorf("expected EnhanceOutput, got %T", data)
	}

	var out strings.Builder
	fmt.Fprintf(&out, "# Enhanced %s\n\n", result.Section)
	out.WriteString(result.Enhanced + "\n\n")
	if len(result.Alternatives) > 0 {
		out.WriteString("## Alternatives\n\n")
		for _, alt := range result.Alternatives {
			out.WriteString("- " + alt + "\n")
		}
		out.WriteString("\n")
	}
	out.WriteString("## Original\n\n> " + result.Original + "\n")
	return out.String(), nil
}

func (f *EnhanceMarkdownFormatter) SupportedType() string {
	return "EnhanceOutput"
}
