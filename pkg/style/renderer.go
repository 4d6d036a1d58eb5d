package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/anvil/pkg/errors"
)

// Summary describes the outcome of a generate run for display.
type Summary struct {
	Title      string
	ProjectDir string
	Dirs       []string
	Files      []string
	DryRun     bool
}

// TemplateInfo describes a template repository for display. Description
// and Epilog arrive already rendered for the target format.
type TemplateInfo struct {
	Title       string
	Description string
	Arrangement string
	TemplateDir string
	Defaults    []Default
	Epilog      string
}

// Default is one context variable default, in display order.
type Default struct {
	Name  string
	Value any
}

// Renderer defines the interface for rendering command output
type Renderer interface {
	RenderSummary(s Summary) string
	RenderTemplateInfo(info TemplateInfo) string
	RenderError(err error) string
}

// NewRenderer returns the renderer matching the resolved output format.
func NewRenderer(format Format) Renderer {
	if format == FormatTerminal {
		return &TerminalRenderer{}
	}
	return &PlainRenderer{}
}

// errorDetailLines flattens structured error details into "key: value"
// lines in key order. Plain errors yield none.
func errorDetailLines(err error) []string {
	details := errors.GetErrorDetails(err)
	if len(details) == 0 {
		return nil
	}

	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, details[k]))
	}
	return lines
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct{}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// RenderSummary renders the outcome of a generate run
func (r *TerminalRenderer) RenderSummary(s Summary) string {
	var result strings.Builder

	if s.Title != "" {
		result.WriteString(SubtitleStyle.Render(s.Title) + "\n\n")
	}

	indicator := SuccessIndicator
	verb := "Created"
	if s.DryRun {
		indicator = PendingIndicator
		verb = "Would create"
	}

	result.WriteString(fmt.Sprintf("%s %s %s\n", indicator, verb, PathStyle.Render(s.ProjectDir)))
	for _, file := range s.Files {
		result.WriteString(ListItemStyle.Render(fmt.Sprintf("%s %s", indicator, file)) + "\n")
	}

	counts := fmt.Sprintf("%d directories, %d files", len(s.Dirs), len(s.Files))
	result.WriteString(MutedStyle.Render(counts))

	return strings.TrimRight(result.String(), "\n")
}

// RenderTemplateInfo renders template metadata for the show command
func (r *TerminalRenderer) RenderTemplateInfo(info TemplateInfo) string {
	var result strings.Builder

	result.WriteString(TitleStyle.Render(info.Title) + "\n")
	if info.Description != "" {
		result.WriteString(info.Description + "\n")
	}

	result.WriteString("\n")
	result.WriteString(NormalStyle.Render("Arrangement: "+info.Arrangement) + "\n")
	if info.TemplateDir != "" {
		result.WriteString(NormalStyle.Render("Template directory:") + " " + CodeStyle.Render(info.TemplateDir) + "\n")
	}

	if len(info.Defaults) > 0 {
		result.WriteString(NormalStyle.Render("Context defaults:") + "\n")
		for _, d := range info.Defaults {
			result.WriteString(ListItemStyle.Render(fmt.Sprintf("%s: %v", d.Name, d.Value)) + "\n")
		}
	}

	if info.Epilog != "" {
		result.WriteString("\n" + info.Epilog + "\n")
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders an error message with any structured details
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s", ErrorIndicator, ErrorStyle.Render("Error: "+err.Error())))
	for _, line := range errorDetailLines(err) {
		result.WriteString("\n" + Indent(MutedStyle.Render(line), 1))
	}
	return result.String()
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderSummary renders a plain summary of a generate run
func (r *PlainRenderer) RenderSummary(s Summary) string {
	var result strings.Builder

	if s.Title != "" {
		result.WriteString(s.Title + "\n\n")
	}

	verb := "Created"
	if s.DryRun {
		verb = "Would create"
	}

	result.WriteString(fmt.Sprintf("%s %s\n", verb, s.ProjectDir))
	for _, file := range s.Files {
		result.WriteString(fmt.Sprintf("  %s\n", file))
	}
	result.WriteString(fmt.Sprintf("%d directories, %d files", len(s.Dirs), len(s.Files)))

	return strings.TrimRight(result.String(), "\n")
}

// RenderTemplateInfo renders plain template metadata
func (r *PlainRenderer) RenderTemplateInfo(info TemplateInfo) string {
	var result strings.Builder

	result.WriteString(info.Title + "\n")
	if info.Description != "" {
		result.WriteString(info.Description + "\n")
	}

	result.WriteString("\n")
	result.WriteString(fmt.Sprintf("Arrangement: %s\n", info.Arrangement))
	if info.TemplateDir != "" {
		result.WriteString(fmt.Sprintf("Template directory: %s\n", info.TemplateDir))
	}

	if len(info.Defaults) > 0 {
		result.WriteString("Context defaults:\n")
		for _, d := range info.Defaults {
			result.WriteString(fmt.Sprintf("  %s: %v\n", d.Name, d.Value))
		}
	}

	if info.Epilog != "" {
		result.WriteString("\n" + info.Epilog + "\n")
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders a plain error message with any structured details
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Error: %s", err.Error()))
	for _, line := range errorDetailLines(err) {
		result.WriteString("\n  " + line)
	}
	return result.String()
}
