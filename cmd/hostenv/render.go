package main

import (
	"fmt"
	"strings"

	"charm.land/glamour/v2"
	"charm.land/lipgloss/v2"
	"github.com/streamingfast/hostenv"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1890FF"))

	tagStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4299E1"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4A5568"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#718096")).
			Italic(true)

	yesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00A86B")).
			Background(lipgloss.Color("#E6F7EF")).
			Padding(0, 1)

	noStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#D32F2F")).
		Background(lipgloss.Color("#FFF1F0")).
		Padding(0, 1)

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	uaBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#CBD5E0")).
			Padding(0, 1)
)

func badge(v bool) string {
	if v {
		return yesStyle.Render("yes")
	}
	return noStyle.Render("no")
}

// RenderReport creates the styled text form of a classification report
func RenderReport(report *hostenv.Report) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Host environment"))
	sb.WriteString("\n\n")

	sb.WriteString(labelStyle.Render("Environment:  "))
	sb.WriteString(tagStyle.Render(report.Full.Tag.String()))
	sb.WriteString(hintStyle.Render(fmt.Sprintf("  (rule %s)", report.Full.Rule)))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Action:       "))
	sb.WriteString(report.Action.Summary)
	sb.WriteString("\n")
	writeEvidence(&sb, report.FullResult.Evidence)

	sb.WriteString(labelStyle.Render("Browser:      "))
	sb.WriteString(tagStyle.Render(report.Broad.Category.String()))
	sb.WriteString(hintStyle.Render(fmt.Sprintf("  (rule %s)", report.Broad.Rule)))
	sb.WriteString("\n")
	writeEvidence(&sb, report.BroadResult.Evidence)

	sb.WriteString(labelStyle.Render("WeChat:       "))
	sb.WriteString(tagStyle.Render(report.Ecosystem.Overview.String()))
	sb.WriteString("\n")
	for i, check := range report.Ecosystem.Flags.Checks() {
		sb.WriteString(fmt.Sprintf("  %d. %-32s %s\n", i+1, check.Title, badge(check.Value)))
	}
	sb.WriteString("\n")

	sb.WriteString(labelStyle.Render("User agent:"))
	sb.WriteString("\n")
	sb.WriteString(uaBoxStyle.Render(report.UserAgent))
	sb.WriteString("\n")
	sb.WriteString(hintStyle.Render("Detection relies on user agent and WeChat API markers, best effort only."))
	sb.WriteString("\n")

	return sb.String()
}

func writeEvidence(sb *strings.Builder, lines []string) {
	for _, line := range lines {
		sb.WriteString(hintStyle.Render("    " + line))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// RenderTags lists every environment tag with its dispatch action
func RenderTags() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Environment tags"))
	sb.WriteString("\n\n")
	for _, tag := range hostenv.AllTags() {
		sb.WriteString(fmt.Sprintf("  %s\n", tagStyle.Render(tag.String())))
		sb.WriteString(fmt.Sprintf("      %s\n", hostenv.ActionFor(tag).Summary))
	}
	return sb.String()
}

// RenderFixtureResults summarizes a fixture run; passing cases are listed
// only when verbose
func RenderFixtureResults(results []hostenv.FixtureResult, verbose bool) string {
	var sb strings.Builder

	passed := 0
	for _, result := range results {
		if result.Passed() {
			passed++
			if verbose {
				sb.WriteString(fmt.Sprintf("  %s %s\n", yesStyle.Render("ok"), result.Name))
			}
			continue
		}

		sb.WriteString(fmt.Sprintf("  %s %s\n", failStyle.Render("FAIL"), result.Name))
		for _, mismatch := range result.Mismatches {
			sb.WriteString(hintStyle.Render("      " + mismatch))
			sb.WriteString("\n")
		}
	}

	sb.WriteString(fmt.Sprintf("\n%d/%d cases passed\n", passed, len(results)))
	return sb.String()
}

// renderMarkdown renders md for the terminal with glamour
func renderMarkdown(md string, style string, wordWrap int) (string, error) {
	options := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if wordWrap > 0 {
		options = append(options, glamour.WithWordWrap(wordWrap))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
