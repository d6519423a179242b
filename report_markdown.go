package hostenv

import (
	"fmt"
	"strings"
)

// Markdown renders the report as a markdown document.
func (r *Report) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# Host environment\n\n")
	fmt.Fprintf(&sb, "**Environment:** `%s` (rule `%s`)\n\n", r.Full.Tag, r.Full.Rule)
	fmt.Fprintf(&sb, "**Action:** %s\n\n", r.Action.Summary)
	writeEvidence(&sb, r.FullResult.Evidence)

	fmt.Fprintf(&sb, "## Browser: `%s`\n\n", r.Broad.Category)
	writeEvidence(&sb, r.BroadResult.Evidence)

	fmt.Fprintf(&sb, "## WeChat ecosystem: `%s`\n\n", r.Ecosystem.Overview)
	sb.WriteString("| Check | Result |\n|---|---|\n")
	for _, check := range r.Ecosystem.Flags.Checks() {
		fmt.Fprintf(&sb, "| %s | %s |\n", check.Title, yesNo(check.Value))
	}
	sb.WriteString("\n")
	writeEvidence(&sb, r.OverviewResult.Evidence)

	sb.WriteString("## User agent\n\n```text\n")
	sb.WriteString(r.UserAgent)
	sb.WriteString("\n```\n")

	return sb.String()
}

func writeEvidence(sb *strings.Builder, lines []string) {
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
