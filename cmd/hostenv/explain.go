package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/streamingfast/hostenv"
)

// explainE prints the evidence template of a tag, category or overview
func explainE(cmd *cobra.Command, args []string) error {
	style, err := cmd.Flags().GetString("style")
	if err != nil {
		return fmt.Errorf("failed to get style flag: %w", err)
	}

	config, err := hostenv.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	tag, kind := lookupTag(args[0])

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s `%s`\n\n", kind, args[0])
	sb.WriteString(hostenv.Explain(tag))
	sb.WriteString("\n")
	if envTag, ok := tag.(hostenv.EnvironmentTag); ok {
		fmt.Fprintf(&sb, "\n**Action:** %s\n", hostenv.ActionFor(envTag).Summary)
	}

	rendered, err := renderMarkdown(sb.String(), style, config.WordWrap)
	if err != nil {
		return err
	}
	cmd.Print(rendered)
	return nil
}

// lookupTag resolves name against every tag family. Unknown names are
// returned as-is so they fall through to the generic evidence.
func lookupTag(name string) (any, string) {
	if tag, err := hostenv.ParseEnvironmentTag(name); err == nil {
		return tag, "Environment"
	}
	if category, err := hostenv.ParseBroadCategory(name); err == nil {
		return category, "Browser"
	}
	if overview, err := hostenv.ParseOverview(name); err == nil {
		return overview, "WeChat ecosystem"
	}
	return name, "Unknown tag"
}

// tagsE lists environment tags and their dispatch actions
func tagsE(cmd *cobra.Command, args []string) error {
	cmd.Print(RenderTags())
	return nil
}
