package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/streamingfast/hostenv"
	"go.uber.org/zap"
)

// classifyE classifies the signals given on the command line
func classifyE(cmd *cobra.Command, args []string) error {
	config, err := hostenv.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	runtime, err := runtimeFromFlags(cmd, args)
	if err != nil {
		return err
	}

	classifier, err := newClassifier(cmd, config)
	if err != nil {
		return err
	}

	report := classifier.ClassifyRuntime(runtime)

	raw, err := cmd.Flags().GetBool("raw")
	if err != nil {
		return fmt.Errorf("failed to get raw flag: %w", err)
	}
	if raw {
		cmd.Println(report.UserAgent)
		return nil
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	if output == "" {
		output = config.Output
	}

	zlog.Debug("rendering report", zap.String("output", output), zap.Stringer("tag", report.Full.Tag))

	switch output {
	case hostenv.OutputJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize report: %w", err)
		}
		cmd.Println(string(data))
	case hostenv.OutputMarkdown:
		rendered, err := renderMarkdown(report.Markdown(), "dark", config.WordWrap)
		if err != nil {
			return err
		}
		cmd.Print(rendered)
	case hostenv.OutputText:
		cmd.Print(RenderReport(report))
	default:
		return fmt.Errorf("unknown output format %q (expected text, json or markdown)", output)
	}

	return nil
}

// runtimeFromFlags builds the static runtime described by the flags
func runtimeFromFlags(cmd *cobra.Command, args []string) (hostenv.StaticRuntime, error) {
	flags := cmd.Flags()

	ua, err := flags.GetString("ua")
	if err != nil {
		return hostenv.StaticRuntime{}, fmt.Errorf("failed to get ua flag: %w", err)
	}
	if len(args) > 1 {
		return hostenv.StaticRuntime{}, fmt.Errorf("expected at most one user agent argument, got %d (quote the user agent)", len(args))
	}
	if len(args) == 1 {
		if ua != "" {
			return hostenv.StaticRuntime{}, fmt.Errorf("user agent given both as argument and --ua")
		}
		ua = args[0]
	}

	bridge, err := flags.GetBool("miniprogram-bridge")
	if err != nil {
		return hostenv.StaticRuntime{}, fmt.Errorf("failed to get miniprogram-bridge flag: %w", err)
	}
	gameContext, err := flags.GetBool("game-context")
	if err != nil {
		return hostenv.StaticRuntime{}, fmt.Errorf("failed to get game-context flag: %w", err)
	}
	wxjsEnv, err := flags.GetString("wxjs-environment")
	if err != nil {
		return hostenv.StaticRuntime{}, fmt.Errorf("failed to get wxjs-environment flag: %w", err)
	}
	noRuntime, err := flags.GetBool("no-runtime")
	if err != nil {
		return hostenv.StaticRuntime{}, fmt.Errorf("failed to get no-runtime flag: %w", err)
	}

	return hostenv.StaticRuntime{
		NoRuntime:   noRuntime,
		UA:          ua,
		Bridge:      bridge,
		GameContext: gameContext,
		WxjsEnv:     wxjsEnv,
	}, nil
}
