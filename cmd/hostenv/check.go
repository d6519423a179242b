package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/streamingfast/hostenv"
	"go.uber.org/zap"
)

// checkE runs a fixture suite and fails when any case mismatches
func checkE(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("expected at most one fixtures file, got %d", len(args))
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}

	config, err := hostenv.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	classifier, err := newClassifier(cmd, config)
	if err != nil {
		return err
	}

	var suite *hostenv.Suite
	if len(args) == 1 {
		suite, err = hostenv.LoadFixtures(args[0])
	} else {
		suite, err = hostenv.BuiltinSuite()
	}
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	results := suite.Run(classifier)
	cmd.Print(RenderFixtureResults(results, verbose))

	failed := 0
	for _, result := range results {
		if !result.Passed() {
			failed++
		}
	}

	zlog.Debug("fixture run completed",
		zap.Int("cases", len(results)),
		zap.Int("failed", failed),
		zap.String("broad_order", string(classifier.BroadOrder())))

	if failed > 0 {
		return fmt.Errorf("%d of %d fixture cases failed", failed, len(results))
	}
	return nil
}
