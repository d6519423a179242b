package main

import (
	"fmt"

	"github.com/spf13/cobra"
	. "github.com/streamingfast/cli"
	"github.com/streamingfast/hostenv"
)

var ConfigCommand = Command(configE,
	"config [key] [value]",
	"View or edit configuration settings",
	Description(`
		Without arguments, displays the current configuration.
		With a key, displays that setting's value.
		With key and value, sets the configuration option.
	`),
)

// configE views or edits configuration
func configE(cmd *cobra.Command, args []string) error {
	if len(args) > 2 {
		return fmt.Errorf("expected at most a key and a value, got %d arguments", len(args))
	}

	config, err := hostenv.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(args) == 0 {
		cmd.Printf("Global configuration (%s):\n", config.Path())
		for _, key := range hostenv.ConfigKeys {
			value, _ := config.Get(key)
			cmd.Printf("  %s: %s\n", key, value)
		}
		return nil
	}

	key := args[0]

	if len(args) == 1 {
		value, err := config.Get(key)
		if err != nil {
			return err
		}
		cmd.Println(value)
		return nil
	}

	value := args[1]
	if err := config.Set(key, value); err != nil {
		return err
	}

	if err := hostenv.SaveConfig(config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}
