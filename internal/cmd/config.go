package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pradeep-10x/synapse-cli/pkg/config"
	"github.com/Pradeep-10x/synapse-cli/pkg/formatter"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := config.GetString(args[0])
		if value == "" {
			fmt.Printf("%s is not set\n", args[0])
			return nil
		}
		fmt.Printf("%s = %s\n", args[0], value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetString(args[0], args[1]); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		formatter.PrintSuccess("✓ %s = %s", args[0], args[1])
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the configuration directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(config.GetConfigDir())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}
