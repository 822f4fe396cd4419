package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/clipstash/clipstash/internal/config"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage Clipstash configuration",
		Long: `Manage Clipstash configuration:
  • Initialize configuration for first-time setup
  • Show current configuration
  • Edit configuration in your preferred editor
  • Print the active configuration path
  • Validate configuration syntax`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigEditCmd())
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigValidateCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration for first-time setup",
		Long: `Initialize Clipstash configuration with sensible defaults.
This creates the configuration directory structure and generates a
default configuration file suitable for first-time users.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := activeConfigPath()
			if err != nil {
				return err
			}

			// Check if config already exists
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("configuration already exists at %s\nUse --force to overwrite or 'clipstash config show' to view the current config", configPath)
			}

			newCfg := config.DefaultConfig()

			zapLogger.Info("Initializing configuration",
				zap.String("config_path", configPath),
				zap.String("history_file", newCfg.History.FilePath))

			if err := newCfg.Save(configPath); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("✓ Configuration initialized at: %s\n", configPath)
			fmt.Printf("✓ Data directory: %s\n", newCfg.SystemPaths.DataDir)
			fmt.Printf("✓ History file: %s\n", newCfg.History.FilePath)
			fmt.Println("\nTo start capturing, run: clipstash watch")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "force overwrite existing configuration")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var outFormat string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch outFormat {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			case "yaml":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				fmt.Println(string(data))
				return nil
			default:
				return fmt.Errorf("unsupported format: %s", outFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&outFormat, "format", "f", "yaml", "output format (yaml or json)")
	return cmd
}

func newConfigEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in your preferred editor",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := activeConfigPath()
			if err != nil {
				return err
			}

			// If config doesn't exist, create with defaults
			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				newCfg := config.DefaultConfig()
				if err := newCfg.Save(configPath); err != nil {
					return fmt.Errorf("failed to create default config: %w", err)
				}
				fmt.Println("Created new configuration file with defaults")
			}

			editor := os.Getenv("EDITOR")
			if editor == "" {
				editor = "vim" // Fallback editor
			}

			editorCmd := exec.Command(editor, configPath)
			editorCmd.Stdin = os.Stdin
			editorCmd.Stdout = os.Stdout
			editorCmd.Stderr = os.Stderr

			if err := editorCmd.Run(); err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}

			if err := validateConfig(configPath); err != nil {
				fmt.Printf("Warning: configuration validation failed: %v\n", err)
				fmt.Println("The file has been saved, but may contain errors.")
				return nil
			}

			fmt.Println("Configuration updated and validated successfully")
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the active configuration path",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := activeConfigPath()
			if err != nil {
				return err
			}
			fmt.Println(configPath)
			return nil
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration syntax",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := activeConfigPath()
			if err != nil {
				return err
			}

			if err := validateConfig(configPath); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}

			fmt.Println("Configuration is valid")
			return nil
		},
	}
}

// activeConfigPath returns the config file in use: the --config flag
// when set, the platform default otherwise.
func activeConfigPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	paths, err := config.GetPaths()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	return paths.ConfigFile, nil
}

func validateConfig(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var parsed config.Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("invalid YAML syntax: %w", err)
	}

	return nil
}
