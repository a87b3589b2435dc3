package commands

import (
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/langkit/am"
	"github.com/teranos/langkit/display"
	"github.com/teranos/langkit/errors"
	"github.com/teranos/langkit/sym"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: sym.Short("am", "Manage langkit configuration"),
	Long: sym.AM + ` am - Manage langkit configuration

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (LANGKIT_* prefix)
3. Project config (nearest ./am.toml, searching up directories)
4. User config (~/.langkit/am.toml)
5. System config (/etc/langkit/am.toml)
6. Default values

Examples:
  langkit am show                    # Show current configuration
  langkit am show --format json      # Show configuration in JSON format
  langkit am get counter.order       # Get specific config value
  langkit am set model.smoothing backoff
  langkit am validate                # Validate current configuration`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., counter.order, model.smoothing)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value in the user config file",
	Long: `Write one setting to ~/.langkit/am.toml.

The previous file is kept as am.toml.back1 (older copies rotate to .back2
and .back3). Only known keys are accepted.`,
	Args: cobra.ExactArgs(2),
	RunE: runAmSet,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runAmValidate,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Long: `Show the configuration cascade and which source won for each setting.`,
	RunE: runAmWhere,
}

var configFormat string

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amSetCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amWhereCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	out := cmd.OutOrStdout()
	switch configFormat {
	case "json":
		return display.WriteJSON(out, cfg)

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(out, "# langkit configuration\n%s", data)

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(out, "# langkit configuration\n%s", data)

	default:
		return errors.NewInvalidRequestError("unsupported format: %s (supported: toml, json, yaml)", configFormat)
	}
	return nil
}

func runAmGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if _, err := am.Load(); err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if !am.GetViper().IsSet(key) {
		return errors.WithHint(
			errors.NewNotFoundError("configuration key %q not found", key),
			"list valid keys with: langkit am show",
		)
	}
	fmt.Fprintln(cmd.OutOrStdout(), am.Get(key))
	return nil
}

func runAmSet(cmd *cobra.Command, args []string) error {
	path, err := am.SetValue(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s (%s)\n", args[0], args[1], path)
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	intro, err := am.GetConfigIntrospection()
	if err != nil {
		return errors.Wrap(err, "failed to get config introspection")
	}

	out := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(out, intro)
	}

	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [DEFAULT]  Built-in defaults")
	fmt.Fprintln(out, "  2. [SYSTEM]   /etc/langkit/am.toml")
	fmt.Fprintln(out, "  3. [USER]     ~/.langkit/am.toml")
	fmt.Fprintln(out, "  4. [PROJECT]  ./am.toml (searches up directories)")
	fmt.Fprintln(out, "  5. [ENV]      LANGKIT_* environment variables")
	fmt.Fprintln(out)

	type fileGroup struct {
		path     string
		settings []am.SettingInfo
	}
	groups := make(map[am.ConfigSource]map[string]*fileGroup)
	for _, setting := range intro.Settings {
		byPath, ok := groups[setting.Source]
		if !ok {
			byPath = make(map[string]*fileGroup)
			groups[setting.Source] = byPath
		}
		path := setting.SourcePath
		if setting.Source == am.SourceEnvironment {
			path = ""
		}
		g, ok := byPath[path]
		if !ok {
			g = &fileGroup{path: path}
			byPath[path] = g
		}
		g.settings = append(g.settings, setting)
	}

	sourceOrder := []am.ConfigSource{
		am.SourceDefault,
		am.SourceSystem,
		am.SourceUser,
		am.SourceProject,
		am.SourceEnvironment,
	}

	fmt.Fprintln(out, "Active configuration:")
	for _, source := range sourceOrder {
		var ordered []*fileGroup
		for _, g := range groups[source] {
			ordered = append(ordered, g)
		}
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].path < ordered[j].path })

		for _, g := range ordered {
			switch source {
			case am.SourceDefault:
				fmt.Fprintf(out, "\n%s: %d settings\n", source, len(g.settings))
			case am.SourceEnvironment:
				fmt.Fprintf(out, "\n%s: %d settings from environment variables\n", source, len(g.settings))
			default:
				fmt.Fprintf(out, "\n%s: %d settings from %s\n", source, len(g.settings), g.path)
			}
			for _, setting := range g.settings {
				valueStr := fmt.Sprintf("%q", fmt.Sprint(setting.Value))
				if len(valueStr) > 50 {
					valueStr = valueStr[:47] + "..."
				}
				fmt.Fprintf(out, "  %s = %s\n", setting.Key, valueStr)
			}
		}
	}
	return nil
}
