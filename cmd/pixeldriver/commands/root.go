// cmd/pixeldriver/commands/root.go
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tamzrod/udp-pixel-driver/internal/config"
	"github.com/tamzrod/udp-pixel-driver/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "pixeldriver",
	Short: "pixeldriver - push LED frames to network pixel controllers",
	Long: `pixeldriver sends pixel frames to LED controllers over the network.

Each configured device is either a UDP strip (one datagram per frame, with
optional index bytes and hex prefix/postfix) or a Modbus TCP register block.
Frames come from the HTTP/websocket API or from a built-in pattern.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "pixeldriver.yaml", "config file")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-pretty", false, "human readable console logs")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))
}

func initConfig() {
	viper.SetEnvPrefix("PIXELDRIVER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads, validates and normalizes the config file, then applies
// flag/env overrides and sets up logging.
func loadConfig() (*config.Config, error) {
	path := viper.GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	config.Normalize(cfg)

	// Override log settings from flag/env if provided
	if viper.IsSet("log_level") {
		if lvl := viper.GetString("log_level"); lvl != "" {
			cfg.Driver.LogLevel = lvl
		}
	}
	if viper.IsSet("log_pretty") && viper.GetBool("log_pretty") {
		cfg.Driver.LogPretty = true
	}

	logger.Init(cfg.Driver.LogLevel, cfg.Driver.LogPretty)
	logger.Logger.Debug().Str("path", path).Int("devices", len(cfg.Devices)).Msg("config loaded")

	return cfg, nil
}
