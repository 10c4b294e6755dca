// cmd/pixeldriver/commands/serve.go
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tamzrod/udp-pixel-driver/internal/api"
	"github.com/tamzrod/udp-pixel-driver/internal/config"
	"github.com/tamzrod/udp-pixel-driver/internal/logger"
	"github.com/tamzrod/udp-pixel-driver/internal/output"
	"github.com/tamzrod/udp-pixel-driver/internal/pipeline"
	"github.com/tamzrod/udp-pixel-driver/internal/pixel"
	"github.com/tamzrod/udp-pixel-driver/internal/source"
	"github.com/tamzrod/udp-pixel-driver/internal/status"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the driver and its HTTP API",
	Long: `Run the frame loop for every configured device and serve the control API.

Devices flagged auto_activate are activated on start. Frames pushed through
the API win; otherwise the selected pattern is shown (store shows nothing).`,
	Example: `  # Start with defaults from pixeldriver.yaml
  pixeldriver serve

  # Override the API address
  pixeldriver serve --listen :9090

  # Run a red chase on every active device
  pixeldriver serve --pattern chase --color FF0000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", "", "API listen address (overrides driver.listen)")
	serveCmd.Flags().String("pattern", "store", "fallback frame source (store, solid, chase)")
	serveCmd.Flags().String("color", "FFFFFF", "pattern colour as RRGGBB")
	serveCmd.Flags().Int("chase-width", 3, "lit pixels in the chase pattern")

	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
	viper.BindPFlag("pattern", serveCmd.Flags().Lookup("pattern"))
	viper.BindPFlag("color", serveCmd.Flags().Lookup("color"))
	viper.BindPFlag("chase_width", serveCmd.Flags().Lookup("chase-width"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if listen := viper.GetString("listen"); listen != "" {
		cfg.Driver.Listen = listen
	}

	store := source.NewStore()
	src, err := buildSource(store, viper.GetString("pattern"), viper.GetString("color"), viper.GetInt("chase_width"))
	if err != nil {
		return err
	}

	// --------------------
	// Build devices
	// --------------------

	devLog := logger.WithComponent("device")
	devices, closeAll, err := output.Build(cfg, output.Options{Log: &devLog})
	if err != nil {
		return err
	}
	defer closeAll()

	board := status.NewBoard()
	runLog := logger.WithComponent("pipeline")
	runner := pipeline.New(pipeline.Config{
		FPS:          cfg.Driver.FPS,
		AutoActivate: autoActivateIDs(cfg),
		Log:          &runLog,
	}, devices, src, board)

	// --------------------
	// Run until signalled
	// --------------------

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runnerDone := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(runnerDone)
	}()

	server := api.NewServer(runner, board, store, logger.WithComponent("api"))

	logger.Logger.Info().
		Int("devices", len(devices)).
		Int("fps", cfg.Driver.FPS).
		Str("listen", cfg.Driver.Listen).
		Msg("pixeldriver running")

	serveErr := server.Serve(ctx, cfg.Driver.Listen)

	stop()
	<-runnerDone

	logger.Logger.Info().Msg("shut down")
	return serveErr
}

func buildSource(store *source.Store, pattern, color string, width int) (source.Source, error) {
	switch pattern {
	case "", "store":
		return store, nil
	case "solid", "chase":
	default:
		return nil, fmt.Errorf("unknown pattern %q (want store, solid or chase)", pattern)
	}

	c, err := pixel.ParseHexColor(color)
	if err != nil {
		return nil, err
	}

	if pattern == "solid" {
		return source.First{store, source.Solid{Color: c}}, nil
	}
	return source.First{store, &source.Chase{Color: c, Width: width}}, nil
}

func autoActivateIDs(cfg *config.Config) []string {
	var ids []string
	for _, d := range cfg.Devices {
		if d.AutoActivate {
			ids = append(ids, d.ID)
		}
	}
	return ids
}
