// cmd/pixeldriver/commands/send.go
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tamzrod/udp-pixel-driver/internal/device"
	"github.com/tamzrod/udp-pixel-driver/internal/logger"
	"github.com/tamzrod/udp-pixel-driver/internal/output"
	"github.com/tamzrod/udp-pixel-driver/internal/pixel"
)

var sendTimeout time.Duration

var sendCmd = &cobra.Command{
	Use:   "send DEVICE-ID RRGGBB",
	Short: "Send one solid frame to a device",
	Long: `Activate one device, send a single frame with every pixel set to the
given colour, then deactivate it.`,
	Example: `  # Turn the desk strip orange
  pixeldriver send desk FF8000

  # Blank it
  pixeldriver send desk 000000`,
	Args: cobra.ExactArgs(2),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().DurationVar(&sendTimeout, "timeout", 5*time.Second, "activation timeout")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	id := args[0]

	color, err := pixel.ParseHexColor(args[1])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	devLog := logger.WithComponent("device")
	devices, closeAll, err := output.Build(cfg, output.Options{Log: &devLog})
	if err != nil {
		return err
	}
	defer func() {
		if err := closeAll(); err != nil {
			logger.Logger.Warn().Err(err).Msg("deactivate on exit failed")
		}
	}()

	d, ok := output.Find(devices, id)
	if !ok {
		return fmt.Errorf("unknown device %q", id)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), sendTimeout)
	defer cancel()

	if err := sendSolid(ctx, d, color); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "sent %d pixels of #%02X%02X%02X to %s\n",
		d.PixelCount(), color[0], color[1], color[2], id)
	return nil
}

// sendSolid activates d, flushes one solid frame and always deactivates.
func sendSolid(ctx context.Context, d device.Device, color [3]byte) error {
	if err := d.Activate(ctx); err != nil {
		return err
	}

	if err := d.Flush(pixel.Solid(d.PixelCount(), color)); err != nil {
		return errors.Join(err, d.Deactivate())
	}
	return d.Deactivate()
}
