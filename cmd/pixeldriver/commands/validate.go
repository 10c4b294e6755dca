// cmd/pixeldriver/commands/validate.go
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tamzrod/udp-pixel-driver/internal/config"
	"github.com/tamzrod/udp-pixel-driver/internal/output"
)

var validateCmd = &cobra.Command{
	Use:     "validate",
	Short:   "Check the config file and list devices",
	Example: `  pixeldriver validate --config /etc/pixeldriver.yaml`,
	Args:    cobra.NoArgs,
	RunE:    runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// builds every device so per-type checks run too
	if _, _, err := output.Build(cfg, output.Options{}); err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tTARGET\tPIXELS\tAUTO")
	for _, d := range cfg.Devices {
		target, pixels := describe(d)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%t\n", d.ID, d.Name, d.Type, target, pixels, d.AutoActivate)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nconfig OK: %d device(s), %d fps\n", len(cfg.Devices), cfg.Driver.FPS)
	return nil
}

func describe(d config.DeviceConfig) (string, int) {
	switch d.Type {
	case config.TypeUDP:
		return fmt.Sprintf("%s:%d", d.UDP.IPAddress, d.UDP.Port), d.UDP.PixelCount
	case config.TypeModbus:
		return fmt.Sprintf("%s unit=%d addr=%d", d.Modbus.Endpoint, d.Modbus.UnitID, d.Modbus.Address), d.Modbus.PixelCount
	default:
		return "", 0
	}
}
