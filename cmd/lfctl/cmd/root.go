package cmd

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/danmuck/lf"
	"github.com/danmuck/lf/internal/device"
	"github.com/danmuck/lf/internal/frame"
	"github.com/danmuck/lf/internal/lfconfig"
	"github.com/danmuck/lf/internal/lfmodules/gpio"
	"github.com/danmuck/lf/internal/lfmodules/led"
	"github.com/danmuck/lf/internal/lfregistry"
	"github.com/danmuck/lf/internal/obslog"
	"github.com/danmuck/lf/internal/obsmetrics"
	"github.com/danmuck/lf/internal/trampoline"
	"github.com/danmuck/lf/internal/transport"
)

var (
	cfgFile string

	cfg         lfconfig.HostConfig
	devices     []*lf.Device
	identifiers []uint16
	selected    *lf.Device
	selectedI   int = -1
)

// rootCmd is the base command for lfctl.
var rootCmd = &cobra.Command{
	Use:           "lfctl",
	Short:         "lfctl — attach, select, and invoke modules on lf devices",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		obslog.ConfigureRuntime("lfctl")
		obsmetrics.Register()

		var err error
		cfg, err = lfconfig.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return attachConfigured(cmd.Context())
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "lfctl:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "lfctl.toml", "path to the host config file")
}

// attachConfigured dials or embeds every device named in cfg.Devices and
// attaches them as one batch (spec §6 lf_attach_usb).
func attachConfigured(ctx context.Context) error {
	descriptors := make([]lf.Descriptor, 0, len(cfg.Devices))
	for _, dc := range cfg.Devices {
		d, err := descriptorFor(dc)
		if err != nil {
			return fmt.Errorf("device %q: %w", dc.Name, err)
		}
		descriptors = append(descriptors, d)
	}
	if len(descriptors) == 0 {
		return nil
	}

	attached, idents, err := lf.AttachUSB(ctx, descriptors)
	if err != nil {
		return fmt.Errorf("attach devices: %w", err)
	}
	devices = attached
	identifiers = idents
	for i, id := range idents {
		log.Info().Str("device", cfg.Devices[i].Name).Uint16("identifier", id).Msg("device attached")
	}
	return nil
}

// descriptorFor builds the Descriptor for one configured device. The
// "pipe" transport spawns an in-process device.Engine over a
// transport.Pipe pair and shares its registry directly, per
// internal/host's documented bind-resolution simplification; "tcp"
// dials a real out-of-process device, whose Registry is left nil
// (Bind against it fails with PackageNotLoaded until that
// simplification is replaced with a wire fld_index query).
func descriptorFor(dc lfconfig.DeviceConfig) (lf.Descriptor, error) {
	switch dc.Transport {
	case "pipe":
		hostSide, deviceSide := transport.NewPipe()
		reg := lfregistry.New(2)
		if _, err := reg.Register("led", led.Functions(&led.State{})); err != nil {
			return lf.Descriptor{}, err
		}
		if _, err := reg.Register("gpio", gpio.Functions(&gpio.Bank{})); err != nil {
			return lf.Descriptor{}, err
		}
		profile := trampoline.ARM32
		if dc.PointerSize == 2 {
			profile = trampoline.AVR8
		}
		// queryConfiguration checks the device's reported identifier
		// against CRC16(Name); the embedded simulator must report that
		// same value to pass its own host's attach.
		eng := device.New(frame.CRC16([]byte(dc.Name)), reg, profile, 1<<16, deviceSide)
		go runEmbedded(eng)
		return lf.Descriptor{Name: dc.Name, Endpoint: hostSide, Registry: reg, PointerSize: dc.PointerSize}, nil
	case "tcp":
		conn, err := net.Dial("tcp", dc.Addr)
		if err != nil {
			return lf.Descriptor{}, fmt.Errorf("dial %s: %w", dc.Addr, err)
		}
		return lf.Descriptor{Name: dc.Name, Endpoint: transport.NewFromConn(conn), PointerSize: dc.PointerSize}, nil
	default:
		return lf.Descriptor{}, fmt.Errorf("transport %q is not dialable by this build", dc.Transport)
	}
}

// runEmbedded drives an in-process simulated device until its pipe is
// torn down by Release.
func runEmbedded(eng *device.Engine) {
	ctx := context.Background()
	for {
		if err := eng.Perform(ctx); err != nil {
			return
		}
	}
}
