package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danmuck/lf"
)

var releaseCmd = &cobra.Command{
	Use:   "release <index>",
	Short: "Detach a device and invalidate its handle (spec lf_release)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := strconv.Atoi(args[0])
		if err != nil || idx < 0 || idx >= len(devices) {
			return fmt.Errorf("invalid index %q", args[0])
		}
		d := devices[idx]
		if err := lf.Release(cmd.Context(), d); err != nil {
			return err
		}
		if selected == d {
			selected = nil
			selectedI = -1
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(releaseCmd)
}
