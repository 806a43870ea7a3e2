package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danmuck/lf"
)

var selectCmd = &cobra.Command{
	Use:   "select <index>",
	Short: "Select one attached device (spec lf_select)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[0], err)
		}
		d, err := lf.Select(devices, idx)
		if err != nil {
			return err
		}
		selected = d
		selectedI = idx
		fmt.Printf("selected device %d\n", idx)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
}
