package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danmuck/lf"
)

var pushCmd = &cobra.Command{
	Use:   "push <module> <function> <file>",
	Short: "Push a file's bytes through a module function (spec lf_push)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if selected == nil {
			return errNoSelection
		}
		function, err := strconv.ParseUint(args[1], 10, 8)
		if err != nil {
			return fmt.Errorf("invalid function index %q: %w", args[1], err)
		}
		payload, err := os.ReadFile(args[2])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[2], err)
		}
		addr, err := lf.Push(cmd.Context(), selected, args[0], uint8(function), payload)
		if err != nil {
			fmt.Printf("push failed: %v (lferr=%s)\n", err, lf.ErrorGet())
			return err
		}
		fmt.Printf("wrote %d bytes at address %d\n", len(payload), addr)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
}
