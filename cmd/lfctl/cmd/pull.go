package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danmuck/lf"
)

var pullCmd = &cobra.Command{
	Use:   "pull <module> <function> <length> <out-file>",
	Short: "Invoke a module function and write its output bytes to a file (spec lf_pull)",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		if selected == nil {
			return errNoSelection
		}
		function, err := strconv.ParseUint(args[1], 10, 8)
		if err != nil {
			return fmt.Errorf("invalid function index %q: %w", args[1], err)
		}
		length, err := strconv.ParseUint(args[2], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid length %q: %w", args[2], err)
		}

		dst := make([]byte, length)
		if err := lf.Pull(cmd.Context(), selected, args[0], uint8(function), dst); err != nil {
			fmt.Printf("pull failed: %v (lferr=%s)\n", err, lf.ErrorGet())
			return err
		}
		if err := os.WriteFile(args[3], dst, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", args[3], err)
		}
		fmt.Printf("read %d bytes into %s\n", length, args[3])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pullCmd)
}
