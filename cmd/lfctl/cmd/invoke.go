package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danmuck/lf"
)

var errNoSelection = errors.New("no device selected, run `lfctl select <index>` first")

var invokeCmd = &cobra.Command{
	Use:   "invoke <module> <function> <ret-type> [type:value ...]",
	Short: "Invoke a function on the selected device (spec lf_invoke)",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if selected == nil {
			return errNoSelection
		}
		function, err := strconv.ParseUint(args[1], 10, 8)
		if err != nil {
			return fmt.Errorf("invalid function index %q: %w", args[1], err)
		}
		retTag, err := parseTag(args[2])
		if err != nil {
			return err
		}

		argv := lf.CreateArgs()
		for _, raw := range args[3:] {
			tag, value, err := parseTaggedArg(raw)
			if err != nil {
				return err
			}
			if err := lf.AppendArg(argv, value, uint8(tag)); err != nil {
				return err
			}
		}

		value, err := lf.Invoke(cmd.Context(), selected, args[0], uint8(function), argv, uint8(retTag))
		if err != nil {
			fmt.Printf("invoke failed: %v (lferr=%s)\n", err, lf.ErrorGet())
			return err
		}
		fmt.Printf("-> %d\n", value)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(invokeCmd)
}
