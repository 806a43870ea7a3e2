package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List attached devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(devices) == 0 {
			fmt.Println("no devices attached")
			return nil
		}
		for i, dc := range cfg.Devices {
			mark := " "
			if i == selectedI {
				mark = "*"
			}
			fmt.Printf("%s [%d] %s (%s %s)\n", mark, i, dc.Name, dc.Transport, dc.Addr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
