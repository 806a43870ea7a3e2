package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/danmuck/lf/cmd/lfctl/pkg/dashboard"
)

// cliSource adapts the package-level attached-device state into
// dashboard.Source.
type cliSource struct{}

func (cliSource) Rows() []dashboard.Row {
	rows := make([]dashboard.Row, len(cfg.Devices))
	for i, dc := range cfg.Devices {
		var ident uint16
		if i < len(identifiers) {
			ident = identifiers[i]
		}
		rows[i] = dashboard.Row{
			Index:      i,
			Name:       dc.Name,
			Transport:  dc.Transport,
			Addr:       dc.Addr,
			Identifier: ident,
			Selected:   i == selectedI,
		}
	}
	return rows
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Launch the interactive device dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(dashboard.New(cliSource{}), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
