package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/gridfare/gridfare/pkg/config"
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	styleFree   = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// newEntrypointsCmd creates the "entrypoints" command, which prints the
// agent's capability table without starting the server.
func newEntrypointsCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "entrypoints",
		Short: "List the registered entrypoints and their prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			registry, err := buildRegistry(cfg)
			if err != nil {
				return err
			}

			t := table.New().
				BorderStyle(styleDim).
				Headers("KEY", "PRICE", "INPUTS", "DESCRIPTION")

			for _, ep := range registry.List() {
				price := styleFree.Render("free")
				if ep.Price > 0 {
					price = strconv.FormatInt(ep.Price, 10)
				}
				inputs := make([]string, 0, len(ep.Schema.Fields))
				for _, f := range ep.Schema.Fields {
					name := f.Name
					if f.Required {
						name += "*"
					}
					inputs = append(inputs, name)
				}
				t.Row(styleHeader.Render(ep.Key), price, strings.Join(inputs, ", "), ep.Description)
			}

			fmt.Fprintln(cmd.OutOrStdout(), styleTitle.Render(cfg.Agent.Name))
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to TOML config file")

	return cmd
}
