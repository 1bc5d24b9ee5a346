package cmd

import (
	"fmt"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cloudchase/sampling-visualizer/registry"
	"github.com/cloudchase/sampling-visualizer/render"
	"github.com/cloudchase/sampling-visualizer/tui"
)

type visualizeCommander struct {
	g      *globalFlags
	params paramFlags
}

func newVisualizeCmd(g *globalFlags) *cobra.Command {
	cmder := &visualizeCommander{g: g}

	cmd := &cobra.Command{
		Use:     "visualize [scenario]",
		Aliases: []string{"viz", "ui"},
		Short:   "Explore a distribution interactively",
		Long: `Open an interactive terminal view with temperature, top-k and top-p controls
over a live bar chart. Use tab to cycle scenarios and ? for all key bindings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmder.run,
	}

	cmder.params.register(cmd.Flags())

	return cmd
}

func (c *visualizeCommander) run(cmd *cobra.Command, args []string) error {
	e, err := c.g.load(cmd)
	if err != nil {
		return err
	}
	if !render.IsTerminal(e.stdout) {
		return fmt.Errorf("visualize needs a terminal; use 'sv compute' for plain output")
	}

	scenarios, err := e.manager.List()
	if err != nil {
		return fmt.Errorf("list scenarios: %w", err)
	}
	start := 0
	if len(args) > 0 {
		start = indexOf(scenarios, args[0])
		if start < 0 {
			return hintWrap(fmt.Errorf("%w: %s", registry.ErrNotFound, args[0]))
		}
	}

	theme, err := e.theme()
	if err != nil {
		return err
	}

	params, err := c.params.resolve(cmd, e.cfg.Defaults)
	if err != nil {
		return err
	}

	return tui.Run(tui.Config{
		Scenarios: scenarios,
		Start:     start,
		Params:    params,
		Theme:     theme,
	},
		bubbletea.WithAltScreen(),
		bubbletea.WithInput(cmd.InOrStdin()),
		bubbletea.WithOutput(e.stdout),
	)
}

func indexOf(scenarios []registry.Scenario, id string) int {
	for i, s := range scenarios {
		if s.ID == id {
			return i
		}
	}
	return -1
}
