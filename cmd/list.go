package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List scenarios",
		Long:    "List the built-in scenarios and every scenario added to the local registry.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(g, cmd)
		},
	}
}

func runList(g *globalFlags, cmd *cobra.Command) error {
	e, err := g.load(cmd)
	if err != nil {
		return err
	}

	scenarios, err := e.manager.List()
	if err != nil {
		return fmt.Errorf("list scenarios: %w", err)
	}

	w := tabwriter.NewWriter(e.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTOKENS\tSOURCE\tLABEL")
	for _, s := range scenarios {
		src := "user"
		if s.Builtin {
			src = "builtin"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", s.ID, s.Size(), src, s.Label)
	}
	return w.Flush()
}
