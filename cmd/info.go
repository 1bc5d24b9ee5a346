package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newInfoCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info <scenario>",
		Short: "Show scenario details",
		Long:  "Display the prompt, tokens and base logits of a scenario.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(g, cmd, args[0])
		},
	}
}

func runInfo(g *globalFlags, cmd *cobra.Command, id string) error {
	e, err := g.load(cmd)
	if err != nil {
		return err
	}

	s, err := e.manager.Get(id)
	if err != nil {
		return hintWrap(err)
	}

	out := e.stdout
	fmt.Fprintf(out, "ID:      %s\n", s.ID)
	fmt.Fprintf(out, "Label:   %s\n", s.Label)
	if s.Builtin {
		fmt.Fprintln(out, "Source:  builtin")
	} else {
		fmt.Fprintln(out, "Source:  user")
		fmt.Fprintf(out, "Added:   %s\n", s.AddedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(out, "Tokens:  %d\n\n", s.Size())

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTOKEN\tLOGIT")
	for i, tok := range s.Tokens {
		fmt.Fprintf(w, "%d\t%s\t%g\n", i, tok, s.Logits[i])
	}
	return w.Flush()
}
