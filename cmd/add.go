package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const addLongDesc = `Add a scenario from a .toml or .json file.

The file holds a label, a list of tokens and a parallel list of logits.
The id defaults to the file name.

Example file (pets.toml):
  label  = "My favourite pet is a..."
  tokens = ["dog", "cat", "fish"]
  logits = [3.0, 2.8, 0.5]`

func newAddCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>",
		Short: "Add a scenario from a file",
		Long:  addLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			s, err := e.manager.Import(args[0])
			if err != nil {
				return hintWrap(err)
			}
			e.log.Debug("scenario added", zap.String("scenario", s.ID), zap.String("file", args[0]))
			fmt.Fprintf(e.stdout, "Added scenario %s (%d tokens)\n", s.ID, s.Size())
			return nil
		},
	}
}

func newRemoveCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <scenario>",
		Aliases: []string{"remove"},
		Short:   "Remove a user scenario",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			if err := e.manager.Remove(args[0]); err != nil {
				return hintWrap(err)
			}
			fmt.Fprintf(e.stdout, "Removed scenario %s\n", args[0])
			return nil
		},
	}
}
