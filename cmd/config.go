package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloudchase/sampling-visualizer/config"
)

func newConfigCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long:  "Print the effective configuration as TOML, after applying the config file and global flags.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			return e.cfg.Encode(e.stdout)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write a default config file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				e, err := g.load(cmd)
				if err != nil {
					return err
				}
				path := config.Path(e.home)
				if err := config.WriteDefault(path); err != nil {
					return err
				}
				fmt.Fprintf(e.stdout, "Wrote %s\n", path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				e, err := g.load(cmd)
				if err != nil {
					return err
				}
				fmt.Fprintln(e.stdout, config.Path(e.home))
				return nil
			},
		},
	)

	return cmd
}
