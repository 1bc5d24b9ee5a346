package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cloudchase/sampling-visualizer/config"
	"github.com/cloudchase/sampling-visualizer/logger"
	"github.com/cloudchase/sampling-visualizer/registry"
	"github.com/cloudchase/sampling-visualizer/render"
)

// errExit signals a non-zero exit after the command already reported why.
var errExit = errors.New("exit")

// Run executes the sv CLI with the given args and returns the exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errExit) {
			fmt.Fprintf(stderr, "sv: %v\n", err)
			var hinted *HintedError
			if errors.As(err, &hinted) && hinted.Hint != "" {
				fmt.Fprintf(stderr, "hint: %s\n", hinted.Hint)
			}
		}
		return 1
	}
	return 0
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	home  string
	debug bool
	color string
}

// env is the per-invocation state built from the global flags and config file.
type env struct {
	home    string
	cfg     config.Config
	log     *zap.Logger
	manager *registry.ScenarioManager
	stdout  io.Writer
	stderr  io.Writer
}

func (g *globalFlags) load(cmd *cobra.Command) (*env, error) {
	home := g.home
	if home == "" {
		home = registry.DefaultBaseDir()
	}
	cfg, err := config.Load(config.Path(home))
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = g.debug
	}
	if cmd.Flags().Changed("color") {
		if !render.ValidColorMode(g.color) {
			return nil, fmt.Errorf("invalid --color value %q: must be always, auto, or never", g.color)
		}
		cfg.Color = g.color
	}

	log := logger.New(cfg.Debug, cmd.ErrOrStderr())
	log.Debug("loaded config", zap.String("home", home), zap.String("color", cfg.Color))

	mgr, err := registry.NewScenarioManager(home)
	if err != nil {
		return nil, fmt.Errorf("init scenario manager: %w", err)
	}
	return &env{
		home:    home,
		cfg:     cfg,
		log:     log,
		manager: mgr,
		stdout:  cmd.OutOrStdout(),
		stderr:  cmd.ErrOrStderr(),
	}, nil
}

// theme builds the output styles for stdout under the configured colour mode.
func (e *env) theme() (render.Theme, error) {
	return render.NewTheme(e.stdout, e.cfg.Color)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "sv",
		Short:         "Sampling Visualizer - see how temperature, top-k and top-p shape a distribution",
		Long:          "Shape next-token logits with temperature, top-k and top-p and inspect the resulting distribution from the CLI, an HTTP API or an interactive terminal view.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&g.home, "home", "", "Data directory (default $SV_HOME or ~/.sampling-visualizer)")
	root.PersistentFlags().BoolVar(&g.debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&g.color, "color", "auto", "Color output: always, auto, never")

	root.AddCommand(
		newComputeCmd(g),
		newServeCmd(g),
		newListCmd(g),
		newInfoCmd(g),
		newAddCmd(g),
		newRemoveCmd(g),
		newVisualizeCmd(g),
		newConfigCmd(g),
	)
	return root
}
