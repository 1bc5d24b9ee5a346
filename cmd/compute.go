package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cloudchase/sampling-visualizer/engine"
	"github.com/cloudchase/sampling-visualizer/registry"
	"github.com/cloudchase/sampling-visualizer/render"
)

const defaultScenario = "cat-sat"

const computeLongDesc = `Compute the shaped distribution for a scenario, or for ad-hoc tokens
and logits given with --tokens and --logits.

Temperature scales the logits, top-k keeps the K highest-ranked tokens and
top-p keeps the smallest ranked prefix whose cumulative probability reaches P.
Filtered tokens stay in the output with zero probability.

With --interactive, start a REPL that re-renders after every change.

Examples:
  sv compute roses --top-p 0.5
  sv compute cat-sat -k 1
  sv compute --tokens yes,no,maybe --logits 2,1,0.5 --format json`

type computeCommander struct {
	g           *globalFlags
	params      paramFlags
	tokens      []string
	logits      []float64
	format      string
	width       int
	interactive bool
}

func newComputeCmd(g *globalFlags) *cobra.Command {
	cmder := &computeCommander{g: g}

	cmd := &cobra.Command{
		Use:     "compute [scenario]",
		Aliases: []string{"run"},
		Short:   "Compute the shaped distribution",
		Long:    computeLongDesc,
		Args:    cobra.MaximumNArgs(1),
		RunE:    cmder.run,
	}

	cmder.params.register(cmd.Flags())
	cmd.Flags().StringSliceVar(&cmder.tokens, "tokens", nil, "Ad-hoc tokens (comma separated)")
	cmd.Flags().Float64SliceVar(&cmder.logits, "logits", nil, "Ad-hoc logits, parallel to --tokens")
	cmd.Flags().StringVarP(&cmder.format, "format", "f", "bars", "Output format: bars, table, json")
	cmd.Flags().IntVar(&cmder.width, "width", render.DefaultBarWidth, "Bar width at 100%")
	cmd.Flags().BoolVarP(&cmder.interactive, "interactive", "i", false, "Start an interactive REPL")

	return cmd
}

// source is what compute shapes: a stored scenario or ad-hoc input.
type source struct {
	id     string
	label  string
	tokens []string
	logits []float64
}

func (c *computeCommander) run(cmd *cobra.Command, args []string) error {
	switch c.format {
	case "bars", "table", "json":
	default:
		return fmt.Errorf("invalid --format %q: must be bars, table, or json", c.format)
	}

	e, err := c.g.load(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.log.Sync() }()

	src, err := c.source(e, args)
	if err != nil {
		return err
	}
	p, err := c.params.resolve(cmd, e.cfg.Defaults)
	if err != nil {
		return err
	}

	theme, err := e.theme()
	if err != nil {
		return err
	}

	if c.interactive {
		return c.repl(e, theme, src, p, cmd.InOrStdin())
	}
	return c.print(e, theme, src, p)
}

func (c *computeCommander) source(e *env, args []string) (source, error) {
	if len(c.tokens) > 0 || len(c.logits) > 0 {
		if len(args) > 0 {
			return source{}, fmt.Errorf("give either a scenario or --tokens/--logits, not both")
		}
		return source{tokens: c.tokens, logits: c.logits}, nil
	}
	id := defaultScenario
	if len(args) > 0 {
		id = args[0]
	}
	sc, err := e.manager.Get(id)
	if err != nil {
		return source{}, hintWrap(err)
	}
	return source{id: sc.ID, label: sc.Label, tokens: sc.Tokens, logits: sc.Logits}, nil
}

func (c *computeCommander) print(e *env, theme render.Theme, src source, p engine.Params) error {
	results, err := engine.Compute(src.tokens, src.logits, p)
	if err != nil {
		return err
	}
	effective := p.Clamp(len(src.tokens))
	e.log.Debug("computed distribution",
		zap.String("scenario", src.id),
		zap.Float64("temperature", effective.Temperature),
		zap.Int("top_k", effective.TopK),
		zap.Float64("top_p", effective.TopP),
		zap.Int("active", engine.ActiveCount(results)),
	)

	rep := render.NewReport(src.id, src.label, effective, results)
	switch c.format {
	case "json":
		return render.JSON(e.stdout, rep)
	case "table":
		return render.Table(e.stdout, rep)
	default:
		return render.Bars(e.stdout, theme, rep, c.width)
	}
}

func (c *computeCommander) repl(e *env, theme render.Theme, src source, p engine.Params, in io.Reader) error {
	out := e.stdout
	if err := c.print(e, theme, src, p); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, ">>> ")

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(out, ">>> ")
			continue
		}

		fields := strings.Fields(line)
		command, arg := strings.ToLower(fields[0]), ""
		if len(fields) > 1 {
			arg = fields[1]
		}

		var err error
		switch command {
		case "/exit", "/quit", "/bye":
			fmt.Fprintln(out, "Goodbye.")
			return nil
		case "/help":
			fmt.Fprintln(out, "Commands:")
			fmt.Fprintln(out, "  /temp <x>           - Set temperature")
			fmt.Fprintln(out, "  /topk <n>           - Set top-k")
			fmt.Fprintln(out, "  /topp <x>           - Set top-p")
			fmt.Fprintln(out, "  /scenario <id>      - Switch scenario")
			fmt.Fprintln(out, "  /params             - Show current controls")
			fmt.Fprintln(out, "  /exit, /quit, /bye  - Exit the REPL")
			fmt.Fprint(out, ">>> ")
			continue
		case "/params":
			fmt.Fprintln(out, render.ParamSummary(p.Clamp(len(src.tokens))))
			fmt.Fprint(out, ">>> ")
			continue
		case "/temp":
			var v float64
			if v, err = strconv.ParseFloat(arg, 64); err == nil {
				if err = checkTemperature(v); err == nil {
					p.Temperature = v
				}
			}
		case "/topk":
			var v int
			if v, err = strconv.Atoi(arg); err == nil {
				p.TopK = v
			}
		case "/topp":
			var v float64
			if v, err = strconv.ParseFloat(arg, 64); err == nil {
				p.TopP = v
			}
		case "/scenario":
			var sc *registry.Scenario
			if sc, err = e.manager.Get(arg); err == nil {
				src = source{id: sc.ID, label: sc.Label, tokens: sc.Tokens, logits: sc.Logits}
			}
		default:
			err = fmt.Errorf("unknown command %q (try /help)", command)
		}

		if err != nil {
			fmt.Fprintf(e.stderr, "Error: %v\n", err)
		} else if err := c.print(e, theme, src, p); err != nil {
			fmt.Fprintf(e.stderr, "Error: %v\n", err)
		}
		fmt.Fprint(out, ">>> ")
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	return nil
}
