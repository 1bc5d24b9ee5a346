package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cloudchase/sampling-visualizer/engine"
)

// paramFlags are the shaping controls accepted on the command line.
type paramFlags struct {
	temperature float64
	topK        int
	topP        float64
}

func (f *paramFlags) register(fs *pflag.FlagSet) {
	fs.Float64VarP(&f.temperature, "temperature", "t", 1.0, "Temperature (values <= 0 are clamped to 0.01)")
	fs.IntVarP(&f.topK, "top-k", "k", 10, "Keep only the K highest-ranked tokens")
	fs.Float64VarP(&f.topP, "top-p", "p", 1.0, "Keep the smallest ranked prefix whose mass reaches P")
}

// resolve overlays explicitly set flags on the configured defaults.
func (f *paramFlags) resolve(cmd *cobra.Command, defaults engine.Params) (engine.Params, error) {
	p := defaults
	if cmd.Flags().Changed("temperature") {
		if err := checkTemperature(f.temperature); err != nil {
			return p, fmt.Errorf("invalid --temperature: %w", err)
		}
		p.Temperature = f.temperature
	}
	if cmd.Flags().Changed("top-k") {
		p.TopK = f.topK
	}
	if cmd.Flags().Changed("top-p") {
		p.TopP = f.topP
	}
	return p, nil
}

// checkTemperature rejects infinite temperatures, which cannot be reported
// back as JSON.
func checkTemperature(v float64) error {
	if math.IsInf(v, 0) {
		return fmt.Errorf("temperature must be finite, got %v", v)
	}
	return nil
}
