package engine

import "math"

// Parameter bounds. Values outside them are clamped, never rejected.
const (
	MinTemperature = 0.01
	MinTopP        = 0.01
	MaxTopP        = 1.0
	MinTopK        = 1
)

// Params holds the three shaping controls applied to a logit vector.
type Params struct {
	// Temperature divides the logits before softmax. >1 flattens, <1 sharpens.
	Temperature float64 `json:"temperature" toml:"temperature"`

	// TopK keeps only the K highest-ranked tokens. >= vocabulary size = disabled.
	TopK int `json:"top_k" toml:"top_k"`

	// TopP keeps the smallest ranked prefix whose mass reaches P. 1.0 = disabled.
	TopP float64 `json:"top_p" toml:"top_p"`
}

// DefaultParams returns the controls that leave the softmax distribution untouched.
func DefaultParams() Params {
	return Params{
		Temperature: 1.0,
		TopK:        10,
		TopP:        1.0,
	}
}

// Clamp returns a copy of p with every field moved into its effective domain
// for a vocabulary of n tokens.
func (p Params) Clamp(n int) Params {
	if math.IsNaN(p.Temperature) || p.Temperature < MinTemperature {
		p.Temperature = MinTemperature
	}
	if p.TopK < MinTopK {
		p.TopK = MinTopK
	}
	if n > 0 && p.TopK > n {
		p.TopK = n
	}
	if math.IsNaN(p.TopP) || p.TopP < MinTopP {
		p.TopP = MinTopP
	}
	if p.TopP > MaxTopP {
		p.TopP = MaxTopP
	}
	return p
}
