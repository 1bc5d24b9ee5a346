package registry

// builtins is the shipped catalogue, in display order.
var builtins = []Scenario{
	{
		ID:     "cat-sat",
		Label:  "The cat sat on the.....",
		Tokens: []string{"Mat", "Floor", "Rug", "Dog", "Pizza", "Table", "Bed", "Couch", "Chair", "Box"},
		// Mat and Floor close at the top, furniture well below, Pizza last.
		Logits: []float64{14.0, 13.8, 12.5, 11.0, 0.1, 8.0, 7.8, 7.6, 7.4, 7.2},
	},
	{
		ID:     "roses",
		Label:  "Roses are red, violets are...",
		Tokens: []string{"blue", "purple", "violet", "red", "white", "pink", "yellow", "orange", "green", "black"},
		Logits: []float64{10, 8, 7, 4, 3, 2, 1.5, 1, 0.5, 0.1},
	},
	{
		ID:     "once-upon",
		Label:  "Once upon a time, there was a...",
		Tokens: []string{"princess", "king", "little", "prince", "kingdom", "dragon", "time", "girl", "boy", "man"},
		Logits: []float64{8, 7.5, 6, 5, 4, 3.5, 3, 2, 1, 0.5},
	},
	{
		ID:     "quick-fox",
		Label:  "The quick brown fox jumps over the lazy...",
		Tokens: []string{"dog", "cat", "fox", "log", "frog", "river", "fence", "moon", "grass", "stone"},
		Logits: []float64{15, 6, 4, 3, 2, 1.5, 1, 0.5, 0.2, 0.1},
	},
	{
		ID:     "stormy-night",
		Label:  "It was a dark and stormy night, the rain was falling and the wind was...",
		Tokens: []string{"howling", "blowing", "whistling", "cold", "strong", "loud", "roaring", "wet", "silent", "gone"},
		Logits: []float64{10, 9, 5, 4, 3, 2, 1.5, 1, 0.5, 0.1},
	},
	{
		ID:     "sun-shining",
		Label:  "The sun was shining, the birds were singing, and the flowers were...",
		Tokens: []string{"blooming", "growing", "bright", "beautiful", "opening", "colorful", "smelling", "dancing", "everywhere", "alive"},
		Logits: []float64{11, 8, 5, 4, 3, 2, 1.5, 1, 0.5, 0.1},
	},
}

// Builtins returns a copy of the shipped catalogue.
func Builtins() []Scenario {
	out := make([]Scenario, len(builtins))
	for i, s := range builtins {
		s.Tokens = append([]string(nil), s.Tokens...)
		s.Logits = append([]float64(nil), s.Logits...)
		s.Builtin = true
		out[i] = s
	}
	return out
}

func builtin(id string) (*Scenario, bool) {
	for _, s := range Builtins() {
		if s.ID == id {
			return &s, true
		}
	}
	return nil, false
}
