package autofit

// Case describes one text box to fit when comparing measurers.
type Case struct {
	Name       string  `json:"name"`
	Text       string  `json:"text"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	LineHeight float64 `json:"lineHeight"`
	Params     Params  `json:"params"`
	// Blocks turns the case into a uniform scale fit over a list; Text and
	// LineHeight are then unused.
	Blocks []Block `json:"blocks,omitempty"`
}

// Fit runs the case against m.
func (c Case) Fit(m Measurer) State {
	if len(c.Blocks) > 0 {
		return FitBlocks(m, c.Blocks, c.Width, c.Height, c.Params)
	}
	return FitText(m, c.Text, c.Width, c.Height, c.LineHeight, c.Params)
}

// Divergence records a case where two measurers settle on different values.
type Divergence struct {
	Case string  `json:"case"`
	A    float64 `json:"a"`
	B    float64 `json:"b"`
}

// Compare fits every case with both measurers and returns the cases whose
// final values differ.
func Compare(a, b Measurer, cases []Case) []Divergence {
	var out []Divergence
	for _, c := range cases {
		va := c.Fit(a).Value
		vb := c.Fit(b).Value
		if va != vb {
			out = append(out, Divergence{Case: c.Name, A: va, B: vb})
		}
	}
	return out
}
