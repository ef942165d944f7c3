package autofit

// Block is one text run of a list that shrinks as a unit. Size and Gap are
// the unscaled font size and the spacing above the run.
type Block struct {
	Text       string  `json:"text"`
	Size       float64 `json:"size"`
	LineHeight float64 `json:"lineHeight"`
	Gap        float64 `json:"gap,omitempty"`
	// KeepLine reserves one line when Text is empty.
	KeepLine bool `json:"keepLine,omitempty"`
}

// BlockHeight is the height of b wrapped to width at scale.
func BlockHeight(m Measurer, b Block, width, scale float64) float64 {
	if b.Text == "" {
		if b.KeepLine {
			return b.Size * scale * b.LineHeight
		}
		return 0
	}
	return m.Measure(b.Text, b.Size*scale, width, b.LineHeight)
}

// StackHeight is the total height of blocks laid out top to bottom at scale.
func StackHeight(m Measurer, blocks []Block, width, scale float64) float64 {
	total := 0.0
	for _, b := range blocks {
		total += b.Gap*scale + BlockHeight(m, b, width, scale)
	}
	return total
}

// FitBlocks finds one scale factor at which the stacked blocks fit height.
// p ranges over scale factors, not font sizes.
func FitBlocks(m Measurer, blocks []Block, width, height float64, p Params) State {
	return Fit(func(scale float64) float64 {
		return StackHeight(m, blocks, width, scale)
	}, height, p)
}
