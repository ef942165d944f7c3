package scene

// Page is the resolved geometry of one deck page.
type Page struct {
	ID         string    `json:"id,omitempty"`
	Template   string    `json:"template"`
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	Background string    `json:"background,omitempty"`
	Elements   []Element `json:"elements"`
}

// Find returns the element with the given id.
func (p Page) Find(id string) (Element, bool) {
	for _, el := range p.Elements {
		if el.ID == id {
			return el, true
		}
	}
	return Element{}, false
}

// ImageKeys lists the distinct asset keys referenced by the page in element
// order.
func (p Page) ImageKeys() []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, el := range p.Elements {
		if el.Image == nil || el.Image.Key == "" {
			continue
		}
		if _, ok := seen[el.Image.Key]; ok {
			continue
		}
		seen[el.Image.Key] = struct{}{}
		keys = append(keys, el.Image.Key)
	}
	return keys
}

// Count returns the number of elements of the given kind.
func (p Page) Count(kind Kind) int {
	n := 0
	for _, el := range p.Elements {
		if el.Kind == kind {
			n++
		}
	}
	return n
}
