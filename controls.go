package microfiche

// ControlState is what prev/next buttons and page bullets need to render.
type ControlState struct {
	PrevEnabled bool
	NextEnabled bool
	Page        int
	Pages       int
}

// Selected reports whether bullet i is the current page.
func (c ControlState) Selected(i int) bool {
	return i == c.Page
}

// Project derives the control state from an offset. It is pure.
//
// The nearest page is selected when x is between boundaries. At the upper
// bound the last page is selected even when the film is not a whole number
// of screens long. In cyclic mode an overshooting x selects the page its
// duplicate stands for.
func Project(x float64, g Geometry, cyclic bool) ControlState {
	if g.Inert() {
		return ControlState{Pages: max(g.Pages(), 1)}
	}
	c := ControlState{
		PrevEnabled: cyclic || x > g.Min(),
		NextEnabled: cyclic || x < g.Max(),
		Page:        g.PageAt(x),
		Pages:       g.Pages(),
	}
	switch {
	case cyclic && x > g.Max():
		c.Page = g.PageIndex(x - g.Period())
	case cyclic && x < g.Min():
		c.Page = g.PageIndex(x + g.Period())
	}
	c.Page = max(0, min(c.Page, c.Pages-1))
	return c
}
