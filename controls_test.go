package microfiche

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectBounded(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want ControlState
	}{
		{"first page", 0, ControlState{PrevEnabled: false, NextEnabled: true, Page: 0, Pages: 4}},
		{"middle", 600, ControlState{PrevEnabled: true, NextEnabled: true, Page: 2, Pages: 4}},
		{"last page", 900, ControlState{PrevEnabled: true, NextEnabled: false, Page: 3, Pages: 4}},
		{"dragged past min", -15, ControlState{PrevEnabled: false, NextEnabled: true, Page: 0, Pages: 4}},
		{"dragged past max", 950, ControlState{PrevEnabled: true, NextEnabled: false, Page: 3, Pages: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Project(tt.x, fourPages, false))
		})
	}
}

func TestProjectPartialLastPage(t *testing.T) {
	g := Geometry{Screen: 300, Film: 1000}
	c := Project(g.Max(), g, false)
	assert.Equal(t, 4, c.Pages)
	assert.Equal(t, 3, c.Page, "the upper bound selects the last page")
	assert.True(t, c.Selected(3))
	assert.False(t, c.Selected(2))
}

func TestProjectCyclic(t *testing.T) {
	c := Project(0, fourPages, true)
	assert.True(t, c.PrevEnabled)
	assert.True(t, c.NextEnabled)

	assert.Equal(t, 0, Project(1200, fourPages, true).Page)
	assert.Equal(t, 3, Project(-300, fourPages, true).Page)
	assert.Equal(t, 0, Project(1100, fourPages, true).Page)
}

func TestProjectInert(t *testing.T) {
	c := Project(500, Geometry{Screen: 300, Film: 200}, true)
	assert.Equal(t, ControlState{Pages: 1}, c)
}

func TestProjectPageInRange(t *testing.T) {
	for x := -600.0; x <= 1800; x += 37 {
		for _, cyclic := range []bool{false, true} {
			c := Project(x, fourPages, cyclic)
			if c.Page < 0 || c.Page >= c.Pages {
				t.Fatalf("x=%v cyclic=%v: page %d outside [0, %d)", x, cyclic, c.Page, c.Pages)
			}
		}
	}
}
