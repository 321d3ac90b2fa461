package tui

import (
	"math"
	"strings"
)

// Card is one slide of the terminal carousel.
type Card struct {
	Title string
	Body  string
}

// cardLines lays a card out as h rows of exactly w runes: the title, a
// blank row, then the body. Long rows are cut and missing rows are blank.
func cardLines(c Card, w, h int) [][]rune {
	src := []string{centre(c.Title, w), ""}
	src = append(src, strings.Split(c.Body, "\n")...)
	rows := make([][]rune, h)
	for i := range rows {
		var line string
		if i < len(src) {
			line = src[i]
		}
		rows[i] = fit(line, w)
	}
	return rows
}

func centre(s string, w int) string {
	n := len([]rune(s))
	if n >= w {
		return s
	}
	return strings.Repeat(" ", (w-n)/2) + s
}

func fit(s string, w int) []rune {
	r := []rune(s)
	if len(r) > w {
		return r[:w]
	}
	out := make([]rune, w)
	copy(out, r)
	for i := len(r); i < w; i++ {
		out[i] = ' '
	}
	return out
}

// renderFilm returns the w by h window of the film seen at offset. Each card
// is one screen wide. In cyclic mode columns past either end show the
// duplicate film; otherwise they are blank.
func renderFilm(cards []Card, offset float64, w, h int, cyclic bool) []string {
	if w <= 0 || h <= 0 {
		return nil
	}
	laid := make([][][]rune, len(cards))
	for i, c := range cards {
		laid[i] = cardLines(c, w, h)
	}
	period := len(cards) * w
	start := int(math.Round(offset))

	out := make([]string, h)
	row := make([]rune, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			col := start + x
			if cyclic && period > 0 {
				col = ((col % period) + period) % period
			}
			if col < 0 || col >= period {
				row[x] = ' '
				continue
			}
			row[x] = laid[col/w][y][col%w]
		}
		out[y] = string(row)
	}
	return out
}
