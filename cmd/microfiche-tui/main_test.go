package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/microfiche/tui"
)

func TestParseDeck(t *testing.T) {
	cards := parseDeck("One\nbody one\n---\n\nTwo\r\nline a\r\nline b\r\n---\n---\nThree")
	require.Len(t, cards, 3)
	assert.Equal(t, tui.Card{Title: "One", Body: "body one"}, cards[0])
	assert.Equal(t, tui.Card{Title: "Two", Body: "line a\nline b"}, cards[1])
	assert.Equal(t, tui.Card{Title: "Three"}, cards[2])
}

func TestDemoDeck(t *testing.T) {
	assert.Len(t, parseDeck(demoDeck), 4)
}
