// Command microfiche-tui shows a deck of text cards as a terminal carousel.
//
// A deck file holds cards separated by lines containing only "---". The
// first line of each card is its title.
package main

import (
	"flag"
	"os"
	"strings"

	"github.com/BrugadaSyndrome/bslogger"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/phanxgames/microfiche"
	"github.com/phanxgames/microfiche/tui"
)

var demoDeck = `Microfiche
A strip of content wider than its window,
moved one screenful at a time.
---
Navigate
Arrow keys, h and l, or drag with the mouse.
Home and End jump to the ends.
---
Commands
Press : and type a command, for example
  slide-to-page 0
  autoplay 2s
---
Cyclic
Run with -cyclic to wrap from the last card
to the first and back.`

// parseDeck splits a deck into cards. Blank leading and trailing lines of a
// card are dropped, and so are empty cards.
func parseDeck(s string) []tui.Card {
	var (
		cards []tui.Card
		lines []string
	)
	flush := func() {
		chunk := strings.Trim(strings.Join(lines, "\n"), "\n")
		lines = lines[:0]
		if strings.TrimSpace(chunk) == "" {
			return
		}
		title, body, _ := strings.Cut(chunk, "\n")
		cards = append(cards, tui.Card{Title: strings.TrimSpace(title), Body: body})
	}
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "---" {
			flush()
			continue
		}
		lines = append(lines, line)
	}
	flush()
	return cards
}

func main() {
	logger := bslogger.NewLogger("microfiche-tui", bslogger.Normal, nil)

	var (
		deckPath    = flag.String("deck", "", "deck file; a built-in demo when empty")
		optionsPath = flag.String("options", "", "options file (.yaml, .yml or .toml)")
		cyclic      = flag.Bool("cyclic", false, "wrap from the last card to the first")
		logPath     = flag.String("log", "", "write debug output to this file")
	)
	flag.Parse()

	opts := microfiche.DefaultOptions()
	// Terminal cells are much coarser than pixels.
	opts.DragThreshold = 3
	if *optionsPath != "" {
		var err error
		if opts, err = microfiche.LoadOptions(*optionsPath); err != nil {
			logger.Fatalf("%v", err)
		}
	}
	if *cyclic {
		opts.Cyclic = true
	}

	deck := demoDeck
	title := "microfiche"
	if *deckPath != "" {
		data, err := os.ReadFile(*deckPath)
		if err != nil {
			logger.Fatalf("read deck: %v", err)
		}
		deck, title = string(data), *deckPath
	}
	cards := parseDeck(deck)
	if len(cards) == 0 {
		logger.Fatalf("deck %s has no cards", *deckPath)
	}

	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "microfiche")
		if err != nil {
			logger.Fatalf("open log: %v", err)
		}
		defer f.Close()
		opts.Debug = true
	}

	p := tea.NewProgram(tui.New(title, cards, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Fatalf("%v", err)
	}
}
