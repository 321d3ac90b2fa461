// Package tui is a terminal front end for a microfiche engine, built on
// bubbletea. Each card fills the terminal width and the engine is advanced
// by a frame tick.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/microfiche"
)

// Frame is the tick interval that drives the engine.
const Frame = time.Second / 30

// chrome is the number of rows used around the film: title, frame border
// (two rows), controls and help.
const chrome = 5

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(Frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the bubbletea model of the carousel.
type Model struct {
	engine *microfiche.Engine
	opts   microfiche.Options
	cards  []Card
	title  string

	keys   KeyMap
	help   help.Model
	styles Styles
	prompt textinput.Model

	width, height int
	clock         time.Time
	lastAutoplay  time.Duration
	status        string
	statusErr     bool
}

// New creates a model showing cards. The engine is calibrated when the first
// window size arrives.
func New(title string, cards []Card, opts microfiche.Options) Model {
	engineOpts := opts
	engineOpts.Run = nil

	ti := textinput.New()
	ti.Prompt = ":"
	ti.Placeholder = "slide-to-page 2"
	ti.CharLimit = 64

	lastAutoplay := opts.Autoplay
	if lastAutoplay <= 0 {
		lastAutoplay = 3 * time.Second
	}
	return Model{
		engine:       microfiche.New(microfiche.Geometry{}, engineOpts),
		opts:         opts,
		cards:        cards,
		title:        title,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		styles:       NewStyles(),
		prompt:       ti,
		clock:        time.Unix(0, 0),
		lastAutoplay: lastAutoplay,
	}
}

// Engine returns the engine the model drives.
func (m Model) Engine() *microfiche.Engine { return m.engine }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := m.width == 0
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.calibrate()
		if first {
			for _, line := range m.opts.Run {
				m.command(line)
			}
		}
		return m, nil

	case tickMsg:
		m.clock = m.clock.Add(Frame)
		m.engine.Update(Frame)
		return m, tick()

	case tea.MouseMsg:
		m.mouse(msg)
		return m, nil

	case tea.KeyMsg:
		if m.prompt.Focused() {
			return m.updatePrompt(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.engine.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Prev):
		m.engine.Prev()
	case key.Matches(msg, m.keys.Next):
		m.engine.Next()
	case key.Matches(msg, m.keys.First):
		m.engine.SlideToPage(0)
	case key.Matches(msg, m.keys.Last):
		m.engine.SlideToPage(m.engine.Controls().Pages - 1)
	case key.Matches(msg, m.keys.Autoplay):
		if d := m.engine.AutoplayInterval(); d > 0 {
			m.lastAutoplay = d
			m.engine.Autoplay(0)
			m.setStatus("autoplay off", false)
		} else {
			m.engine.Autoplay(m.lastAutoplay)
			m.setStatus(fmt.Sprintf("autoplay every %v", m.lastAutoplay), false)
		}
	case key.Matches(msg, m.keys.Command):
		m.prompt.SetValue("")
		return m, m.prompt.Focus()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		line := strings.TrimSpace(m.prompt.Value())
		m.prompt.Blur()
		if line != "" {
			m.command(line)
		}
		return m, nil
	case tea.KeyEsc:
		m.prompt.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// command runs one text command and reports the outcome on the status line.
func (m *Model) command(line string) {
	cmd, err := microfiche.ParseCommand(line)
	if err == nil {
		err = m.engine.Run(cmd)
	}
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	if cmd.Kind == microfiche.CommandAutoplay && cmd.Interval > 0 {
		m.lastAutoplay = cmd.Interval
	}
	m.setStatus(cmd.String(), false)
}

// mouse maps left-button presses, drags and releases inside the frame to
// touch samples, and horizontal wheel motion to page shifts.
func (m *Model) mouse(msg tea.MouseMsg) {
	p := microfiche.Vec2{X: float64(msg.X), Y: float64(msg.Y)}
	switch {
	case msg.Button == tea.MouseButtonWheelLeft:
		m.engine.Prev()
	case msg.Button == tea.MouseButtonWheelRight:
		m.engine.Next()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.engine.TouchStart(p, m.clock, 1)
	case msg.Action == tea.MouseActionMotion:
		m.engine.TouchMove(p, m.clock)
	case msg.Action == tea.MouseActionRelease:
		m.engine.TouchMove(p, m.clock)
		m.engine.TouchEnd()
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

// filmSize returns the inner size of the frame.
func (m Model) filmSize() (int, int) {
	return max(m.width-2, 0), max(m.height-chrome, 0)
}

func (m *Model) calibrate() {
	w, _ := m.filmSize()
	m.engine.Calibrate(microfiche.Geometry{
		Screen: float64(w),
		Film:   float64(w * len(m.cards)),
	})
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	w, h := m.filmSize()
	film := renderFilm(m.cards, m.engine.Offset(), w, h, m.opts.Cyclic)

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.styles.Frame.Width(w).Render(strings.Join(film, "\n")))
	b.WriteString("\n")
	b.WriteString(m.controlsView())
	b.WriteString("\n")
	switch {
	case m.prompt.Focused():
		b.WriteString(m.prompt.View())
	case m.status != "" && m.statusErr:
		b.WriteString(m.styles.StatusError.Render(m.status))
	default:
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

// controlsView renders the prev/next arrows around the page bullets.
func (m Model) controlsView() string {
	c := m.engine.Controls()
	arrow := func(s string, enabled bool) string {
		if enabled {
			return m.styles.Arrow.Render(s)
		}
		return m.styles.ArrowDisabled.Render(s)
	}

	bullets := make([]string, 0, c.Pages)
	if m.opts.Bullets {
		for i := 0; i < c.Pages; i++ {
			if c.Selected(i) {
				bullets = append(bullets, m.styles.BulletSelected.Render("●"))
			} else {
				bullets = append(bullets, m.styles.Bullet.Render("○"))
			}
		}
	}

	parts := []string{}
	if m.opts.Buttons {
		parts = append(parts, arrow("‹", c.PrevEnabled))
	}
	parts = append(parts, strings.Join(bullets, " "))
	if m.opts.Buttons {
		parts = append(parts, arrow("›", c.NextEnabled))
	}
	if m.status != "" && !m.statusErr {
		parts = append(parts, m.styles.Status.Render(m.status))
	}
	row := strings.Join(parts, "  ")
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, row)
}
