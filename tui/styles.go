package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the model.
type Styles struct {
	Title          lipgloss.Style
	Frame          lipgloss.Style
	Arrow          lipgloss.Style
	ArrowDisabled  lipgloss.Style
	Bullet         lipgloss.Style
	BulletSelected lipgloss.Style
	Status         lipgloss.Style
	StatusError    lipgloss.Style
}

// NewStyles returns the default styles.
func NewStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")),
		Arrow:          lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
		ArrowDisabled:  lipgloss.NewStyle().Faint(true),
		Bullet:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		BulletSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Status:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
