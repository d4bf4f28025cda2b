package cli

import "github.com/charmbracelet/lipgloss"

// Stage colour palette 🎙️
// Shared colours for consistent branding across CLI output and the TUI
var (
	// Spotlight colours (bright to deep)
	SpotlightGold   = lipgloss.Color("#FFC857") // Warm spotlight
	CurtainRed      = lipgloss.Color("#B3001B") // Theatre curtain
	StageTeal       = lipgloss.Color("#1B998B") // Cool stage wash
	BackstageIndigo = lipgloss.Color("#3D348B") // Dim backstage

	// Accent colours
	ProgramGray = lipgloss.Color("#9A8F97") // Subtle text
)
