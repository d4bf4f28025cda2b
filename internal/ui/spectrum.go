package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	// Stage wash from cool to hot
	spectrumColors = []lipgloss.Color{
		lipgloss.Color("#3D348B"), // Indigo
		lipgloss.Color("#2E5A8F"),
		lipgloss.Color("#1B998B"), // Teal
		lipgloss.Color("#7BB274"),
		lipgloss.Color("#D9C35B"),
		lipgloss.Color("#FFC857"), // Gold
		lipgloss.Color("#E9724C"),
		lipgloss.Color("#B3001B"), // Curtain red
	}
)

// renderSpectrum draws bar heights (0.0-1.0) as a two-row block chart no
// wider than width columns.
func renderSpectrum(barHeights []float64, width int) string {
	if len(barHeights) == 0 || width <= 0 {
		return ""
	}

	stride := len(barHeights) / width
	if stride == 0 {
		stride = 1
	}

	heights := make([]float64, 0, width)
	for i := 0; i < len(barHeights) && len(heights) < width; i += stride {
		h := barHeights[i]
		if h < 0 {
			h = 0
		} else if h > 1 {
			h = 1
		}
		heights = append(heights, h)
	}

	var top, bottom strings.Builder
	for _, h := range heights {
		style := lipgloss.NewStyle().Foreground(spectrumColors[scaleIndex(h, len(spectrumColors))])

		// Top row shows the portion above half height
		if h > 0.5 {
			top.WriteString(style.Render(string(blocks[scaleIndex((h-0.5)*2, len(blocks))])))
		} else {
			top.WriteString(" ")
		}

		if h >= 0.5 {
			bottom.WriteString(style.Render(string(blocks[len(blocks)-1])))
		} else {
			bottom.WriteString(style.Render(string(blocks[scaleIndex(h*2, len(blocks))])))
		}
	}

	return top.String() + "\n" + bottom.String()
}

// scaleIndex maps v in 0.0-1.0 to an index in [0, n).
func scaleIndex(v float64, n int) int {
	i := int(v * float64(n-1))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
