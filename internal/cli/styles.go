package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor   = CurtainRed
	accentColor    = SpotlightGold
	successColor   = lipgloss.Color("#00AA00") // Green
	mutedColor     = lipgloss.Color("#888888") // Gray
	highlightColor = lipgloss.Color("#FFFF00") // Yellow
	textColor      = lipgloss.Color("#FFFFFF") // White
)

// Styles
var (
	// Title style - bold curtain red
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// Subtitle style - muted gray
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// Section header style
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginTop(1).
			MarginBottom(1)

	// Success message style
	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	// Error message style
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// Highlight style for important values
	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlightColor)

	// Key-value pair styles
	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	// Box style for framed content
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)
)

const (
	appName    = "Voiceactor 🎙️"
	appTagline = "Play one clip on every speaker you name, all at once."
)

// PrintBanner prints the application banner
func PrintBanner() {
	fmt.Println(TitleStyle.Render(appName))
	fmt.Println(SubtitleStyle.Render(appTagline))
	fmt.Println()
}

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render(appName))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Println()
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Printf("%s %s\n", HighlightStyle.Render("Warning:"), message)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("%s %s\n", SuccessStyle.Render("✓"), message)
}

// PrintInfo prints an informational message
func PrintInfo(key, value string) {
	fmt.Printf("%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// PrintSection prints a section header
func PrintSection(title string) {
	fmt.Println(HeaderStyle.Render(title))
}

// FormatDuration formats a duration nicely
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatBytes formats bytes into human-readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatLevel formats a dBFS level, showing silence as -inf
func FormatLevel(db float64) string {
	if db < -200 {
		return "-inf dBFS"
	}
	return fmt.Sprintf("%.1f dBFS", db)
}

// PrintBox prints content in a styled box
func PrintBox(content string) {
	fmt.Println(BoxStyle.Render(content))
}

// SummaryLine is one device row in the playback summary.
type SummaryLine struct {
	Device  string
	Played  string
	Elapsed string
	Err     string
}

// PrintPlaybackSummary prints the per-device outcome in a box
func PrintPlaybackSummary(clip, duration string, lines []SummaryLine) {
	var b strings.Builder

	failed := 0
	for _, l := range lines {
		if l.Err != "" {
			failed++
		}
	}
	if failed == 0 {
		b.WriteString(SuccessStyle.Render("✓ Playback Complete!"))
	} else {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("✗ Playback failed on %d of %d devices", failed, len(lines))))
	}
	b.WriteString("\n\n")

	b.WriteString(KeyStyle.Render("Clip:     "))
	b.WriteString(ValueStyle.Render(clip))
	b.WriteString("\n")
	b.WriteString(KeyStyle.Render("Duration: "))
	b.WriteString(ValueStyle.Render(duration))
	b.WriteString("\n\n")

	b.WriteString(KeyStyle.Render("Devices:"))
	for _, l := range lines {
		b.WriteString("\n  ")
		if l.Err != "" {
			b.WriteString(ErrorStyle.Render("✗ "))
			b.WriteString(ValueStyle.Render(l.Device))
			b.WriteString(KeyStyle.Render(" " + l.Err))
			continue
		}
		b.WriteString(SuccessStyle.Render("✓ "))
		b.WriteString(ValueStyle.Render(l.Device))
		b.WriteString(KeyStyle.Render(fmt.Sprintf(" %s in %s", l.Played, l.Elapsed)))
	}

	PrintBox(b.String())
}
