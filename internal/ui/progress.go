package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/voiceactor/internal/audio"
	"github.com/linuxmatters/voiceactor/internal/cli"
	"github.com/linuxmatters/voiceactor/internal/playback"
)

// Phase represents the current playback phase
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseComplete
)

// SpectrumFunc returns bar heights (0.0-1.0) for the clip at a frame offset.
type SpectrumFunc func(frame int) []float64

// StreamProgress reports bytes written to one output stream.
type StreamProgress struct {
	Stream  int
	Written int
	Total   int
}

// PlaybackComplete signals that every stream has finished.
type PlaybackComplete struct {
	Results []playback.Result
	Elapsed time.Duration
	Err     error
}

// tickMsg drives the spectrum refresh while playing
type tickMsg time.Time

// progressQuitMsg is sent when it's time to quit after showing completion
type progressQuitMsg struct{}

const (
	refreshInterval = 100 * time.Millisecond
	spectrumWidth   = 64
)

// Session describes what is being played.
type Session struct {
	Clip     string
	Format   audio.Format
	Profile  audio.Profile
	Devices  []string
	Spectrum SpectrumFunc
}

// Model implements the Bubbletea model for playback progress
type Model struct {
	progressBar progress.Model
	phase       Phase
	session     Session

	written  []int
	total    int
	bars     []float64
	complete *PlaybackComplete

	startTime       time.Time
	width           int
	completionDelay time.Duration
	interrupted     bool
}

// NewModel creates a new playback progress model
func NewModel(session Session) *Model {
	// Stage gradient: curtain red → spotlight gold
	p := progress.New(
		progress.WithGradient(string(cli.CurtainRed), string(cli.SpotlightGold)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return &Model{
		progressBar:     p,
		phase:           PhasePlaying,
		session:         session,
		written:         make([]int, len(session.Devices)),
		startTime:       time.Now(),
		completionDelay: 1500 * time.Millisecond,
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the spectrum refresh
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressBar.Width = max(10, min(msg.Width-40, 50))
		return m, nil

	case StreamProgress:
		if msg.Stream >= 0 && msg.Stream < len(m.written) {
			m.written[msg.Stream] = msg.Written
		}
		m.total = msg.Total
		return m, nil

	case tickMsg:
		if m.phase != PhasePlaying {
			return m, nil
		}
		if m.session.Spectrum != nil {
			m.bars = m.session.Spectrum(m.currentFrame())
		}
		return m, tick()

	case PlaybackComplete:
		m.complete = &msg
		m.phase = PhaseComplete
		m.bars = nil
		return m, tea.Tick(m.completionDelay, func(time.Time) tea.Msg {
			return progressQuitMsg{}
		})

	case progressQuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.complete != nil {
			return m, tea.Quit
		}
		if msg.String() == "ctrl+c" {
			// Only the display stops; streams play out and are released
			m.interrupted = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// Interrupted reports whether the user closed the display before playback
// finished.
func (m *Model) Interrupted() bool {
	return m.interrupted
}

// currentFrame is the frame reached by the furthest-ahead stream.
func (m *Model) currentFrame() int {
	furthest := 0
	for _, w := range m.written {
		furthest = max(furthest, w)
	}
	frameSize := m.session.Format.FrameSize()
	if frameSize == 0 {
		return 0
	}
	return furthest / frameSize
}

// View renders the UI
func (m *Model) View() string {
	var s strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.SpotlightGold).
		Render("Voiceactor 🎙️")
	s.WriteString(title)
	s.WriteString("\n")

	label := fmt.Sprintf("Playing %s on %d %s", m.session.Clip, len(m.session.Devices), plural(len(m.session.Devices), "device", "devices"))
	s.WriteString(lipgloss.NewStyle().Foreground(cli.StageTeal).Render(label))
	s.WriteString("\n\n")

	m.renderStreams(&s)
	s.WriteString("\n")
	m.renderTiming(&s)
	s.WriteString("\n")
	m.renderAudioProfile(&s)

	if m.phase == PhasePlaying && len(m.bars) > 0 {
		s.WriteString("\n\n")
		s.WriteString(lipgloss.NewStyle().Foreground(cli.StageTeal).Render("Live Spectrum:"))
		s.WriteString("\n")
		s.WriteString(renderSpectrum(m.bars, min(spectrumWidth, max(10, m.width-10))))
	}

	if m.phase == PhaseComplete {
		s.WriteString("\n\n")
		s.WriteString(m.renderComplete())
	}

	border := cli.CurtainRed
	if m.phase == PhaseComplete {
		border = cli.StageTeal
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Render(s.String())
}

// CompletionSummary returns the final view for printing after the program exits.
// Returns empty string if playback is not complete.
func (m *Model) CompletionSummary() string {
	if m.complete == nil {
		return ""
	}
	return m.View()
}

func (m *Model) renderStreams(s *strings.Builder) {
	nameWidth := 0
	for _, name := range m.session.Devices {
		nameWidth = max(nameWidth, lipgloss.Width(name))
	}
	nameStyle := lipgloss.NewStyle().Width(nameWidth).Bold(true)

	for i, name := range m.session.Devices {
		percent := 0.0
		if m.total > 0 {
			percent = float64(m.written[i]) / float64(m.total)
		}
		if r := m.result(i); r != nil && r.Err == nil {
			percent = 1
		}

		s.WriteString(nameStyle.Render(name))
		s.WriteString("  ")
		s.WriteString(m.progressBar.ViewAs(percent))
		s.WriteString(fmt.Sprintf("  %3d%%", int(percent*100)))
		if r := m.result(i); r != nil && r.Err != nil {
			s.WriteString(lipgloss.NewStyle().Foreground(cli.CurtainRed).Render("  ✗ failed"))
		}
		s.WriteString("\n")
	}
}

func (m *Model) result(i int) *playback.Result {
	if m.complete == nil || i >= len(m.complete.Results) {
		return nil
	}
	return &m.complete.Results[i]
}

func (m *Model) renderTiming(s *strings.Builder) {
	elapsed := time.Since(m.startTime)
	if m.complete != nil {
		elapsed = m.complete.Elapsed
	}

	timing := fmt.Sprintf("Time: %s / %s  │  %s",
		formatDuration(elapsed),
		formatDuration(m.session.Profile.Duration),
		m.session.Format)
	s.WriteString(lipgloss.NewStyle().Faint(true).Render(timing))
	s.WriteString("\n")
}

func (m *Model) renderAudioProfile(s *strings.Builder) {
	labelStyle := lipgloss.NewStyle().Faint(true)
	headerStyle := lipgloss.NewStyle().Faint(true).Bold(true)
	p := m.session.Profile

	s.WriteString(headerStyle.Render("Audio"))
	s.WriteString(" │ ")
	s.WriteString(fmt.Sprintf("%.1fs", p.Duration.Seconds()))
	s.WriteString("  ")
	s.WriteString(labelStyle.Render("Peak:"))
	s.WriteString(" " + cli.FormatLevel(p.PeakDB()))
	s.WriteString("  ")
	s.WriteString(labelStyle.Render("RMS:"))
	s.WriteString(" " + cli.FormatLevel(p.RMSDB()))
	s.WriteString("  ")
	s.WriteString(labelStyle.Render("Range:"))
	s.WriteString(fmt.Sprintf(" %.1f dB", p.DynamicRange()))
}

func (m *Model) renderComplete() string {
	var s strings.Builder

	failed := 0
	for _, r := range m.complete.Results {
		if r.Err != nil {
			failed++
		}
	}

	if failed == 0 {
		s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(cli.SpotlightGold).Render("✓ Playback Complete!"))
	} else {
		s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(cli.CurtainRed).Render(
			fmt.Sprintf("✗ Playback failed on %d of %d devices", failed, len(m.complete.Results))))
	}
	s.WriteString("\n")

	dimLabel := lipgloss.NewStyle().Faint(true)
	for _, r := range m.complete.Results {
		s.WriteString("\n")
		if r.Err != nil {
			s.WriteString(fmt.Sprintf("%s %s", dimLabel.Render(r.Output.Device.Name+":"), r.Err))
			continue
		}
		s.WriteString(fmt.Sprintf("%s %s in %s",
			dimLabel.Render(r.Output.Device.Name+":"),
			cli.FormatBytes(int64(r.Written)),
			formatDuration(r.Elapsed)))
	}

	return s.String()
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(100 * time.Millisecond)
	minutes := int(d.Minutes())
	seconds := d.Seconds() - float64(minutes*60)
	return fmt.Sprintf("%d:%04.1f", minutes, seconds)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
