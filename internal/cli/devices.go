package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/linuxmatters/voiceactor/internal/device"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(SpotlightGold).
				Padding(0, 1)

	tableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	tableMutedStyle = lipgloss.NewStyle().
			Foreground(ProgramGray).
			Padding(0, 1)
)

// DeviceTable renders every device, inputs included. Devices without output
// channels are dimmed since they can never be selected for playback.
func DeviceTable(devices []device.Descriptor) string {
	rows := make([][]string, len(devices))
	for i, d := range devices {
		rows[i] = []string{
			strconv.Itoa(d.Index),
			d.Name,
			d.HostAPI,
			fmt.Sprintf("%.0f Hz", d.DefaultSampleRate),
			strconv.Itoa(d.MaxOutputChannels),
			strconv.Itoa(d.MaxInputChannels),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(CurtainRed)).
		Headers("#", "Name", "Host API", "Default Rate", "Out", "In").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if row >= 0 && row < len(devices) && devices[row].MaxOutputChannels == 0 {
				return tableMutedStyle
			}
			return tableCellStyle
		})

	return t.Render()
}

// PrintDevices writes the device listing to w.
func PrintDevices(w io.Writer, devices []device.Descriptor) {
	fmt.Fprintln(w, HeaderStyle.Render(fmt.Sprintf("Audio devices (%d)", len(devices))))
	if len(devices) == 0 {
		fmt.Fprintln(w, KeyStyle.Render("No audio devices found."))
		return
	}
	fmt.Fprintln(w, DeviceTable(devices))
}
