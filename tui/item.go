// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gense-cli/gense/history"
	"github.com/gense-cli/gense/icon"
	"github.com/gense-cli/gense/key"
	"github.com/gense-cli/gense/provider"
	"github.com/gense-cli/gense/source"
	"github.com/gense-cli/gense/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
)

// listItem implements the list.Item interface, wrapping various domain models for terminal display.
type listItem struct {
	internal interface{}
	marked   bool
}

func (t *listItem) toggleMark() {
	t.marked = !t.marked
}

func (t *listItem) getMark() string {
	switch t.internal.(type) {
	case *provider.Provider:
		return lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Mark))
	default:
		return ""
	}
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case *source.Program:
		title = e.Title
	case *source.Format:
		title = e.String()
	case *history.SavedProgram:
		title = e.Title
	case string:
		title = e
	default:
		title = t.FilterValue()
	}

	if title != "" && t.marked {
		title = fmt.Sprintf("%s %s", title, t.getMark())
	}

	return
}

// Description retrieves the secondary metadata line for the list item.
func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case *source.Program:
		var parts []string

		if e.Live {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.Red).Render(icon.Get(icon.Live)+" Live"))
		} else if e.Duration > 0 {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.FaintColor).Render(humanDuration(e.Duration)))
		}

		if e.Description != "" {
			parts = append(parts, firstLine(e.Description))
		}

		if viper.GetBool(key.TUIShowURLs) && e.PageURL != "" {
			parts = append(parts, style.Faint(e.PageURL))
		}

		description = strings.Join(parts, " • ")

	case *source.Format:
		var parts []string

		if e.Width > 0 && e.Height > 0 {
			parts = append(parts, fmt.Sprintf("%dx%d", e.Width, e.Height))
		}
		if e.Bitrate > 0 {
			parts = append(parts, fmt.Sprintf("%d kbps", e.Bitrate))
		}
		if e.FPS > 0 {
			parts = append(parts, fmt.Sprintf("%g fps", e.FPS))
		}
		if e.AudioOnly() {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.WarningColor).Render("audio only"))
		}
		if e.Language != "" {
			parts = append(parts, e.Language)
		}

		description = strings.Join(parts, " • ")

	case *history.SavedProgram:
		var parts []string

		if e.Live {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.Red).Render(icon.Get(icon.Live)+" Live"))
		} else if e.Position > 0 {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.Yellow).Render(formatPosition(e.Position)+" in"))
		}

		if e.FormatID != "" {
			parts = append(parts, e.FormatID)
		}

		parts = append(parts, style.Faint(time.Unix(e.WatchedAt, 0).Format("Jan 2 15:04")))

		description = strings.Join(parts, " • ")

	case *provider.Provider:
		sb := strings.Builder{}
		if e.IsCustom {
			sb.WriteString(icon.Get(icon.Lua) + " Lua Extension")
		} else {
			sb.WriteString(icon.Get(icon.Go) + " Built-in Provider")
		}

		if e.UsesHeadless {
			sb.WriteString(" (Requires Headless Chrome)")
		}

		description = sb.String()
	case string:
		description = ""
	}

	return
}

// FilterValue returns the string used for real-time list filtering and searching.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *source.Program:
		return e.Title
	case *source.Format:
		return e.ID
	case *history.SavedProgram:
		return e.Title
	case *provider.Provider:
		return e.Name
	case string:
		return e
	default:
		return ""
	}
}

// humanDuration renders a program length the way TV guides do.
func humanDuration(d time.Duration) string {
	minutes := int(d.Round(time.Minute).Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}

	if minutes%60 == 0 {
		return fmt.Sprintf("%d h", minutes/60)
	}
	return fmt.Sprintf("%d h %d min", minutes/60, minutes%60)
}

// formatPosition renders a playback offset in seconds as a clock value.
func formatPosition(seconds int64) string {
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i != -1 {
		return s[:i]
	}
	return s
}
