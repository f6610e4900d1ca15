// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/gense-cli/gense/color"
	"github.com/gense-cli/gense/icon"
	"github.com/gense-cli/gense/key"
	"github.com/gense-cli/gense/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case historyState:
		output = b.viewHistory()
	case sourcesState:
		output = b.viewSources()
	case searchState:
		output = b.viewSearch()
	case programsState:
		output = b.viewPrograms()
	case formatsState:
		output = b.viewFormats()
	case watchState:
		output = b.viewWatch()
	case postWatchState:
		output = b.viewPostWatch()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewHistory() string {
	return listExtraPaddingStyle.Render(b.historyC.View())
}

func (b *statefulBubble) viewSources() string {
	return listExtraPaddingStyle.Render(b.sourcesC.View())
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title(icon.Get(icon.Search) + " Search Programs"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok && viper.GetBool(key.SearchShowQuerySuggestions) {
		lines = append(lines, "", style.Faint(fmt.Sprintf("tab: %s", suggestion)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewPrograms() string {
	return listExtraPaddingStyle.Render(b.programsC.View())
}

func (b *statefulBubble) viewFormats() string {
	return listExtraPaddingStyle.Render(b.formatsC.View())
}

func (b *statefulBubble) viewPostWatch() string {
	return listExtraPaddingStyle.Render(b.postWatchC.View())
}

func (b *statefulBubble) viewWatch() string {
	var programTitle string

	if b.selectedProgram != nil {
		programTitle = b.selectedProgram.Title
	}

	lines := []string{
		style.Title("Now Playing"),
		"",
		style.Truncate(b.width)(fmt.Sprintf(icon.Get(icon.Play)+" %s", style.Fg(color.Purple)(programTitle))),
	}

	if b.resolution != nil && len(b.resolution.Subtitles) > 0 {
		languages := maps.Keys(b.resolution.Subtitles)
		slices.Sort(languages)
		lines = append(lines,
			style.Truncate(b.width)(style.Faint(fmt.Sprintf(icon.Get(icon.Subtitle)+" Subtitles: %s", strings.Join(languages, ", ")))),
		)
	}

	lines = append(lines,
		"",
		style.Truncate(b.width)(b.spinnerC.View()+" "+b.progressStatus),
	)

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Critical Failure: %v", b.lastError.Error()))
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			errorMsg,
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
