// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/gense-cli/gense/color"
	"github.com/gense-cli/gense/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
)

// statefulKeymap defines the keyboard interactions available within various application states.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	selectOne, selectAll, clearSelection,
	acceptSearchSuggestion,
	remove,
	confirm,
	openURL,
	play,
	formats,
	channels,
	back,
	filter,
	up, down, left, right,
	top, bottom,
	replay,
	saveAsDefault, changeSource,
	showHelp key.Binding
}

// setState updates the active keymap configuration to match the specified application state.
func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
		selectOne: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select one"),
		),
		selectAll: key.NewBinding(
			key.WithKeys("ctrl+a", "tab", "*"),
			key.WithHelp("tab", "select all"),
		),
		clearSelection: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "clear selection"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		openURL: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open page"),
		),
		play: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("play")),
		),
		formats: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "formats"),
		),
		channels: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "live channels"),
		),
		acceptSearchSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept search suggestion"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "left"),
		),
		right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "right"),
		),
		top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		replay: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "replay"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?", "help"),
		),
		saveAsDefault: key.NewBinding(
			key.WithKeys("S", "ctrl+s"),
			key.WithHelp("S", "save as default"),
		),
		changeSource: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "change source"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case loadingState:
		return to2(h(k.forceQuit, k.back))
	case historyState:
		resume := withDescription(k.confirm, "resume")
		return to2(h(resume, k.remove, k.openURL, k.back))
	case sourcesState:
		search := withDescription(k.confirm, "search with selected")
		return h(k.selectOne, k.selectAll, search, k.channels, k.saveAsDefault),
			h(k.selectOne, k.selectAll, k.clearSelection, search, k.channels, k.saveAsDefault)
	case searchState:
		return to2(h(k.confirm, k.acceptSearchSuggestion, k.changeSource, k.forceQuit))
	case programsState:
		return h(k.play, k.formats, k.changeSource, k.back),
			h(k.play, k.formats, k.openURL, k.changeSource, k.back)
	case formatsState:
		return to2(h(k.play, k.back))
	case watchState:
		return to2(h(k.back, k.forceQuit))
	case postWatchState:
		return to2(h(k.confirm, k.replay, k.back))
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:             k.up,
		CursorDown:           k.down,
		NextPage:             k.right,
		PrevPage:             k.left,
		GoToStart:            k.top,
		GoToEnd:              k.bottom,
		Filter:               k.filter,
		ClearFilter:          k.back,
		CancelWhileFiltering: k.back,
		AcceptWhileFiltering: k.confirm,
		ShowFullHelp:         k.showHelp,
		CloseFullHelp:        k.showHelp,
		Quit:                 k.quit,
		ForceQuit:            k.forceQuit,
	}
}

func withDescription(k key.Binding, description string) key.Binding {
	return key.NewBinding(
		key.WithKeys(k.Keys()...),
		key.WithHelp(k.Help().Key, description),
	)
}
