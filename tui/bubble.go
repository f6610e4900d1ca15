// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gense-cli/gense/constant"
	"github.com/gense-cli/gense/icon"
	"github.com/gense-cli/gense/internal/ui"
	"github.com/gense-cli/gense/key"
	"github.com/gense-cli/gense/player"
	"github.com/gense-cli/gense/provider"
	"github.com/gense-cli/gense/source"
	"github.com/gense-cli/gense/style"
	"github.com/gense-cli/gense/util"
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// statefulBubble encapsulates the comprehensive application state, including component models and workflow tracking.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool
	busy          bool // Protects against rapid input during async ops

	keymap *statefulKeymap

	// components
	spinnerC   spinner.Model
	inputC     textinput.Model
	historyC   list.Model
	sourcesC   list.Model
	programsC  list.Model
	formatsC   list.Model
	postWatchC list.Model
	helpC      help.Model

	selectedProviders map[*provider.Provider]struct{}
	selectedSources   []source.Source
	selectedProgram   *source.Program
	selectedFormat    *source.Format
	resolution        *source.Resolution

	sourcesLoadedChannel chan []source.Source
	foundProgramsChannel chan []*source.Program
	resolutionChannel    chan *source.Resolution
	errorChannel         chan error

	progressStatus string

	// playAfterResolve skips the format list and plays the preferred
	// format as soon as a resolution arrives.
	playAfterResolve bool
	// resumeFormatID picks the same format a history entry was watched
	// with. Consumed on the next resolution.
	resumeFormatID string
	// resumePosition seeds mpv's start offset. Consumed on the next
	// playback.
	resumePosition int64

	currentPlayer player.Player
	lastError     error

	width, height    int
	searchSuggestion mo.Option[string]
	notifier         *ui.Model

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState facilitates an idempotent transition to a target state, recording the previous state in the navigation history when appropriate.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	// Do not push these states to history
	if !lo.Contains([]state{
		loadingState,
		watchState,
	}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		s := b.statesHistory.Pop()
		b.setState(s)
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	styledWidth := width - x
	styledHeight := height - y

	listWidth := width - xx
	listHeight := height - yy

	b.historyC.SetSize(listWidth, listHeight)
	b.historyC.Help.Width = listWidth

	b.sourcesC.SetSize(listWidth, listHeight)
	b.sourcesC.Help.Width = listWidth

	b.programsC.SetSize(listWidth, listHeight)
	b.programsC.Help.Width = listWidth

	b.formatsC.SetSize(listWidth, listHeight)
	b.formatsC.Help.Width = listWidth

	b.postWatchC.SetSize(listWidth, listHeight)
	b.postWatchC.Help.Width = listWidth

	b.width = styledWidth
	b.height = styledHeight
	b.helpC.Width = listWidth
}

// startLoading enters a concurrent loading state, initializing visual indicators across child components.
func (b *statefulBubble) startLoading() tea.Cmd {
	b.loading = true
	b.busy = true
	return tea.Batch(b.programsC.StartSpinner(), b.formatsC.StartSpinner(), b.spinnerC.Tick)
}

// stopLoading exits the loading state and synchronizes child component visual indicators.
func (b *statefulBubble) stopLoading() tea.Cmd {
	b.loading = false
	b.busy = false
	b.programsC.StopSpinner()
	b.formatsC.StopSpinner()
	return nil
}

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,

		sourcesLoadedChannel: make(chan []source.Source),
		foundProgramsChannel: make(chan []*source.Program),
		resolutionChannel:    make(chan *source.Resolution),
		errorChannel:         make(chan error),

		selectedProviders: make(map[*provider.Provider]struct{}),

		notifier: &ui.Model{},
	}

	type listOptions struct {
		TitleStyle mo.Option[lipgloss.Style]
	}

	makeList := func(title string, description bool, options *listOptions) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		if titleStyle, ok := options.TitleStyle.Get(); ok {
			listC.Styles.Title = titleStyle
		}
		listC.StatusMessageLifetime = time.Hour * 999
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Search Programs (v%s)", constant.Version)
	bubble.inputC.CharLimit = 60
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPromptString)

	bubble.historyC = makeList(strings.TrimSpace(icon.Get(icon.History)+" History"), true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Yellow).Padding(0, 1),
		),
	})
	bubble.historyC.SetStatusBarItemName("entry", "entries")

	bubble.sourcesC = makeList("Providers", false, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1),
		),
	})
	bubble.sourcesC.SetStatusBarItemName("provider", "providers")

	bubble.programsC = makeList("Programs", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Lavender).Padding(0, 1),
		),
	})
	bubble.programsC.SetStatusBarItemName("program", "programs")

	bubble.formatsC = makeList("Formats", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Peach).Padding(0, 1),
		),
	})
	bubble.formatsC.SetStatusBarItemName("format", "formats")

	bubble.postWatchC = makeList("What Now", false, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Mauve).Padding(0, 1),
		),
	})
	bubble.postWatchC.SetItems([]list.Item{
		&listItem{internal: "Replay"},
		&listItem{internal: "Choose Format"},
		&listItem{internal: "Back"},
	})
	bubble.postWatchC.SetStatusBarItemName("option", "options")

	bubble.options = options

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.inputC.Focus()

	return &bubble
}
