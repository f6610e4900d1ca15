// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	"github.com/gense-cli/gense/history"
	"github.com/gense-cli/gense/icon"
	"github.com/gense-cli/gense/internal/ui"
	"github.com/gense-cli/gense/key"
	"github.com/gense-cli/gense/open"
	"github.com/gense-cli/gense/provider"
	"github.com/gense-cli/gense/query"
	"github.com/gense-cli/gense/source"
	"github.com/gense-cli/gense/style"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Process ephemeral UI notifications.
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = tea.Batch(cmd, uiCmd)
	}

	switch msg := msg.(type) {
	case provider.ScraperUpdatedMsg:
		// Provider updates are reloaded asynchronously.
		return b, tea.Batch(b.loadProviders(), ui.Notify("Provider scripts updated"))
	case watchDoneMsg:
		// The session can also end after the user already navigated
		// away; the position is recorded either way.
		b.stopLoading()
		b.saveProgress(msg.position)
		if b.state == watchState {
			b.newState(postWatchState)
			b.postWatchC.Select(0)
		}
		return b, nil
	case error:
		b.raiseError(msg)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			if b.currentPlayer != nil {
				_ = b.currentPlayer.Close()
			}
			return b, tea.Quit
		}

		// Input Guard: Ignore non-priority keys during asynchronous operations.
		if b.busy && b.state != watchState && b.state != errorState {
			return b, nil
		}

		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			onListBack := func(l *list.Model) tea.Cmd {
				l.ResetSelected()
				l.ResetFilter()
				return tea.Batch(cmd, l.NewStatusMessage(""))
			}

			switch b.state {
			case searchState:
				b.inputC.SetValue("")
			case programsState:
				if b.programsC.FilterState() != list.Unfiltered {
					b.programsC, cmd = b.programsC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.programsC)
			case formatsState:
				if b.formatsC.FilterState() != list.Unfiltered {
					b.formatsC, cmd = b.formatsC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.formatsC)
			case historyState:
				if b.historyC.FilterState() != list.Unfiltered {
					b.historyC, cmd = b.historyC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.historyC)
			case sourcesState:
				if b.sourcesC.FilterState() != list.Unfiltered {
					b.sourcesC, cmd = b.sourcesC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.sourcesC)
			case watchState:
				if b.currentPlayer != nil {
					_ = b.currentPlayer.Close()
				}
			}

			b.previousState()
			b.stopLoading()
			return b, cmd
		}
	}

	switch b.state {
	case loadingState:
		return b.updateLoading(msg)
	case historyState:
		return b.updateHistory(msg)
	case sourcesState:
		return b.updateSources(msg)
	case searchState:
		return b.updateSearch(msg)
	case programsState:
		return b.updatePrograms(msg)
	case formatsState:
		return b.updateFormats(msg)
	case watchState:
		return b.updateWatch(msg)
	case postWatchState:
		return b.updatePostWatch(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds = make([]tea.Cmd, 0)
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.statesHistory.Len() > 0 {
				b.previousState()
			} else {
				return b, tea.Quit
			}
		}
	case restrictedMsg:
		// Region locks are an expected outcome. Surface the region set
		// instead of failing.
		b.stopLoading()
		b.previousState()
		notice := style.Fg(style.Red)(fmt.Sprintf("%s %s", icon.Get(icon.Lock), msg.err.Error()))
		return b, b.programsC.NewStatusMessage(notice)
	case []*source.Program:
		items := make([]list.Item, len(msg))
		for i, p := range msg {
			items[i] = &listItem{internal: p}
		}

		cmds = append(cmds, b.programsC.SetItems(items))
		b.newState(programsState)
		b.stopLoading()
	case []source.Source:
		b.selectedSources = msg

		if b.statesHistory.Peek() == historyState {
			b.newState(historyState)
			b.stopLoading()
			cmds = append(cmds, func() tea.Msg {
				return msg
			})
		} else {
			b.stopLoading()
			b.newState(searchState)
		}
	case *source.Resolution:
		b.resolution = msg

		if b.playAfterResolve {
			b.playAfterResolve = false

			format := b.pickFormat(msg)
			if format == nil {
				b.stopLoading()
				b.raiseError(fmt.Errorf("resolution of %s produced no formats", b.selectedProgram.Title))
				return b, nil
			}

			b.selectedFormat = format
			b.newState(watchState)
			return b, tea.Batch(b.playProgram(b.selectedProgram, format), b.startLoading())
		}

		cmds = append(cmds, b.setFormatItems(msg))
		b.newState(formatsState)
		b.stopLoading()
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, tea.Batch(append(cmds, cmd)...)
}

// pickFormat chooses the format to autoplay: the one a history entry
// was watched with when resuming, the aggregate's preference otherwise.
func (b *statefulBubble) pickFormat(resolution *source.Resolution) *source.Format {
	if b.resumeFormatID != "" {
		wanted := b.resumeFormatID
		b.resumeFormatID = ""

		for _, f := range resolution.Formats {
			if f.ID == wanted {
				return f
			}
		}
	}

	best, ok := resolution.Best()
	if !ok {
		return nil
	}
	return best
}

// setFormatItems fills the format list and pre-selects the preferred one.
func (b *statefulBubble) setFormatItems(resolution *source.Resolution) tea.Cmd {
	items := make([]list.Item, len(resolution.Formats))
	for i, f := range resolution.Formats {
		items[i] = &listItem{internal: f}
	}

	cmd := b.formatsC.SetItems(items)

	if best, ok := resolution.Best(); ok {
		for i, f := range resolution.Formats {
			if f == best {
				b.formatsC.Select(i)
				break
			}
		}
	}

	return cmd
}

func (b *statefulBubble) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case []source.Source: // Sources loaded for a history entry
		b.selectedSources = msg
		selected := b.historyC.SelectedItem().(*listItem).internal.(*history.SavedProgram)

		program := &source.Program{
			ID:      selected.ProgramID,
			Slug:    selected.Slug,
			PageURL: selected.PageURL,
			Title:   selected.Title,
			Live:    selected.Live,
			Source:  b.selectedSources[0],
		}

		b.selectedProgram = program
		b.resumeFormatID = selected.FormatID
		if !selected.Live {
			b.resumePosition = selected.Position
		}
		b.playAfterResolve = true

		b.progressStatus = fmt.Sprintf("Resolving %s...", program.Title)
		b.newState(loadingState)
		return b, tea.Batch(b.resolvePrograms(program), b.waitForResolution(), b.startLoading())

	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.historyC.Items()); n > 0 && b.historyC.Index() == 0 {
				b.historyC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			p := b.historyC.Items()
			if len(p) > 0 && b.historyC.Index() == len(p)-1 {
				b.historyC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.historyC.SelectedItem() != nil {
				entry := b.historyC.SelectedItem().(*listItem).internal.(*history.SavedProgram)
				if entry.PageURL == "" {
					return b, b.historyC.NewStatusMessage("No page URL recorded for this entry")
				}
				if err := open.Start(entry.PageURL); err != nil {
					b.raiseError(err)
				}
			}
		case bubblesKey.Matches(msg, b.keymap.remove):
			if b.historyC.SelectedItem() != nil {
				entry := b.historyC.SelectedItem().(*listItem).internal.(*history.SavedProgram)
				_ = history.Remove(entry)
				cmd, err := b.loadHistory()
				if err != nil {
					b.raiseError(err)
					return b, nil
				}
				return b, cmd
			}
		case bubblesKey.Matches(msg, b.keymap.selectOne, b.keymap.confirm):
			if b.historyC.SelectedItem() != nil {
				selected := b.historyC.SelectedItem().(*listItem).internal.(*history.SavedProgram)

				p, ok := provider.Get(selected.SourceID)
				if !ok {
					err := fmt.Errorf("provider %s not found (was used for %s)", selected.SourceID, selected.Title)
					b.raiseError(err)
					return b, nil
				}

				b.newState(loadingState)
				return b, tea.Batch(b.startLoading(), b.loadSources([]*provider.Provider{p}), b.waitForSourcesLoaded())
			}
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}

	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateSources(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.sourcesC.Items()); n > 0 && b.sourcesC.Index() == 0 {
				b.sourcesC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			p := b.sourcesC.Items()
			if n := len(p); n > 0 && b.sourcesC.Index() == n-1 {
				b.sourcesC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.selectAll):
			for _, item := range b.sourcesC.Items() {
				item := item.(*listItem)
				item.marked = true
				b.selectedProviders[item.internal.(*provider.Provider)] = struct{}{}
			}
		case bubblesKey.Matches(msg, b.keymap.clearSelection):
			for _, item := range b.sourcesC.Items() {
				item := item.(*listItem)
				item.marked = false
				delete(b.selectedProviders, item.internal.(*provider.Provider))
			}
		case bubblesKey.Matches(msg, b.keymap.selectOne):
			if b.sourcesC.SelectedItem() == nil {
				break
			}
			item := b.sourcesC.SelectedItem().(*listItem)
			p := item.internal.(*provider.Provider)

			if item.marked {
				delete(b.selectedProviders, p)
			} else {
				b.selectedProviders[p] = struct{}{}
			}
			item.toggleMark()
		case bubblesKey.Matches(msg, b.keymap.channels):
			if b.sourcesC.SelectedItem() == nil {
				break
			}
			p := b.sourcesC.SelectedItem().(*listItem).internal.(*provider.Provider)

			b.programsC.Title = fmt.Sprintf("Live - %s", p.Name)
			b.progressStatus = fmt.Sprintf("Loading channels of %s...", p.Name)
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.loadChannels(p), b.waitForPrograms())
		case bubblesKey.Matches(msg, b.keymap.saveAsDefault):
			if b.sourcesC.SelectedItem() == nil {
				break
			}
			item := b.sourcesC.SelectedItem().(*listItem)
			p := item.internal.(*provider.Provider)

			viper.Set(key.DefaultSources, []string{p.Name})
			if err := viper.WriteConfig(); err != nil {
				b.raiseError(err)
				break
			}

			// Update the results header to indicate the currently active provider.
			b.programsC.Title = fmt.Sprintf("Programs - %s", p.Name)
			b.sourcesC.NewStatusMessage(fmt.Sprintf("Saved %s as default source", p.Name))

			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.loadSources([]*provider.Provider{p}), b.waitForSourcesLoaded())

		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.sourcesC.SelectedItem() == nil {
				break
			}
			item := b.sourcesC.SelectedItem().(*listItem)

			if len(b.selectedProviders) == 0 {
				p := item.internal.(*provider.Provider)
				b.programsC.Title = fmt.Sprintf("Programs - %s", p.Name)
				b.progressStatus = fmt.Sprintf("Loading %s...", p.Name)
				b.newState(loadingState)
				return b, tea.Batch(b.startLoading(), b.loadSources([]*provider.Provider{p}), b.waitForSourcesLoaded())
			}

			b.programsC.Title = "Programs"
			b.progressStatus = "Loading selected providers..."
			b.newState(loadingState)

			providers := make([]*provider.Provider, 0, len(b.selectedProviders))
			for p := range b.selectedProviders {
				providers = append(providers, p)
			}
			return b, tea.Batch(b.startLoading(), b.loadSources(providers), b.waitForSourcesLoaded())
		}
	}

	b.sourcesC, cmd = b.sourcesC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.changeSource):
			b.newState(sourcesState)
			return b, b.loadProviders()
		case bubblesKey.Matches(msg, b.keymap.confirm) && b.inputC.Value() != "":
			b.progressStatus = fmt.Sprintf("Searching for %s...", b.inputC.Value())
			b.startLoading()
			b.newState(loadingState)
			go query.Remember(b.inputC.Value(), 1)
			return b, tea.Batch(b.searchPrograms(b.inputC.Value()), b.waitForPrograms(), b.spinnerC.Tick)
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
			b.inputC.SetValue(b.searchSuggestion.MustGet())
			b.searchSuggestion = mo.None[string]()
			b.inputC.SetCursor(len(b.inputC.Value()))
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}

	b.inputC, cmd = b.inputC.Update(msg)

	if b.inputC.Value() != "" {
		if suggestion, ok := query.Suggest(b.inputC.Value()).Get(); ok && suggestion != b.inputC.Value() {
			b.searchSuggestion = mo.Some(suggestion)
		} else {
			b.searchSuggestion = mo.None[string]()
		}
	} else if b.searchSuggestion.IsPresent() {
		b.searchSuggestion = mo.None[string]()
	}

	return b, cmd
}

func (b *statefulBubble) updatePrograms(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.changeSource):
			b.newState(sourcesState)
			return b, b.loadProviders()
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.programsC.Items()); n > 0 && b.programsC.Index() == 0 {
				b.programsC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.programsC.Items()); n > 0 && b.programsC.Index() == n-1 {
				b.programsC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.programsC.SelectedItem() == nil {
				break
			}
			program := b.programsC.SelectedItem().(*listItem).internal.(*source.Program)
			if program.PageURL == "" {
				return b, b.programsC.NewStatusMessage("No page URL for this program")
			}
			if err := open.Start(program.PageURL); err != nil {
				b.raiseError(err)
			}
		case bubblesKey.Matches(msg, b.keymap.formats):
			if b.programsC.SelectedItem() == nil {
				break
			}
			program := b.programsC.SelectedItem().(*listItem).internal.(*source.Program)
			return b, b.startResolve(program, false)
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.programsC.SelectedItem() == nil {
				break
			}
			program := b.programsC.SelectedItem().(*listItem).internal.(*source.Program)
			go query.Remember(program.Title, 2)
			return b, b.startResolve(program, viper.GetBool(key.TUIPlayOnEnter))
		}
	}

	b.programsC, cmd = b.programsC.Update(msg)
	return b, cmd
}

// startResolve kicks off resolution of a program, optionally playing
// the preferred format as soon as it is available.
func (b *statefulBubble) startResolve(program *source.Program, playDirectly bool) tea.Cmd {
	b.selectedProgram = program
	b.resolution = nil
	b.playAfterResolve = playDirectly

	b.progressStatus = fmt.Sprintf("Resolving %s...", program.Title)
	b.newState(loadingState)
	return tea.Batch(b.startLoading(), b.resolvePrograms(program), b.waitForResolution())
}

func (b *statefulBubble) updateFormats(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.formatsC.Items()); n > 0 && b.formatsC.Index() == 0 {
				b.formatsC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.formatsC.Items()); n > 0 && b.formatsC.Index() == n-1 {
				b.formatsC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.formatsC.SelectedItem() == nil {
				break
			}
			format := b.formatsC.SelectedItem().(*listItem).internal.(*source.Format)
			b.selectedFormat = format
			b.newState(watchState)
			return b, tea.Batch(b.playProgram(b.selectedProgram, format), b.startLoading())
		}
	}

	b.formatsC, cmd = b.formatsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateWatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.currentPlayer != nil {
				_ = b.currentPlayer.Close()
			}
			b.previousState()
			return b, b.stopLoading()
		}
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updatePostWatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.postWatchC.Items()); n > 0 && b.postWatchC.Index() == 0 {
				b.postWatchC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.postWatchC.Items()); n > 0 && b.postWatchC.Index() == n-1 {
				b.postWatchC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.replay):
			if b.selectedProgram != nil && b.selectedFormat != nil {
				b.resumePosition = 0
				b.newState(watchState)
				return b, tea.Batch(b.playProgram(b.selectedProgram, b.selectedFormat), b.startLoading())
			}
		case bubblesKey.Matches(msg, b.keymap.confirm, b.keymap.selectOne):
			if b.postWatchC.SelectedItem() == nil {
				break
			}
			selection := b.postWatchC.SelectedItem().(*listItem).internal.(string)
			switch selection {
			case "Replay":
				if b.selectedProgram != nil && b.selectedFormat != nil {
					b.resumePosition = 0
					b.newState(watchState)
					return b, tea.Batch(b.playProgram(b.selectedProgram, b.selectedFormat), b.startLoading())
				}
				b.previousState()

			case "Choose Format":
				if b.resolution != nil {
					cmd = b.setFormatItems(b.resolution)
					b.newState(formatsState)
					return b, cmd
				}
				if b.selectedProgram != nil {
					return b, b.startResolve(b.selectedProgram, false)
				}
				b.previousState()

			case "Back":
				b.previousState()
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
		}
	}

	b.postWatchC, cmd = b.postWatchC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}
	return b, cmd
}
