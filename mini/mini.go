// Package mini implements a lightweight, prompt-driven interface for
// program search and playback.
package mini

import (
	"os"

	"github.com/gense-cli/gense/source"
	"github.com/gense-cli/gense/util"
	"github.com/samber/lo"
)

var (
	truncateAt = 100
)

type Options struct {
	Continue bool
}

type mini struct {
	width, height int

	state         state
	statesHistory util.Stack[state]

	selectedSource source.Source

	cachedPrograms    map[string][]*source.Program
	cachedResolutions map[string]*source.Resolution

	query           string
	selectedProgram *source.Program
	selectedFormat  *source.Format

	resumePosition int64
}

func newMini() *mini {
	return &mini{
		statesHistory:     util.Stack[state]{},
		cachedPrograms:    make(map[string][]*source.Program),
		cachedResolutions: make(map[string]*source.Resolution),
	}
}

func (m *mini) previousState() {
	if m.statesHistory.Len() > 0 {
		m.setState(m.statesHistory.Pop())
	}
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	// Never navigate back into a finished playback session.
	if !lo.Contains([]state{watchState}, m.state) {
		m.statesHistory.Push(m.state)
	}

	m.setState(s)
}

func Run(options *Options) error {
	m := newMini()
	m.state = sourceSelectState
	if options.Continue {
		m.state = historySelectState
	}

	if w, h, err := util.TerminalSize(); err == nil {
		m.width, m.height = w, h
		truncateAt = w
	}

	for {
		if err := m.handleState(); err != nil {
			return err
		}
	}
}

func (m *mini) handleState() error {
	switch m.state {
	case historySelectState:
		return m.handleHistorySelectState()
	case sourceSelectState:
		return m.handleSourceSelectState()
	case searchState:
		return m.handleSearchState()
	case programSelectState:
		return m.handleProgramSelectState()
	case formatSelectState:
		return m.handleFormatSelectState()
	case watchState:
		return m.handleWatchState()
	case quitState:
		os.Exit(0)
	}

	return nil
}
