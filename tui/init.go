// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	"github.com/gense-cli/gense/key"
	"github.com/gense-cli/gense/provider"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
)

// Init initializes the terminal user interface, triggering initial data loads and script updates.
func (b *statefulBubble) Init() tea.Cmd {
	// Auto-load sources if DefaultSources config is set
	if names := viper.GetStringSlice(key.DefaultSources); b.state != historyState && len(names) != 0 {
		var providers []*provider.Provider

		for _, name := range names {
			p, ok := provider.Get(name)
			if !ok {
				b.raiseError(fmt.Errorf("provider %s not found", name))
				return nil
			}

			providers = append(providers, p)
		}

		// If exactly one source is loaded, inject it into the program list title
		if len(providers) == 1 {
			b.programsC.Title = fmt.Sprintf("Programs - %s", providers[0].Name)
		}

		b.setState(loadingState)
		return tea.Batch(b.startLoading(), b.loadSources(providers), b.waitForSourcesLoaded(), provider.UpdateScrapers())
	}

	return tea.Batch(textinput.Blink, b.loadProviders(), provider.UpdateScrapers())
}
