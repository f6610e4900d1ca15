// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gense-cli/gense/color"
	"github.com/gense-cli/gense/history"
	"github.com/gense-cli/gense/key"
	"github.com/gense-cli/gense/log"
	"github.com/gense-cli/gense/player"
	"github.com/gense-cli/gense/provider"
	"github.com/gense-cli/gense/resolver"
	"github.com/gense-cli/gense/source"
	"github.com/gense-cli/gense/style"
	"github.com/gense-cli/gense/util"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// watchDoneMsg reports a finished playback session and where it stopped.
type watchDoneMsg struct {
	position int64
}

// restrictedMsg reports a program the provider refuses to serve outside
// its home region. Rendered as an expected outcome, not a failure.
type restrictedMsg struct {
	err *resolver.RestrictedError
}

func (b *statefulBubble) loadProviders() tea.Cmd {
	providers := provider.Builtins()
	customProviders := provider.Customs()

	var items []list.Item
	for _, p := range providers {
		items = append(items, &listItem{
			internal: p,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return strings.Compare(items[i].FilterValue(), items[j].FilterValue()) < 0
	})

	var customItems []list.Item
	for _, p := range customProviders {
		customItems = append(customItems, &listItem{
			internal: p,
		})
	}
	sort.Slice(customItems, func(i, j int) bool {
		return strings.Compare(customItems[i].FilterValue(), customItems[j].FilterValue()) < 0
	})

	return b.sourcesC.SetItems(append(items, customItems...))
}

func (b *statefulBubble) loadHistory() (tea.Cmd, error) {
	saved, err := history.Get()
	if err != nil {
		return nil, err
	}

	// Most recently watched first.
	entries := lo.Values(saved)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].WatchedAt > entries[j].WatchedAt
	})

	var items []list.Item
	for _, e := range entries {
		items = append(items, &listItem{
			internal: e,
		})
	}

	return tea.Batch(b.historyC.SetItems(items), b.loadProviders()), nil
}

func (b *statefulBubble) loadSources(ps []*provider.Provider) tea.Cmd {
	return func() tea.Msg {
		b.progressStatus = "Initializing sources"

		var (
			sources = make([]source.Source, len(ps))
			wg      = sync.WaitGroup{}
			mutex   = sync.Mutex{}
			errs    []error
		)

		wg.Add(len(ps))
		for i, p := range ps {
			go func(i int, p *provider.Provider) {
				defer wg.Done()

				log.Info("loading source " + p.ID)
				s, err := p.Source()
				if err != nil {
					log.Error(err)
					mutex.Lock()
					errs = append(errs, err)
					mutex.Unlock()
					return
				}

				log.Info("source " + p.ID + " loaded")

				mutex.Lock()
				sources[i] = s
				mutex.Unlock()
			}(i, p)
		}

		wg.Wait()

		validSources := lo.Filter(sources, func(s source.Source, _ int) bool {
			return s != nil
		})

		// A partial failure still yields a usable session; only give up
		// when nothing loaded at all.
		if len(validSources) == 0 && len(ps) > 0 {
			if len(errs) > 0 {
				b.errorChannel <- errs[0]
			} else {
				b.errorChannel <- fmt.Errorf("failed to load any sources")
			}
			return nil
		}

		b.sourcesLoadedChannel <- validSources
		return nil
	}
}

func (b *statefulBubble) waitForSourcesLoaded() tea.Cmd {
	return func() tea.Msg {
		select {
		case res := <-b.sourcesLoadedChannel:
			return res
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

func (b *statefulBubble) searchPrograms(query string) tea.Cmd {
	return func() tea.Msg {
		log.Info("searching for " + query)
		b.progressStatus = fmt.Sprintf("Searching among %s", util.Quantify(len(b.selectedSources), "source", "sources"))

		var (
			programs = make([]*source.Program, 0)
			mutex    sync.Mutex
			wg       sync.WaitGroup
			errs     []error
		)

		wg.Add(len(b.selectedSources))
		for _, s := range b.selectedSources {
			go func(s source.Source) {
				defer wg.Done()
				found, err := s.Search(query)
				if err != nil {
					log.Error(err)
					mutex.Lock()
					errs = append(errs, err)
					mutex.Unlock()
					return
				}

				log.Infof("found %s from source %s", util.Quantify(len(found), "program", "programs"), s.Name())
				mutex.Lock()
				programs = append(programs, found...)
				mutex.Unlock()
			}(s)
		}

		wg.Wait()

		// One source failing should not hide the other's results.
		if len(programs) == 0 && len(errs) > 0 {
			b.errorChannel <- errs[0]
			return nil
		}

		// Interleave multi-source results by their per-source rank.
		sort.SliceStable(programs, func(i, j int) bool {
			return programs[i].Index < programs[j].Index
		})

		log.Infof("found %d programs from %d sources", len(programs), len(b.selectedSources))
		b.foundProgramsChannel <- programs
		return nil
	}
}

func (b *statefulBubble) waitForPrograms() tea.Cmd {
	return func() tea.Msg {
		select {
		case found := <-b.foundProgramsChannel:
			return found
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

func (b *statefulBubble) loadChannels(p *provider.Provider) tea.Cmd {
	return func() tea.Msg {
		log.Info("loading live channels of " + p.ID)

		s, err := p.Source()
		if err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		channels, err := s.ChannelsOf()
		if err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		log.Infof("found %s", util.Quantify(len(channels), "channel", "channels"))

		b.selectedSources = []source.Source{s}
		b.foundProgramsChannel <- channels
		return nil
	}
}

func (b *statefulBubble) resolvePrograms(program *source.Program) tea.Cmd {
	return func() tea.Msg {
		log.Info("resolving " + program.Title)
		b.progressStatus = fmt.Sprintf("Resolving %s", style.Fg(color.Purple)(program.Title))

		resolution, err := provider.Resolve(program)
		if err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		log.Infof("resolved %s", util.Quantify(len(resolution.Formats), "format", "formats"))
		b.resolutionChannel <- resolution
		return nil
	}
}

func (b *statefulBubble) waitForResolution() tea.Cmd {
	return func() tea.Msg {
		select {
		case resolution := <-b.resolutionChannel:
			return resolution
		case err := <-b.errorChannel:
			var restricted *resolver.RestrictedError
			if errors.As(err, &restricted) {
				return restrictedMsg{err: restricted}
			}

			b.lastError = err
			return err
		}
	}
}

// playProgram launches the configured player and blocks inside the
// command goroutine until the session ends.
func (b *statefulBubble) playProgram(program *source.Program, format *source.Format) tea.Cmd {
	return func() tea.Msg {
		title := program.Title
		b.progressStatus = fmt.Sprintf("Watching %s", style.Fg(color.Purple)(title))

		startAt := b.resumePosition
		b.resumePosition = 0

		request := &player.Request{
			URL:       format.URL,
			Title:     title,
			Subtitles: b.subtitleTracks(program),
			StartAt:   float64(startAt),
		}

		if b.currentPlayer == nil {
			b.currentPlayer = player.New()
		}

		log.Infof("playing %s (%s)", title, format.ID)
		position, err := player.Run(b.currentPlayer, request)
		b.currentPlayer = nil
		if err != nil {
			log.Errorf("playback failed: %v", err)
			return fmt.Errorf("playback failed: %w", err)
		}

		return watchDoneMsg{position: position}
	}
}

// subtitleTracks picks the subtitle URLs to side-load, preferring the
// configured language over the source's default one.
func (b *statefulBubble) subtitleTracks(program *source.Program) []string {
	if b.resolution == nil {
		return nil
	}

	language := viper.GetString(key.ResolverLanguage)
	if language == "" {
		language = program.Source.Locale().DefaultLanguage
	}

	return lo.Map(b.resolution.SubtitlesFor(language), func(s *source.Subtitle, _ int) string {
		return s.URL
	})
}

// saveProgress records the finished session. Live positions are
// meaningless, so channels are stored at zero.
func (b *statefulBubble) saveProgress(position int64) {
	if !viper.GetBool(key.HistorySaveOnWatch) {
		return
	}

	program := b.selectedProgram
	if program == nil || b.selectedFormat == nil {
		return
	}

	if program.Live {
		position = 0
	}

	if err := history.Save(program, b.selectedFormat.ID, position); err != nil {
		log.Warnf("failed to save history: %v", err)
	}
}
