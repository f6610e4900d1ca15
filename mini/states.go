package mini

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gense-cli/gense/history"
	"github.com/gense-cli/gense/key"
	"github.com/gense-cli/gense/player"
	"github.com/gense-cli/gense/provider"
	"github.com/gense-cli/gense/resolver"
	"github.com/gense-cli/gense/source"
	"github.com/gense-cli/gense/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type state int

const (
	searchState state = iota + 1
	programSelectState
	sourceSelectState
	formatSelectState
	watchState
	historySelectState
	quitState
)

func (m *mini) handleSourceSelectState() error {
	var err error

	if names := viper.GetStringSlice(key.DefaultSources); len(names) != 0 {
		p, ok := provider.Get(names[0])
		if !ok {
			return fmt.Errorf("unknown source \"%s\"", names[0])
		}

		m.selectedSource, err = p.Source()
		if err != nil {
			return err
		}
	} else {
		var providers []*provider.Provider
		providers = append(providers, provider.Builtins()...)
		providers = append(providers, provider.Customs()...)

		slices.SortFunc(providers, func(a, b *provider.Provider) int {
			return strings.Compare(a.String(), b.String())
		})

		title("Select Source")
		b, p, err := menu(providers)
		if err != nil {
			return err
		}

		if quit.eq(b) {
			m.newState(quitState)
			return nil
		}

		erase := progress("Initializing Source..")
		m.selectedSource, err = p.Source()
		if err != nil {
			return err
		}
		erase()
	}

	m.newState(searchState)
	return nil
}

func (m *mini) handleSearchState() error {
	var searchLoop func() error
	title("Search Programs")

	searchLoop = func() error {
		in, err := getInput(func(s string) bool {
			return s != ""
		})

		if err != nil {
			return err
		}

		query := in.value

		erase := progress("Searching Query..")
		programs, err := m.selectedSource.Search(query)
		erase()
		if err != nil {
			return err
		}

		max := lo.Min([]int{len(programs), viper.GetInt(key.MiniSearchLimit)})
		m.cachedPrograms[query] = programs[:max]

		if len(m.cachedPrograms[query]) == 0 {
			fail("No search results found")
			return searchLoop()
		}

		m.query = query
		m.newState(programSelectState)
		return nil
	}

	return searchLoop()
}

func (m *mini) handleProgramSelectState() error {
	title("Query Results >>")
	b, p, err := menu(m.cachedPrograms[m.query], search)
	if err != nil {
		return err
	}

	switch {
	case quit.eq(b):
		m.newState(quitState)
		return nil
	case search.eq(b):
		m.newState(searchState)
		return nil
	}

	m.selectedProgram = p
	m.newState(formatSelectState)
	return nil
}

func (m *mini) handleFormatSelectState() error {
	program := m.selectedProgram

	resolution, ok := m.cachedResolutions[program.ID]
	if !ok {
		erase := progress("Resolving Streams..")
		r, err := provider.Resolve(program)
		erase()

		var restricted *resolver.RestrictedError
		switch {
		case errors.As(err, &restricted):
			fail(restricted.Error())
			m.selectedProgram = nil
			m.newState(programSelectState)
			return nil
		case err != nil:
			return err
		}

		m.cachedResolutions[program.ID] = r
		resolution = r
	}

	if len(resolution.Formats) == 0 {
		fail("No playable formats found")
		m.selectedProgram = nil
		m.newState(programSelectState)
		return nil
	}

	best, _ := resolution.Best()
	title(fmt.Sprintf("Select Format (best: %s)", best.ID))
	b, f, err := menu(resolution.Formats, back)
	if err != nil {
		return err
	}

	switch {
	case quit.eq(b):
		m.newState(quitState)
		return nil
	case back.eq(b):
		m.previousState()
		return nil
	}

	m.selectedFormat = f
	m.newState(watchState)
	return nil
}

func (m *mini) handleWatchState() error {
	var (
		program    = m.selectedProgram
		format     = m.selectedFormat
		resolution = m.cachedResolutions[program.ID]
	)

	var playLoop func() error
	playLoop = func() error {
		util.ClearScreen()
		fmt.Printf("Playing %s...\n", program.Title)

		request := &player.Request{
			URL:       format.URL,
			Title:     program.Title,
			Subtitles: subtitleTracks(program, resolution),
			StartAt:   float64(m.resumePosition),
		}
		m.resumePosition = 0

		position, err := player.Run(player.New(), request)
		if err != nil {
			return fmt.Errorf("playback failed: %w", err)
		}

		if viper.GetBool(key.HistorySaveOnWatch) {
			if program.Live {
				position = 0
			}

			if err := history.Save(program, format.ID, position); err != nil {
				fail(err.Error())
			}
		}

		title(fmt.Sprintf("Done watching %s", program.Title))
		b, _, err := menu([]fmt.Stringer{}, replay, back, search)
		if err != nil {
			return err
		}

		switch {
		case replay.eq(b):
			return playLoop()
		case back.eq(b):
			m.previousState()
		case search.eq(b):
			m.newState(searchState)
		case quit.eq(b):
			m.newState(quitState)
		}

		return nil
	}

	return playLoop()
}

func (m *mini) handleHistorySelectState() error {
	saved, err := history.Get()
	if err != nil {
		return err
	}

	entries := lo.Values(saved)
	if len(entries) == 0 {
		// Nothing to continue from on a first run.
		m.setState(sourceSelectState)
		return nil
	}

	slices.SortFunc(entries, func(a, b *history.SavedProgram) int {
		return int(b.WatchedAt - a.WatchedAt)
	})

	title("History Results >>")
	b, entry, err := menu(entries)
	if err != nil {
		return err
	}

	if quit.eq(b) {
		m.newState(quitState)
		return nil
	}

	p, ok := provider.Get(entry.SourceID)
	if !ok {
		return fmt.Errorf("provider %s not found (was used for %s)", entry.SourceID, entry.Title)
	}

	erase := progress("Initializing Source..")
	m.selectedSource, err = p.Source()
	if err != nil {
		return err
	}
	erase()

	m.selectedProgram = &source.Program{
		ID:      entry.ProgramID,
		Slug:    entry.Slug,
		PageURL: entry.PageURL,
		Title:   entry.Title,
		Live:    entry.Live,
		Source:  m.selectedSource,
	}

	if !entry.Live {
		m.resumePosition = entry.Position
	}

	erase = progress("Resolving Streams..")
	resolution, err := provider.Resolve(m.selectedProgram)
	erase()

	var restricted *resolver.RestrictedError
	switch {
	case errors.As(err, &restricted):
		fail(restricted.Error())
		m.newState(sourceSelectState)
		return nil
	case err != nil:
		return err
	}

	m.cachedResolutions[m.selectedProgram.ID] = resolution

	m.selectedFormat = formatFor(resolution, entry.FormatID)
	if m.selectedFormat == nil {
		fail("No playable formats found")
		m.newState(sourceSelectState)
		return nil
	}

	m.newState(watchState)
	return nil
}

// formatFor returns the format with the given ID, or the best one when
// the ID no longer resolves to anything.
func formatFor(resolution *source.Resolution, id string) *source.Format {
	if f, ok := lo.Find(resolution.Formats, func(f *source.Format) bool {
		return f.ID == id
	}); ok {
		return f
	}

	best, _ := resolution.Best()
	return best
}

// subtitleTracks picks the subtitle URLs to side-load, preferring the
// configured language over the source's default one.
func subtitleTracks(program *source.Program, resolution *source.Resolution) []string {
	if resolution == nil {
		return nil
	}

	language := viper.GetString(key.ResolverLanguage)
	if language == "" {
		language = program.Source.Locale().DefaultLanguage
	}

	return lo.Map(resolution.SubtitlesFor(language), func(s *source.Subtitle, _ int) string {
		return s.URL
	})
}
