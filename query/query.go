// Package query manages the persistence and retrieval of search query history and suggestions.
package query

import (
	"strings"

	"github.com/gense-cli/gense/filesystem"
	"github.com/gense-cli/gense/key"
	"github.com/gense-cli/gense/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type queryRecord struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

var cacher = gache.New[map[string]*queryRecord](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// suggestionCache memoizes ranked matches per input, since the input
// field asks for a suggestion on every keystroke.
var suggestionCache = make(map[string][]*queryRecord)

// Remember records a search query in the persistent history or increments
// its popularity rank. Higher weights push a query up the suggestion
// order faster; watching a program weighs more than merely searching it.
func Remember(q string, weight int) error {
	q = sanitize(q)
	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*queryRecord)
	}

	if record, ok := cached[q]; ok {
		record.Rank += weight
	} else {
		cached[q] = &queryRecord{Rank: weight, Query: q}
	}

	// Memoized rankings are stale now.
	suggestionCache = make(map[string][]*queryRecord)

	return cacher.Set(cached)
}

// Suggest returns the most relevant historical query suggestion for a partial input.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns the historical queries matching a partial input,
// sorted by popularity rank. An empty input matches the whole history,
// which shell completion uses to list it.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	records, ok := suggestionCache[q]
	if !ok {
		records = rankedMatches(q)
		suggestionCache[q] = records
	}

	return lo.Map(records, func(r *queryRecord, _ int) string {
		return r.Query
	})
}

// rankedMatches loads the stored queries and returns the ones fuzzily
// matching the input, best rank first.
func rankedMatches(q string) []*queryRecord {
	cached, expired, err := cacher.Get()
	if err != nil || expired || cached == nil {
		return nil
	}

	var records []*queryRecord
	for _, record := range cached {
		if fuzzy.Match(q, record.Query) {
			records = append(records, record)
		}
	}

	slices.SortFunc(records, func(a, b *queryRecord) int {
		return b.Rank - a.Rank
	})

	return records
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
