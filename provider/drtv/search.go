// Package drtv implements the built-in provider for DR TV, the Danish
// Broadcasting Corporation's catch-up service.
package drtv

import (
	"fmt"
	"time"

	"github.com/gense-cli/gense/internal/cache"
	"github.com/gense-cli/gense/source"
)

const searchLimit = 36

// Search queries the programcard title index and maps the hits into
// catalog programs.
func (d *DRTV) Search(query string) ([]*source.Program, error) {
	path := fmt.Sprintf("/search/tv/programcards-with-asset/title/%s?limit=%d", escape(query), searchLimit)

	var result searchResult
	if err := getJSON(path, cache.GenerateKey(query, ID), &result); err != nil {
		return nil, err
	}

	programs := make([]*source.Program, 0, len(result.Items))
	for _, item := range result.Items {
		if item.Slug == "" {
			continue
		}

		programs = append(programs, &source.Program{
			ID:          item.Slug,
			Slug:        item.Slug,
			PageURL:     watchPageURL(item.Slug),
			Title:       displayTitle(item),
			Description: item.Description,
			Thumbnail:   item.PrimaryImageURI,
			Duration:    durationOf(item),
			Index:       uint16(len(programs)),
			Source:      d,
		})
	}

	return programs, nil
}

// displayTitle prefers "Series (S E)" composition when the card
// belongs to a series.
func displayTitle(card *programCard) string {
	if card.SeriesTitle == "" || card.SeriesTitle == card.Title {
		return card.Title
	}

	if card.EpisodeNumber > 0 {
		return fmt.Sprintf("%s - %s (%d)", card.SeriesTitle, card.Title, card.EpisodeNumber)
	}

	return fmt.Sprintf("%s - %s", card.SeriesTitle, card.Title)
}

// durationOf reads the declared duration off the primary asset.
func durationOf(card *programCard) time.Duration {
	if card.PrimaryAsset == nil {
		return 0
	}
	return time.Duration(card.PrimaryAsset.DurationInMilliseconds) * time.Millisecond
}

func watchPageURL(slug string) string {
	return "https://www.dr.dk/drtv/se/" + slug
}
