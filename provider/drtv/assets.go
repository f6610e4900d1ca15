// Package drtv implements the built-in provider for DR TV, the Danish
// Broadcasting Corporation's catch-up service.
package drtv

import (
	"fmt"

	"github.com/gense-cli/gense/internal/cache"
	"github.com/gense-cli/gense/source"
)

// AssetsOf fetches the expanded programcard for a program and flattens
// it into raw assets, primary asset first. Encrypted link URIs pass
// through untouched; the resolver owns their decryption. Live programs
// are served from the channel endpoint instead.
func (d *DRTV) AssetsOf(program *source.Program) ([]*source.Asset, error) {
	if program.Live {
		return d.channelAssets(program.ID)
	}

	path := fmt.Sprintf("/programcard/%s?expanded=true", escape(program.ID))

	var card programCard
	if err := getJSON(path, cache.GenerateKey(program.ID, ID+"_card"), &card); err != nil {
		return nil, err
	}

	var raw []*muAsset
	if card.PrimaryAsset != nil {
		raw = append(raw, card.PrimaryAsset)
	}
	raw = append(raw, card.SecondaryAssets...)

	assets := make([]*source.Asset, 0, len(raw))
	for _, a := range raw {
		assets = append(assets, mapAsset(a))
	}

	return assets, nil
}

// mapAsset converts one mu-online asset into the domain model.
func mapAsset(a *muAsset) *source.Asset {
	asset := &source.Asset{
		Kind:       source.Kind(a.Kind),
		Target:     source.Target(a.Target),
		Restricted: a.RestrictedToDenmark,
		DurationMs: a.DurationInMilliseconds,
		URI:        a.URI,
	}

	for _, link := range a.Links {
		asset.Links = append(asset.Links, &source.Link{
			URI:          link.URI,
			EncryptedURI: link.EncryptedURI,
			Transport:    source.Transport(link.Target),
			Bitrate:      link.Bitrate,
			FileFormat:   link.FileFormat,
		})
	}

	subs := a.SubtitlesList
	if len(subs) == 0 {
		subs = a.SubtitlesListLegacy
	}
	for _, sub := range subs {
		asset.Subtitles = append(asset.Subtitles, &source.SubtitleRef{
			Language: sub.Language,
			URI:      sub.URI,
			MimeType: sub.MimeType,
		})
	}

	return asset
}
