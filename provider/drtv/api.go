// Package drtv implements the built-in provider for DR TV, the Danish
// Broadcasting Corporation's catch-up service.
package drtv

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gense-cli/gense/constant"
	"github.com/gense-cli/gense/internal/cache"
	"github.com/gense-cli/gense/network"
)

const apiBase = "https://www.dr.dk/mu-online/api/1.4"

// API response shapes, field names as mu-online serves them. A link's
// Target is its delivery technology; an asset's Target is its audience.
type programCard struct {
	Slug            string     `json:"Slug"`
	Title           string     `json:"Title"`
	Description     string     `json:"Description"`
	SeriesTitle     string     `json:"SeriesTitle"`
	SeasonNumber    int        `json:"SeasonNumber"`
	EpisodeNumber   int        `json:"EpisodeNumber"`
	PrimaryImageURI string     `json:"PrimaryImageUri"`
	PrimaryAsset    *muAsset   `json:"PrimaryAsset"`
	SecondaryAssets []*muAsset `json:"SecondaryAssets"`
}

type muAsset struct {
	Kind                   string        `json:"Kind"`
	URI                    string        `json:"Uri"`
	Target                 string        `json:"Target"`
	RestrictedToDenmark    bool          `json:"RestrictedToDenmark"`
	DurationInMilliseconds int64         `json:"DurationInMilliseconds"`
	Links                  []*muLink     `json:"Links"`
	SubtitlesList          []*muSubtitle `json:"SubtitlesList"`
	// Some programcards carry the lowercase spelling.
	SubtitlesListLegacy []*muSubtitle `json:"Subtitleslist"`
}

type muLink struct {
	URI          string `json:"Uri"`
	EncryptedURI string `json:"EncryptedUri"`
	Target       string `json:"Target"`
	Bitrate      int    `json:"Bitrate"`
	FileFormat   string `json:"FileFormat"`
}

type muSubtitle struct {
	URI      string `json:"Uri"`
	Language string `json:"Language"`
	MimeType string `json:"MimeType"`
}

type searchResult struct {
	Items []*programCard `json:"Items"`
}

type muChannel struct {
	Slug             string               `json:"Slug"`
	Title            string               `json:"Title"`
	PrimaryImageURI  string               `json:"PrimaryImageUri"`
	WebChannel       bool                 `json:"WebChannel"`
	StreamingServers []*muStreamingServer `json:"StreamingServers"`
}

type muStreamingServer struct {
	Server    string       `json:"Server"`
	LinkType  string       `json:"LinkType"`
	Qualities []*muQuality `json:"Qualities"`
}

type muQuality struct {
	Kbps    int         `json:"Kbps"`
	Streams []*muStream `json:"Streams"`
}

type muStream struct {
	Stream string `json:"Stream"`
}

// getJSON fetches an API path and decodes the response into target.
// Responses are cached under the given cache key when one is supplied;
// live endpoints pass an empty key to bypass the cache.
func getJSON(path, cacheKey string, target interface{}) error {
	if cacheKey != "" && cache.Read(cacheKey, target) {
		return nil
	}

	req, err := http.NewRequest(http.MethodGet, apiBase+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := network.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mu-online %s: status %s", path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("mu-online %s: %w", path, err)
	}

	if cacheKey != "" {
		_ = cache.Write(cacheKey, target)
	}

	return nil
}

// escape encodes a path segment for the API.
func escape(segment string) string {
	return url.PathEscape(segment)
}
