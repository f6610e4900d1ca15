// Package custom provides a bridge between the Go core and Lua-based scraper scripts.
package custom

import (
	"fmt"

	"github.com/gense-cli/gense/source"
	lua "github.com/yuin/gopher-lua"
)

// Helper to get string from table with default
func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return val.String()
	}
	return ""
}

func getBool(table *lua.LTable, key string) bool {
	val := table.RawGetString(key)
	return val.Type() == lua.LTBool && bool(val.(lua.LBool))
}

func getInt(table *lua.LTable, key string) int64 {
	val := table.RawGetString(key)
	if val.Type() == lua.LTNumber {
		return int64(val.(lua.LNumber))
	}
	return 0
}

// getTables collects the table-typed entries of a list-valued field.
func getTables(table *lua.LTable, key string) []*lua.LTable {
	val := table.RawGetString(key)
	if val.Type() != lua.LTTable {
		return nil
	}

	var tables []*lua.LTable
	val.(*lua.LTable).ForEach(func(_, v lua.LValue) {
		if v.Type() == lua.LTTable {
			tables = append(tables, v.(*lua.LTable))
		}
	})
	return tables
}

func programFromTable(table *lua.LTable, index uint16) (*source.Program, error) {
	title := getString(table, "title")
	url := getString(table, "url")

	if title == "" || url == "" {
		return nil, fmt.Errorf("program must have title and url")
	}

	program := &source.Program{
		ID:          url, // The URL doubles as the ID for scripted providers
		Slug:        getString(table, "slug"),
		PageURL:     url,
		Title:       title,
		Description: getString(table, "description"),
		Thumbnail:   getString(table, "thumbnail"),
		Live:        getBool(table, "live"),
		Index:       index,
	}

	return program, nil
}

func assetFromTable(table *lua.LTable) (*source.Asset, error) {
	kind := getString(table, "kind")
	if kind == "" {
		return nil, fmt.Errorf("asset must have kind")
	}

	asset := &source.Asset{
		Kind:       source.Kind(kind),
		Target:     source.Target(getString(table, "target")),
		Restricted: getBool(table, "restricted"),
		DurationMs: getInt(table, "duration_ms"),
		URI:        getString(table, "uri"),
	}

	for _, tbl := range getTables(table, "links") {
		link, err := linkFromTable(tbl)
		if err != nil {
			return nil, err
		}
		asset.Links = append(asset.Links, link)
	}

	for _, tbl := range getTables(table, "subtitles") {
		asset.Subtitles = append(asset.Subtitles, subtitleFromTable(tbl))
	}

	return asset, nil
}

func linkFromTable(table *lua.LTable) (*source.Link, error) {
	uri := getString(table, "uri")
	encrypted := getString(table, "encrypted_uri")

	if uri == "" && encrypted == "" {
		return nil, fmt.Errorf("link must have uri or encrypted_uri")
	}

	return &source.Link{
		URI:          uri,
		EncryptedURI: encrypted,
		Transport:    source.Transport(getString(table, "transport")),
		Bitrate:      int(getInt(table, "bitrate")),
		FileFormat:   getString(table, "format"),
	}, nil
}

func subtitleFromTable(table *lua.LTable) *source.SubtitleRef {
	return &source.SubtitleRef{
		Language: getString(table, "language"),
		URI:      getString(table, "uri"),
		MimeType: getString(table, "mime"),
	}
}
