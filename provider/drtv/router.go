// Package drtv implements the built-in provider for DR TV, the Danish
// Broadcasting Corporation's catch-up service.
package drtv

import (
	"net/url"
	"strings"

	"github.com/gense-cli/gense/source"
)

// Hosts the provider's watch pages live on.
var Hosts = []string{"dr.dk", "dr-massive.com"}

// ProgramFromURL maps a DR watch-page URL onto a program stub carrying
// the identifiers encoded in the path. Recognized shapes:
//
//	/drtv/se/<slug>, /drtv/episode/<slug>, /drtv/program/<slug>
//	/tv/se/.../<slug>
//	/drtv/kanal/<slug>, /tv/live/<slug> (live)
func (d *DRTV) ProgramFromURL(u *url.URL) (*source.Program, bool) {
	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	if len(segments) < 2 {
		return nil, false
	}

	slug := segments[len(segments)-1]
	if slug == "" {
		return nil, false
	}

	program := &source.Program{
		ID:      slug,
		Slug:    slug,
		PageURL: u.String(),
		Title:   slug,
		Source:  d,
	}

	switch {
	case segments[0] == "drtv" && segments[1] == "kanal",
		segments[0] == "tv" && segments[1] == "live":
		program.Live = true
		return program, true
	case segments[0] == "drtv" && (segments[1] == "se" || segments[1] == "episode" || segments[1] == "program"),
		segments[0] == "tv" && segments[1] == "se":
		return program, true
	}

	return nil, false
}
