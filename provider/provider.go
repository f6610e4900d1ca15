// Package provider manages built-in and custom scraping providers.
package provider

import (
	"bytes"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gense-cli/gense/filesystem"
	"github.com/gense-cli/gense/provider/custom"
	"github.com/gense-cli/gense/provider/drtv"
	"github.com/gense-cli/gense/source"
	"github.com/gense-cli/gense/util"
	"github.com/gense-cli/gense/where"
	"github.com/samber/lo"
)

// CustomProviderExtension is the file extension of scripted providers.
const CustomProviderExtension = ".lua"

// Provider represents a source provider.
type Provider struct {
	ID           string
	Name         string
	UsesHeadless bool     // Indicates whether the provider requires a headless browser.
	IsCustom     bool     // Set for Lua-based providers.
	Hosts        []string // Watch-page hosts the provider serves, for URL routing.
	CreateSource func() (source.Source, error)

	cached source.Source
}

func (p *Provider) String() string {
	return p.Name
}

// Source returns the provider's source, creating it on first use.
// Scripted providers keep their interpreter state alive across calls
// this way.
func (p *Provider) Source() (source.Source, error) {
	if p.cached != nil {
		return p.cached, nil
	}

	src, err := p.CreateSource()
	if err != nil {
		return nil, err
	}

	p.cached = src
	return src, nil
}

// builtins is created once so source caching holds across lookups.
var builtins = []*Provider{
	{
		ID:    drtv.ID,
		Name:  drtv.Name,
		Hosts: drtv.Hosts,
		CreateSource: func() (source.Source, error) {
			return drtv.New(), nil
		},
	},
}

// Builtins returns built-in providers.
func Builtins() []*Provider {
	return builtins
}

// Customs returns all available Lua providers.
func Customs() []*Provider {
	providers, _ := CustomProviders()
	return providers
}

// GetAll returns every known provider, built-in first.
func GetAll() []*Provider {
	return append(Builtins(), Customs()...)
}

// Get finds a provider by name or ID. Built-in providers shadow
// customs with the same name.
func Get(name string) (*Provider, bool) {
	for _, p := range GetAll() {
		if p.Name == name || p.ID == name {
			return p, true
		}
	}
	return nil, false
}

// URLRouter is implemented by sources that can map a watch-page URL
// onto one of their programs.
type URLRouter interface {
	ProgramFromURL(u *url.URL) (*source.Program, bool)
}

// FromURL routes a watch-page URL to a program of the provider serving
// that host. The returned program carries only the identifiers encoded
// in the URL; resolving it fills in the rest.
func FromURL(pageURL string) (*source.Program, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")

	for _, p := range GetAll() {
		if !lo.Contains(p.Hosts, host) {
			continue
		}

		src, err := p.Source()
		if err != nil {
			return nil, err
		}

		router, ok := src.(URLRouter)
		if !ok {
			continue
		}

		if program, ok := router.ProgramFromURL(u); ok {
			return program, nil
		}
	}

	return nil, fmt.Errorf("no provider serves %s", pageURL)
}

// CustomProviders scans the sources directory for Lua scripts.
func CustomProviders() ([]*Provider, error) {
	files, err := filesystem.API().ReadDir(where.Sources())
	if err != nil {
		return nil, err
	}

	var providers []*Provider
	for _, f := range files {
		if filepath.Ext(f.Name()) != CustomProviderExtension {
			continue
		}

		if f.Name() == "common.lua" {
			continue
		}

		path := filepath.Join(where.Sources(), f.Name())
		name := util.FileStem(f.Name())

		providers = append(providers, &Provider{
			ID:           custom.IDfromName(name),
			Name:         name,
			UsesHeadless: isHeadless(path),
			IsCustom:     true,
			CreateSource: func() (source.Source, error) {
				return custom.LoadSource(path)
			},
		})
	}

	return providers, nil
}

// Helpers

func isHeadless(path string) bool {
	content, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	match := [][]byte{
		[]byte("require(\"headless\")"),
		[]byte("require('headless')"),
	}

	for _, m := range match {
		if bytes.Contains(content, m) {
			return true
		}
	}
	return false
}
