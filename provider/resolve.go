// Package provider manages built-in and custom scraping providers.
package provider

import (
	"github.com/gense-cli/gense/key"
	"github.com/gense-cli/gense/manifest"
	"github.com/gense-cli/gense/resolver"
	"github.com/gense-cli/gense/source"
	"github.com/spf13/viper"
)

// Resolve fetches a program's raw assets and turns them into the
// normalized, playable resolution. The resolver is wired with the
// source's locale, the shared manifest client, and the configured
// liveness probe; a restriction failure surfaces as
// *resolver.RestrictedError.
func Resolve(program *source.Program) (*source.Resolution, error) {
	assets, err := program.Source.AssetsOf(program)
	if err != nil {
		return nil, err
	}

	locale := program.Source.Locale()

	defaultLanguage := locale.DefaultLanguage
	if override := viper.GetString(key.ResolverLanguage); override != "" {
		defaultLanguage = override
	}

	options := resolver.Options{
		Fetcher:         manifest.NewClient(),
		Languages:       locale.Languages,
		DefaultLanguage: defaultLanguage,
		Countries:       locale.Countries,
	}

	if viper.GetBool(key.ResolverProbe) {
		options.Prober = manifest.NewProbe()
	}

	return resolver.New(options).Resolve(assets)
}
