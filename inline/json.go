// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"encoding/json"
	"io"

	"github.com/gense-cli/gense/source"
)

// Program is one search hit in the machine-readable output.
type Program struct {
	// Source is the name of the provider the hit came from.
	Source string `json:"source"`
	// Program is the catalog entry as the provider reported it.
	Program *source.Program `json:"program"`
	// Resolution carries the playable formats and subtitles when
	// resolving was requested.
	Resolution *source.Resolution `json:"resolution,omitempty"`
}

// Output is the top-level shape of `gense inline --json`.
type Output struct {
	Query  string     `json:"query"`
	Result []*Program `json:"result"`
}

func writeJson(out io.Writer, programs []*Program, options *Options) error {
	data, err := json.Marshal(&Output{
		Query:  options.Query,
		Result: programs,
	})
	if err != nil {
		return err
	}

	_, err = out.Write(data)
	return err
}
