// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"os"

	"github.com/gense-cli/gense/log"
	"github.com/gense-cli/gense/provider"
	"github.com/gense-cli/gense/source"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	// Step 1: Gather candidate programs. A pre-routed program (from
	// --url) wins over searching.
	var programs []*source.Program
	if options.Program != nil {
		programs = []*source.Program{options.Program}
	} else {
		for _, src := range options.Sources {
			found, err := src.Search(options.Query)
			if err != nil {
				return fmt.Errorf("search failed for %s: %w", src.Name(), err)
			}
			programs = append(programs, found...)
		}
	}

	// Step 2: Narrow the result with the picker when one is defined.
	selected := programs
	if options.ProgramPicker.IsPresent() {
		picker := options.ProgramPicker.MustGet()
		if choice := picker(programs); choice != nil {
			selected = []*source.Program{choice}
		} else {
			selected = nil
		}
	}

	if len(selected) == 0 {
		if options.Json {
			return writeJson(options.Out, []*Program{}, options)
		}
		return nil
	}

	// Step 3: Resolve streams for the selection when requested.
	result := make([]*Program, len(selected))
	for i, program := range selected {
		entry := &Program{
			Source:  program.Source.Name(),
			Program: program,
		}

		if options.Resolve {
			log.Infof("Resolving %s", program.Title)
			resolution, err := provider.Resolve(program)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", program.Title, err)
			}
			entry.Resolution = resolution
		}

		result[i] = entry
	}

	// Step 4: Dispatch the processed results to the configured output writer.
	if options.Json {
		return writeJson(options.Out, result, options)
	}

	for _, entry := range result {
		if entry.Resolution != nil {
			best, ok := entry.Resolution.Best()
			if !ok {
				continue
			}
			fmt.Fprintln(options.Out, best.URL)
			continue
		}

		fmt.Fprintln(options.Out, entry.Program.Title)
	}

	return nil
}
