// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gense-cli/gense/source"
	"github.com/gense-cli/gense/util"
	"github.com/samber/mo"
)

// ProgramPicker narrows a search result down to a single program.
type ProgramPicker func([]*source.Program) *source.Program

type Options struct {
	Out     io.Writer
	Sources []source.Source
	Json    bool
	Query   string
	// Program short-circuits searching when the caller already routed
	// a watch-page URL to a program.
	Program       *source.Program
	ProgramPicker mo.Option[ProgramPicker]
	Resolve       bool
}

// ParseProgramPicker parses the picker description accepted by the
// --program flag: "first", "last", a zero-based index, or "@text@" for
// a case-insensitive title substring match.
func ParseProgramPicker(description string) (ProgramPicker, error) {
	switch description {
	case "first":
		return func(programs []*source.Program) *source.Program {
			if len(programs) == 0 {
				return nil
			}
			return programs[0]
		}, nil
	case "last":
		return func(programs []*source.Program) *source.Program {
			if len(programs) == 0 {
				return nil
			}
			return programs[len(programs)-1]
		}, nil
	}

	if strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") && len(description) > 2 {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(programs []*source.Program) *source.Program {
			for _, p := range programs {
				if strings.Contains(strings.ToLower(p.Title), sub) {
					return p
				}
			}
			return nil
		}, nil
	}

	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(programs []*source.Program) *source.Program {
			if len(programs) == 0 {
				return nil
			}
			i := util.Min(idx, uint64(len(programs)-1))
			return programs[i]
		}, nil
	}

	return nil, fmt.Errorf("invalid program picker: %s", description)
}
