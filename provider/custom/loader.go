// Package custom provides a bridge between the Go core and Lua-based scraper scripts.
package custom

import (
	"fmt"

	"github.com/gense-cli/gense/constant"
	"github.com/gense-cli/gense/internal/scraper"
	"github.com/gense-cli/gense/source"
	"github.com/gense-cli/gense/util"
	libs "github.com/metafates/mangal-lua-libs"
	lua "github.com/yuin/gopher-lua"
)

// IDfromName generates a canonical provider identifier for a given Lua script basename.
func IDfromName(name string) string {
	return name + " custom"
}

// LoadSource initializes a new source.Source instance by executing and validating a Lua scraper script.
func LoadSource(path string) (source.Source, error) {
	name := util.FileStem(path)

	state := lua.NewState()
	libs.Preload(state)
	registerTLSClient(state, name)

	// Load and compile the Lua script (using cache if available).
	err := scraper.PreCompileAndLoad(state, path)
	if err != nil {
		return nil, err
	}

	// Validation. Channels is optional: providers without a live
	// offering simply do not define it.
	required := []string{
		constant.SearchProgramsFn,
		constant.ProgramAssetsFn,
	}

	for _, fn := range required {
		if state.GetGlobal(fn).Type() != lua.LTFunction {
			return nil, fmt.Errorf("function %s is required but not defined in %s", fn, name)
		}
	}

	return newLuaSource(name, state)
}
