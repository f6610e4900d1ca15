// Package custom provides a bridge between the Go core and Lua-based scraper scripts.
package custom

import (
	"github.com/gense-cli/gense/constant"
	"github.com/gense-cli/gense/source"
	lua "github.com/yuin/gopher-lua"
)

// AssetsOf calls the script's asset function with the program URL.
// No caching here: stream links and encrypted tokens expire.
func (s *luaSource) AssetsOf(program *source.Program) ([]*source.Asset, error) {
	val, err := s.call(constant.ProgramAssetsFn, lua.LTTable, lua.LString(program.ID))
	if err != nil {
		return nil, err
	}

	table := val.(*lua.LTable)
	var assets []*source.Asset
	var errs []error

	table.ForEach(func(k, v lua.LValue) {
		if k.Type() != lua.LTNumber || v.Type() != lua.LTTable {
			return
		}

		asset, err := assetFromTable(v.(*lua.LTable))
		if err != nil {
			errs = append(errs, err)
			return
		}

		assets = append(assets, asset)
	})

	if len(assets) == 0 && len(errs) > 0 {
		return nil, errs[0]
	}

	return assets, nil
}
