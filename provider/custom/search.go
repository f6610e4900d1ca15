// Package custom provides a bridge between the Go core and Lua-based scraper scripts.
package custom

import (
	"strconv"

	"github.com/gense-cli/gense/constant"
	"github.com/gense-cli/gense/internal/cache"
	"github.com/gense-cli/gense/source"
	lua "github.com/yuin/gopher-lua"
)

func (s *luaSource) Search(query string) ([]*source.Program, error) {
	cacheKey := cache.GenerateKey(query, s.Name())
	var cachedPrograms []*source.Program
	if cache.Read(cacheKey, &cachedPrograms) {
		for _, p := range cachedPrograms {
			p.Source = s
		}
		return cachedPrograms, nil
	}

	val, err := s.call(constant.SearchProgramsFn, lua.LTTable, lua.LString(query))
	if err != nil {
		return nil, err
	}

	table := val.(*lua.LTable)
	var programs []*source.Program

	var errs []error
	table.ForEach(func(k, v lua.LValue) {
		if k.Type() != lua.LTNumber || v.Type() != lua.LTTable {
			return // Skip invalid entries
		}

		idx, err := strconv.ParseUint(k.String(), 10, 16)
		if err != nil {
			errs = append(errs, err)
			return
		}

		program, err := programFromTable(v.(*lua.LTable), uint16(idx))
		if err != nil {
			errs = append(errs, err)
			return
		}

		program.Source = s
		programs = append(programs, program)
	})

	if len(programs) == 0 && len(errs) > 0 {
		return nil, errs[0]
	}

	if len(programs) > 0 {
		_ = cache.Write(cacheKey, programs)
	}

	return programs, nil
}
