// Package custom provides a bridge between the Go core and Lua-based scraper scripts.
package custom

import (
	"fmt"

	"github.com/gense-cli/gense/source"
	lua "github.com/yuin/gopher-lua"
)

type luaSource struct {
	name  string
	state *lua.LState
}

// Name returns the provider name.
func (s *luaSource) Name() string {
	return s.name
}

// ID returns the provider ID.
func (s *luaSource) ID() string {
	return IDfromName(s.name) // Defined in loader.go
}

// Locale reads the script's optional locale globals: a Languages table
// mapping language names to short codes, a DefaultLanguage string and
// a Countries list.
func (s *luaSource) Locale() source.Locale {
	locale := source.Locale{}

	if v := s.state.GetGlobal("DefaultLanguage"); v.Type() == lua.LTString {
		locale.DefaultLanguage = v.String()
	}

	if v := s.state.GetGlobal("Languages"); v.Type() == lua.LTTable {
		locale.Languages = make(map[string]string)
		v.(*lua.LTable).ForEach(func(k, val lua.LValue) {
			if k.Type() == lua.LTString && val.Type() == lua.LTString {
				locale.Languages[k.String()] = val.String()
			}
		})
	}

	if v := s.state.GetGlobal("Countries"); v.Type() == lua.LTTable {
		v.(*lua.LTable).ForEach(func(_, val lua.LValue) {
			if val.Type() == lua.LTString {
				locale.Countries = append(locale.Countries, val.String())
			}
		})
	}

	return locale
}

func newLuaSource(name string, state *lua.LState) (*luaSource, error) {
	s := &luaSource{
		name:  name,
		state: state,
	}

	return s, nil
}

// call executes a global Lua function safely.
func (s *luaSource) call(fn string, retType lua.LValueType, args ...lua.LValue) (lua.LValue, error) {
	luaFn := s.state.GetGlobal(fn)
	if luaFn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is not defined", fn)
	}

	err := s.state.CallByParam(lua.P{
		Fn:      luaFn,
		NRet:    1,
		Protect: true,
	}, args...)

	if err != nil {
		return nil, err
	}

	retval := s.state.Get(-1)
	s.state.Pop(1) // Clean stack

	if retval.Type() != retType {
		return nil, fmt.Errorf("%s returned %s, expected %s", fn, retval.Type(), retType)
	}

	return retval, nil
}
