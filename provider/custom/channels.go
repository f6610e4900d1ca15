// Package custom provides a bridge between the Go core and Lua-based scraper scripts.
package custom

import (
	"strconv"

	"github.com/gense-cli/gense/constant"
	"github.com/gense-cli/gense/source"
	lua "github.com/yuin/gopher-lua"
)

// ChannelsOf calls the script's optional channel listing. Scripts
// without a live offering simply do not define the function.
func (s *luaSource) ChannelsOf() ([]*source.Program, error) {
	if s.state.GetGlobal(constant.ChannelsFn).Type() != lua.LTFunction {
		return nil, nil
	}

	val, err := s.call(constant.ChannelsFn, lua.LTTable)
	if err != nil {
		return nil, err
	}

	table := val.(*lua.LTable)
	var channels []*source.Program
	var errs []error

	table.ForEach(func(k, v lua.LValue) {
		if k.Type() != lua.LTNumber || v.Type() != lua.LTTable {
			return
		}

		idx, err := strconv.ParseUint(k.String(), 10, 16)
		if err != nil {
			errs = append(errs, err)
			return
		}

		channel, err := programFromTable(v.(*lua.LTable), uint16(idx))
		if err != nil {
			errs = append(errs, err)
			return
		}

		// Everything the channel listing yields is live by definition.
		channel.Live = true
		channel.Source = s
		channels = append(channels, channel)
	})

	if len(channels) == 0 && len(errs) > 0 {
		return nil, errs[0]
	}

	return channels, nil
}
