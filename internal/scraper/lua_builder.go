// Package scraper provides high-level coordination and execution for virtualized Lua-based scraping modules.
package scraper

import (
	"sync"
	"time"

	"github.com/gense-cli/gense/filesystem"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// cachedProto pins a compiled prototype to the script's modification time,
// so a script swapped in by an update is recompiled on its next use.
type cachedProto struct {
	proto   *lua.FunctionProto
	modTime time.Time
}

var bytecodeCache sync.Map

// PreCompileAndLoad executes a Lua script within the provided LState, utilizing a bytecode cache to minimize compilation overhead.
func PreCompileAndLoad(L *lua.LState, scriptPath string) error {
	stat, err := filesystem.API().Stat(scriptPath)
	if err != nil {
		return err
	}

	if entry, exists := bytecodeCache.Load(scriptPath); exists {
		cached := entry.(cachedProto)
		if cached.modTime.Equal(stat.ModTime()) {
			fn := L.NewFunctionFromProto(cached.proto)
			L.Push(fn)
			return L.PCall(0, lua.MultRet, nil)
		}
	}

	// Cache miss or outdated entry: parse and compile a fresh prototype.
	file, err := filesystem.API().Open(scriptPath)
	if err != nil {
		return err
	}
	defer file.Close()

	chunk, err := parse.Parse(file, scriptPath)
	if err != nil {
		return err
	}

	proto, err := lua.Compile(chunk, scriptPath)
	if err != nil {
		return err
	}

	bytecodeCache.Store(scriptPath, cachedProto{proto: proto, modTime: stat.ModTime()})

	fn := L.NewFunctionFromProto(proto)
	L.Push(fn)
	return L.PCall(0, lua.MultRet, nil)
}
