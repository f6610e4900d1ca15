// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Scraper Function Identifiers - these constants define the required global function signatures for Lua provider modules.
const (
	SearchProgramsFn = "SearchPrograms"
	ProgramAssetsFn  = "ProgramAssets"
	ChannelsFn       = "Channels"
)

// SourceTemplate is a Go text/template for scaffolding new Lua provider files.
const SourceTemplate = `{{ $divider := repeat "-" (plus (max (len .URL) (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @url     {{ .URL }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


---@alias program { title: string, url: string, slug: string|nil, description: string|nil, thumbnail: string|nil, live: boolean|nil }
---@alias link { uri: string|nil, encrypted_uri: string|nil, transport: string|nil, bitrate: number|nil, format: string|nil }
---@alias subtitle { language: string|nil, uri: string, mime: string|nil }
---@alias asset { kind: string, target: string|nil, restricted: boolean|nil, duration_ms: number|nil, uri: string|nil, links: link[]|nil, subtitles: subtitle[]|nil }


----- IMPORTS -----
--- END IMPORTS ---



----- VARIABLES -----
--- END VARIABLES ---



----- MAIN -----

--- Searches for programs with given query.
-- @param query string Query to search for
-- @return program[] Table of programs
function {{ .SearchProgramsFn }}(query)
	return {}
end


--- Gets the list of playable assets for a program.
-- @param programURL string URL of the program
-- @return asset[] Table of assets
function {{ .ProgramAssetsFn }}(programURL)
	return {}
end


--- END MAIN ---




----- HELPERS -----
--- END HELPERS ---

-- ex: ts=4 sw=4 et filetype=lua
`
