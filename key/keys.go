// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 24

// Provider Source Identifiers - these keys manage the registration and selection of program providers.
const (
	DefaultSources = "sources.default"
	SourcesRepo    = "sources.repo"
	SourcesBranch  = "sources.branch"
)

// Resolution Pipeline - these keys tune how raw asset links are expanded into playable formats.
const (
	ResolverProbe    = "resolver.probe"
	ResolverLanguage = "resolver.language"
	ResolverTimeout  = "resolver.timeout"
	CacheTTL         = "cache.ttl"
)

// History Tracking - these keys configure the persistence of watched-program state.
const (
	HistorySaveOnWatch = "history.save_on_watch"
	HistorySize        = "history.size"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Minimalist (Mini) Mode - these keys configure the specialized lightweight TUI.
const (
	MiniSearchLimit = "mini.search_limit"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling and logic.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUIPlayOnEnter        = "tui.play_on_enter"
	TUISearchPromptString = "tui.search_prompt"
	TUIShowURLs           = "tui.show_urls"
)

// Media Playback - these keys maintain the state and configuration for external video players.
const (
	Player          = "player.default"
	PlayerArgs      = "player.args"
	PlayerSubtitles = "player.subtitles"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
