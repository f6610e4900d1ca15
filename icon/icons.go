// Package icon provides a flexible multi-variant rendering engine for UI symbols and feedback indicators.
package icon

// Icon identifies a single UI symbol in the global registry.
type Icon int

const (
	Lua Icon = iota + 1
	Go
	Search
	Play
	Live
	Lock
	Subtitle
	Success
	Fail
	History
	Progress
	Mark
)

// icons maps every Icon identifier to its per-variant representations.
var icons = map[Icon]*iconDef{
	Lua: {
		emoji:   "🌙",
		nerd:    "",
		plain:   "Lua",
		kaomoji: "(=^･ω･^=)",
		squares: "🟦",
	},
	Go: {
		emoji:   "🐹",
		nerd:    "",
		plain:   "Go",
		kaomoji: "ʕ◔ϖ◔ʔ",
		squares: "🟩",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "(⌐■_■)",
		squares: "🟪",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(ノ≧∀≦)ノ",
		squares: "🟨",
	},
	Live: {
		emoji:   "🔴",
		nerd:    "",
		plain:   "LIVE",
		kaomoji: "(☉_☉)",
		squares: "🟥",
	},
	Lock: {
		emoji:   "🔒",
		nerd:    "",
		plain:   "x",
		kaomoji: "(>_<)",
		squares: "🟧",
	},
	Subtitle: {
		emoji:   "💬",
		nerd:    "",
		plain:   "cc",
		kaomoji: "( ﾟヮﾟ)",
		squares: "⬜",
	},
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "+",
		kaomoji: "(•̀ᴗ•́)و",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "!",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	History: {
		emoji:   "🕘",
		nerd:    "",
		plain:   "~",
		kaomoji: "( ˘▽˘)っ",
		squares: "🟫",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(っ 'ط' )っ",
		squares: "🟦",
	},
	Mark: {
		emoji:   "🔖",
		nerd:    "",
		plain:   "*",
		kaomoji: "(｀・ω・´)",
		squares: "⬛",
	},
}
