// Package script runs Lua drawing scripts against a gfx.Context.
//
// Scripts see a restricted standard library (base, table, string, math
// without the file loaders) and a global table gfx:
//
//	gfx.fill_screen("#000000")
//	gfx.color(0xffdc00)
//	gfx.size(2)
//	gfx.cursor(10, 10)
//	gfx.print("Dobrý den")
//
// Colors are either "#rrggbb" strings or 0xRRGGBB integers. Every script
// gets a fresh Lua state; the context itself is shared and keeps whatever
// the script leaves behind.
package script
