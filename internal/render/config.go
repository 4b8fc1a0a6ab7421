package render

import "github.com/rook-computer/tftgfx/internal/gfx"

// Theme colors used by the built-in screens. Overridden from configuration.
var (
	Foreground = gfx.RGB(0x90, 0x00, 0xFF) // #9000ff
	Background = gfx.RGB(0xFF, 0xDC, 0x00) // #ffdc00
)
