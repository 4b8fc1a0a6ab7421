// Package config loads run settings from TFTGFX_* environment variables.
// Flags in main override whatever is loaded here.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rook-computer/tftgfx/internal/gfx"
	"github.com/rook-computer/tftgfx/internal/web"
)

const (
	EnvDriver     = "TFTGFX_DRIVER"
	EnvFBDevice   = "TFTGFX_FBDEV"
	EnvOutPNG     = "TFTGFX_OUT"
	EnvWidth      = "TFTGFX_WIDTH"
	EnvHeight     = "TFTGFX_HEIGHT"
	EnvRotation   = "TFTGFX_ROTATION"
	EnvScale      = "TFTGFX_SCALE"
	EnvForeground = "TFTGFX_FG"
	EnvBackground = "TFTGFX_BG"
	EnvFont       = "TFTGFX_FONT"
	EnvFontSize   = "TFTGFX_FONT_SIZE"
	EnvScript     = "TFTGFX_SCRIPT"
	EnvScreen     = "TFTGFX_SCREEN"
	EnvDebug      = "TFTGFX_DEBUG"
	EnvStdioLog   = "TFTGFX_STDIO_LOG"
)

// Panel drivers.
const (
	DriverCanvas   = "canvas"
	DriverFBDev    = "fbdev"
	DriverTerminal = "terminal"
)

type Config struct {
	Driver   string
	FBDevice string
	// OutPNG, when set, receives a screenshot after the first frame.
	OutPNG   string
	Width    int
	Height   int
	Rotation int
	Scale    int

	Foreground gfx.Color
	Background gfx.Color

	// FontPath is a TrueType/OpenType file converted at FontSize pixels.
	FontPath string
	FontSize float64

	Script string
	Screen string

	Debug    bool
	StdioLog string

	Server web.ServerConfig
}

// Default returns the settings used when nothing is configured: the canvas
// driver at the native 320x480 portrait size, and no preview server.
func Default() Config {
	return Config{
		Driver:     DriverCanvas,
		FBDevice:   "/dev/fb0",
		Width:      320,
		Height:     480,
		Scale:      1,
		Foreground: gfx.RGB(0x90, 0x00, 0xFF),
		Background: gfx.RGB(0xFF, 0xDC, 0x00),
		FontSize:   16,
		Screen:     "splash",
	}
}

// DefaultFromEnv applies TFTGFX_* variables on top of Default. Invalid
// values fail with an error naming the variable.
func DefaultFromEnv() (Config, error) {
	cfg := Default()

	server, err := web.DefaultServerConfigFromEnv("")
	if err != nil {
		return Config{}, err
	}
	cfg.Server = server

	str(EnvDriver, &cfg.Driver)
	str(EnvFBDevice, &cfg.FBDevice)
	str(EnvOutPNG, &cfg.OutPNG)
	str(EnvFont, &cfg.FontPath)
	str(EnvScript, &cfg.Script)
	str(EnvScreen, &cfg.Screen)
	str(EnvStdioLog, &cfg.StdioLog)

	for _, v := range []struct {
		name string
		dst  *int
	}{
		{EnvWidth, &cfg.Width},
		{EnvHeight, &cfg.Height},
		{EnvRotation, &cfg.Rotation},
		{EnvScale, &cfg.Scale},
	} {
		if err := integer(v.name, v.dst); err != nil {
			return Config{}, err
		}
	}
	if raw := os.Getenv(EnvFontSize); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be a number (got %q): %w", EnvFontSize, raw, err)
		}
		cfg.FontSize = parsed
	}
	if raw := os.Getenv(EnvDebug); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDebug, raw, err)
		}
		cfg.Debug = parsed
	}
	for _, v := range []struct {
		name string
		dst  *gfx.Color
	}{
		{EnvForeground, &cfg.Foreground},
		{EnvBackground, &cfg.Background},
	} {
		if raw := os.Getenv(v.name); raw != "" {
			c, err := gfx.ParseHex(raw)
			if err != nil {
				return Config{}, fmt.Errorf("%s: %w", v.name, err)
			}
			*v.dst = c
		}
	}

	return cfg, cfg.Validate()
}

func str(name string, dst *string) {
	if raw := os.Getenv(name); raw != "" {
		*dst = raw
	}
}

func integer(name string, dst *int) error {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s must be an integer (got %q): %w", name, raw, err)
	}
	*dst = parsed
	return nil
}

// Validate checks the settings that cannot be fixed up silently.
func (c Config) Validate() error {
	switch strings.ToLower(c.Driver) {
	case DriverCanvas, DriverFBDev, DriverTerminal:
	default:
		return fmt.Errorf("unknown driver %q (want %s, %s or %s)", c.Driver, DriverCanvas, DriverFBDev, DriverTerminal)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("panel size %dx%d is negative", c.Width, c.Height)
	}
	if c.Scale < 1 {
		return fmt.Errorf("scale must be at least 1 (got %d)", c.Scale)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font size must be positive (got %g)", c.FontSize)
	}
	return nil
}
