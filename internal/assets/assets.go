package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed web
var webFS embed.FS

//go:embed scripts/*.lua
var scriptFS embed.FS

// WebUI is an embedded filesystem rooted at internal/assets/web.
var WebUI fs.FS

func init() {
	// Embed paths include the leading directory; strip it for serving at '/'.
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	WebUI = sub
}

// ScriptNames lists the bundled Lua scripts without their extension.
func ScriptNames() []string {
	entries, err := fs.ReadDir(scriptFS, "scripts")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".lua" {
			names = append(names, strings.TrimSuffix(e.Name(), ".lua"))
		}
	}
	sort.Strings(names)
	return names
}

// Script returns the source of a bundled script.
func Script(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/\\.") {
		return "", fmt.Errorf("invalid script name %q", name)
	}
	data, err := fs.ReadFile(scriptFS, "scripts/"+name+".lua")
	if err != nil {
		return "", fmt.Errorf("read script %s: %w", name, err)
	}
	return string(data), nil
}
