// Package assets embeds the built-in levels.
package assets

import "embed"

//go:embed *.bmp *.txt
var FS embed.FS

// DefaultLevel is loaded when no map path is configured.
const DefaultLevel = "level-1.bmp"
