// Package assets bundles the shaders, textures and settings into the binary.
package assets

import "embed"

//go:embed settings.toml shaders textures
var FS embed.FS

// Settings is the raw embedded settings file
//
//go:embed settings.toml
var Settings []byte
