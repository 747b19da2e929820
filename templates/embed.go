// Package templates embeds the server-rendered page templates.
package templates

import "embed"

//go:embed *.tmpl
var files embed.FS

// FS returns the embedded template files.
func FS() embed.FS { return files }
