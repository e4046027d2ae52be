// Package templates embeds the HTML report template.
package templates

import "embed"

// FS contains the embedded report template.
//
//go:embed report.html.tmpl
var FS embed.FS
