// Package templates embeds the storefront's HTML templates
package templates

import "embed"

// FS holds layout.html and one template per page
//
//go:embed *.html
var FS embed.FS
