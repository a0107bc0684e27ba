// Package static embeds the site's stylesheet and other assets.
package static

import "embed"

//go:embed *.css
var FS embed.FS
