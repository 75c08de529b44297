// Package static embeds the API documentation assets.
package static

import "embed"

//go:embed openapi.json openapi.html
var FS embed.FS
