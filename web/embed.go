// Package web embeds the static dashboard assets for single-binary
// distribution.
package web

import "embed"

// Assets contains the dashboard SPA: login/signup, the page editor with
// live preview, and job management.
//
//go:embed all:static
var Assets embed.FS
