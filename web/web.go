// Package web holds the embedded single page frontend.
package web

import _ "embed"

// IndexHTML is the chat frontend served at the root path.
//
//go:embed index.html
var IndexHTML string
