// Package site handles the embedded scouting web UI.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("web ui serve failed")
)

// Register attaches the embedded web UI routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Serve the embedded scouting UI at root /
	files := http.FileServer(FS())
	mux.Handle("/", files)
}
