package endpoints

import (
	"io/fs"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/lpnmatch/internal/api"
	"github.com/jackzampolin/lpnmatch/web"
)

// StaticEndpoint serves the embedded upload page at the site root.
type StaticEndpoint struct{}

var _ api.Endpoint = (*StaticEndpoint)(nil)

func (e *StaticEndpoint) Route() (string, string, http.HandlerFunc) {
	// {$} matches "/" only; other paths fall through to the mux 404.
	return "GET", "/{$}", e.handler
}

func (e *StaticEndpoint) RequiresInit() bool {
	return false
}

func (e *StaticEndpoint) Command(_ func() string) *cobra.Command {
	return nil
}

func (e *StaticEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	dist, err := web.DistFS()
	if err != nil {
		http.Error(w, "upload page not available", http.StatusInternalServerError)
		return
	}
	page, err := fs.ReadFile(dist, "index.html")
	if err != nil {
		http.Error(w, "upload page not available", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}
