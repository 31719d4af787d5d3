package endpoints

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/lpnmatch/internal/api"
	"github.com/jackzampolin/lpnmatch/internal/results"
	"github.com/jackzampolin/lpnmatch/internal/svcctx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ListResultsResponse is returned by GET /api/match.
type ListResultsResponse struct {
	Results []MatchResponse `json:"results" yaml:"results"`
}

func (l ListResultsResponse) TableHeader() []string {
	return []string{"ID", "OUTPUT", "ROWS", "MATCHED", "EXPIRES"}
}

func (l ListResultsResponse) TableRows() [][]string {
	rows := make([][]string, 0, len(l.Results))
	for _, r := range l.Results {
		rows = append(rows, []string{
			r.ID, r.OutputName,
			fmt.Sprint(r.Summary.Rows), fmt.Sprint(r.Summary.Matched),
			r.ExpiresAt,
		})
	}
	return rows
}

// ListResultsEndpoint handles GET /api/match.
type ListResultsEndpoint struct{}

func (e *ListResultsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/match", e.handler
}

func (e *ListResultsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary	List stored match results
//	@Tags		match
//	@Produce	json
//	@Success	200	{object}	ListResultsResponse
//	@Failure	503	{object}	ErrorResponse
//	@Router		/api/match [get]
func (e *ListResultsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.ResultsFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "result store not initialized")
		return
	}

	resp := ListResultsResponse{Results: []MatchResponse{}}
	for _, entry := range store.List() {
		resp.Results = append(resp.Results, newMatchResponse(entry))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *ListResultsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "List match results stored on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ListResultsResponse
			if err := client.Get(cmd.Context(), "/api/match", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// GetResultEndpoint handles GET /api/match/{id}.
type GetResultEndpoint struct{}

func (e *GetResultEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/match/{id}", e.handler
}

func (e *GetResultEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary	Get a stored match result
//	@Tags		match
//	@Produce	json
//	@Param		id	path		string	true	"Result ID"
//	@Success	200	{object}	MatchResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/match/{id} [get]
func (e *GetResultEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	entry, ok := lookupResult(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newMatchResponse(entry))
}

func (e *GetResultEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "result <id>",
		Short: "Show a stored match result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp MatchResponse
			if err := client.Get(cmd.Context(), "/api/match/"+args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// DeleteResultEndpoint handles DELETE /api/match/{id}.
type DeleteResultEndpoint struct{}

func (e *DeleteResultEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/api/match/{id}", e.handler
}

func (e *DeleteResultEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary	Delete a stored match result
//	@Tags		match
//	@Param		id	path	string	true	"Result ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/match/{id} [delete]
func (e *DeleteResultEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.ResultsFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "result store not initialized")
		return
	}
	if err := store.Delete(r.PathValue("id")); err != nil {
		if errors.Is(err, results.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (e *DeleteResultEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored match result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			if err := client.Delete(cmd.Context(), "/api/match/"+args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

// DownloadEndpoint handles GET /api/match/{id}/download.
type DownloadEndpoint struct{}

func (e *DownloadEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/match/{id}/download", e.handler
}

func (e *DownloadEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary	Download an annotated report
//	@Tags		match
//	@Produce	application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param		id	path	string	true	"Result ID"
//	@Success	200	{file}	binary
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/match/{id}/download [get]
func (e *DownloadEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	entry, ok := lookupResult(w, r)
	if !ok {
		return
	}
	store := svcctx.ResultsFrom(r.Context())

	f, err := os.Open(store.Path(entry))
	if err != nil {
		if os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, "result file missing")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": entry.OutputName}))
	http.ServeContent(w, r, entry.OutputName, info.ModTime(), f)
}

func (e *DownloadEndpoint) Command(getServerURL func() string) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "download <id>",
		Short: "Download an annotated report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())

			var resp MatchResponse
			if err := client.Get(cmd.Context(), "/api/match/"+args[0], &resp); err != nil {
				return err
			}
			path := filepath.Join(dir, resp.OutputName)
			if err := downloadTo(cmd, client, resp.DownloadURL, path); err != nil {
				return err
			}
			fmt.Printf("Saved %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to save into")
	return cmd
}

// downloadTo fetches url into path, removing the partial file on error.
func downloadTo(cmd *cobra.Command, client *api.Client, url, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := client.Download(cmd.Context(), url, out); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	return out.Close()
}

// lookupResult resolves the {id} path value, writing 404/503 itself.
func lookupResult(w http.ResponseWriter, r *http.Request) (*results.Entry, bool) {
	store := svcctx.ResultsFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "result store not initialized")
		return nil, false
	}
	entry, err := store.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return entry, true
}
