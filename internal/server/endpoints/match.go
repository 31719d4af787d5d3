package endpoints

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/lpnmatch/internal/api"
	"github.com/jackzampolin/lpnmatch/internal/document"
	"github.com/jackzampolin/lpnmatch/internal/extract"
	"github.com/jackzampolin/lpnmatch/internal/match"
	"github.com/jackzampolin/lpnmatch/internal/results"
	"github.com/jackzampolin/lpnmatch/internal/svcctx"
	"github.com/jackzampolin/lpnmatch/internal/table"
)

// MatchResponse is returned by POST /api/match.
type MatchResponse struct {
	ID          string                  `json:"id" yaml:"id"`
	OutputName  string                  `json:"output_name" yaml:"output_name"`
	DownloadURL string                  `json:"download_url" yaml:"download_url"`
	ExpiresAt   string                  `json:"expires_at" yaml:"expires_at"`
	Summary     match.Summary           `json:"summary" yaml:"summary"`
	Documents   []extract.DocumentStats `json:"documents" yaml:"documents"`
}

func newMatchResponse(e *results.Entry) MatchResponse {
	return MatchResponse{
		ID:          e.ID,
		OutputName:  e.OutputName,
		DownloadURL: downloadURL(e.ID),
		ExpiresAt:   e.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
		Summary:     e.Summary,
		Documents:   e.Documents,
	}
}

func downloadURL(id string) string {
	return "/api/match/" + id + "/download"
}

// MatchEndpoint handles POST /api/match with a multipart upload.
type MatchEndpoint struct{}

var _ api.Endpoint = (*MatchEndpoint)(nil)

func (e *MatchEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/match", e.handler
}

func (e *MatchEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Match a receiving report against receipt PDFs
//	@Description	Upload one xlsx report (title on row 1, header on row 2) and any number of PDFs.
//	@Description	Every report row gets PDF LPN and RECEIVE MATCH columns; the annotated workbook
//	@Description	is kept on the server until it expires.
//	@Tags			match
//	@Accept			mpfd
//	@Produce		json
//	@Param			table	formData	file	true	"Receiving report (.xlsx)"
//	@Param			files	formData	file	true	"Receipt PDFs"
//	@Success		200		{object}	MatchResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/match [post]
func (e *MatchEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg := svcctx.ConfigFrom(ctx)
	logger := svcctx.LoggerFrom(ctx)

	store := svcctx.ResultsFrom(ctx)
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "result store not initialized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxUploadBytes())
	const maxMemory = 32 << 20 // larger parts spill to temp files
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds %d MB", cfg.Server.MaxUploadMB))
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	tableFiles := r.MultipartForm.File["table"]
	if len(tableFiles) > 1 {
		writeError(w, http.StatusBadRequest, "upload exactly one spreadsheet")
		return
	}

	req := match.Request{}
	for _, fh := range r.MultipartForm.File["files"] {
		req.Documents = append(req.Documents, uploadSource{fh: fh})
	}
	if len(tableFiles) == 1 {
		f, err := tableFiles[0].Open()
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to open uploaded spreadsheet: %v", err))
			return
		}
		defer f.Close()
		req.TableName = tableFiles[0].Filename
		req.Table = f
	}

	res, err := match.Run(req, match.Options{
		Workers: cfg.Extract.Workers,
		Logger:  logger,
	})
	if err != nil {
		writeError(w, matchErrorStatus(err), err.Error())
		return
	}

	entry, err := store.Save(req.TableName, res)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to store result: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, newMatchResponse(entry))
}

// matchErrorStatus maps run failures caused by the request to 400.
func matchErrorStatus(err error) int {
	var (
		validationErr *match.ValidationError
		schemaErr     *table.SchemaError
		readErr       *table.ReadError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &schemaErr), errors.As(err, &readErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// uploadSource reads an uploaded PDF when extraction asks for it.
type uploadSource struct {
	fh *multipart.FileHeader
}

func (s uploadSource) Name() string { return s.fh.Filename }

func (s uploadSource) Open() (document.Document, error) {
	f, err := s.fh.Open()
	if err != nil {
		return nil, &document.ReadError{Name: s.fh.Filename, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &document.ReadError{Name: s.fh.Filename, Err: err}
	}
	return document.Bytes(s.fh.Filename, data).Open()
}

func (e *MatchEndpoint) Command(getServerURL func() string) *cobra.Command {
	var tablePath, saveDir string
	cmd := &cobra.Command{
		Use:   "match --table <report.xlsx> <receipt.pdf>...",
		Short: "Upload a report and receipts to the server and match them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())

			files := []api.FormFile{{Field: "table", Path: tablePath}}
			for _, p := range args {
				files = append(files, api.FormFile{Field: "files", Path: p})
			}

			var resp MatchResponse
			if err := client.PostFiles(ctx, "/api/match", files, &resp); err != nil {
				return err
			}

			if saveDir != "" {
				if err := os.MkdirAll(saveDir, 0o755); err != nil {
					return err
				}
				path := filepath.Join(saveDir, resp.OutputName)
				if err := downloadTo(cmd, client, resp.DownloadURL, path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s\n", path)
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&tablePath, "table", "", "Receiving report (.xlsx)")
	cmd.Flags().StringVar(&saveDir, "save", "", "Download the annotated report into this directory")
	cmd.MarkFlagRequired("table")
	return cmd
}

// TableHeader and TableRows render the per-document report followed by
// the match totals.
func (m MatchResponse) TableHeader() []string {
	return (&extract.Report{}).TableHeader()
}

func (m MatchResponse) TableRows() [][]string {
	rows := (&extract.Report{Documents: m.Documents}).TableRows()
	return append(rows, []string{
		fmt.Sprintf("%d rows: %d matched, %d unmatched", m.Summary.Rows, m.Summary.Matched, m.Summary.Unmatched),
		"", "", fmt.Sprint(m.Summary.Identifiers), "id " + m.ID,
	})
}
