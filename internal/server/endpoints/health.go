package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/lpnmatch/internal/api"
	"github.com/jackzampolin/lpnmatch/internal/svcctx"
	"github.com/jackzampolin/lpnmatch/version"
)

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

func (e *HealthEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary	Health check
//	@Tags		server
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Router		/health [get]
func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/health", &resp); err != nil {
				return err
			}
			fmt.Printf("Status: %s\n", resp.Status)
			return nil
		},
	}
}

// StatusResponse is the detailed status response.
type StatusResponse struct {
	Server  string        `json:"server" yaml:"server"`
	Version string        `json:"version" yaml:"version"`
	Config  ConfigStatus  `json:"config" yaml:"config"`
	Results ResultsStatus `json:"results" yaml:"results"`
}

// ConfigStatus shows the settings that affect matching.
type ConfigStatus struct {
	File           string `json:"file,omitempty" yaml:"file,omitempty"`
	ExtractWorkers int    `json:"extract_workers" yaml:"extract_workers"`
	MaxUploadMB    int    `json:"max_upload_mb" yaml:"max_upload_mb"`
	ResultTTL      string `json:"result_ttl" yaml:"result_ttl"`
}

// ResultsStatus shows the result store.
type ResultsStatus struct {
	Stored int    `json:"stored" yaml:"stored"`
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
}

// StatusEndpoint handles GET /status.
type StatusEndpoint struct{}

func (e *StatusEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/status", e.handler
}

func (e *StatusEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary	Server status
//	@Tags		server
//	@Produce	json
//	@Success	200	{object}	StatusResponse
//	@Router		/status [get]
func (e *StatusEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg := svcctx.ConfigFrom(ctx)

	resp := StatusResponse{
		Server:  "running",
		Version: version.GitRelease,
		Config: ConfigStatus{
			ExtractWorkers: cfg.Extract.Workers,
			MaxUploadMB:    cfg.Server.MaxUploadMB,
			ResultTTL:      cfg.ResultTTLDuration().String(),
		},
	}
	if mgr := svcctx.ConfigManagerFrom(ctx); mgr != nil {
		resp.Config.File = mgr.File()
	}
	if store := svcctx.ResultsFrom(ctx); store != nil {
		resp.Results.Stored = len(store.List())
	}
	if h := svcctx.HomeFrom(ctx); h != nil {
		resp.Results.Path = h.ResultsPath()
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *StatusEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get detailed server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp StatusResponse
			if err := client.Get(cmd.Context(), "/status", &resp); err != nil {
				return err
			}
			if api.GetOutputFormat() != api.OutputFormatTable {
				return api.Output(resp)
			}
			fmt.Printf("Server:  %s (%s)\n", resp.Server, resp.Version)
			fmt.Printf("Config:\n")
			if resp.Config.File != "" {
				fmt.Printf("  File:       %s\n", resp.Config.File)
			}
			fmt.Printf("  Workers:    %d\n", resp.Config.ExtractWorkers)
			fmt.Printf("  Max upload: %d MB\n", resp.Config.MaxUploadMB)
			fmt.Printf("  Result TTL: %s\n", resp.Config.ResultTTL)
			fmt.Printf("Results:\n")
			fmt.Printf("  Stored: %d\n", resp.Results.Stored)
			if resp.Results.Path != "" {
				fmt.Printf("  Path:   %s\n", resp.Results.Path)
			}
			return nil
		},
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
