package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/jackzampolin/lpnmatch/internal/config"
	"github.com/jackzampolin/lpnmatch/internal/home"
	"github.com/jackzampolin/lpnmatch/internal/results"
	"github.com/jackzampolin/lpnmatch/internal/server/endpoints"
	"github.com/jackzampolin/lpnmatch/internal/testutil"
)

type part struct {
	field, name string
	data        []byte
}

func multipartBody(t *testing.T, parts ...part) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		w, err := mw.CreateFormFile(p.field, p.name)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		w.Write(p.data)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func newTestServer(t *testing.T, mgr *config.Manager) (*Server, *httptest.Server) {
	t.Helper()
	h, err := home.New(t.TempDir())
	if err != nil {
		t.Fatalf("home.New() error = %v", err)
	}
	srv, err := New(Config{
		Home:          h,
		ConfigManager: mgr,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func postMatch(t *testing.T, ts *httptest.Server, parts ...part) (*http.Response, []byte) {
	t.Helper()
	body, contentType := multipartBody(t, parts...)
	resp, err := http.Post(ts.URL+"/api/match", contentType, body)
	if err != nil {
		t.Fatalf("POST /api/match: %v", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func TestMatch_EndToEnd(t *testing.T) {
	srv, ts := newTestServer(t, nil)

	report := testutil.Workbook(t, "Receiving Report", []string{"PACKAGEID", "CARRIER"}, [][]string{
		{"20000000", "UPS"},
		{"99999999", "DHL"},
		{" 30000000 ", "FedEx"},
	})

	resp, data := postMatch(t, ts,
		part{"table", "week12.xlsx", report},
		part{"files", "a.pdf", testutil.PDF("LPN 20000000")},
		part{"files", "b.pdf", testutil.PDF("30000000 and 123456789012345")},
		part{"files", "broken.pdf", []byte("nope")},
	)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, data)
	}

	var got endpoints.MatchResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.OutputName != "week12_RECEIVE_MATCH.xlsx" {
		t.Errorf("OutputName = %q", got.OutputName)
	}
	if got.DownloadURL != "/api/match/"+got.ID+"/download" {
		t.Errorf("DownloadURL = %q", got.DownloadURL)
	}
	if got.Summary.Matched != 2 || got.Summary.Unmatched != 1 || got.Summary.Skipped != 1 {
		t.Errorf("Summary = %+v", got.Summary)
	}
	if len(got.Documents) != 3 || !got.Documents[2].Skipped {
		t.Errorf("Documents = %+v", got.Documents)
	}

	t.Run("download", func(t *testing.T) {
		resp, err := http.Get(ts.URL + got.DownloadURL)
		if err != nil {
			t.Fatalf("download: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
		if err != nil || params["filename"] != "week12_RECEIVE_MATCH.xlsx" {
			t.Errorf("Content-Disposition = %q", resp.Header.Get("Content-Disposition"))
		}

		downloaded, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatal(err)
		}
		stored, err := os.ReadFile(srv.Results().Path(mustEntry(t, srv, got.ID)))
		if err != nil {
			t.Fatalf("stored workbook: %v", err)
		}
		if !bytes.Equal(stored, downloaded) {
			t.Error("downloaded workbook differs from stored result")
		}

		// Output layout: header on row 1, data from row 2.
		want := [][]string{
			{"PACKAGEID", "CARRIER", "PDF LPN", "RECEIVE MATCH"},
			{"20000000", "UPS", "20000000", "YES"},
			{"99999999", "DHL", "", "NO"},
			{"30000000", "FedEx", "30000000", "YES"},
		}
		if got := sheetRows(t, downloaded); !reflect.DeepEqual(got, want) {
			t.Errorf("downloaded rows = %v, want %v", got, want)
		}
	})

	t.Run("get and list", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/match/" + got.ID)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("get status = %d", resp.StatusCode)
		}

		resp, err = http.Get(ts.URL + "/api/match")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		var list endpoints.ListResultsResponse
		json.NewDecoder(resp.Body).Decode(&list)
		if len(list.Results) != 1 || list.Results[0].ID != got.ID {
			t.Errorf("list = %+v", list)
		}
	})

	t.Run("delete", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/match/"+got.ID, nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("delete status = %d", resp.StatusCode)
		}

		resp, err = http.Get(ts.URL + got.DownloadURL)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("download after delete status = %d, want 404", resp.StatusCode)
		}
	})
}

// sheetRows reads the first sheet from row 1 with cells trimmed and
// short rows padded to the header width.
func sheetRows(t *testing.T, data []byte) [][]string {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetList()[0], excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	for i, row := range rows {
		for len(row) < len(rows[0]) {
			row = append(row, "")
		}
		for j := range row {
			row[j] = strings.TrimSpace(row[j])
		}
		rows[i] = row
	}
	return rows
}

func mustEntry(t *testing.T, srv *Server, id string) *results.Entry {
	t.Helper()
	e, err := srv.Results().Get(id)
	if err != nil {
		t.Fatalf("Get(%s): %v", id, err)
	}
	return e
}

func TestMatch_BadRequests(t *testing.T) {
	_, ts := newTestServer(t, nil)
	pdf := part{"files", "a.pdf", testutil.PDF("20000000")}
	goodTable := part{"table", "r.xlsx", testutil.Workbook(t, "t", []string{"PACKAGEID"}, [][]string{{"20000000"}})}

	tests := []struct {
		name    string
		parts   []part
		errText string
	}{
		{"no table", []part{pdf}, "spreadsheet"},
		{"no pdfs", []part{goodTable}, "PDF files"},
		{"missing PACKAGEID", []part{
			{"table", "r.xlsx", testutil.Workbook(t, "t", []string{"SKU"}, [][]string{{"1"}})},
			pdf,
		}, "PACKAGEID"},
		{"unreadable table", []part{{"table", "r.xlsx", []byte("garbage")}, pdf}, ""},
		{"two tables", []part{goodTable, goodTable, pdf}, "one spreadsheet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := postMatch(t, ts, tt.parts...)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", resp.StatusCode, data)
			}
			var errResp endpoints.ErrorResponse
			if err := json.Unmarshal(data, &errResp); err != nil || errResp.Error == "" {
				t.Fatalf("expected JSON error body, got %s", data)
			}
			if !strings.Contains(errResp.Error, tt.errText) {
				t.Errorf("error %q should mention %q", errResp.Error, tt.errText)
			}
		})
	}
}

func TestMatch_UploadLimit(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgFile, []byte("server:\n  max_upload_mb: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	mgr, err := config.NewManager(cfgFile)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	srv, _ := newTestServer(t, mgr)

	body, contentType := multipartBody(t,
		part{"table", "r.xlsx", testutil.Workbook(t, "t", []string{"PACKAGEID"}, nil)},
		part{"files", "big.pdf", bytes.Repeat([]byte("x"), 2<<20)},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/match", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestServer_InfoEndpoints(t *testing.T) {
	_, ts := newTestServer(t, nil)

	t.Run("status", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/status")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		var status endpoints.StatusResponse
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if status.Server != "running" || status.Config.ResultTTL != "24h0m0s" {
			t.Errorf("status = %+v", status)
		}
	})

	t.Run("swagger", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/swagger.json")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		var doc struct {
			Paths map[string]any `json:"paths"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if _, ok := doc.Paths["/api/match"]; !ok {
			t.Error("swagger doc should describe /api/match")
		}
	})

	t.Run("upload page", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK || !bytes.Contains(body, []byte("/api/match")) {
			t.Errorf("index status = %d", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("Content-Type = %q, want text/html", ct)
		}
	})

	t.Run("unknown page", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/index.php")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("unknown result", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/match/does-not-exist/download")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})
}

func TestServer_RequireInit(t *testing.T) {
	h, _ := home.New(t.TempDir())
	srv, err := New(Config{Home: h, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Not started and no Handler() call: services are not attached yet.
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/match", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}
}

func TestNew_RequiresHome(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error without home directory")
	}
}
