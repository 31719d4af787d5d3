package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestClient_PostFiles(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "report.xlsx")
	pdf := filepath.Join(dir, "receipt.pdf")
	if err := os.WriteFile(table, []byte("xlsx-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pdf, []byte("pdf-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/match" {
			http.Error(w, "unexpected request", http.StatusBadRequest)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		got := map[string]string{}
		for field, headers := range r.MultipartForm.File {
			f, _ := headers[0].Open()
			data, _ := io.ReadAll(f)
			f.Close()
			got[field] = headers[0].Filename + "=" + string(data)
		}
		w.Header().Set("Content-Type", "application/json")
		if got["table"] != "report.xlsx=xlsx-bytes" || got["files"] != "receipt.pdf=pdf-bytes" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"wrong parts"}`))
			return
		}
		w.Write([]byte(`{"id":"abc"}`))
	}))
	defer srv.Close()

	var resp struct {
		ID string `json:"id"`
	}
	client := NewClient(srv.URL)
	err := client.PostFiles(context.Background(), "/api/match", []FormFile{
		{Field: "table", Path: table},
		{Field: "files", Path: pdf},
	}, &resp)
	if err != nil {
		t.Fatalf("PostFiles() error = %v", err)
	}
	if resp.ID != "abc" {
		t.Errorf("ID = %q, want abc", resp.ID)
	}
}

func TestClient_PostFiles_MissingFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.PostFiles(context.Background(), "/api/match", []FormFile{
		{Field: "table", Path: filepath.Join(t.TempDir(), "missing.xlsx")},
	}, nil)
	if err == nil {
		t.Fatal("expected error for missing upload file")
	}
}

func TestClient_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"result not found"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.Get(context.Background(), "/api/match/nope", &struct{}{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "result not found") {
		t.Errorf("error = %v, want status and message", err)
	}

	if err := client.Delete(context.Background(), "/api/match/nope"); err == nil {
		t.Error("Delete() expected error")
	}
}

func TestClient_Download(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Disposition", `attachment; filename="report_RECEIVE_MATCH.xlsx"`)
			w.Write([]byte("workbook"))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"gone"}`))
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	t.Run("ok", func(t *testing.T) {
		var buf bytes.Buffer
		name, err := client.Download(context.Background(), "/ok", &buf)
		if err != nil {
			t.Fatalf("Download() error = %v", err)
		}
		if name != "report_RECEIVE_MATCH.xlsx" {
			t.Errorf("filename = %q", name)
		}
		if buf.String() != "workbook" {
			t.Errorf("body = %q", buf.String())
		}
	})

	t.Run("not found", func(t *testing.T) {
		var buf bytes.Buffer
		if _, err := client.Download(context.Background(), "/missing", &buf); err == nil {
			t.Fatal("expected error")
		}
		if buf.Len() != 0 {
			t.Errorf("error body was written to destination: %q", buf.String())
		}
	})
}
