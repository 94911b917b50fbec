package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newAudioEnv(t *testing.T) (*AudioHandler, string) {
	t.Helper()
	dir := t.TempDir()
	return NewAudioHandler(dir), dir
}

func writeAudio(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestAudioHandler_ServesFile(t *testing.T) {
	h, dir := newAudioEnv(t)
	payload := []byte("ID3 fake mp3 bytes")
	writeAudio(t, dir, "Night Drive.mp3", payload)

	req := httptest.NewRequest(http.MethodGet, "/api/audio/Night%20Drive.mp3", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "audio/mpeg" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rec.Header().Get("Accept-Ranges"); got != "bytes" {
		t.Errorf("Accept-Ranges = %q", got)
	}
	if got := rec.Header().Get("Content-Length"); got != "18" {
		t.Errorf("Content-Length = %q", got)
	}
	if rec.Body.String() != string(payload) {
		t.Error("body does not match file contents")
	}
}

func TestAudioHandler_TraversalRejected(t *testing.T) {
	h, dir := newAudioEnv(t)
	writeAudio(t, dir, "legit.mp3", []byte("x"))

	// Outside file the traversal would reach if the guard failed.
	parent := filepath.Dir(dir)
	if err := os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("secret"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	names := []string{
		"../secret.txt",
		"../../etc/passwd",
		"..",
	}
	for _, name := range names {
		req := httptest.NewRequest(http.MethodGet, "/api/audio/", nil)
		req.URL.Path = "/api/audio/" + name // bypass URL cleaning, as a raw client can
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("%q: status = %d, want 403", name, rec.Code)
		}
		if rec.Body.Len() > 0 && rec.Code == http.StatusOK {
			t.Errorf("%q: bytes were returned for a traversal path", name)
		}
	}
}

func TestAudioHandler_MissingFile(t *testing.T) {
	h, _ := newAudioEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/audio/absent.mp3", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"a.mp3", "audio/mpeg"},
		{"a.MP3", "audio/mpeg"},
		{"a.wav", "audio/wav"},
		{"a.m4a", "audio/mp4"},
		{"a.flac", "audio/flac"},
		{"a.ogg", "audio/ogg"},
		{"a.unknown", "audio/mpeg"},
	}
	for _, tt := range tests {
		if got := contentTypeFor(tt.fileName); got != tt.want {
			t.Errorf("contentTypeFor(%q) = %q, want %q", tt.fileName, got, tt.want)
		}
	}
}
