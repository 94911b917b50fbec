package server

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"beatstore/logger"
)

// AudioHandler streams audio bytes for catalogued files straight from the
// beats folder.
type AudioHandler struct {
	beatsDir string
}

// NewAudioHandler creates an AudioHandler rooted at the beats folder.
func NewAudioHandler(beatsDir string) *AudioHandler {
	return &AudioHandler{beatsDir: beatsDir}
}

// contentTypeFor maps a file name to its audio MIME type, falling back to
// audio/mpeg for anything unrecognized.
func contentTypeFor(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/mp4"
	case ".flac":
		return "audio/flac"
	case ".ogg":
		return "audio/ogg"
	default:
		return "audio/mpeg"
	}
}

// ServeHTTP implements the http.Handler interface. The requested name is
// resolved to an absolute path which must stay inside the beats folder;
// anything escaping it is rejected before any byte is read.
func (h *AudioHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// r.URL.Path arrives percent-decoded, so the raw on-disk name comes
	// straight off the prefix.
	fileName := strings.TrimPrefix(r.URL.Path, "/api/audio/")
	if fileName == "" {
		http.Error(w, "File not specified", http.StatusBadRequest)
		return
	}

	root, err := filepath.Abs(h.beatsDir)
	if err != nil {
		logger.Error("Failed to resolve beats folder", logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	path, err := filepath.Abs(filepath.Join(root, fileName))
	if err != nil || (path != root && !strings.HasPrefix(path, root+string(os.PathSeparator))) {
		logger.Warn("Rejected audio path outside beats folder",
			logger.String("fileName", fileName))
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		logger.Warn("Audio file not found", logger.String("path", path))
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Error("Failed to open audio file", logger.String("path", path), logger.ErrorField(err))
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", contentTypeFor(fileName))
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	w.Header().Set("Accept-Ranges", "bytes")

	// Stream in chunks; a disconnected client just ends the copy early.
	if _, err := io.Copy(w, f); err != nil {
		logger.Warn("Audio stream interrupted", logger.String("path", path), logger.ErrorField(err))
	}
}
