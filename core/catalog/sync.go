// Package catalog owns the folder-to-catalog synchronization and the typed
// query/command operations the transport layer calls. Nothing in this
// package knows about HTTP.
package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"beatstore/logger"
	"beatstore/model"
	"beatstore/repository"
)

// audioExtensions are the recognized audio file extensions, matched
// case-insensitively against the file name's extension.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
}

// Synchronizer reconciles the beat catalog with the contents of the beats
// folder. Files already catalogued (by exact file name) are skipped; rows
// for files later removed from disk are kept, since the store is the
// catalog of record once a beat is known.
type Synchronizer struct {
	repo repository.BeatRepository
	dir  string
}

// NewSynchronizer creates a Synchronizer scanning the given directory.
func NewSynchronizer(repo repository.BeatRepository, dir string) *Synchronizer {
	return &Synchronizer{repo: repo, dir: dir}
}

// Sync scans the beats folder (non-recursive) and inserts a catalog row for
// every audio file not yet known. A missing or unreadable folder is logged
// and treated as a no-op. A failure on one file (for example a slug
// collision) is logged and skipped; the scan continues with the next file.
// Returns the number of audio files considered.
func (s *Synchronizer) Sync() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		logger.Warn("Beats folder not readable, skipping sync",
			logger.String("dir", s.dir),
			logger.ErrorField(err))
		return 0, nil
	}

	considered := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fileName := entry.Name()
		if !audioExtensions[strings.ToLower(filepath.Ext(fileName))] {
			continue
		}
		considered++

		existing, err := s.repo.GetBeatByFileName(fileName)
		if err != nil {
			logger.Error("Failed to check catalog for file",
				logger.String("fileName", fileName),
				logger.ErrorField(err))
			continue
		}
		if existing != nil {
			continue
		}

		beat := BeatFromFileName(fileName)
		if _, err := s.repo.CreateBeat(beat); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				logger.Warn("Skipping file, catalog entry conflicts with an existing beat",
					logger.String("fileName", fileName),
					logger.String("slug", beat.Slug))
			} else {
				logger.Error("Failed to catalog file",
					logger.String("fileName", fileName),
					logger.ErrorField(err))
			}
			continue
		}

		logger.Info("Catalogued new beat",
			logger.Int64("id", beat.ID),
			logger.String("title", beat.Title),
			logger.String("fileName", fileName))
	}

	logger.Info("Folder sync completed",
		logger.String("dir", s.dir),
		logger.Int("audioFiles", considered))
	return considered, nil
}

// BeatFromFileName derives a catalog record from an on-disk file name.
// Title is the name with the extension stripped, fileType the extension
// without the dot (lower-cased), and the slug the lower-cased title with
// spaces and underscores each replaced by hyphens. The curation fields
// stay nil.
func BeatFromFileName(fileName string) *model.Beat {
	ext := filepath.Ext(fileName)
	title := strings.TrimSuffix(fileName, ext)
	return &model.Beat{
		Title:    title,
		Slug:     Slugify(title),
		FileName: fileName,
		FileType: strings.ToLower(strings.TrimPrefix(ext, ".")),
	}
}

// Slugify lowers the title and replaces spaces and underscores with hyphens.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")
	return slug
}
