package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"beatstore/model"
)

// ErrConflict reports a uniqueness violation (slug or file name already
// catalogued). Callers decide whether that is a skip (sync) or a failure
// (explicit add).
var ErrConflict = errors.New("conflict: record already exists")

// BeatRepository defines the interface for beat catalog operations.
type BeatRepository interface {
	CreateBeat(beat *model.Beat) (int64, error)
	GetBeatByID(id int64) (*model.Beat, error)
	GetAllBeats() ([]*model.Beat, error)
	GetBeatByFileName(fileName string) (*model.Beat, error)
}

// sqliteBeatRepository implements BeatRepository on sqlite.
type sqliteBeatRepository struct {
	db *sql.DB
}

// NewSQLiteBeatRepository creates a new instance of sqliteBeatRepository.
func NewSQLiteBeatRepository(db *sql.DB) BeatRepository {
	return &sqliteBeatRepository{db: db}
}

const beatColumns = `id, title, slug, description, genre, bpm, duration, file_name, file_type, created_at`

// isUniqueViolation checks whether the driver error is a UNIQUE constraint
// failure. modernc/sqlite exposes constraint errors as message text only.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// CreateBeat adds a new beat to the catalog and returns its assigned ID.
// A caller-set CreatedAt is honored; otherwise the row is stamped with the
// current time.
func (r *sqliteBeatRepository) CreateBeat(beat *model.Beat) (int64, error) {
	query := `INSERT INTO beats (title, slug, description, genre, bpm, duration, file_name, file_type, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement for CreateBeat: %w", err)
	}
	defer stmt.Close()

	createdAt := beat.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := stmt.Exec(beat.Title, beat.Slug, beat.Description, beat.Genre, beat.BPM, beat.Duration, beat.FileName, beat.FileType, createdAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("beat %q: %w", beat.FileName, ErrConflict)
		}
		return 0, fmt.Errorf("failed to execute CreateBeat: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateBeat: %w", err)
	}
	beat.ID = id
	beat.CreatedAt = createdAt.UTC()
	return id, nil
}

func scanBeat(row interface{ Scan(dest ...any) error }) (*model.Beat, error) {
	beat := &model.Beat{}
	err := row.Scan(&beat.ID, &beat.Title, &beat.Slug, &beat.Description, &beat.Genre, &beat.BPM, &beat.Duration, &beat.FileName, &beat.FileType, &beat.CreatedAt)
	if err != nil {
		return nil, err
	}
	return beat, nil
}

// GetBeatByID retrieves a beat by its ID. Returns (nil, nil) when no beat
// with that ID exists.
func (r *sqliteBeatRepository) GetBeatByID(id int64) (*model.Beat, error) {
	query := `SELECT ` + beatColumns + ` FROM beats WHERE id = ?`
	beat, err := scanBeat(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Beat not found
		}
		return nil, fmt.Errorf("failed to scan beat by ID %d: %w", id, err)
	}
	return beat, nil
}

// GetAllBeats retrieves every catalogued beat, most recently created first.
func (r *sqliteBeatRepository) GetAllBeats() ([]*model.Beat, error) {
	query := `SELECT ` + beatColumns + ` FROM beats ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query beats: %w", err)
	}
	defer rows.Close()

	beats := make([]*model.Beat, 0)
	for rows.Next() {
		beat, err := scanBeat(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan beat in GetAllBeats: %w", err)
		}
		beats = append(beats, beat)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in GetAllBeats: %w", err)
	}

	return beats, nil
}

// GetBeatByFileName retrieves a beat by its exact on-disk file name, used
// by the synchronizer for dedup. The match is case-sensitive. Returns
// (nil, nil) when no beat with that file name exists.
func (r *sqliteBeatRepository) GetBeatByFileName(fileName string) (*model.Beat, error) {
	query := `SELECT ` + beatColumns + ` FROM beats WHERE file_name = ?`
	beat, err := scanBeat(r.db.QueryRow(query, fileName))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Beat not found
		}
		return nil, fmt.Errorf("failed to scan beat by file name %s: %w", fileName, err)
	}
	return beat, nil
}
