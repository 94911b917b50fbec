package repository

import (
	"database/sql"
	"fmt"
	"time"

	"beatstore/model"
)

// InquiryRepository defines the interface for license-inquiry operations.
// Inquiries are append-only from the service's point of view; the status
// update exists for manual curation tooling.
type InquiryRepository interface {
	CreateInquiry(inquiry *model.Inquiry) (int64, error)
	GetInquiryByID(id int64) (*model.Inquiry, error)
	GetAllInquiries() ([]*model.Inquiry, error)
	UpdateInquiryStatus(id int64, status string) error
}

// sqliteInquiryRepository implements InquiryRepository on sqlite.
type sqliteInquiryRepository struct {
	db *sql.DB
}

// NewSQLiteInquiryRepository creates a new instance of sqliteInquiryRepository.
func NewSQLiteInquiryRepository(db *sql.DB) InquiryRepository {
	return &sqliteInquiryRepository{db: db}
}

const inquiryColumns = `id, beat_id, name, email, offer, status, created_at`

// CreateInquiry saves a new inquiry with status "new" and returns its
// assigned ID. The beat reference is stored as given, without an
// existence check.
func (r *sqliteInquiryRepository) CreateInquiry(inquiry *model.Inquiry) (int64, error) {
	query := `INSERT INTO exclusive_inquiries (beat_id, name, email, offer, status, created_at)
	           VALUES (?, ?, ?, ?, ?, ?)`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement for CreateInquiry: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	res, err := stmt.Exec(inquiry.BeatID, inquiry.Name, inquiry.Email, inquiry.Offer, model.InquiryStatusNew, now)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreateInquiry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateInquiry: %w", err)
	}
	inquiry.ID = id
	inquiry.Status = model.InquiryStatusNew
	inquiry.CreatedAt = now
	return id, nil
}

// GetInquiryByID retrieves an inquiry by ID. Returns (nil, nil) when no
// inquiry with that ID exists.
func (r *sqliteInquiryRepository) GetInquiryByID(id int64) (*model.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM exclusive_inquiries WHERE id = ?`
	row := r.db.QueryRow(query, id)

	inquiry := &model.Inquiry{}
	err := row.Scan(&inquiry.ID, &inquiry.BeatID, &inquiry.Name, &inquiry.Email, &inquiry.Offer, &inquiry.Status, &inquiry.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Inquiry not found
		}
		return nil, fmt.Errorf("failed to scan inquiry by ID %d: %w", id, err)
	}
	return inquiry, nil
}

// GetAllInquiries retrieves every inquiry, most recent first.
func (r *sqliteInquiryRepository) GetAllInquiries() ([]*model.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM exclusive_inquiries ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := make([]*model.Inquiry, 0)
	for rows.Next() {
		inquiry := &model.Inquiry{}
		err := rows.Scan(&inquiry.ID, &inquiry.BeatID, &inquiry.Name, &inquiry.Email, &inquiry.Offer, &inquiry.Status, &inquiry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inquiry in GetAllInquiries: %w", err)
		}
		inquiries = append(inquiries, inquiry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in GetAllInquiries: %w", err)
	}

	return inquiries, nil
}

// UpdateInquiryStatus moves an inquiry to a new lifecycle status.
func (r *sqliteInquiryRepository) UpdateInquiryStatus(id int64, status string) error {
	query := `UPDATE exclusive_inquiries SET status = ? WHERE id = ?`
	res, err := r.db.Exec(query, status, id)
	if err != nil {
		return fmt.Errorf("failed to execute UpdateInquiryStatus for inquiry ID %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for UpdateInquiryStatus: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no inquiry with ID %d", id)
	}
	return nil
}
