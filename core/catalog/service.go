package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"beatstore/cache"
	"beatstore/logger"
	"beatstore/model"
	"beatstore/repository"
)

// Sentinel errors for the transport layer to map onto wire statuses.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// The two validation failures the storefront distinguishes.
	ErrMissingFields = fmt.Errorf("missing required fields: %w", ErrInvalidInput)
	ErrInvalidEmail  = fmt.Errorf("invalid email format: %w", ErrInvalidInput)
)

// Service is the single entry point used by the transport layer. It
// composes the synchronizer and the repositories and owns request-level
// validation; the repositories never see unvalidated input shapes.
type Service struct {
	beats     repository.BeatRepository
	inquiries repository.InquiryRepository
	sync      *Synchronizer
	cache     *cache.BeatCache // optional, nil disables caching
}

// NewService wires the catalog service. cache may be nil.
func NewService(beats repository.BeatRepository, inquiries repository.InquiryRepository, sync *Synchronizer, beatCache *cache.BeatCache) *Service {
	return &Service{
		beats:     beats,
		inquiries: inquiries,
		sync:      sync,
		cache:     beatCache,
	}
}

// ListBeats refreshes the catalog from the beats folder, then returns every
// beat newest-first in wire shape. A sync failure is logged but does not
// block the listing; the store remains the catalog of record.
func (s *Service) ListBeats(ctx context.Context) ([]*model.BeatResponse, error) {
	if _, err := s.sync.Sync(); err != nil {
		logger.Error("Folder sync failed before listing", logger.ErrorField(err))
	}

	beats, err := s.beats.GetAllBeats()
	if err != nil {
		return nil, fmt.Errorf("failed to list beats: %w", err)
	}

	responses := make([]*model.BeatResponse, 0, len(beats))
	for _, beat := range beats {
		responses = append(responses, model.NewBeatResponse(beat))
	}
	return responses, nil
}

// GetBeat parses the ID and returns the matching beat in wire shape.
// Returns ErrInvalidInput for a non-positive or non-numeric ID and
// ErrNotFound when no beat has that ID.
func (s *Service) GetBeat(ctx context.Context, rawID string) (*model.BeatResponse, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("beat id %q: %w", rawID, ErrInvalidInput)
	}

	if s.cache != nil {
		if beat, ok := s.cache.Get(ctx, id); ok {
			return model.NewBeatResponse(beat), nil
		}
	}

	beat, err := s.beats.GetBeatByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get beat %d: %w", id, err)
	}
	if beat == nil {
		return nil, fmt.Errorf("beat %d: %w", id, ErrNotFound)
	}

	if s.cache != nil {
		s.cache.Set(ctx, beat)
	}
	return model.NewBeatResponse(beat), nil
}

// InquiryRequest carries a license-inquiry submission.
type InquiryRequest struct {
	BeatID int64  `json:"beatId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Offer  string `json:"offer"`
}

// validate checks the submission. The email check is deliberately
// syntactic only: it must contain an '@' and a '.'.
func (r *InquiryRequest) validate() error {
	if r.BeatID == 0 || strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Offer) == "" {
		return ErrMissingFields
	}
	if !strings.Contains(r.Email, "@") || !strings.Contains(r.Email, ".") {
		return ErrInvalidEmail
	}
	return nil
}

// SubmitInquiry validates and records a license inquiry, returning the
// assigned inquiry ID. The beat reference is recorded as given; existence
// is not checked.
func (s *Service) SubmitInquiry(ctx context.Context, req *InquiryRequest) (int64, error) {
	if err := req.validate(); err != nil {
		return 0, err
	}

	inquiry := &model.Inquiry{
		BeatID: req.BeatID,
		Name:   req.Name,
		Email:  req.Email,
		Offer:  req.Offer,
	}
	id, err := s.inquiries.CreateInquiry(inquiry)
	if err != nil {
		return 0, fmt.Errorf("failed to save inquiry: %w", err)
	}

	logger.Info("Inquiry recorded",
		logger.Int64("inquiryId", id),
		logger.Int64("beatId", req.BeatID))
	return id, nil
}

// AddBeat catalogs a beat directly, outside the folder sync path. Unlike
// sync, a uniqueness conflict is surfaced to the caller.
func (s *Service) AddBeat(ctx context.Context, beat *model.Beat) (int64, error) {
	if strings.TrimSpace(beat.Title) == "" || strings.TrimSpace(beat.FileName) == "" {
		return 0, fmt.Errorf("title and fileName are required: %w", ErrInvalidInput)
	}
	if beat.Slug == "" {
		beat.Slug = Slugify(beat.Title)
	}
	id, err := s.beats.CreateBeat(beat)
	if err != nil {
		return 0, err // ErrConflict passes through for the caller to map
	}
	return id, nil
}
