package model

import "time"

// Beat represents one audio asset in the catalog. Title, slug and file type
// are derived from the file name when the beat is first catalogued; the
// curation fields (description, genre, bpm, duration) stay null until filled
// in by hand and are pointers so they round-trip as JSON null.
type Beat struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	Genre       *string   `json:"genre"`
	BPM         *int      `json:"bpm"`
	Duration    *int      `json:"duration"` // Duration in seconds
	FileName    string    `json:"fileName"`
	FileType    string    `json:"fileType"` // Extension without the dot, lower-cased
	CreatedAt   time.Time `json:"createdAt"`
}

// BeatResponse is the wire shape returned by the API: the catalog record
// plus the locator for the audio bytes.
type BeatResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Genre       *string `json:"genre"`
	BPM         *int    `json:"bpm"`
	Duration    *int    `json:"duration"`
	FileType    string  `json:"fileType"`
	FileName    string  `json:"fileName"`
	FileURL     string  `json:"fileUrl"`
}

// NewBeatResponse builds the wire shape for a catalog record.
func NewBeatResponse(b *Beat) *BeatResponse {
	return &BeatResponse{
		ID:          b.ID,
		Title:       b.Title,
		Slug:        b.Slug,
		Description: b.Description,
		Genre:       b.Genre,
		BPM:         b.BPM,
		Duration:    b.Duration,
		FileType:    b.FileType,
		FileName:    b.FileName,
		FileURL:     "/api/audio/" + b.FileName,
	}
}
