package repository

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"beatstore/db"
	"beatstore/model"
)

func newTestDB(t *testing.T) *testRepos {
	t.Helper()

	conn, err := db.Connect(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.InitSchema(conn); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}

	return &testRepos{
		Beats:     NewSQLiteBeatRepository(conn),
		Inquiries: NewSQLiteInquiryRepository(conn),
	}
}

// testRepos bundles both repositories for tests.
type testRepos struct {
	Beats     BeatRepository
	Inquiries InquiryRepository
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestCreateBeat_RoundTrip(t *testing.T) {
	repos := newTestDB(t)

	in := &model.Beat{
		Title:       "Night Drive",
		Slug:        "night-drive",
		Description: strPtr("late night type beat"),
		Genre:       strPtr("trap"),
		BPM:         intPtr(140),
		Duration:    intPtr(183),
		FileName:    "Night Drive.mp3",
		FileType:    "mp3",
	}

	id, err := repos.Beats.CreateBeat(in)
	if err != nil {
		t.Fatalf("CreateBeat: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	got, err := repos.Beats.GetBeatByID(id)
	if err != nil {
		t.Fatalf("GetBeatByID: %v", err)
	}
	if got == nil {
		t.Fatal("expected beat, got nil")
	}

	if got.ID != id {
		t.Errorf("ID = %d, want %d", got.ID, id)
	}
	if got.Title != in.Title || got.Slug != in.Slug || got.FileName != in.FileName || got.FileType != in.FileType {
		t.Errorf("string fields differ: got %+v", got)
	}
	if got.Description == nil || *got.Description != *in.Description {
		t.Errorf("Description = %v, want %v", got.Description, *in.Description)
	}
	if got.BPM == nil || *got.BPM != 140 {
		t.Errorf("BPM = %v, want 140", got.BPM)
	}
	if got.Duration == nil || *got.Duration != 183 {
		t.Errorf("Duration = %v, want 183", got.Duration)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}
}

func TestCreateBeat_NullCurationFields(t *testing.T) {
	repos := newTestDB(t)

	id, err := repos.Beats.CreateBeat(&model.Beat{
		Title: "Raw", Slug: "raw", FileName: "Raw.wav", FileType: "wav",
	})
	if err != nil {
		t.Fatalf("CreateBeat: %v", err)
	}

	got, err := repos.Beats.GetBeatByID(id)
	if err != nil {
		t.Fatalf("GetBeatByID: %v", err)
	}
	if got.Description != nil || got.Genre != nil || got.BPM != nil || got.Duration != nil {
		t.Errorf("expected nil curation fields, got %+v", got)
	}
}

func TestCreateBeat_Conflicts(t *testing.T) {
	tests := []struct {
		name   string
		second *model.Beat
	}{
		{
			name:   "duplicate slug",
			second: &model.Beat{Title: "My Beat", Slug: "my-beat", FileName: "My_Beat.wav", FileType: "wav"},
		},
		{
			name:   "duplicate file name",
			second: &model.Beat{Title: "Other", Slug: "other", FileName: "My Beat.mp3", FileType: "mp3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := newTestDB(t)

			first := &model.Beat{Title: "My Beat", Slug: "my-beat", FileName: "My Beat.mp3", FileType: "mp3"}
			if _, err := repos.Beats.CreateBeat(first); err != nil {
				t.Fatalf("first CreateBeat: %v", err)
			}

			_, err := repos.Beats.CreateBeat(tt.second)
			if !errors.Is(err, ErrConflict) {
				t.Fatalf("expected ErrConflict, got %v", err)
			}

			// The existing row must be untouched.
			got, err := repos.Beats.GetBeatByFileName("My Beat.mp3")
			if err != nil || got == nil {
				t.Fatalf("GetBeatByFileName after conflict: %v, %v", got, err)
			}
			if got.Title != "My Beat" {
				t.Errorf("existing row was altered: %+v", got)
			}
		})
	}
}

func TestGetAllBeats_Ordering(t *testing.T) {
	repos := newTestDB(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	names := []string{"first.mp3", "second.mp3", "third.mp3"}
	for i, name := range names {
		_, err := repos.Beats.CreateBeat(&model.Beat{
			Title:     name,
			Slug:      "slug-" + name,
			FileName:  name,
			FileType:  "mp3",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("CreateBeat %s: %v", name, err)
		}
	}

	beats, err := repos.Beats.GetAllBeats()
	if err != nil {
		t.Fatalf("GetAllBeats: %v", err)
	}
	if len(beats) != 3 {
		t.Fatalf("expected 3 beats, got %d", len(beats))
	}

	want := []string{"third.mp3", "second.mp3", "first.mp3"}
	for i, beat := range beats {
		if beat.FileName != want[i] {
			t.Errorf("position %d: got %s, want %s", i, beat.FileName, want[i])
		}
	}
}

func TestGetBeatByFileName_CaseSensitive(t *testing.T) {
	repos := newTestDB(t)

	if _, err := repos.Beats.CreateBeat(&model.Beat{
		Title: "Track", Slug: "track", FileName: "Track.MP3", FileType: "mp3",
	}); err != nil {
		t.Fatalf("CreateBeat: %v", err)
	}

	got, err := repos.Beats.GetBeatByFileName("Track.MP3")
	if err != nil {
		t.Fatalf("GetBeatByFileName: %v", err)
	}
	if got == nil {
		t.Fatal("exact match not found")
	}

	miss, err := repos.Beats.GetBeatByFileName("track.mp3")
	if err != nil {
		t.Fatalf("GetBeatByFileName lowercase: %v", err)
	}
	if miss != nil {
		t.Errorf("lookup should be case-sensitive, matched %+v", miss)
	}
}

func TestGetBeatByID_NotFound(t *testing.T) {
	repos := newTestDB(t)

	got, err := repos.Beats.GetBeatByID(999)
	if err != nil {
		t.Fatalf("GetBeatByID: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing beat, got %+v", got)
	}
}
