package repository

import (
	"testing"

	"beatstore/model"
)

func TestCreateInquiry_DefaultsAndSoftReference(t *testing.T) {
	repos := newTestDB(t)

	// beat_id 42 does not exist; the soft reference must still be accepted.
	id, err := repos.Inquiries.CreateInquiry(&model.Inquiry{
		BeatID: 42,
		Name:   "A. Buyer",
		Email:  "a@b.com",
		Offer:  "500 USD exclusive",
	})
	if err != nil {
		t.Fatalf("CreateInquiry: %v", err)
	}

	got, err := repos.Inquiries.GetInquiryByID(id)
	if err != nil {
		t.Fatalf("GetInquiryByID: %v", err)
	}
	if got == nil {
		t.Fatal("expected inquiry, got nil")
	}
	if got.Status != model.InquiryStatusNew {
		t.Errorf("Status = %q, want %q", got.Status, model.InquiryStatusNew)
	}
	if got.BeatID != 42 {
		t.Errorf("BeatID = %d, want 42", got.BeatID)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}
}

func TestUpdateInquiryStatus(t *testing.T) {
	repos := newTestDB(t)

	id, err := repos.Inquiries.CreateInquiry(&model.Inquiry{
		BeatID: 1, Name: "B", Email: "b@c.com", Offer: "100",
	})
	if err != nil {
		t.Fatalf("CreateInquiry: %v", err)
	}

	if err := repos.Inquiries.UpdateInquiryStatus(id, "reviewed"); err != nil {
		t.Fatalf("UpdateInquiryStatus: %v", err)
	}

	got, err := repos.Inquiries.GetInquiryByID(id)
	if err != nil {
		t.Fatalf("GetInquiryByID: %v", err)
	}
	if got.Status != "reviewed" {
		t.Errorf("Status = %q, want %q", got.Status, "reviewed")
	}

	if err := repos.Inquiries.UpdateInquiryStatus(9999, "closed"); err == nil {
		t.Error("expected error updating missing inquiry")
	}
}

func TestGetAllInquiries_NewestFirst(t *testing.T) {
	repos := newTestDB(t)

	for _, offer := range []string{"first", "second", "third"} {
		if _, err := repos.Inquiries.CreateInquiry(&model.Inquiry{
			BeatID: 1, Name: "N", Email: "n@m.com", Offer: offer,
		}); err != nil {
			t.Fatalf("CreateInquiry %s: %v", offer, err)
		}
	}

	inquiries, err := repos.Inquiries.GetAllInquiries()
	if err != nil {
		t.Fatalf("GetAllInquiries: %v", err)
	}
	if len(inquiries) != 3 {
		t.Fatalf("expected 3 inquiries, got %d", len(inquiries))
	}
	if inquiries[0].Offer != "third" || inquiries[2].Offer != "first" {
		t.Errorf("unexpected order: %s, %s, %s", inquiries[0].Offer, inquiries[1].Offer, inquiries[2].Offer)
	}
}
