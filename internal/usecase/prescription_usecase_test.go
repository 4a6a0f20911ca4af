package usecase

import (
	"testing"
	"time"

	"clinic-management-server/config"
	"clinic-management-server/internal/delivery/dto"
)

func TestResolveFollowUpDate(t *testing.T) {
	loc, err := time.LoadLocation("America/Manaus")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	t.Run("default time is nine in the morning", func(t *testing.T) {
		date, err := resolveFollowUpDate(&dto.FollowUpRequest{Date: "2026-09-15"}, loc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if date.Hour() != 9 || date.Minute() != 0 {
			t.Errorf("expected 09:00, got %02d:%02d", date.Hour(), date.Minute())
		}
		if date.Location() != loc {
			t.Errorf("expected clinic location, got %v", date.Location())
		}
	})

	t.Run("explicit time is honored", func(t *testing.T) {
		date, err := resolveFollowUpDate(&dto.FollowUpRequest{Date: "2026-09-15", Time: "14:30"}, loc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if date.Hour() != 14 || date.Minute() != 30 {
			t.Errorf("expected 14:30, got %02d:%02d", date.Hour(), date.Minute())
		}
	})

	t.Run("calendar day survives the zone", func(t *testing.T) {
		date, err := resolveFollowUpDate(&dto.FollowUpRequest{Date: "2026-09-15"}, loc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		y, m, d := date.Date()
		if y != 2026 || m != time.September || d != 15 {
			t.Errorf("expected 2026-09-15, got %04d-%02d-%02d", y, m, d)
		}
	})

	t.Run("malformed date fails", func(t *testing.T) {
		if _, err := resolveFollowUpDate(&dto.FollowUpRequest{Date: "15/09/2026"}, loc); err == nil {
			t.Error("expected error for malformed date")
		}
	})

	t.Run("malformed time fails", func(t *testing.T) {
		if _, err := resolveFollowUpDate(&dto.FollowUpRequest{Date: "2026-09-15", Time: "2pm"}, loc); err == nil {
			t.Error("expected error for malformed time")
		}
	})
}

func TestBuildItems(t *testing.T) {
	u := &prescriptionUsecase{clinic: config.ClinicConfig{Location: time.UTC}}

	t.Run("continuous duration marks the item ongoing", func(t *testing.T) {
		items, err := u.buildItems([]dto.PrescriptionItemRequest{
			{Type: "Allopathic", Name: "Losartana", Duration: "Uso contínuo"},
			{Type: "Traditional", Name: "Chá de boldo", Duration: "7 dias"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !items[0].Ongoing {
			t.Error("expected continuous item to be ongoing")
		}
		if items[1].Ongoing {
			t.Error("expected dated item not to be ongoing")
		}
	})

	t.Run("end date is parsed and preserved", func(t *testing.T) {
		items, err := u.buildItems([]dto.PrescriptionItemRequest{
			{Type: "Allopathic", Name: "Amoxicilina", Duration: "10 dias", EndDate: "2026-09-25"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if items[0].EndDate == nil {
			t.Fatal("expected end date to be set")
		}
		y, m, d := items[0].EndDate.Date()
		if y != 2026 || m != time.September || d != 25 {
			t.Errorf("expected 2026-09-25, got %04d-%02d-%02d", y, m, d)
		}
	})

	t.Run("malformed end date fails", func(t *testing.T) {
		_, err := u.buildItems([]dto.PrescriptionItemRequest{
			{Type: "Allopathic", Name: "Amoxicilina", EndDate: "soon"},
		})
		if err != ErrInvalidDate {
			t.Errorf("expected ErrInvalidDate, got %v", err)
		}
	})

	t.Run("empty input yields empty slice", func(t *testing.T) {
		items, err := u.buildItems(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("expected no items, got %d", len(items))
		}
	})
}
