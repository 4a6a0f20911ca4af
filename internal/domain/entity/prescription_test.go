package entity

import (
	"testing"
	"time"
)

func TestIsContinuousDuration(t *testing.T) {
	continuous := []string{"Contínuo", "continuo", "Uso contínuo", "CONTINUOUS", "uso contínua"}
	for _, d := range continuous {
		if !IsContinuousDuration(d) {
			t.Errorf("%q should be detected as continuous", d)
		}
	}

	bounded := []string{"7 dias", "14 days", "", "até melhorar", "2 semanas"}
	for _, d := range bounded {
		if IsContinuousDuration(d) {
			t.Errorf("%q should not be detected as continuous", d)
		}
	}
}

func TestPrescriptionItem_IsActiveOn(t *testing.T) {
	today := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	yesterday := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	nextWeek := time.Date(2024, 6, 22, 0, 0, 0, 0, time.UTC)

	// An ongoing regimen never expires, even years later.
	ongoing := &PrescriptionItem{Ongoing: true}
	if !ongoing.IsActiveOn(today) || !ongoing.IsActiveOn(today.AddDate(5, 0, 0)) {
		t.Error("ongoing item should be active on any future date")
	}

	// End date in the past excludes the item.
	expired := &PrescriptionItem{EndDate: &yesterday}
	if expired.IsActiveOn(today) {
		t.Error("item ended yesterday should not be active today")
	}

	// End date today or later keeps the item active (inclusive bound).
	endsToday := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	current := &PrescriptionItem{EndDate: &endsToday}
	if !current.IsActiveOn(today) {
		t.Error("item ending today should still be active")
	}
	future := &PrescriptionItem{EndDate: &nextWeek}
	if !future.IsActiveOn(today) {
		t.Error("item ending next week should be active")
	}

	// Neither field set: not an active treatment.
	bare := &PrescriptionItem{}
	if bare.IsActiveOn(today) {
		t.Error("item with no end date and not ongoing should be inactive")
	}
}
