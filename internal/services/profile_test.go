package services_test

import (
	"testing"

	"github.com/CS161-Software-Project/MindClash/internal/services"
)

func TestProfileLazyCreateAndUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewProfileService(db)
	user := createUser(t, db, "alice")

	// No profile row exists yet; Get creates an empty one.
	profile, err := svc.Get(user.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if profile.UserID != user.ID || profile.Bio != "" {
		t.Errorf("unexpected fresh profile: %+v", profile)
	}

	age := 27
	updated, err := svc.Update(user.ID, services.ProfileInput{
		Bio:       "quiz enjoyer",
		FirstName: "Alice",
		Age:       &age,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Bio != "quiz enjoyer" || updated.FirstName != "Alice" || updated.Age == nil || *updated.Age != 27 {
		t.Errorf("update not applied: %+v", updated)
	}

	again, err := svc.Get(user.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if again.ID != profile.ID {
		t.Errorf("Get created a second profile row: %d vs %d", again.ID, profile.ID)
	}
	if again.Bio != "quiz enjoyer" {
		t.Errorf("update not persisted: %+v", again)
	}
}
