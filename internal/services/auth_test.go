package services_test

import (
	"testing"

	"github.com/CS161-Software-Project/MindClash/internal/models"
	"github.com/CS161-Software-Project/MindClash/internal/services"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db, "test-secret")

	token, err := svc.Register("alice", "hunter22")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if token == "" {
		t.Fatal("register returned empty token")
	}

	userID, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("token from register did not validate: %v", err)
	}

	// Registration creates the empty profile alongside the account.
	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		t.Errorf("no profile created for new user: %v", err)
	}

	if _, err := svc.Register("alice", "other"); err == nil {
		t.Error("duplicate username should be rejected")
	}

	if _, err := svc.Login("alice", "hunter22"); err != nil {
		t.Errorf("login failed: %v", err)
	}
	if _, err := svc.Login("alice", "wrong"); err == nil {
		t.Error("wrong password should be rejected")
	}
	if _, err := svc.Login("nobody", "hunter22"); err == nil {
		t.Error("unknown user should be rejected")
	}
}

func TestValidateToken(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db, "test-secret")

	token, err := svc.GenerateToken(42)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	userID, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if userID != 42 {
		t.Errorf("user id = %d, want 42", userID)
	}

	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token should be rejected")
	}

	other := services.NewAuthService(db, "different-secret")
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token signed with another secret should be rejected")
	}
}
