package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/petits-moulins/api/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupVerificationCodeRepoTest(t *testing.T) (*GormVerificationCodeRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:verification_code_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.VerificationCode{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewVerificationCodeRepository(db), db
}

func verificationCodeRow(email, hash string, expiresAt time.Time) *models.VerificationCode {
	now := time.Now()
	return &models.VerificationCode{
		Email:     email,
		CodeHash:  hash,
		ExpiresAt: expiresAt,
		Used:      false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestUpsertReplacesExistingChallenge(t *testing.T) {
	repo, db := setupVerificationCodeRepoTest(t)
	email := "parent@example.com"

	if err := repo.Upsert(verificationCodeRow(email, "hash-1", time.Now().Add(10*time.Minute))); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	// 已消费的旧记录也被新挑战整体覆盖
	if _, err := repo.ConsumeByEmail(email); err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if err := repo.Upsert(verificationCodeRow(email, "hash-2", time.Now().Add(10*time.Minute))); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.VerificationCode{}).Where("email = ?", email).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected single row per email, got %d", count)
	}

	record, err := repo.GetByEmail(email)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if record == nil || record.CodeHash != "hash-2" {
		t.Fatalf("expected replaced hash, got %+v", record)
	}
	if record.Used {
		t.Fatalf("replacement should reset used flag")
	}
}

func TestGetByEmailMissing(t *testing.T) {
	repo, _ := setupVerificationCodeRepoTest(t)

	record, err := repo.GetByEmail("absent@example.com")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil for missing record, got %+v", record)
	}
}

func TestConsumeByEmailSingleWinner(t *testing.T) {
	repo, _ := setupVerificationCodeRepoTest(t)
	email := "parent@example.com"

	if err := repo.Upsert(verificationCodeRow(email, "hash", time.Now().Add(10*time.Minute))); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	first, err := repo.ConsumeByEmail(email)
	if err != nil {
		t.Fatalf("first consume failed: %v", err)
	}
	if !first {
		t.Fatalf("first consume should win")
	}

	second, err := repo.ConsumeByEmail(email)
	if err != nil {
		t.Fatalf("second consume failed: %v", err)
	}
	if second {
		t.Fatalf("second consume should observe already-used record")
	}
}

func TestConsumeByEmailMissing(t *testing.T) {
	repo, _ := setupVerificationCodeRepoTest(t)

	consumed, err := repo.ConsumeByEmail("absent@example.com")
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if consumed {
		t.Fatalf("missing record should not be consumable")
	}
}

func TestDeleteExpiredBefore(t *testing.T) {
	repo, db := setupVerificationCodeRepoTest(t)

	if err := repo.Upsert(verificationCodeRow("expired@example.com", "hash", time.Now().Add(-time.Minute))); err != nil {
		t.Fatalf("upsert expired failed: %v", err)
	}
	if err := repo.Upsert(verificationCodeRow("fresh@example.com", "hash", time.Now().Add(10*time.Minute))); err != nil {
		t.Fatalf("upsert fresh failed: %v", err)
	}

	removed, err := repo.DeleteExpiredBefore(time.Now())
	if err != nil {
		t.Fatalf("delete expired failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}

	var count int64
	if err := db.Model(&models.VerificationCode{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 surviving row, got %d", count)
	}
}
