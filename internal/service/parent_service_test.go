package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/petits-moulins/api/internal/constants"
	"github.com/petits-moulins/api/internal/models"
	"github.com/petits-moulins/api/internal/repository"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupParentServiceTest(t *testing.T) (*ParentService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:parent_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Parent{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewParentService(repository.NewParentRepository(db)), db
}

func parentTestInput(email string) ParentInput {
	return ParentInput{
		Name:     "Isabelle Roy",
		Email:    email,
		Phone:    "514-555-0201",
		Children: []string{"Émile Roy"},
	}
}

func TestCreateParentNormalizesEmail(t *testing.T) {
	svc, _ := setupParentServiceTest(t)

	parent, err := svc.Create(parentTestInput("  Isabelle.Roy@Example.COM "))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if parent.Email != "isabelle.roy@example.com" {
		t.Fatalf("expected normalized email, got %s", parent.Email)
	}
	if parent.Status != constants.ParentStatusActive {
		t.Fatalf("expected default active status, got %s", parent.Status)
	}
}

func TestCreateParentDuplicateEmail(t *testing.T) {
	svc, _ := setupParentServiceTest(t)

	if _, err := svc.Create(parentTestInput("isabelle.roy@example.com")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(parentTestInput("Isabelle.Roy@example.com")); err != ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestCreateParentValidation(t *testing.T) {
	svc, _ := setupParentServiceTest(t)

	input := parentTestInput("isabelle.roy@example.com")
	input.Name = "   "
	if _, err := svc.Create(input); err != ErrInvalidParent {
		t.Fatalf("blank name: expected ErrInvalidParent, got %v", err)
	}

	input = parentTestInput("pas-un-courriel")
	if _, err := svc.Create(input); err != ErrInvalidEmail {
		t.Fatalf("bad email: expected ErrInvalidEmail, got %v", err)
	}

	bad := "suspendu"
	input = parentTestInput("isabelle.roy@example.com")
	input.Status = &bad
	if _, err := svc.Create(input); err != ErrInvalidParent {
		t.Fatalf("bad status: expected ErrInvalidParent, got %v", err)
	}
}

func TestUpdateParentEmailConflict(t *testing.T) {
	svc, _ := setupParentServiceTest(t)

	first, err := svc.Create(parentTestInput("premier@example.com"))
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	if _, err := svc.Create(parentTestInput("second@example.com")); err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	input := parentTestInput("second@example.com")
	if _, err := svc.Update(first.ID, input); err != ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestUpdateParentStatus(t *testing.T) {
	svc, _ := setupParentServiceTest(t)

	parent, err := svc.Create(parentTestInput("isabelle.roy@example.com"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	inactive := constants.ParentStatusInactive
	input := parentTestInput("isabelle.roy@example.com")
	input.Status = &inactive
	updated, err := svc.Update(parent.ID, input)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != constants.ParentStatusInactive {
		t.Fatalf("expected inactive status, got %s", updated.Status)
	}
}

func TestDeleteParent(t *testing.T) {
	svc, _ := setupParentServiceTest(t)

	parent, err := svc.Create(parentTestInput("isabelle.roy@example.com"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(parent.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetByID(parent.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(parent.ID); err != ErrNotFound {
		t.Fatalf("double delete: expected ErrNotFound, got %v", err)
	}
}

func TestListParentsFilter(t *testing.T) {
	svc, _ := setupParentServiceTest(t)

	if _, err := svc.Create(parentTestInput("isabelle.roy@example.com")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	other := parentTestInput("marc.lavoie@example.com")
	other.Name = "Marc Lavoie"
	created, err := svc.Create(other)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	inactive := constants.ParentStatusInactive
	update := parentTestInput("marc.lavoie@example.com")
	update.Name = "Marc Lavoie"
	update.Status = &inactive
	if _, err := svc.Update(created.ID, update); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	parents, total, err := svc.List("", constants.ParentStatusInactive, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(parents) != 1 || parents[0].Email != "marc.lavoie@example.com" {
		t.Fatalf("unexpected filtered list: total=%d parents=%+v", total, parents)
	}

	parents, total, err = svc.List("isabelle", "", 1, 20)
	if err != nil {
		t.Fatalf("keyword list failed: %v", err)
	}
	if total != 1 || len(parents) != 1 {
		t.Fatalf("unexpected keyword list: total=%d len=%d", total, len(parents))
	}
}
