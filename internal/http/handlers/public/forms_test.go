package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/petits-moulins/api/internal/config"
	"github.com/petits-moulins/api/internal/constants"
	"github.com/petits-moulins/api/internal/models"
	"github.com/petits-moulins/api/internal/provider"
	"github.com/petits-moulins/api/internal/repository"
	"github.com/petits-moulins/api/internal/service"
	"github.com/glebarez/sqlite"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupFormsHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:public_forms_handler_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Parent{}, &models.ConsentForm{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	container := &provider.Container{
		Config:             &config.Config{},
		ParentRepo:         repository.NewParentRepository(db),
		ConsentFormRepo:    repository.NewConsentFormRepository(db),
		ConsentFormService: service.NewConsentFormService(repository.NewConsentFormRepository(db), nil),
	}
	return New(container), db
}

func postFormJSON(h gin.HandlerFunc, payload, sessionEmail string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/api/forms/submit", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	if sessionEmail != "" {
		c.Set("parent_email", sessionEmail)
	}
	h(c)
	return w
}

func getFormByID(h gin.HandlerFunc, id, sessionEmail string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/forms/"+id, nil)
	c.Params = gin.Params{{Key: "id", Value: id}}
	if sessionEmail != "" {
		c.Set("parent_email", sessionEmail)
	}
	h(c)
	return w
}

func TestSubmitFormUsesSessionIdentity(t *testing.T) {
	h, db := setupFormsHandlerTest(t)
	if err := db.Create(&models.Parent{
		Name:   "Isabelle Roy",
		Email:  "isabelle.roy@example.com",
		Status: constants.ParentStatusActive,
	}).Error; err != nil {
		t.Fatalf("create parent failed: %v", err)
	}

	// 请求体中的家长字段必须被忽略，身份只取会话
	payload := `{"parent_email":"victime@example.com","parent_name":"Forgé","form_type":"sortie","digital_signature":"Isabelle Roy","children":["Émile"]}`
	w := postFormJSON(h.SubmitForm, payload, "isabelle.roy@example.com")
	if w.Code != http.StatusCreated {
		t.Fatalf("status want 201 got %d body=%s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	formID, _ := resp["form_id"].(string)
	if formID == "" {
		t.Fatalf("expected form_id, got %v", resp)
	}

	var stored models.ConsentForm
	if err := db.Where("id = ?", formID).First(&stored).Error; err != nil {
		t.Fatalf("load stored form failed: %v", err)
	}
	if stored.ParentEmail != "isabelle.roy@example.com" {
		t.Fatalf("expected session email on form, got %s", stored.ParentEmail)
	}
	if stored.ParentName != "Isabelle Roy" {
		t.Fatalf("expected parent name from record, got %s", stored.ParentName)
	}
}

func TestSubmitFormWithoutSession(t *testing.T) {
	h, _ := setupFormsHandlerTest(t)

	payload := `{"form_type":"sortie","digital_signature":"X","children":["Émile"]}`
	w := postFormJSON(h.SubmitForm, payload, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestSubmitFormUnknownParentFallbackName(t *testing.T) {
	h, db := setupFormsHandlerTest(t)

	payload := `{"form_type":"sortie","digital_signature":"X","children":["Émile"]}`
	w := postFormJSON(h.SubmitForm, payload, "sans.fiche@example.com")
	if w.Code != http.StatusCreated {
		t.Fatalf("status want 201 got %d body=%s", w.Code, w.Body.String())
	}

	var stored models.ConsentForm
	if err := db.Where("parent_email = ?", "sans.fiche@example.com").First(&stored).Error; err != nil {
		t.Fatalf("load stored form failed: %v", err)
	}
	if stored.ParentName != "Parent" {
		t.Fatalf("expected fallback name, got %s", stored.ParentName)
	}
}

func TestGetFormOwnership(t *testing.T) {
	h, _ := setupFormsHandlerTest(t)

	payload := `{"form_type":"sortie","digital_signature":"Marc Lavoie","children":["Léa"]}`
	w := postFormJSON(h.SubmitForm, payload, "marc.lavoie@example.com")
	if w.Code != http.StatusCreated {
		t.Fatalf("submit status want 201 got %d", w.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	formID, _ := resp["form_id"].(string)

	if w := getFormByID(h.GetForm, formID, "marc.lavoie@example.com"); w.Code != http.StatusOK {
		t.Fatalf("owner status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	if w := getFormByID(h.GetForm, formID, "autre.parent@example.com"); w.Code != http.StatusForbidden {
		t.Fatalf("foreign parent status want 403 got %d body=%s", w.Code, w.Body.String())
	}
	if w := getFormByID(h.GetForm, formID, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no session status want 401 got %d body=%s", w.Code, w.Body.String())
	}
}
