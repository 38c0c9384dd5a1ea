package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/petits-moulins/api/internal/constants"
	"github.com/petits-moulins/api/internal/logger"
	"github.com/petits-moulins/api/internal/models"
	"github.com/petits-moulins/api/internal/queue"
	"github.com/petits-moulins/api/internal/repository"

	"github.com/google/uuid"
)

// ConsentFormService 同意书业务服务
type ConsentFormService struct {
	repo        repository.ConsentFormRepository
	queueClient *queue.Client
}

// NewConsentFormService 创建同意书服务
func NewConsentFormService(repo repository.ConsentFormRepository, queueClient *queue.Client) *ConsentFormService {
	return &ConsentFormService{repo: repo, queueClient: queueClient}
}

// ConsentFormInput 提交同意书输入
type ConsentFormInput struct {
	ParentEmail         string
	ParentName          string
	FormType            string
	Children            []string
	ActivityDescription string
	EventDate           *time.Time
	ConsentGiven        bool
	AdditionalNotes     string
	DigitalSignature    string
}

// Submit 提交同意书，编号由服务端生成
func (s *ConsentFormService) Submit(input ConsentFormInput) (*models.ConsentForm, error) {
	email, err := normalizeEmail(input.ParentEmail)
	if err != nil {
		return nil, err
	}
	formType := strings.TrimSpace(input.FormType)
	if formType == "" {
		return nil, ErrInvalidForm
	}
	if strings.TrimSpace(input.DigitalSignature) == "" {
		return nil, ErrFormSignatureRequired
	}
	children := make([]string, 0, len(input.Children))
	for _, child := range input.Children {
		if trimmed := strings.TrimSpace(child); trimmed != "" {
			children = append(children, trimmed)
		}
	}
	if len(children) == 0 {
		return nil, ErrFormChildrenRequired
	}

	now := time.Now()
	form := &models.ConsentForm{
		ID:                  newFormID(now),
		ParentEmail:         email,
		ParentName:          strings.TrimSpace(input.ParentName),
		FormType:            formType,
		Children:            models.StringArray(children),
		ActivityDescription: strings.TrimSpace(input.ActivityDescription),
		EventDate:           input.EventDate,
		ConsentGiven:        input.ConsentGiven,
		AdditionalNotes:     strings.TrimSpace(input.AdditionalNotes),
		DigitalSignature:    strings.TrimSpace(input.DigitalSignature),
		Status:              constants.FormStatusSubmitted,
		DateSubmitted:       now,
		UpdatedAt:           now,
	}

	if err := s.repo.Create(form); err != nil {
		return nil, err
	}
	return form, nil
}

// GetByID 根据表单编号获取同意书
func (s *ConsentFormService) GetByID(id string) (*models.ConsentForm, error) {
	form, err := s.repo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}
	return form, nil
}

// List 后台同意书列表
func (s *ConsentFormService) List(parentEmail, formType, status string, page, pageSize int) ([]models.ConsentForm, int64, error) {
	email := strings.ToLower(strings.TrimSpace(parentEmail))
	filter := repository.ConsentFormListFilter{
		Page:        page,
		PageSize:    pageSize,
		ParentEmail: email,
		FormType:    strings.TrimSpace(formType),
		Status:      strings.ToLower(strings.TrimSpace(status)),
	}
	return s.repo.List(filter)
}

// ListByParentEmail 家长查看自己的同意书
func (s *ConsentFormService) ListByParentEmail(email string) ([]models.ConsentForm, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByParentEmail(normalized)
}

// UpdateStatus 更新同意书审核状态并触发通知邮件任务
// 入队失败只记录告警，状态变更本身不回滚。
func (s *ConsentFormService) UpdateStatus(id, status string) (*models.ConsentForm, error) {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if !isFormStatusValid(normalized) {
		return nil, ErrFormStatusInvalid
	}

	trimmedID := strings.TrimSpace(id)
	updated, err := s.repo.UpdateStatus(trimmedID, normalized)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotFound
	}

	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueFormStatusEmail(queue.FormStatusEmailPayload{FormID: trimmedID}); err != nil {
			logger.Warnw("form_status_email_enqueue_failed",
				"form_id", trimmedID,
				"status", normalized,
				"error", err,
			)
		}
	}

	return s.repo.GetByID(trimmedID)
}

func isFormStatusValid(status string) bool {
	switch status {
	case constants.FormStatusSubmitted, constants.FormStatusReviewed,
		constants.FormStatusApproved, constants.FormStatusRejected:
		return true
	default:
		return false
	}
}

func newFormID(now time.Time) string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("FORM-%d-%s", now.UnixMilli(), suffix)
}
