package public

import (
	"errors"
	"time"

	"github.com/petits-moulins/api/internal/http/response"
	"github.com/petits-moulins/api/internal/service"

	"github.com/gin-gonic/gin"
)

// fallbackParentName 家长记录缺失姓名时的占位名
const fallbackParentName = "Parent"

// SubmitFormRequest 提交同意书请求
// 提交人身份取自会话，不接受请求体中的家长信息。
type SubmitFormRequest struct {
	FormType            string     `json:"form_type" binding:"required"`
	Children            []string   `json:"children"`
	ActivityDescription string     `json:"activity_description"`
	EventDate           *time.Time `json:"event_date"`
	ConsentGiven        bool       `json:"consent_given"`
	AdditionalNotes     string     `json:"additional_notes"`
	DigitalSignature    string     `json:"digital_signature" binding:"required"`
}

// SubmitForm 提交同意书（需会话）
func (h *Handler) SubmitForm(c *gin.Context) {
	email := c.GetString("parent_email")
	if email == "" {
		respondError(c, response.CodeUnauthorized, "Authentification requise", nil)
		return
	}

	var req SubmitFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Type de formulaire et signature requis", err)
		return
	}

	form, err := h.ConsentFormService.Submit(service.ConsentFormInput{
		ParentEmail:         email,
		ParentName:          h.resolveParentName(email),
		FormType:            req.FormType,
		Children:            req.Children,
		ActivityDescription: req.ActivityDescription,
		EventDate:           req.EventDate,
		ConsentGiven:        req.ConsentGiven,
		AdditionalNotes:     req.AdditionalNotes,
		DigitalSignature:    req.DigitalSignature,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Adresse courriel invalide", nil)
		case errors.Is(err, service.ErrInvalidForm):
			respondError(c, response.CodeBadRequest, "Type de formulaire requis", nil)
		case errors.Is(err, service.ErrFormSignatureRequired):
			respondError(c, response.CodeBadRequest, "Signature électronique requise", nil)
		case errors.Is(err, service.ErrFormChildrenRequired):
			respondError(c, response.CodeBadRequest, "Au moins un enfant doit être sélectionné", nil)
		default:
			respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
		}
		return
	}

	response.Created(c, gin.H{
		"success": true,
		"message": "Formulaire soumis avec succès",
		"form_id": form.ID,
		"form":    form,
	})
}

// resolveParentName 按会话邮箱回查家长姓名，查不到时用占位名
func (h *Handler) resolveParentName(email string) string {
	if h.ParentRepo == nil {
		return fallbackParentName
	}
	parent, err := h.ParentRepo.GetByEmail(email)
	if err != nil || parent == nil || parent.Name == "" {
		return fallbackParentName
	}
	return parent.Name
}

// GetForm 查询单个同意书（需会话，仅限提交人本人）
func (h *Handler) GetForm(c *gin.Context) {
	email := c.GetString("parent_email")
	if email == "" {
		respondError(c, response.CodeUnauthorized, "Authentification requise", nil)
		return
	}

	form, err := h.ConsentFormService.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Formulaire non trouvé", nil)
			return
		}
		respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
		return
	}
	if form.ParentEmail != email {
		respondError(c, response.CodeForbidden, "Accès refusé", nil)
		return
	}
	response.Success(c, gin.H{
		"success": true,
		"form":    form,
	})
}

// GetMyForms 家长查询自己的同意书（需要会话）
func (h *Handler) GetMyForms(c *gin.Context) {
	email := c.GetString("parent_email")
	if email == "" {
		respondError(c, response.CodeUnauthorized, "Authentification requise", nil)
		return
	}

	forms, err := h.ConsentFormService.ListByParentEmail(email)
	if err != nil {
		respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
		return
	}
	response.Success(c, gin.H{
		"success": true,
		"forms":   forms,
	})
}
