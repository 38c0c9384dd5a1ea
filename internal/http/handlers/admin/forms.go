package admin

import (
	"errors"
	"strconv"

	"github.com/petits-moulins/api/internal/http/response"
	"github.com/petits-moulins/api/internal/service"

	"github.com/gin-gonic/gin"
)

// GetForms 后台同意书列表
func (h *Handler) GetForms(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	forms, total, err := h.ConsentFormService.List(
		c.Query("parent_email"),
		c.Query("form_type"),
		c.Query("status"),
		page, pageSize,
	)
	if err != nil {
		respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, forms, pagination)
}

// GetFormDetail 后台同意书详情
func (h *Handler) GetFormDetail(c *gin.Context) {
	form, err := h.ConsentFormService.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Formulaire non trouvé", nil)
			return
		}
		respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
		return
	}
	response.Success(c, gin.H{"success": true, "form": form})
}

// UpdateFormStatusRequest 更新同意书状态请求
type UpdateFormStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateFormStatus 更新同意书审核状态
func (h *Handler) UpdateFormStatus(c *gin.Context) {
	var req UpdateFormStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Statut requis", err)
		return
	}

	form, err := h.ConsentFormService.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "Formulaire non trouvé", nil)
		case errors.Is(err, service.ErrFormStatusInvalid):
			respondError(c, response.CodeBadRequest, "Statut invalide", nil)
		default:
			respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
		}
		return
	}
	response.Success(c, gin.H{"success": true, "form": form})
}
