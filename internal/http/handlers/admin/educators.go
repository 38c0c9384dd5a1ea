package admin

import (
	"errors"
	"strconv"

	"github.com/petits-moulins/api/internal/http/response"
	"github.com/petits-moulins/api/internal/service"

	"github.com/gin-gonic/gin"
)

// EducatorUpsertRequest 教育者创建/更新请求
type EducatorUpsertRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	Active         *bool  `json:"active"`
}

func (r EducatorUpsertRequest) toInput() service.EducatorInput {
	return service.EducatorInput{
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Specialization: r.Specialization,
		Active:         r.Active,
	}
}

// GetEducators 后台教育者列表
func (h *Handler) GetEducators(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	onlyActive := false
	if raw := c.Query("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "Paramètre active invalide", err)
			return
		}
		onlyActive = parsed
	}

	educators, total, err := h.EducatorService.List(c.Query("search"), c.Query("specialization"), onlyActive, page, pageSize)
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
	response.SuccessWithPage(c, educators, pagination)
}

// GetEducator 后台教育者详情
func (h *Handler) GetEducator(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	educator, err := h.EducatorService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Éducatrice non trouvée", nil)
			return
		}
		respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
		return
	}
	response.Success(c, gin.H{"success": true, "educator": educator})
}

// CreateEducator 创建教育者
func (h *Handler) CreateEducator(c *gin.Context) {
	var req EducatorUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Nom requis", err)
		return
	}

	educator, err := h.EducatorService.Create(req.toInput())
	if err != nil {
		respondEducatorMutationError(c, err)
		return
	}
	response.Created(c, gin.H{"success": true, "educator": educator})
}

// UpdateEducator 更新教育者
func (h *Handler) UpdateEducator(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req EducatorUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Nom requis", err)
		return
	}

	educator, err := h.EducatorService.Update(id, req.toInput())
	if err != nil {
		respondEducatorMutationError(c, err)
		return
	}
	response.Success(c, gin.H{"success": true, "educator": educator})
}

// DeleteEducator 删除教育者
func (h *Handler) DeleteEducator(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.EducatorService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Éducatrice non trouvée", nil)
			return
		}
		respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
		return
	}
	response.Success(c, gin.H{"success": true, "message": "Éducatrice supprimée"})
}

func respondEducatorMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "Éducatrice non trouvée", nil)
	case errors.Is(err, service.ErrInvalidEmail):
		respondError(c, response.CodeBadRequest, "Adresse courriel invalide", nil)
	case errors.Is(err, service.ErrInvalidEducator):
		respondError(c, response.CodeBadRequest, "Informations de l'éducatrice invalides", nil)
	default:
		respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
	}
}
