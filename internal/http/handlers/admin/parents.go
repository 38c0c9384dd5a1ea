package admin

import (
	"errors"
	"strconv"

	"github.com/petits-moulins/api/internal/http/response"
	"github.com/petits-moulins/api/internal/service"

	"github.com/gin-gonic/gin"
)

// ParentUpsertRequest 家长创建/更新请求
type ParentUpsertRequest struct {
	Name            string                   `json:"name" binding:"required"`
	Email           string                   `json:"email" binding:"required"`
	Phone           string                   `json:"phone"`
	Children        []string                 `json:"children"`
	ChildrenDetails []map[string]interface{} `json:"children_details"`
	Status          *string                  `json:"status"`
}

func (r ParentUpsertRequest) toInput() service.ParentInput {
	return service.ParentInput{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Children:        r.Children,
		ChildrenDetails: r.ChildrenDetails,
		Status:          r.Status,
	}
}

// GetParents 后台家长列表
func (h *Handler) GetParents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	parents, total, err := h.ParentService.List(c.Query("search"), c.Query("status"), page, pageSize)
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
	response.SuccessWithPage(c, parents, pagination)
}

// GetParent 后台家长详情
func (h *Handler) GetParent(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	parent, err := h.ParentService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Parent non trouvé", nil)
			return
		}
		respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
		return
	}
	response.Success(c, gin.H{"success": true, "parent": parent})
}

// CreateParent 创建家长
func (h *Handler) CreateParent(c *gin.Context) {
	var req ParentUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Nom et courriel requis", err)
		return
	}

	parent, err := h.ParentService.Create(req.toInput())
	if err != nil {
		respondParentMutationError(c, err)
		return
	}
	response.Created(c, gin.H{"success": true, "parent": parent})
}

// UpdateParent 更新家长
func (h *Handler) UpdateParent(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ParentUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Nom et courriel requis", err)
		return
	}

	parent, err := h.ParentService.Update(id, req.toInput())
	if err != nil {
		respondParentMutationError(c, err)
		return
	}
	response.Success(c, gin.H{"success": true, "parent": parent})
}

// DeleteParent 删除家长
func (h *Handler) DeleteParent(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.ParentService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Parent non trouvé", nil)
			return
		}
		respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
		return
	}
	response.Success(c, gin.H{"success": true, "message": "Parent supprimé"})
}

func respondParentMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "Parent non trouvé", nil)
	case errors.Is(err, service.ErrInvalidEmail):
		respondError(c, response.CodeBadRequest, "Adresse courriel invalide", nil)
	case errors.Is(err, service.ErrEmailExists):
		respondError(c, response.CodeBadRequest, "Cette adresse courriel existe déjà", nil)
	case errors.Is(err, service.ErrInvalidParent):
		respondError(c, response.CodeBadRequest, "Informations du parent invalides", nil)
	default:
		respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
	}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		respondError(c, response.CodeBadRequest, "Identifiant invalide", err)
		return 0, false
	}
	return uint(parsed), true
}
