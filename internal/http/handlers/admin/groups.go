package admin

import (
	"errors"
	"strconv"

	"github.com/petits-moulins/api/internal/http/response"
	"github.com/petits-moulins/api/internal/service"

	"github.com/gin-gonic/gin"
)

// GroupUpsertRequest 班组创建/更新请求
type GroupUpsertRequest struct {
	Name        string `json:"name" binding:"required"`
	AgeMin      int    `json:"age_min"`
	AgeMax      int    `json:"age_max" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Active      *bool  `json:"active"`
}

func (r GroupUpsertRequest) toInput() service.GroupInput {
	return service.GroupInput{
		Name:        r.Name,
		AgeMin:      r.AgeMin,
		AgeMax:      r.AgeMax,
		Description: r.Description,
		Color:       r.Color,
		Active:      r.Active,
	}
}

// GetGroups 后台班组列表
func (h *Handler) GetGroups(c *gin.Context) {
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

	groups, total, err := h.GroupService.List(c.Query("search"), onlyActive, page, pageSize)
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
	response.SuccessWithPage(c, groups, pagination)
}

// GetGroup 后台班组详情
func (h *Handler) GetGroup(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	group, err := h.GroupService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Groupe non trouvé", nil)
			return
		}
		respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
		return
	}
	response.Success(c, gin.H{"success": true, "group": group})
}

// CreateGroup 创建班组
func (h *Handler) CreateGroup(c *gin.Context) {
	var req GroupUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Nom et tranche d'âge requis", err)
		return
	}

	group, err := h.GroupService.Create(req.toInput())
	if err != nil {
		respondGroupMutationError(c, err)
		return
	}
	response.Created(c, gin.H{"success": true, "group": group})
}

// UpdateGroup 更新班组
func (h *Handler) UpdateGroup(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req GroupUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Nom et tranche d'âge requis", err)
		return
	}

	group, err := h.GroupService.Update(id, req.toInput())
	if err != nil {
		respondGroupMutationError(c, err)
		return
	}
	response.Success(c, gin.H{"success": true, "group": group})
}

// DeleteGroup 删除班组
func (h *Handler) DeleteGroup(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.GroupService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Groupe non trouvé", nil)
			return
		}
		respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
		return
	}
	response.Success(c, gin.H{"success": true, "message": "Groupe supprimé"})
}

func respondGroupMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "Groupe non trouvé", nil)
	case errors.Is(err, service.ErrInvalidAgeRange):
		respondError(c, response.CodeBadRequest, "L'âge minimum doit être inférieur à l'âge maximum", nil)
	case errors.Is(err, service.ErrInvalidGroup):
		respondError(c, response.CodeBadRequest, "Informations du groupe invalides", nil)
	default:
		respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
	}
}
