package public

import (
	"github.com/petits-moulins/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetGroups 公开的启用班组列表
func (h *Handler) GetGroups(c *gin.Context) {
	groups, err := h.GroupService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
		return
	}
	response.Success(c, gin.H{
		"success": true,
		"groups":  groups,
	})
}

// GetEducators 公开的在职教育者列表
func (h *Handler) GetEducators(c *gin.Context) {
	educators, err := h.EducatorService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
		return
	}
	response.Success(c, gin.H{
		"success":   true,
		"educators": educators,
	})
}
