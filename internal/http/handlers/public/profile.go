package public

import (
	"errors"

	"github.com/petits-moulins/api/internal/http/response"
	"github.com/petits-moulins/api/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProfile 当前会话家长的档案
func (h *Handler) GetProfile(c *gin.Context) {
	email := c.GetString("parent_email")
	if email == "" {
		respondError(c, response.CodeUnauthorized, "Authentification requise", nil)
		return
	}

	parent, err := h.ParentService.GetByEmail(email)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Adresse courriel non trouvée", nil)
			return
		}
		respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
		return
	}

	response.Success(c, gin.H{
		"success": true,
		"parent":  buildParentView(parent),
	})
}
