package public

import (
	"github.com/petits-moulins/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptchaChallenge 生成图片验证码挑战
func (h *Handler) GetCaptchaChallenge(c *gin.Context) {
	if h.CaptchaService == nil || !h.CaptchaService.Enabled() {
		respondError(c, response.CodeNotFound, "Captcha désactivé", nil)
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
		return
	}
	response.Success(c, gin.H{
		"success":   true,
		"challenge": challenge,
	})
}
