package public

import (
	"errors"
	"strings"

	"github.com/petits-moulins/api/internal/constants"
	"github.com/petits-moulins/api/internal/http/handlers/shared"
	"github.com/petits-moulins/api/internal/http/response"
	"github.com/petits-moulins/api/internal/models"
	"github.com/petits-moulins/api/internal/service"

	"github.com/gin-gonic/gin"
)

// SendVerificationRequest 发送验证码请求
type SendVerificationRequest struct {
	Email          string                       `json:"email" binding:"required"`
	CaptchaPayload shared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// SendVerification 向已注册家长邮箱发送一次性验证码
func (h *Handler) SendVerification(c *gin.Context) {
	var req SendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Adresse courriel requise", err)
		return
	}

	if h.CaptchaService != nil {
		if captchaErr := h.CaptchaService.Verify(constants.CaptchaSceneSendVerification, req.CaptchaPayload.ToServicePayload()); captchaErr != nil {
			switch {
			case errors.Is(captchaErr, service.ErrCaptchaRequired):
				respondError(c, response.CodeBadRequest, "Captcha requis", nil)
			case errors.Is(captchaErr, service.ErrCaptchaInvalid):
				respondError(c, response.CodeBadRequest, "Captcha invalide", nil)
			default:
				respondError(c, response.CodeInternal, "Erreur interne du serveur", captchaErr)
			}
			return
		}
	}

	locale := resolveLocale(c)
	_, code, err := h.AuthService.SendVerification(req.Email, locale)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Adresse courriel invalide", nil)
		case errors.Is(err, service.ErrParentNotFound):
			respondError(c, response.CodeNotFound, "Adresse courriel non trouvée", nil)
		default:
			respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
		}
		return
	}

	body := gin.H{
		"success": true,
		"message": "Code envoyé à votre adresse courriel",
	}
	// 明文验证码只在调试模式下回显，便于本地联调
	if h.Config != nil && strings.EqualFold(h.Config.Server.Mode, "debug") {
		body["dev_code"] = code
	}
	response.Success(c, body)
}

// VerifyCodeRequest 校验验证码请求，验证码必须是 6 位数字
type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// VerifyCode 校验验证码并签发家长会话 JWT
func (h *Handler) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Courriel et code à 6 chiffres requis", err)
		return
	}

	parent, token, expiresAt, err := h.AuthService.VerifyCode(req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Adresse courriel invalide", nil)
		case errors.Is(err, service.ErrVerifyCodeNotFound):
			respondError(c, response.CodeBadRequest, "Code non trouvé", nil)
		case errors.Is(err, service.ErrVerifyCodeExpired):
			respondError(c, response.CodeBadRequest, "Code expiré", nil)
		case errors.Is(err, service.ErrVerifyCodeMismatch):
			respondError(c, response.CodeBadRequest, "Code incorrect", nil)
		case errors.Is(err, service.ErrParentNotFound):
			respondError(c, response.CodeNotFound, "Adresse courriel non trouvée", nil)
		default:
			respondError(c, response.CodeInternal, "Erreur interne du serveur", err)
		}
		return
	}

	response.Success(c, gin.H{
		"success":    true,
		"token":      token,
		"expires_at": expiresAt,
		"parent":     buildParentView(parent),
	})
}

func buildParentView(parent *models.Parent) gin.H {
	if parent == nil {
		return gin.H{}
	}
	return gin.H{
		"id":               parent.ID,
		"name":             parent.Name,
		"email":            parent.Email,
		"phone":            parent.Phone,
		"children":         parent.Children,
		"children_details": parent.ChildrenDetails,
	}
}

func resolveLocale(c *gin.Context) string {
	locale := strings.TrimSpace(c.GetHeader("Accept-Language"))
	if locale == "" {
		return "fr"
	}
	return locale
}
