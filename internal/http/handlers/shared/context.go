package shared

import (
	"github.com/petits-moulins/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextString 从上下文读取字符串值，缺失时返回 401。
func GetContextString(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "Authentification requise", nil)
		return "", false
	}
	str, ok := value.(string)
	if !ok || str == "" {
		RespondError(c, response.CodeUnauthorized, "Authentification requise", nil)
		return "", false
	}
	return str, true
}

// GetContextUint 从上下文读取 uint 值，缺失或类型错误时统一处理响应。
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "Authentification requise", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "Identifiant invalide", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "Identifiant invalide", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "Erreur interne du serveur", nil)
		return 0, false
	}
}
