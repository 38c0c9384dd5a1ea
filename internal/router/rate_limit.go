package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/petits-moulins/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	Message       string
}

// MemoryRateLimiter 进程内滑动窗口限流器
// 计数不跨进程共享，重启即清零。
type MemoryRateLimiter struct {
	mu   sync.Mutex
	hits map[string][]time.Time
}

// NewMemoryRateLimiter 创建进程内限流器
func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{hits: make(map[string][]time.Time)}
}

// Allow 判断请求是否放行，拒绝时返回建议等待秒数
func (l *MemoryRateLimiter) Allow(key string, window time.Duration, maxRequests int) (bool, int) {
	if l == nil || window <= 0 || maxRequests <= 0 {
		return true, 0
	}

	now := time.Now()
	cutoff := now.Add(-window)

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.hits[key][:0]
	for _, hit := range l.hits[key] {
		if hit.After(cutoff) {
			recent = append(recent, hit)
		}
	}

	if len(recent) >= maxRequests {
		l.hits[key] = recent
		wait := int(window - now.Sub(recent[0]))
		waitSeconds := wait / int(time.Second)
		if waitSeconds < 1 {
			waitSeconds = 1
		}
		return false, waitSeconds
	}

	l.hits[key] = append(recent, now)
	return true, 0
}

// Reset 清空指定 key 的计数
func (l *MemoryRateLimiter) Reset(key string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.hits, key)
}

// RateLimitMiddleware 进程内频率限制中间件
func RateLimitMiddleware(limiter *MemoryRateLimiter, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || rule.WindowSeconds <= 0 || rule.MaxRequests <= 0 {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = fmt.Sprintf("%s:%s", rule.Prefix, key)
		}

		allowed, _ := limiter.Allow(key, time.Duration(rule.WindowSeconds)*time.Second, rule.MaxRequests)
		if !allowed {
			msg := strings.TrimSpace(rule.Message)
			if msg == "" {
				msg = "Trop de demandes, veuillez réessayer plus tard"
			}
			response.TooManyRequests(c, msg)
			c.Abort()
			return
		}

		c.Next()
	}
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 使用 IP + JSON 字段作为限流 key
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(strings.TrimSpace(readJSONField(c, field)))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", value, c.ClientIP())
	}
}

func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return ""
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	value, ok := payload[field]
	if !ok {
		return ""
	}
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}
