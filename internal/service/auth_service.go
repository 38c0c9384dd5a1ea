package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/petits-moulins/api/internal/config"
	"github.com/petits-moulins/api/internal/constants"
	"github.com/petits-moulins/api/internal/logger"
	"github.com/petits-moulins/api/internal/models"
	"github.com/petits-moulins/api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 家长免密认证服务
// 流程：签发一次性邮箱验证码，验证通过后换取会话 JWT。
type AuthService struct {
	cfg          *config.Config
	parentRepo   repository.ParentRepository
	codeRepo     repository.VerificationCodeRepository
	emailService *EmailService
}

// NewAuthService 创建认证服务
func NewAuthService(cfg *config.Config, parentRepo repository.ParentRepository, codeRepo repository.VerificationCodeRepository, emailService *EmailService) *AuthService {
	return &AuthService{
		cfg:          cfg,
		parentRepo:   parentRepo,
		codeRepo:     codeRepo,
		emailService: emailService,
	}
}

// ParentJWTClaims 家长会话 JWT 声明
type ParentJWTClaims struct {
	ParentID uint   `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SendVerification 为已注册家长签发一次性验证码
// 明文验证码只出现在返回值与邮件正文中，库里只存 bcrypt 散列。
// 邮件发送失败不回滚挑战记录，只记录告警。
func (s *AuthService) SendVerification(email, locale string) (*models.Parent, string, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", err
	}

	parent, err := s.parentRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", err
	}
	if parent == nil {
		return nil, "", ErrParentNotFound
	}

	code, err := randomNumericCode(resolveCodeLength(s.cfg.Email.VerifyCode))
	if err != nil {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), resolveBcryptCost(s.cfg.Email.VerifyCode))
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	record := &models.VerificationCode{
		Email:     normalized,
		CodeHash:  string(hash),
		ExpiresAt: now.Add(time.Duration(resolveExpireMinutes(s.cfg.Email.VerifyCode)) * time.Minute),
		Used:      false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.codeRepo.Upsert(record); err != nil {
		return nil, "", err
	}

	if s.emailService != nil {
		if sendErr := s.emailService.SendVerificationCode(normalized, code, locale); sendErr != nil {
			logger.Warnw("verify_code_email_send_failed",
				"email", normalized,
				"error", sendErr,
			)
		}
	}

	return parent, code, nil
}

// VerifyCode 校验验证码并签发会话 JWT
// 校验顺序：记录存在且未消费、未过期、散列匹配，最后以条件更新消费记录。
func (s *AuthService) VerifyCode(email, code string) (*models.Parent, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	record, err := s.codeRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if record == nil || record.Used {
		return nil, "", time.Time{}, ErrVerifyCodeNotFound
	}

	now := time.Now()
	if !now.Before(record.ExpiresAt) {
		return nil, "", time.Time{}, ErrVerifyCodeExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.CodeHash), []byte(strings.TrimSpace(code))); err != nil {
		return nil, "", time.Time{}, ErrVerifyCodeMismatch
	}

	consumed, err := s.codeRepo.ConsumeByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if !consumed {
		return nil, "", time.Time{}, ErrVerifyCodeNotFound
	}

	parent, err := s.parentRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if parent == nil {
		return nil, "", time.Time{}, ErrParentNotFound
	}

	token, expiresAt, err := s.GenerateParentJWT(parent)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if err := s.parentRepo.TouchLastLogin(parent.ID, now); err != nil {
		logger.Warnw("parent_last_login_update_failed",
			"parent_id", parent.ID,
			"error", err,
		)
	}

	return parent, token, expiresAt, nil
}

// GenerateParentJWT 生成家长会话 JWT
func (s *AuthService) GenerateParentJWT(parent *models.Parent) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(resolveJWTExpireHours(s.cfg.JWT)) * time.Hour)
	claims := ParentJWTClaims{
		ParentID: parent.ID,
		Email:    parent.Email,
		Role:     constants.RoleParent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseParentJWT 解析家长会话 JWT
func (s *AuthService) ParseParentJWT(tokenString string) (*ParentJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &ParentJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*ParentJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}

// CleanupExpiredCodes 清理已过期的验证码记录
func (s *AuthService) CleanupExpiredCodes() (int64, error) {
	return s.codeRepo.DeleteExpiredBefore(time.Now())
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// NormalizeEmail 统一邮箱格式
func NormalizeEmail(email string) (string, error) {
	return normalizeEmail(email)
}

func resolveJWTExpireHours(cfg config.JWTConfig) int {
	if cfg.ExpireHours <= 0 {
		return 2
	}
	return cfg.ExpireHours
}

func resolveExpireMinutes(cfg config.VerifyCodeConfig) int {
	if cfg.ExpireMinutes <= 0 {
		return 10
	}
	return cfg.ExpireMinutes
}

func resolveCodeLength(cfg config.VerifyCodeConfig) int {
	if cfg.Length < 4 || cfg.Length > 10 {
		return 6
	}
	return cfg.Length
}

func resolveBcryptCost(cfg config.VerifyCodeConfig) int {
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return 10
	}
	return cfg.BcryptCost
}

func randomNumericCode(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String(), nil
}
