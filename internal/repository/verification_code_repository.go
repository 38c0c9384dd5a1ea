package repository

import (
	"errors"
	"time"

	"github.com/petits-moulins/api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VerificationCodeRepository 邮箱验证码数据访问接口
// 每个邮箱最多只保留一条挑战记录，Upsert 为原子整体替换。
type VerificationCodeRepository interface {
	Upsert(record *models.VerificationCode) error
	GetByEmail(email string) (*models.VerificationCode, error)
	ConsumeByEmail(email string) (bool, error)
	DeleteExpiredBefore(cutoff time.Time) (int64, error)
}

// GormVerificationCodeRepository GORM 实现
type GormVerificationCodeRepository struct {
	db *gorm.DB
}

// NewVerificationCodeRepository 创建验证码仓库
func NewVerificationCodeRepository(db *gorm.DB) *GormVerificationCodeRepository {
	return &GormVerificationCodeRepository{db: db}
}

// Upsert 写入验证码记录，同邮箱的旧记录被整体覆盖（last writer wins）
func (r *GormVerificationCodeRepository) Upsert(record *models.VerificationCode) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code_hash", "expires_at", "used", "updated_at"}),
	}).Create(record).Error
}

// GetByEmail 按归一化邮箱获取当前记录
func (r *GormVerificationCodeRepository) GetByEmail(email string) (*models.VerificationCode, error) {
	var record models.VerificationCode
	if err := r.db.Where("email = ?", email).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// ConsumeByEmail 将记录标记为已消费
// 条件更新保证并发下只有一个调用方观察到 used=false -> true 的翻转，
// 返回 false 表示记录不存在或已被其他请求消费。
func (r *GormVerificationCodeRepository) ConsumeByEmail(email string) (bool, error) {
	result := r.db.Model(&models.VerificationCode{}).
		Where("email = ? AND used = ?", email, false).
		Update("used", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// DeleteExpiredBefore 清理已过期的验证码记录，返回删除行数
func (r *GormVerificationCodeRepository) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("expires_at < ?", cutoff).Delete(&models.VerificationCode{})
	return result.RowsAffected, result.Error
}
