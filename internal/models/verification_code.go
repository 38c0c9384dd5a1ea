package models

import (
	"time"
)

// VerificationCode 邮箱验证码记录
// 每个邮箱最多只有一条记录（唯一索引），重新发送会整体覆盖旧记录。
// 只落库 bcrypt 哈希，明文验证码从不持久化。
type VerificationCode struct {
	ID        uint      `gorm:"primarykey" json:"id"`              // 主键
	Email     string    `gorm:"uniqueIndex;not null" json:"email"` // 邮箱（归一化后的自然键）
	CodeHash  string    `gorm:"not null" json:"-"`                 // 验证码哈希（不返回给前端）
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`  // 过期时间
	Used      bool      `gorm:"not null;default:false" json:"-"`   // 是否已消费
	CreatedAt time.Time `json:"created_at"`                        // 签发时间
	UpdatedAt time.Time `json:"updated_at"`                        // 更新时间
}

// TableName 指定表名
func (VerificationCode) TableName() string {
	return "verification_codes"
}
