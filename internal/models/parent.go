package models

import (
	"time"

	"gorm.io/gorm"
)

// Parent 家长账号表
// 账号由园方预先登记，认证流程只负责验证邮箱归属，从不创建账号。
type Parent struct {
	ID              uint           `gorm:"primarykey" json:"id"`              // 主键
	Name            string         `gorm:"not null" json:"name"`              // 姓名
	Email           string         `gorm:"uniqueIndex;not null" json:"email"` // 邮箱（归一化后的自然键）
	Phone           string         `gorm:"default:''" json:"phone"`           // 电话
	Children        StringArray    `gorm:"type:text" json:"children"`         // 儿童姓名列表
	ChildrenDetails JSONArray      `gorm:"type:text" json:"children_details"` // 儿童详细资料
	Status          string         `gorm:"default:'active'" json:"status"`    // 账号状态
	LastLoginAt     *time.Time     `json:"last_login_at"`                     // 最后登录时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`           // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                        // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                    // 软删除时间
}

// TableName 指定表名
func (Parent) TableName() string {
	return "parents"
}
