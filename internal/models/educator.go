package models

import (
	"time"

	"gorm.io/gorm"
)

// Educator 教育者表
type Educator struct {
	ID             uint           `gorm:"primarykey" json:"id"`           // 主键
	Name           string         `gorm:"not null" json:"name"`           // 姓名
	Email          string         `gorm:"default:''" json:"email"`        // 邮箱（可选）
	Phone          string         `gorm:"default:''" json:"phone"`        // 电话（可选）
	Specialization string         `gorm:"default:''" json:"specialization"` // 专长
	Active         bool           `gorm:"not null;default:true" json:"active"` // 是否在职
	CreatedAt      time.Time      `json:"created_at"`                     // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                     // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                 // 软删除时间
}

// TableName 指定表名
func (Educator) TableName() string {
	return "educators"
}
