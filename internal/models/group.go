package models

import (
	"time"

	"gorm.io/gorm"
)

// Group 班组表
// 按年龄段划分，AgeMin 必须小于 AgeMax。
type Group struct {
	ID          uint           `gorm:"primarykey" json:"id"`                // 主键
	Name        string         `gorm:"not null" json:"name"`                // 名称
	AgeMin      int            `gorm:"not null" json:"age_min"`             // 最小年龄
	AgeMax      int            `gorm:"not null" json:"age_max"`             // 最大年龄
	Description string         `gorm:"default:''" json:"description"`       // 描述
	Color       string         `gorm:"default:'#3498db'" json:"color"`      // 展示颜色
	Active      bool           `gorm:"not null;default:true" json:"active"` // 是否启用
	CreatedAt   time.Time      `json:"created_at"`                          // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                          // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                      // 软删除时间
}

// TableName 指定表名
func (Group) TableName() string {
	return "groups"
}
