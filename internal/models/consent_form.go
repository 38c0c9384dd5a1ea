package models

import (
	"time"
)

// ConsentForm 同意书表
// 由家长在登录态下提交，ParentEmail/ParentName 取自会话身份快照。
type ConsentForm struct {
	ID                  string      `gorm:"primarykey" json:"id"`                   // 业务主键（FORM-<毫秒时间戳>-<后缀>）
	ParentEmail         string      `gorm:"index;not null" json:"parent_email"`     // 提交家长邮箱
	ParentName          string      `gorm:"default:''" json:"parent_name"`          // 提交家长姓名
	FormType            string      `gorm:"not null" json:"form_type"`              // 同意书类型
	Children            StringArray `gorm:"type:text" json:"children"`              // 涉及儿童
	ActivityDescription string      `gorm:"default:''" json:"activity_description"` // 活动描述
	EventDate           *time.Time  `json:"event_date"`                             // 活动日期
	ConsentGiven        bool        `gorm:"not null;default:false" json:"consent_given"` // 是否同意
	AdditionalNotes     string      `gorm:"default:''" json:"additional_notes"`     // 补充说明
	DigitalSignature    string      `gorm:"not null" json:"digital_signature"`      // 电子签名
	Status              string      `gorm:"index;default:'submitted'" json:"status"` // 处理状态
	DateSubmitted       time.Time   `gorm:"index" json:"date_submitted"`            // 提交时间
	UpdatedAt           time.Time   `json:"updated_at"`                             // 更新时间
}

// TableName 指定表名
func (ConsentForm) TableName() string {
	return "forms"
}
