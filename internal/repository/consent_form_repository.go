package repository

import (
	"errors"

	"github.com/petits-moulins/api/internal/models"

	"gorm.io/gorm"
)

// ConsentFormRepository 同意书数据访问接口
type ConsentFormRepository interface {
	GetByID(id string) (*models.ConsentForm, error)
	Create(form *models.ConsentForm) error
	UpdateStatus(id string, status string) (bool, error)
	List(filter ConsentFormListFilter) ([]models.ConsentForm, int64, error)
	ListByParentEmail(email string) ([]models.ConsentForm, error)
}

// GormConsentFormRepository GORM 实现
type GormConsentFormRepository struct {
	db *gorm.DB
}

// NewConsentFormRepository 创建同意书仓库
func NewConsentFormRepository(db *gorm.DB) *GormConsentFormRepository {
	return &GormConsentFormRepository{db: db}
}

// GetByID 根据表单编号获取同意书
func (r *GormConsentFormRepository) GetByID(id string) (*models.ConsentForm, error) {
	var form models.ConsentForm
	if err := r.db.Where("id = ?", id).First(&form).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &form, nil
}

// Create 创建同意书
func (r *GormConsentFormRepository) Create(form *models.ConsentForm) error {
	return r.db.Create(form).Error
}

// UpdateStatus 更新同意书审核状态，返回是否命中记录
func (r *GormConsentFormRepository) UpdateStatus(id string, status string) (bool, error) {
	result := r.db.Model(&models.ConsentForm{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// List 同意书列表，按提交时间倒序
func (r *GormConsentFormRepository) List(filter ConsentFormListFilter) ([]models.ConsentForm, int64, error) {
	query := r.db.Model(&models.ConsentForm{})

	if filter.ParentEmail != "" {
		query = query.Where("parent_email = ?", filter.ParentEmail)
	}
	if filter.FormType != "" {
		query = query.Where("form_type = ?", filter.FormType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.SubmittedFrom != nil {
		query = query.Where("date_submitted >= ?", *filter.SubmittedFrom)
	}
	if filter.SubmittedTo != nil {
		query = query.Where("date_submitted <= ?", *filter.SubmittedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var forms []models.ConsentForm
	if err := query.Order("date_submitted DESC").Find(&forms).Error; err != nil {
		return nil, 0, err
	}
	return forms, total, nil
}

// ListByParentEmail 按家长邮箱获取其全部同意书，按提交时间倒序
func (r *GormConsentFormRepository) ListByParentEmail(email string) ([]models.ConsentForm, error) {
	var forms []models.ConsentForm
	if err := r.db.Where("parent_email = ?", email).
		Order("date_submitted DESC").Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}
