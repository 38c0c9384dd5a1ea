package repository

import (
	"errors"

	"github.com/petits-moulins/api/internal/models"

	"gorm.io/gorm"
)

// EducatorRepository 教育者数据访问接口
type EducatorRepository interface {
	GetByID(id uint) (*models.Educator, error)
	Create(educator *models.Educator) error
	Update(educator *models.Educator) error
	Delete(id uint) error
	List(filter EducatorListFilter) ([]models.Educator, int64, error)
}

// GormEducatorRepository GORM 实现
type GormEducatorRepository struct {
	db *gorm.DB
}

// NewEducatorRepository 创建教育者仓库
func NewEducatorRepository(db *gorm.DB) *GormEducatorRepository {
	return &GormEducatorRepository{db: db}
}

// GetByID 根据 ID 获取教育者
func (r *GormEducatorRepository) GetByID(id uint) (*models.Educator, error) {
	var educator models.Educator
	if err := r.db.First(&educator, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &educator, nil
}

// Create 创建教育者
func (r *GormEducatorRepository) Create(educator *models.Educator) error {
	return r.db.Create(educator).Error
}

// Update 更新教育者
func (r *GormEducatorRepository) Update(educator *models.Educator) error {
	return r.db.Save(educator).Error
}

// Delete 软删除教育者
func (r *GormEducatorRepository) Delete(id uint) error {
	return r.db.Delete(&models.Educator{}, id).Error
}

// List 教育者列表，按姓名排序
func (r *GormEducatorRepository) List(filter EducatorListFilter) ([]models.Educator, int64, error) {
	query := r.db.Model(&models.Educator{})

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}
	if filter.Specialization != "" {
		query = query.Where("specialization = ?", filter.Specialization)
	}
	if filter.OnlyActive {
		query = query.Where("active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var educators []models.Educator
	if err := query.Order("name ASC").Find(&educators).Error; err != nil {
		return nil, 0, err
	}
	return educators, total, nil
}
