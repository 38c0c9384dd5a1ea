package repository

import (
	"errors"

	"github.com/petits-moulins/api/internal/models"

	"gorm.io/gorm"
)

// GroupRepository 班组数据访问接口
type GroupRepository interface {
	GetByID(id uint) (*models.Group, error)
	Create(group *models.Group) error
	Update(group *models.Group) error
	Delete(id uint) error
	List(filter GroupListFilter) ([]models.Group, int64, error)
}

// GormGroupRepository GORM 实现
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository 创建班组仓库
func NewGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

// GetByID 根据 ID 获取班组
func (r *GormGroupRepository) GetByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// Create 创建班组
func (r *GormGroupRepository) Create(group *models.Group) error {
	return r.db.Create(group).Error
}

// Update 更新班组
func (r *GormGroupRepository) Update(group *models.Group) error {
	return r.db.Save(group).Error
}

// Delete 软删除班组
func (r *GormGroupRepository) Delete(id uint) error {
	return r.db.Delete(&models.Group{}, id).Error
}

// List 班组列表，按年龄下限排序
func (r *GormGroupRepository) List(filter GroupListFilter) ([]models.Group, int64, error) {
	query := r.db.Model(&models.Group{})

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("name LIKE ?", like)
	}
	if filter.OnlyActive {
		query = query.Where("active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var groups []models.Group
	if err := query.Order("age_min ASC").Find(&groups).Error; err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}
