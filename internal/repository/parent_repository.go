package repository

import (
	"errors"
	"time"

	"github.com/petits-moulins/api/internal/models"

	"gorm.io/gorm"
)

// ParentRepository 家长数据访问接口
type ParentRepository interface {
	GetByEmail(email string) (*models.Parent, error)
	GetByID(id uint) (*models.Parent, error)
	Create(parent *models.Parent) error
	Update(parent *models.Parent) error
	Delete(id uint) error
	List(filter ParentListFilter) ([]models.Parent, int64, error)
	TouchLastLogin(id uint, at time.Time) error
}

// GormParentRepository GORM 实现
type GormParentRepository struct {
	db *gorm.DB
}

// NewParentRepository 创建家长仓库
func NewParentRepository(db *gorm.DB) *GormParentRepository {
	return &GormParentRepository{db: db}
}

// GetByEmail 根据归一化邮箱获取家长
func (r *GormParentRepository) GetByEmail(email string) (*models.Parent, error) {
	var parent models.Parent
	if err := r.db.Where("email = ?", email).First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &parent, nil
}

// GetByID 根据 ID 获取家长
func (r *GormParentRepository) GetByID(id uint) (*models.Parent, error) {
	var parent models.Parent
	if err := r.db.First(&parent, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &parent, nil
}

// Create 创建家长
func (r *GormParentRepository) Create(parent *models.Parent) error {
	return r.db.Create(parent).Error
}

// Update 更新家长
func (r *GormParentRepository) Update(parent *models.Parent) error {
	return r.db.Save(parent).Error
}

// Delete 软删除家长
func (r *GormParentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Parent{}, id).Error
}

// List 家长列表，按姓名排序
func (r *GormParentRepository) List(filter ParentListFilter) ([]models.Parent, int64, error) {
	query := r.db.Model(&models.Parent{})

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var parents []models.Parent
	if err := query.Order("name ASC").Find(&parents).Error; err != nil {
		return nil, 0, err
	}
	return parents, total, nil
}

// TouchLastLogin 记录最近一次验证成功时间
func (r *GormParentRepository) TouchLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.Parent{}).Where("id = ?", id).
		Update("last_login_at", at).Error
}
