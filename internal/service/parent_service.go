package service

import (
	"strings"
	"time"

	"github.com/petits-moulins/api/internal/constants"
	"github.com/petits-moulins/api/internal/models"
	"github.com/petits-moulins/api/internal/repository"
)

// ParentService 家长档案业务服务
type ParentService struct {
	repo repository.ParentRepository
}

// NewParentService 创建家长服务
func NewParentService(repo repository.ParentRepository) *ParentService {
	return &ParentService{repo: repo}
}

// ParentInput 创建/更新家长输入
type ParentInput struct {
	Name            string
	Email           string
	Phone           string
	Children        []string
	ChildrenDetails []map[string]interface{}
	Status          *string
}

// List 家长列表
func (s *ParentService) List(keyword, status string, page, pageSize int) ([]models.Parent, int64, error) {
	filter := repository.ParentListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(keyword),
		Status:   strings.ToLower(strings.TrimSpace(status)),
	}
	return s.repo.List(filter)
}

// GetByID 根据 ID 获取家长
func (s *ParentService) GetByID(id uint) (*models.Parent, error) {
	parent, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrNotFound
	}
	return parent, nil
}

// GetByEmail 根据邮箱获取家长
func (s *ParentService) GetByEmail(email string) (*models.Parent, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	parent, err := s.repo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrNotFound
	}
	return parent, nil
}

// Create 创建家长，邮箱全局唯一
func (s *ParentService) Create(input ParentInput) (*models.Parent, error) {
	parent, err := s.buildEntity(input, nil)
	if err != nil {
		return nil, err
	}

	exist, err := s.repo.GetByEmail(parent.Email)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrEmailExists
	}

	if err := s.repo.Create(parent); err != nil {
		return nil, err
	}
	return parent, nil
}

// Update 更新家长
func (s *ParentService) Update(id uint, input ParentInput) (*models.Parent, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	parent, err := s.buildEntity(input, existing)
	if err != nil {
		return nil, err
	}

	if parent.Email != existing.Email {
		conflict, err := s.repo.GetByEmail(parent.Email)
		if err != nil {
			return nil, err
		}
		if conflict != nil && conflict.ID != id {
			return nil, ErrEmailExists
		}
	}

	if err := s.repo.Update(parent); err != nil {
		return nil, err
	}
	return parent, nil
}

// Delete 删除家长
func (s *ParentService) Delete(id uint) error {
	parent, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if parent == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func (s *ParentService) buildEntity(input ParentInput, existing *models.Parent) (*models.Parent, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidParent
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	parent := existing
	if parent == nil {
		parent = &models.Parent{
			Status:    constants.ParentStatusActive,
			CreatedAt: time.Now(),
		}
	}
	parent.Name = name
	parent.Email = email
	parent.Phone = strings.TrimSpace(input.Phone)
	if input.Children != nil {
		parent.Children = models.StringArray(input.Children)
	}
	if input.ChildrenDetails != nil {
		parent.ChildrenDetails = models.JSONArray(input.ChildrenDetails)
	}
	if input.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*input.Status))
		switch status {
		case constants.ParentStatusActive, constants.ParentStatusInactive:
			parent.Status = status
		default:
			return nil, ErrInvalidParent
		}
	}
	parent.UpdatedAt = time.Now()
	return parent, nil
}
