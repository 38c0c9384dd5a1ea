package service

import (
	"context"
	"strings"
	"time"

	"github.com/petits-moulins/api/internal/cache"
	"github.com/petits-moulins/api/internal/constants"
	"github.com/petits-moulins/api/internal/models"
	"github.com/petits-moulins/api/internal/repository"
)

// EducatorService 教育者业务服务
type EducatorService struct {
	repo    repository.EducatorRepository
	listTTL time.Duration
}

// NewEducatorService 创建教育者服务
func NewEducatorService(repo repository.EducatorRepository, listTTL time.Duration) *EducatorService {
	return &EducatorService{repo: repo, listTTL: listTTL}
}

// EducatorInput 创建/更新教育者输入
type EducatorInput struct {
	Name           string
	Email          string
	Phone          string
	Specialization string
	Active         *bool
}

// List 后台教育者列表
func (s *EducatorService) List(keyword, specialization string, onlyActive bool, page, pageSize int) ([]models.Educator, int64, error) {
	filter := repository.EducatorListFilter{
		Page:           page,
		PageSize:       pageSize,
		Keyword:        strings.TrimSpace(keyword),
		Specialization: strings.TrimSpace(specialization),
		OnlyActive:     onlyActive,
	}
	return s.repo.List(filter)
}

// ListActive 公开的在职教育者列表，命中缓存时不触库
func (s *EducatorService) ListActive(ctx context.Context) ([]models.Educator, error) {
	var cached []models.Educator
	if hit, err := cache.GetJSON(ctx, constants.CacheKeyActiveEducators, &cached); err == nil && hit {
		return cached, nil
	}

	educators, _, err := s.repo.List(repository.EducatorListFilter{OnlyActive: true})
	if err != nil {
		return nil, err
	}
	_ = cache.SetJSON(ctx, constants.CacheKeyActiveEducators, educators, s.listTTL)
	return educators, nil
}

// GetByID 根据 ID 获取教育者
func (s *EducatorService) GetByID(id uint) (*models.Educator, error) {
	educator, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if educator == nil {
		return nil, ErrNotFound
	}
	return educator, nil
}

// Create 创建教育者
func (s *EducatorService) Create(input EducatorInput) (*models.Educator, error) {
	educator, err := buildEducatorEntity(input, nil)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(educator); err != nil {
		return nil, err
	}
	s.invalidateListCache()
	return educator, nil
}

// Update 更新教育者
func (s *EducatorService) Update(id uint, input EducatorInput) (*models.Educator, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	educator, err := buildEducatorEntity(input, existing)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(educator); err != nil {
		return nil, err
	}
	s.invalidateListCache()
	return educator, nil
}

// Delete 删除教育者
func (s *EducatorService) Delete(id uint) error {
	educator, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if educator == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidateListCache()
	return nil
}

func (s *EducatorService) invalidateListCache() {
	_ = cache.Del(context.Background(), constants.CacheKeyActiveEducators)
}

func buildEducatorEntity(input EducatorInput, existing *models.Educator) (*models.Educator, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidEducator
	}

	educator := existing
	if educator == nil {
		educator = &models.Educator{
			Active:    true,
			CreatedAt: time.Now(),
		}
	}
	educator.Name = name
	educator.Phone = strings.TrimSpace(input.Phone)
	educator.Specialization = strings.TrimSpace(input.Specialization)

	email := strings.TrimSpace(input.Email)
	if email != "" {
		normalized, err := normalizeEmail(email)
		if err != nil {
			return nil, err
		}
		educator.Email = normalized
	} else {
		educator.Email = ""
	}

	if input.Active != nil {
		educator.Active = *input.Active
	}
	educator.UpdatedAt = time.Now()
	return educator, nil
}
