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

const defaultGroupColor = "#3498db"

// 班组年龄区间边界（单位：岁）
const (
	minGroupAge = 1
	maxGroupAge = 12
)

// GroupService 班组业务服务
type GroupService struct {
	repo    repository.GroupRepository
	listTTL time.Duration
}

// NewGroupService 创建班组服务
func NewGroupService(repo repository.GroupRepository, listTTL time.Duration) *GroupService {
	return &GroupService{repo: repo, listTTL: listTTL}
}

// GroupInput 创建/更新班组输入
type GroupInput struct {
	Name        string
	AgeMin      int
	AgeMax      int
	Description string
	Color       string
	Active      *bool
}

// List 后台班组列表
func (s *GroupService) List(keyword string, onlyActive bool, page, pageSize int) ([]models.Group, int64, error) {
	filter := repository.GroupListFilter{
		Page:       page,
		PageSize:   pageSize,
		Keyword:    strings.TrimSpace(keyword),
		OnlyActive: onlyActive,
	}
	return s.repo.List(filter)
}

// ListActive 公开的启用班组列表，命中缓存时不触库
func (s *GroupService) ListActive(ctx context.Context) ([]models.Group, error) {
	var cached []models.Group
	if hit, err := cache.GetJSON(ctx, constants.CacheKeyActiveGroups, &cached); err == nil && hit {
		return cached, nil
	}

	groups, _, err := s.repo.List(repository.GroupListFilter{OnlyActive: true})
	if err != nil {
		return nil, err
	}
	_ = cache.SetJSON(ctx, constants.CacheKeyActiveGroups, groups, s.listTTL)
	return groups, nil
}

// GetByID 根据 ID 获取班组
func (s *GroupService) GetByID(id uint) (*models.Group, error) {
	group, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrNotFound
	}
	return group, nil
}

// Create 创建班组
func (s *GroupService) Create(input GroupInput) (*models.Group, error) {
	group, err := buildGroupEntity(input, nil)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(group); err != nil {
		return nil, err
	}
	s.invalidateListCache()
	return group, nil
}

// Update 更新班组
func (s *GroupService) Update(id uint, input GroupInput) (*models.Group, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	group, err := buildGroupEntity(input, existing)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(group); err != nil {
		return nil, err
	}
	s.invalidateListCache()
	return group, nil
}

// Delete 删除班组
func (s *GroupService) Delete(id uint) error {
	group, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidateListCache()
	return nil
}

func (s *GroupService) invalidateListCache() {
	_ = cache.Del(context.Background(), constants.CacheKeyActiveGroups)
}

func buildGroupEntity(input GroupInput, existing *models.Group) (*models.Group, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidGroup
	}
	if input.AgeMin < minGroupAge || input.AgeMax > maxGroupAge || input.AgeMin >= input.AgeMax {
		return nil, ErrInvalidAgeRange
	}

	group := existing
	if group == nil {
		group = &models.Group{
			Active:    true,
			CreatedAt: time.Now(),
		}
	}
	group.Name = name
	group.AgeMin = input.AgeMin
	group.AgeMax = input.AgeMax
	group.Description = strings.TrimSpace(input.Description)

	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = defaultGroupColor
	}
	group.Color = color

	if input.Active != nil {
		group.Active = *input.Active
	}
	group.UpdatedAt = time.Now()
	return group, nil
}
