package repository

import "gorm.io/gorm"

// maxPageSize 单页记录数上限，与接口层的归一化规则保持一致
const maxPageSize = 100

// applyPagination 统一处理页码与偏移量，页大小超出上限时按上限截断
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
