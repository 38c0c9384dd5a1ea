package shared

const (
	defaultPageSize = 20
	maxSharedPage   = 100
)

// NormalizePagination 归一化分页参数，页大小限定在 [1, 100]
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxSharedPage {
		pageSize = maxSharedPage
	}
	return page, pageSize
}
