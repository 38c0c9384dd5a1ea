package repository

import "time"

// ParentListFilter 查询家长列表的过滤条件
type ParentListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Status   string
}

// EducatorListFilter 查询教育者列表的过滤条件
type EducatorListFilter struct {
	Page           int
	PageSize       int
	Keyword        string
	Specialization string
	OnlyActive     bool
}

// GroupListFilter 查询班组列表的过滤条件
type GroupListFilter struct {
	Page       int
	PageSize   int
	Keyword    string
	OnlyActive bool
}

// ConsentFormListFilter 查询同意书列表的过滤条件
type ConsentFormListFilter struct {
	Page          int
	PageSize      int
	ParentEmail   string
	FormType      string
	Status        string
	SubmittedFrom *time.Time
	SubmittedTo   *time.Time
}
