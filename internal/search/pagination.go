package search

import (
	"strconv"

	"gorm.io/gorm"
)

const PageSize = 10

type Page[T any] struct {
	Items        []T   `json:"items"`
	Page         int   `json:"page"`
	PageSize     int   `json:"page_size"`
	TotalResults int64 `json:"total_results"`
	TotalPages   int   `json:"total_pages"`
}

// TotalPages is ceil(total / size).
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// ParsePage reads a 1-based page number; anything unusable becomes 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Paginate counts q and loads the requested page of it. A page past the end
// yields an empty Items slice, not an error. Scopes (preloads, ordering) are
// applied to the page query only.
func Paginate[T any](q *gorm.DB, page int, scopes ...func(*gorm.DB) *gorm.DB) (Page[T], error) {
	if page < 1 {
		page = 1
	}

	result := Page[T]{Items: []T{}, Page: page, PageSize: PageSize}
	if err := q.Session(&gorm.Session{}).Count(&result.TotalResults).Error; err != nil {
		return result, err
	}
	result.TotalPages = TotalPages(result.TotalResults, PageSize)

	if page > result.TotalPages {
		return result, nil
	}

	if err := q.Session(&gorm.Session{}).
		Scopes(scopes...).
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&result.Items).Error; err != nil {
		return result, err
	}
	return result, nil
}
