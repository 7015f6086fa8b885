package service

import "printshop-api/internal/core/apperr"

const maxLimit = 100

type PageQuery struct {
	Page  int `form:"page,default=1" json:"page"`
	Limit int `form:"limit,default=10" json:"limit"`
}

func (q PageQuery) Validate() error {
	if q.Page < 1 || q.Limit < 1 {
		return apperr.BadRequest("page and limit must be greater than 0")
	}
	if q.Limit > maxLimit {
		return apperr.BadRequest("limit must not exceed 100")
	}
	return nil
}

func (q PageQuery) Offset() int { return (q.Page - 1) * q.Limit }

type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func NewPage[T any](items []T, total int64, q PageQuery) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return Page[T]{Items: items, Total: total, Page: q.Page, Limit: q.Limit, TotalPages: pages}
}
