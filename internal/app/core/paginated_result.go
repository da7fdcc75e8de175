package core

import "math"

type PaginatedResult[T any] struct {
	Items       []T
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
}

func NewPaginatedResult[T any](items []T, currentPage int, perPage int, total int) PaginatedResult[T] {
	result := PaginatedResult[T]{
		Items:       items,
		CurrentPage: currentPage,
		LastPage:    currentPage,
		PerPage:     perPage,
		Total:       total,
	}

	result.LastPage = result.getLastPage()

	return result
}

func (r *PaginatedResult[T]) getLastPage() int {
	if r.Total == 0 {
		return 1
	}

	return int(math.Ceil(float64(r.Total) / float64(r.PerPage)))
}

func (r *PaginatedResult[T]) IsLastPage() bool {
	return r.CurrentPage == r.LastPage
}
