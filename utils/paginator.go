package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrPageOutOfRange is returned under the strict policy for pages outside [1, last].
	ErrPageOutOfRange = errors.New("page out of range")
	// ErrInvalidPageSize is returned when perPage is not positive.
	ErrInvalidPageSize = errors.New("page size must be positive")
)

// Source is an ordered, filtered collection that can be counted and sliced
// without being loaded in full.
type Source[T any] interface {
	Count() (int64, error)
	Slice(offset, limit int) ([]T, error)
}

// Page is one bounded slice of a Source plus navigation metadata.
type Page[T any] struct {
	Items       []T   `json:"items"`
	Number      int   `json:"page"`
	PerPage     int   `json:"page_size"`
	TotalCount  int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasPrevious bool  `json:"has_previous"`
	HasNext     bool  `json:"has_next"`
}

// PreviousNumber is the page number before this one, or 0 when there is none.
func (p *Page[T]) PreviousNumber() int {
	if !p.HasPrevious {
		return 0
	}
	return p.Number - 1
}

// NextNumber is the page number after this one, or 0 when there is none.
func (p *Page[T]) NextNumber() int {
	if !p.HasNext {
		return 0
	}
	return p.Number + 1
}

// Len returns the number of items on the page.
func (p *Page[T]) Len() int {
	return len(p.Items)
}

// ParsePageNumber reads a 1-based page number. Absent or non-numeric input
// yields 1. Numbers that overflow int saturate so they still fall outside the
// valid range on the correct side.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case err == nil:
		return n
	case errors.Is(err, strconv.ErrRange) && n > 0:
		return math.MaxInt
	case errors.Is(err, strconv.ErrRange):
		return math.MinInt
	default:
		return 1
	}
}

// Paginate serves page `requested` of src with perPage items per page.
//
// Under the clamp policy numbers below 1 serve page 1 and numbers past the end
// serve the last page. Under the strict policy both return ErrPageOutOfRange.
// An empty source always serves an empty page 1 with TotalPages == 0.
func Paginate[T any](src Source[T], perPage int, requested string, strict bool) (*Page[T], error) {
	if perPage <= 0 {
		return nil, ErrInvalidPageSize
	}

	total, err := src.Count()
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	last := totalPages
	if last < 1 {
		last = 1
	}

	number := ParsePageNumber(requested)
	if number < 1 || number > last {
		if strict {
			return nil, ErrPageOutOfRange
		}
		if number < 1 {
			number = 1
		} else {
			number = last
		}
	}

	items := []T{}
	if total > 0 {
		items, err = src.Slice((number-1)*perPage, perPage)
		if err != nil {
			return nil, fmt.Errorf("slice items: %w", err)
		}
	}

	return &Page[T]{
		Items:       items,
		Number:      number,
		PerPage:     perPage,
		TotalCount:  total,
		TotalPages:  totalPages,
		HasPrevious: number > 1,
		HasNext:     number < totalPages,
	}, nil
}

// SliceSource adapts an in-memory slice to Source.
type SliceSource[T any] []T

func (s SliceSource[T]) Count() (int64, error) {
	return int64(len(s)), nil
}

func (s SliceSource[T]) Slice(offset, limit int) ([]T, error) {
	if offset >= len(s) {
		return []T{}, nil
	}
	end := offset + limit
	if end > len(s) {
		end = len(s)
	}
	out := make([]T, end-offset)
	copy(out, s[offset:end])
	return out, nil
}
