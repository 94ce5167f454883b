package utils

import (
	"strconv"

	"gorm.io/gorm"
)

// PostsLimit is the default number of posts on one page.
const PostsLimit = 10

// Paginator splits Count records into pages of PerPage records.
type Paginator struct {
	Count   int64
	PerPage int
}

// NumPages is never below 1: an empty result set still has one empty page.
func (p Paginator) NumPages() int {
	if p.PerPage < 1 || p.Count <= 0 {
		return 1
	}
	return int((p.Count + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// GetPage resolves a raw page parameter to a valid page number. A missing or
// non-numeric value selects the first page, an out of range number (including
// zero and negatives) selects the last one.
func (p Paginator) GetPage(raw string) int {
	number, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	if last := p.NumPages(); number < 1 || number > last {
		return last
	}
	return number
}

// Offset of the first record on the given page.
func (p Paginator) Offset(number int) int {
	return (number - 1) * p.PerPage
}

type Page[T any] struct {
	Number      int   `json:"number"`
	NumPages    int   `json:"num_pages"`
	Count       int64 `json:"count"`
	PerPage     int   `json:"per_page"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
	Results     []T   `json:"results"`
}

// Paginate counts the rows matched by query, picks the page named by raw and
// loads it. The scopes (ordering, preloads) are applied to the page query
// only.
func Paginate[T any](query *gorm.DB, raw string, perPage int, scopes ...func(*gorm.DB) *gorm.DB) (*Page[T], error) {
	if perPage < 1 {
		perPage = PostsLimit
	}
	query = query.Session(&gorm.Session{})

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, err
	}

	paginator := Paginator{Count: count, PerPage: perPage}
	number := paginator.GetPage(raw)

	results := make([]T, 0, perPage)
	if count > 0 {
		if err := query.Scopes(scopes...).
			Offset(paginator.Offset(number)).
			Limit(perPage).
			Find(&results).Error; err != nil {
			return nil, err
		}
	}

	return &Page[T]{
		Number:      number,
		NumPages:    paginator.NumPages(),
		Count:       count,
		PerPage:     perPage,
		HasNext:     number < paginator.NumPages(),
		HasPrevious: number > 1,
		Results:     results,
	}, nil
}
