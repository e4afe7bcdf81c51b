package db

import (
	"gorm.io/gorm"
)

// Keyset paging over any query with an integer `id` column. For background see
// https://www.citusdata.com/blog/2016/03/30/five-ways-to-paginate/
//
// NB: this _will not work_ on tables that don't have an id column, and the
// ordering is fixed to ascending id. Nothing checks that at compile time.

const (
	DefaultPerPage = 30
	MaxPerPage     = 100
)

// Pagination is a user-supplied set of paging params. A nil Key means
// "first page".
type Pagination struct {
	Key     *uint64 `form:"key"`
	PerPage int     `form:"page_size"`
}

func NewPagination(key *uint64, perPage int) Pagination {
	if perPage < 1 {
		perPage = DefaultPerPage
	} else if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Pagination{Key: key, PerPage: perPage}
}

func FirstPage() Pagination {
	return NewPagination(nil, 0)
}

func PageAfter(key uint64) Pagination {
	return NewPagination(&key, 0)
}

func (p Pagination) limit() int {
	if p.PerPage < 1 {
		return DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		return MaxPerPage
	}
	return p.PerPage
}

func (p Pagination) key() uint64 {
	if p.Key == nil {
		return 0
	}
	return *p.Key
}

// Page is one page of results plus the params that generated it. NextKey is
// the max id over the whole result set (not just this page) so a client can
// keep passing it back as `key` until Remaining hits zero.
type Page[T any] struct {
	Key       *uint64 `json:"key"`
	NextKey   *uint64 `json:"next_key"`
	Remaining int64   `json:"remaining"`
	Items     []T     `json:"items"`
}

func EmptyPage[T any]() Page[T] {
	return Page[T]{Items: []T{}}
}

func (p *Page[T]) IsEmpty() bool {
	return len(p.Items) == 0
}

// MapPage converts a page's item type while keeping the paging state intact
func MapPage[T, U any](page Page[T], mapper func(T) U) Page[U] {
	items := make([]U, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, mapper(item))
	}
	return Page[U]{
		Key:       page.Key,
		NextKey:   page.NextKey,
		Remaining: page.Remaining,
		Items:     items,
	}
}

type paginatedRow[T any] struct {
	Row        T       `gorm:"embedded"`
	TotalCount int64   `gorm:"column:total_count"`
	MaxID      *uint64 `gorm:"column:max_id"`
}

// FindPage wraps `base` so the count and max-id window aggregates are
// computed over the full result set *before* the keyset filter applies,
// then loads one page in the same round trip:
//
//	SELECT * FROM (
//	    SELECT t.*, COUNT(*) OVER () AS total_count, MAX(t.id) OVER () AS max_id
//	    FROM (<base>) t
//	) page WHERE page.id > ? ORDER BY page.id ASC LIMIT ?
func FindPage[T any](base *gorm.DB, page Pagination) (Page[T], error) {
	windowed := Instance.
		Table("(?) AS t", base).
		Select("t.*, COUNT(*) OVER () AS total_count, MAX(t.id) OVER () AS max_id")

	var rows []paginatedRow[T]
	err := Instance.
		Table("(?) AS page", windowed).
		Where("page.id > ?", page.key()).
		Order("page.id ASC").
		Limit(page.limit()).
		Find(&rows).Error
	if err != nil {
		return Page[T]{}, err
	}

	result := Page[T]{Key: page.Key, Items: make([]T, 0, len(rows))}
	for _, row := range rows {
		result.Items = append(result.Items, row.Row)
	}
	if len(rows) > 0 {
		result.NextKey = rows[0].MaxID
		result.Remaining = rows[0].TotalCount - int64(len(rows))
	}
	return result, nil
}
