package logic

// Page 分页结果
type Page[T any] struct {
	Items    []T
	Page     int
	PerPage  int
	Total    int64
	LastPage int
}

// newPage 计算最后一页，至少为 1
func newPage[T any](items []T, page, perPage int, total int64) *Page[T] {
	last := int((total + int64(perPage) - 1) / int64(perPage))
	if last < 1 {
		last = 1
	}
	return &Page[T]{
		Items:    items,
		Page:     page,
		PerPage:  perPage,
		Total:    total,
		LastPage: last,
	}
}

// HasPrev 是否有上一页
func (p *Page[T]) HasPrev() bool {
	return p.Page > 1
}

// HasNext 是否有下一页
func (p *Page[T]) HasNext() bool {
	return p.Page < p.LastPage
}

// NormalizePage 页码小于 1 时取 1
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func offset(page, perPage int) int {
	return (page - 1) * perPage
}
