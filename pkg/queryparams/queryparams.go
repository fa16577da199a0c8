package queryparams

import (
	"math"
	"strconv"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ListParams sayfalama parametreleri.
type ListParams struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

// PaginationMeta yanıtta dönen sayfa bilgisi.
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

// PaginatedResult veri + meta.
type PaginatedResult struct {
	Data interface{}    `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// Parse query string değerlerinden ListParams üretir; geçersiz değerler varsayılana döner.
func Parse(page, perPage string, defaultPerPage int) ListParams {
	p := ListParams{Page: DefaultPage, PerPage: defaultPerPage}
	if v, err := strconv.Atoi(page); err == nil {
		p.Page = v
	}
	if v, err := strconv.Atoi(perPage); err == nil {
		p.PerPage = v
	}
	p.Normalize()
	return p
}

// Normalize sınırların dışındaki değerleri düzeltir.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
}

// CalculateOffset SQL OFFSET değeri.
func (p ListParams) CalculateOffset() int {
	return (p.Page - 1) * p.PerPage
}

// CalculateTotalPages toplam sayfa sayısı (en az 0).
func CalculateTotalPages(totalItems int64, perPage int) int {
	if perPage <= 0 || totalItems <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalItems) / float64(perPage)))
}

// NewPaginatedResult veri ve toplam sayıdan sonuç oluşturur.
func NewPaginatedResult(data interface{}, total int64, p ListParams) *PaginatedResult {
	return &PaginatedResult{
		Data: data,
		Meta: PaginationMeta{
			CurrentPage: p.Page,
			PerPage:     p.PerPage,
			TotalItems:  total,
			TotalPages:  CalculateTotalPages(total, p.PerPage),
		},
	}
}
