package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Params
		wantPage int
		wantPer  int
		wantOrd  string
	}{
		{"zero values", Params{}, 1, defaultPerPage, "desc"},
		{"too large", Params{Page: 3, PerPage: 500, Order: "ASC"}, 3, maxPerPage, "asc"},
		{"bogus order", Params{Page: 2, PerPage: 10, Order: "sideways"}, 2, 10, "desc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Normalize()
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPer, p.PerPage)
			assert.Equal(t, tt.wantOrd, p.Order)
		})
	}
}

func TestOffsetAndOrderClause(t *testing.T) {
	p := &Params{Page: 3, PerPage: 20, SortBy: "name", Order: "asc"}
	assert.Equal(t, 40, p.Offset())

	allowed := map[string]string{"name": "first_name"}
	assert.Equal(t, "first_name asc", p.OrderClause(allowed, "created_at desc"))

	p.SortBy = "password; drop table"
	assert.Equal(t, "created_at desc", p.OrderClause(allowed, "created_at desc"))
}

func TestNewResult(t *testing.T) {
	params := &Params{Page: 2, PerPage: 10}
	res := NewResult[int](nil, params, 25)

	assert.NotNil(t, res.Items)
	assert.Equal(t, 3, res.Pagination.TotalPages)
	assert.True(t, res.Pagination.HasNext)
	assert.True(t, res.Pagination.HasPrev)
}
