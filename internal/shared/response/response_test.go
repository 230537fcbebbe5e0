package response

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     []int
		wantPage int
		wantSize int
	}{
		{name: "first page", page: 1, pageSize: 2, want: []int{1, 2}, wantPage: 1, wantSize: 2},
		{name: "last partial page", page: 3, pageSize: 2, want: []int{5}, wantPage: 3, wantSize: 2},
		{name: "past the end", page: 4, pageSize: 2, want: []int{}, wantPage: 4, wantSize: 2},
		{name: "defaults", page: 0, pageSize: 0, want: items, wantPage: 1, wantSize: 10},
		{name: "huge page", page: math.MaxInt64/2 + 2, pageSize: 2, want: []int{}, wantPage: math.MaxInt64/2 + 2, wantSize: 2},
		{name: "huge page size", page: 2, pageSize: math.MaxInt64, want: []int{}, wantPage: 2, wantSize: math.MaxInt64},
		{name: "huge page and size", page: math.MaxInt64, pageSize: math.MaxInt64, want: []int{}, wantPage: math.MaxInt64, wantSize: math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, meta := Paginate(items, tt.page, tt.pageSize)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, int64(len(items)), meta.Total)
			assert.Equal(t, tt.wantPage, meta.Page)
			assert.Equal(t, tt.wantSize, meta.PageSize)
			assert.Positive(t, meta.TotalPages)
		})
	}
}
