package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Normalize(t *testing.T) {
	cases := []struct {
		name      string
		in        PageRequest
		wantPage  int
		wantLimit int
	}{
		{"defaults", PageRequest{}, 1, 20},
		{"negativos", PageRequest{Page: -3, Limit: -1}, 1, 20},
		{"tope de limit", PageRequest{Page: 2, Limit: 500}, 2, 100},
		{"valores validos", PageRequest{Page: 3, Limit: 50}, 3, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Normalize()
			assert.Equal(t, tc.wantPage, tc.in.Page)
			assert.Equal(t, tc.wantLimit, tc.in.Limit)
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	p := PageRequest{Page: 3, Limit: 20}
	assert.Equal(t, 40, p.Offset())
}

func TestNewPagination_TotalPages(t *testing.T) {
	assert.Equal(t, 0, NewPagination(1, 20, 0).TotalPages)
	assert.Equal(t, 1, NewPagination(1, 20, 20).TotalPages)
	assert.Equal(t, 2, NewPagination(1, 20, 21).TotalPages)
}
