package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Page
		want Page
	}{
		{"defaults", Page{}, Page{Number: 1, Limit: 6}},
		{"kept", Page{Number: 3, Limit: 10}, Page{Number: 3, Limit: 10}},
		{"negative page", Page{Number: -2, Limit: 5}, Page{Number: 1, Limit: 5}},
		{"capped", Page{Number: 1, Limit: 1000}, Page{Number: 1, Limit: MaxLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize(6))
		})
	}
}

func TestPage_Offset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Limit: 6}.Offset())
	assert.Equal(t, 12, Page{Number: 3, Limit: 6}.Offset())
	assert.Equal(t, 0, Page{Number: 0, Limit: 6}.Offset())
}

func TestPaginatedResult_HasMore(t *testing.T) {
	r := &PaginatedResult[int]{Total: 13, Page: 2, Limit: 6}
	assert.True(t, r.HasMore())

	r.Page = 3
	assert.False(t, r.HasMore())
}
