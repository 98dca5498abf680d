package pagination

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRequest_Validate tests request preconditions
func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"valid", Request{Page: 1, Limit: 10}, nil},
		{"zero limit", Request{Page: 1, Limit: 0}, ErrInvalidLimit},
		{"negative limit", Request{Page: 1, Limit: -5}, ErrInvalidLimit},
		{"zero page", Request{Page: 0, Limit: 10}, ErrInvalidPage},
		{"negative page", Request{Page: -1, Limit: 10}, ErrInvalidPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// TestRequest_Offset tests the 1-based window start
func TestRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, Request{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, Request{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 20, Request{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 35, Request{Page: 8, Limit: 5}.Offset())
}

// TestParseOrder tests direction normalization
func TestParseOrder(t *testing.T) {
	assert.Equal(t, Desc, ParseOrder("desc"))
	assert.Equal(t, Desc, ParseOrder("DESC"))
	assert.Equal(t, Asc, ParseOrder("asc"))
	assert.Equal(t, Asc, ParseOrder(""))
	assert.Equal(t, Asc, ParseOrder("sideways"))
}

// TestNewResult_LastPartialPage tests 25 records, limit=10, page=3
func TestNewResult_LastPartialPage(t *testing.T) {
	items := []string{"u21", "u22", "u23", "u24", "u25"}
	req := Request{Page: 3, Limit: 10, SortBy: "email", Order: Asc}

	res := NewResult(items, 25, req)

	assert.Len(t, res.Items, 5)
	assert.Equal(t, int64(25), res.TotalElements)
	assert.Equal(t, 3, res.TotalPages)
	assert.True(t, res.HasPrevPage)
	assert.False(t, res.HasNextPage)
	assert.Nil(t, res.NextPage)
	require.NotNil(t, res.PrevPage)
	assert.Equal(t, 2, *res.PrevPage)
}

// TestNewResult_FirstPage tests navigation on the first page
func TestNewResult_FirstPage(t *testing.T) {
	req := Request{Page: 1, Limit: 10, SortBy: "id", Order: Desc}

	res := NewResult(make([]int, 10), 25, req)

	assert.Equal(t, 3, res.TotalPages)
	assert.False(t, res.HasPrevPage)
	assert.True(t, res.HasNextPage)
	assert.Nil(t, res.PrevPage)
	require.NotNil(t, res.NextPage)
	assert.Equal(t, 2, *res.NextPage)
	assert.Equal(t, "id", res.SortedBy)
	assert.Equal(t, Desc, res.Ordered)
}

// TestNewResult_Empty tests an empty result set
func TestNewResult_Empty(t *testing.T) {
	res := NewResult([]int{}, 0, Request{Page: 1, Limit: 10})

	assert.Equal(t, 0, res.TotalPages)
	assert.False(t, res.HasPrevPage)
	assert.False(t, res.HasNextPage)
	assert.Nil(t, res.PrevPage)
	assert.Nil(t, res.NextPage)
}

// TestNewResult_Identities checks the ceil/hasNext/hasPrev identities across
// a grid of totals, limits and pages.
func TestNewResult_Identities(t *testing.T) {
	for _, total := range []int64{0, 1, 9, 10, 11, 25, 100} {
		for _, limit := range []int{1, 3, 10} {
			for page := 1; page <= 5; page++ {
				req := Request{Page: page, Limit: limit}
				res := NewResult([]int{}, total, req)

				name := fmt.Sprintf("total=%d limit=%d page=%d", total, limit, page)
				wantPages := int((total + int64(limit) - 1) / int64(limit))
				assert.Equal(t, wantPages, res.TotalPages, name)
				assert.Equal(t, page > 1, res.HasPrevPage, name)
				assert.Equal(t, page < wantPages, res.HasNextPage, name)
			}
		}
	}
}
