package utils

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbers(n int) SliceSource[int] {
	s := make(SliceSource[int], n)
	for i := range s {
		s[i] = i
	}
	return s
}

func TestPaginateCoversEveryItemOnce(t *testing.T) {
	const perPage = 10
	for n := 0; n <= 35; n++ {
		src := numbers(n)
		first, err := Paginate[int](src, perPage, "1", false)
		require.NoError(t, err)

		wantPages := (n + perPage - 1) / perPage
		assert.Equal(t, wantPages, first.TotalPages, "n=%d", n)
		assert.Equal(t, int64(n), first.TotalCount)

		var seen []int
		for p := 1; p <= max(wantPages, 1); p++ {
			page, err := Paginate[int](src, perPage, strconv.Itoa(p), false)
			require.NoError(t, err)
			assert.Equal(t, p, page.Number)
			seen = append(seen, page.Items...)
		}
		assert.Equal(t, []int(src), append([]int{}, seen...), "n=%d", n)
	}
}

func TestPaginateRequestedPage(t *testing.T) {
	src := numbers(18)

	tests := []struct {
		name      string
		requested string
		number    int
		length    int
		hasPrev   bool
		hasNext   bool
	}{
		{name: "absent defaults to first", requested: "", number: 1, length: 10, hasNext: true},
		{name: "junk defaults to first", requested: "abc", number: 1, length: 10, hasNext: true},
		{name: "second page", requested: "2", number: 2, length: 8, hasPrev: true},
		{name: "past the end clamps to last", requested: "99", number: 2, length: 8, hasPrev: true},
		{name: "zero clamps to first", requested: "0", number: 1, length: 10, hasNext: true},
		{name: "negative clamps to first", requested: "-3", number: 1, length: 10, hasNext: true},
		{name: "surrounding spaces ignored", requested: " 2 ", number: 2, length: 8, hasPrev: true},
		{name: "overflowing number clamps to last", requested: "99999999999999999999", number: 2, length: 8, hasPrev: true},
		{name: "overflowing negative clamps to first", requested: "-99999999999999999999", number: 1, length: 10, hasNext: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := Paginate[int](src, 10, tt.requested, false)
			require.NoError(t, err)
			assert.Equal(t, tt.number, page.Number)
			assert.Equal(t, tt.length, page.Len())
			assert.Equal(t, tt.hasPrev, page.HasPrevious)
			assert.Equal(t, tt.hasNext, page.HasNext)
			assert.Equal(t, 2, page.TotalPages)
		})
	}
}

func TestPaginatePreservesOrder(t *testing.T) {
	src := SliceSource[string]{"e", "d", "c", "b", "a"}
	page, err := Paginate[string](src, 2, "2", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, page.Items)
	assert.Equal(t, 1, page.PreviousNumber())
	assert.Equal(t, 3, page.NextNumber())
}

func TestPaginateEmptySource(t *testing.T) {
	page, err := Paginate[int](numbers(0), 10, "5", false)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 0, page.TotalPages)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)
	assert.Equal(t, 0, page.NextNumber())
	assert.Equal(t, 0, page.PreviousNumber())
}

func TestPaginateStrict(t *testing.T) {
	src := numbers(18)

	_, err := Paginate[int](src, 10, "3", true)
	assert.ErrorIs(t, err, ErrPageOutOfRange)

	_, err = Paginate[int](src, 10, "0", true)
	assert.ErrorIs(t, err, ErrPageOutOfRange)

	_, err = Paginate[int](src, 10, "99999999999999999999", true)
	assert.ErrorIs(t, err, ErrPageOutOfRange)

	page, err := Paginate[int](src, 10, "", true)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)

	page, err = Paginate[int](numbers(0), 10, "1", true)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestParsePageNumber(t *testing.T) {
	assert.Equal(t, 1, ParsePageNumber(""))
	assert.Equal(t, 1, ParsePageNumber("abc"))
	assert.Equal(t, 3, ParsePageNumber(" 3 "))
	assert.Equal(t, -2, ParsePageNumber("-2"))
	assert.Equal(t, math.MaxInt, ParsePageNumber("99999999999999999999"))
	assert.Equal(t, math.MinInt, ParsePageNumber("-99999999999999999999"))
}

func TestPaginateInvalidPageSize(t *testing.T) {
	_, err := Paginate[int](numbers(3), 0, "1", false)
	assert.ErrorIs(t, err, ErrInvalidPageSize)
}

type failingSource struct{ countErr, sliceErr error }

func (f failingSource) Count() (int64, error) { return 5, f.countErr }

func (f failingSource) Slice(offset, limit int) ([]int, error) { return nil, f.sliceErr }

func TestPaginatePropagatesSourceErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := Paginate[int](failingSource{countErr: boom}, 10, "1", false)
	assert.ErrorIs(t, err, boom)

	_, err = Paginate[int](failingSource{sliceErr: boom}, 10, "1", false)
	assert.ErrorIs(t, err, boom)
}
