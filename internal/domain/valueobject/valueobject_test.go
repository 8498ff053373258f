package valueobject

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
)

func TestBudgetIDConstructorsAgree(t *testing.T) {
	inputs := []string{"b-1", "B-1", "  padded  ", "3f1c2e8a-0000-4000-8000-000000000000", ""}

	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			a, errA := NewBudgetID(raw)
			b, errB := BudgetIDOf(raw)

			assert.Equal(t, errA, errB)
			assert.Equal(t, a, b)
			if errA == nil {
				assert.Equal(t, raw, a.String())
			}
		})
	}
}

func TestBudgetIDEquality(t *testing.T) {
	lower, err := NewBudgetID("abc")
	require.NoError(t, err)
	same, err := BudgetIDOf("abc")
	require.NoError(t, err)
	upper, err := NewBudgetID("ABC")
	require.NoError(t, err)

	assert.True(t, lower == same)
	assert.False(t, lower == upper, "ids are compared case-sensitively")
}

func TestEmptyIDsAreRejected(t *testing.T) {
	_, err := NewBudgetID("")
	assert.True(t, errors.Is(err, domainerror.ErrInvalidBudgetID))

	_, err = ExpenseIDOf("")
	assert.True(t, errors.Is(err, domainerror.ErrInvalidExpenseID))
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	seen := make(map[BudgetID]bool)
	for i := 0; i < 100; i++ {
		id := GenerateBudgetID()
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.NotEqual(t, GenerateExpenseID(), GenerateExpenseID())
}

func TestOptional(t *testing.T) {
	absent := None[int]()
	assert.False(t, absent.Present())
	assert.Equal(t, 7, absent.OrElse(7))

	var zero Optional[string]
	assert.False(t, zero.Present(), "zero value is absent")

	some := Some(0)
	v, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, 0, v)

	called := false
	absent.Apply(func(int) { called = true })
	assert.False(t, called)
	some.Apply(func(int) { called = true })
	assert.True(t, called)

	assert.False(t, FromPtr[int](nil).Present())
	n := 3
	assert.Equal(t, 3, FromPtr(&n).OrElse(0))
}

func TestParseSortDirection(t *testing.T) {
	for raw, want := range map[string]SortDirection{"asc": SortAsc, "ASC": SortAsc, "Desc": SortDesc} {
		got, err := ParseSortDirection(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseSortDirection("sideways")
	assert.ErrorIs(t, err, domainerror.ErrInvalidSortDirection)
}

func TestPageRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  PageRequest
		want error
	}{
		{name: "defaults", req: DefaultPageRequest()},
		{name: "max size", req: PageRequest{Page: 3, Size: MaxPageSize, Direction: SortAsc}},
		{name: "negative page", req: PageRequest{Page: -1, Size: 10, Direction: SortAsc}, want: domainerror.ErrInvalidPageIndex},
		{name: "zero size", req: PageRequest{Size: 0, Direction: SortAsc}, want: domainerror.ErrInvalidPageSize},
		{name: "oversized", req: PageRequest{Size: MaxPageSize + 1, Direction: SortAsc}, want: domainerror.ErrInvalidPageSize},
		{name: "no direction", req: PageRequest{Size: 5}, want: domainerror.ErrInvalidSortDirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPageRequestArithmetic(t *testing.T) {
	req := PageRequest{Page: 2, Size: 25}
	assert.Equal(t, 50, req.Offset())
	assert.Equal(t, 0, req.TotalPages(0))
	assert.Equal(t, 1, req.TotalPages(25))
	assert.Equal(t, 2, req.TotalPages(26))
}

func TestPageRequestOffsetSaturates(t *testing.T) {
	huge := PageRequest{Page: math.MaxInt / 2, Size: 4, Direction: SortAsc}
	require.NoError(t, huge.Validate())
	assert.Equal(t, math.MaxInt, huge.Offset())

	edge := PageRequest{Page: math.MaxInt / 4, Size: 4}
	assert.Equal(t, (math.MaxInt/4)*4, edge.Offset())
}
