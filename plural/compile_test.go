package plural_test

import (
	"testing"

	"github.com/romshark/potext/plural"

	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	t.Parallel()
	for _, td := range []struct {
		name string
		expr string
		// indexByN maps an input cardinal to the expected result.
		indexByN map[int]int
	}{
		{
			name:     "constant",
			expr:     "0",
			indexByN: map[int]int{0: 0, 1: 0, 42: 0},
		},
		{
			name:     "variable",
			expr:     "n",
			indexByN: map[int]int{0: 0, 1: 1, 42: 42},
		},
		{
			name:     "comparison yields zero or one",
			expr:     "n != 1",
			indexByN: map[int]int{0: 1, 1: 0, 2: 1},
		},
		{
			name:     "modulo",
			expr:     "n % 10",
			indexByN: map[int]int{3: 3, 13: 3, 20: 0},
		},
		{
			name:     "modulo chains left to right",
			expr:     "n % 100 % 7",
			indexByN: map[int]int{105: 5, 207: 0},
		},
		{
			name:     "modulo by zero is total",
			expr:     "n % 0",
			indexByN: map[int]int{0: 0, 1: 0, 99: 0},
		},
		{
			name:     "not coerces to bool",
			expr:     "!n",
			indexByN: map[int]int{0: 1, 1: 0, 5: 0},
		},
		{
			name:     "double not",
			expr:     "!!n",
			indexByN: map[int]int{0: 0, 1: 1, 5: 1},
		},
		{
			name:     "and binds tighter than or",
			expr:     "n == 1 || n >= 10 && n <= 20",
			indexByN: map[int]int{1: 1, 5: 0, 10: 1, 20: 1, 21: 0},
		},
		{
			name:     "comparison binds tighter than and",
			expr:     "n > 1 && n < 4",
			indexByN: map[int]int{1: 0, 2: 1, 3: 1, 4: 0},
		},
		{
			name:     "ternary right associative",
			expr:     "n == 0 ? 0 : n == 1 ? 1 : 2",
			indexByN: map[int]int{0: 0, 1: 1, 2: 2, 9: 2},
		},
		{
			name:     "parenthesized ternary condition",
			expr:     "(n % 2 == 0) ? 10 : 20",
			indexByN: map[int]int{0: 10, 1: 20, 2: 10},
		},
		{
			name:     "nonzero condition is true",
			expr:     "n % 3 ? 1 : 0",
			indexByN: map[int]int{0: 0, 1: 1, 2: 1, 3: 0},
		},
		{
			name:     "legacy single ampersand",
			expr:     "n > 1 & n < 4",
			indexByN: map[int]int{1: 0, 2: 1, 4: 0},
		},
		{
			name:     "legacy single pipe",
			expr:     "n == 1 | n == 2",
			indexByN: map[int]int{1: 1, 2: 1, 3: 0},
		},
		{
			name:     "relational operators",
			expr:     "n >= 2 && n <= 4 ? 1 : 0",
			indexByN: map[int]int{1: 0, 2: 1, 4: 1, 5: 0},
		},
	} {
		t.Run(td.name, func(t *testing.T) {
			t.Parallel()
			eval, err := plural.Compile(td.expr)
			require.NoError(t, err)
			for n, index := range td.indexByN {
				require.Equal(t, index, eval(n), "n=%d", n)
			}
		})
	}
}

func TestCompileErr(t *testing.T) {
	t.Parallel()
	for _, expr := range []string{
		"",
		"(",
		")",
		"(n != 1",
		"n != 1)",
		"n ==",
		"n = 1",
		"? 0 : 1",
		"n == 1 ? 0",
		"n == 1 ? 0 :",
		"n == 1 : 0 ? 1",
		"1 2",
		"n n",
		"%",
		"n %% 2",
	} {
		t.Run(expr, func(t *testing.T) {
			t.Parallel()
			_, err := plural.Compile(expr)
			require.ErrorIs(t, err, plural.ErrExpression)
		})
	}
}

// Compilation happens once; the evaluator must be reusable and
// stateless across many invocations.
func TestCompileEvaluatorReuse(t *testing.T) {
	t.Parallel()
	eval, err := plural.Compile("n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2")
	require.NoError(t, err)
	for range 3 {
		require.Equal(t, 0, eval(1))
		require.Equal(t, 1, eval(2))
		require.Equal(t, 2, eval(5))
		require.Equal(t, 2, eval(11))
		require.Equal(t, 0, eval(21))
	}
}
