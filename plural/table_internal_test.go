package plural

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestKnownRulesMatchInterpreter ensures every precompiled evaluator
// agrees with the generic interpreter on its own formula source.
func TestKnownRulesMatchInterpreter(t *testing.T) {
	t.Parallel()
	for header := range knownRules {
		t.Run(header, func(t *testing.T) {
			t.Parallel()
			rule, err := ParseForms(header)
			require.NoError(t, err)

			interpreted, err := Compile(rule.Formula)
			require.NoError(t, err)

			for n := 0; n <= 500; n++ {
				require.Equal(t, interpreted(n), rule.Evaluator(n), "n=%d", n)
			}
		})
	}
}

func TestLookupKnownMiss(t *testing.T) {
	t.Parallel()
	_, ok := lookupKnown("nplurals=2;plural=(n%3==1);")
	require.False(t, ok)
}

// TestKnownRulesIndexBounds ensures no precompiled evaluator ever
// produces an index outside the declared category count.
func TestKnownRulesIndexBounds(t *testing.T) {
	t.Parallel()
	for header := range knownRules {
		rule, err := ParseForms(header)
		require.NoError(t, err)
		for n := 0; n <= 500; n++ {
			i := rule.Evaluator(n)
			require.GreaterOrEqual(t, i, 0, "header %q, n=%d", header, n)
			require.Less(t, i, rule.NPlurals, "header %q, n=%d", header, n)
		}
	}
}
