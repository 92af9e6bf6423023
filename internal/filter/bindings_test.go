package filter

import (
	"testing"

	"github.com/dyluth/unifiable/pkg/unification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriteria_Matches(t *testing.T) {
	testCases := []struct {
		name     string
		criteria Criteria
		symbol   unification.Symbol
		want     bool
	}{
		{name: "no filters", criteria: Criteria{}, symbol: "_anything", want: true},
		{name: "exact glob", criteria: Criteria{NameGlobs: []string{"_id"}}, symbol: "_id", want: true},
		{name: "prefix glob", criteria: Criteria{NameGlobs: []string{"_user*"}}, symbol: "_user_name", want: true},
		{name: "no match", criteria: Criteria{NameGlobs: []string{"_user*"}}, symbol: "_id", want: false},
		{name: "any of several", criteria: Criteria{NameGlobs: []string{"_a", "_b?"}}, symbol: "_b1", want: true},
		{name: "malformed glob never matches", criteria: Criteria{NameGlobs: []string{"["}}, symbol: "[", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.criteria.Matches(tc.symbol))
		})
	}
}

func TestCriteria_Validate(t *testing.T) {
	require.NoError(t, (&Criteria{}).Validate())
	require.NoError(t, (&Criteria{NameGlobs: []string{"_*", "_[ab]"}}).Validate())

	err := (&Criteria{NameGlobs: []string{"_ok", "_[a"}}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid glob pattern "_[a"`)
}

func TestCriteria_Apply(t *testing.T) {
	bindings := unification.Bindings{"_id": 1, "_user": "bob", "_user_role": "admin"}

	criteria := Criteria{NameGlobs: []string{"_user*"}}
	got := criteria.Apply(bindings)

	assert.Equal(t, unification.Bindings{"_user": "bob", "_user_role": "admin"}, got)
	assert.Len(t, bindings, 3, "input must not be modified")
	assert.Equal(t, bindings, (&Criteria{}).Apply(bindings))
}
