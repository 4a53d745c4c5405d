package utils

import (
	"slices"
	"testing"
)

func TestFilterSlice(t *testing.T) {
	reference := []string{"Site A", "Site B", "Site C"}

	type testCase struct {
		input    []string
		expected []string
	}

	cases := []testCase{
		{nil, reference},
		{[]string{"Site B"}, []string{"Site B"}},
		{[]string{"Site D", "Site A"}, []string{"Site A"}},
		{[]string{"Site D"}, []string{}},
	}

	for _, c := range cases {
		got := FilterSlice(c.input, reference, "")
		if !slices.Equal(got, c.expected) {
			t.Errorf("Got %v, wanted %v", got, c.expected)
		}
	}
}
