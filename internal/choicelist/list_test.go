package choicelist_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/artifact-tracker/internal/choicelist"
)

var testSets = []string{"Deepwood", "Golden Troupe", "Silken Moon", "Wanderer's Troupe", "Blizzard Strayer"}

type ListTestSuite struct {
	suite.Suite
}

func TestListSuite(t *testing.T) {
	suite.Run(t, new(ListTestSuite))
}

func (s *ListTestSuite) TestNew() {
	s.Run("starts empty", func() {
		l := choicelist.New(3, testSets)
		s.Equal(0, l.Len())
		s.Equal(3, l.Capacity())
		s.False(l.Full())
		s.Empty(l.Values())
	})

	s.Run("clamps capacity", func() {
		s.Equal(1, choicelist.New(0, testSets).Capacity())
		s.Equal(1, choicelist.New(-4, testSets).Capacity())
	})

	s.Run("drops blank and repeated vocabulary", func() {
		l := choicelist.New(3, []string{"EM", "", "ER", "EM", "  "})
		s.Equal([]string{"EM", "ER"}, l.Vocabulary())
	})
}

func (s *ListTestSuite) TestReconcile() {
	testCases := []struct {
		name     string
		capacity int
		raw      []string
		expected []string
	}{
		{
			name:     "compacts blanks",
			capacity: 3,
			raw:      []string{"Deepwood", "", "Silken Moon"},
			expected: []string{"Deepwood", "Silken Moon"},
		},
		{
			name:     "whitespace counts as blank",
			capacity: 3,
			raw:      []string{" ", "Deepwood", "\t"},
			expected: []string{"Deepwood"},
		},
		{
			name:     "keeps first duplicate",
			capacity: 3,
			raw:      []string{"Deepwood", "Silken Moon", "Deepwood"},
			expected: []string{"Deepwood", "Silken Moon"},
		},
		{
			name:     "truncates to capacity",
			capacity: 3,
			raw:      []string{"Deepwood", "Golden Troupe", "Silken Moon", "Blizzard Strayer"},
			expected: []string{"Deepwood", "Golden Troupe", "Silken Moon"},
		},
		{
			name:     "dedupes before truncating",
			capacity: 2,
			raw:      []string{"Deepwood", "Deepwood", "Silken Moon"},
			expected: []string{"Deepwood", "Silken Moon"},
		},
		{
			name:     "drops unknown values",
			capacity: 3,
			raw:      []string{"Gladiator's Finale", "Deepwood"},
			expected: []string{"Deepwood"},
		},
		{
			name:     "all blanks empties the list",
			capacity: 3,
			raw:      []string{"", "", ""},
			expected: []string{},
		},
		{
			name:     "nil input empties the list",
			capacity: 3,
			raw:      nil,
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			l := choicelist.New(tc.capacity, testSets)
			l.Reconcile(tc.raw)
			if diff := cmp.Diff(tc.expected, l.Values()); diff != "" {
				s.Failf("unexpected values", "(-want +got):\n%s", diff)
			}
		})
	}
}

func (s *ListTestSuite) TestReconcileIsIdempotent() {
	inputs := [][]string{
		{"Deepwood", "", "Silken Moon", "Deepwood", "nope", "Blizzard Strayer", "Golden Troupe"},
		{"", "Wanderer's Troupe"},
		{},
	}

	for _, raw := range inputs {
		l := choicelist.New(3, testSets)
		l.Reconcile(raw)
		first := l.Values()

		l.Reconcile(l.Values())
		s.Equal(first, l.Values())

		l.Reconcile(choicelist.RawValues(choicelist.View(l)))
		s.Equal(first, l.Values())
	}
}

func (s *ListTestSuite) TestReconcileIgnoresEditedIndex() {
	// The same left-to-right order of non-blank values always yields the same
	// list, whichever physical slot was cleared.
	a := choicelist.New(3, testSets)
	a.Reconcile([]string{"", "Deepwood", "Silken Moon"})

	b := choicelist.New(3, testSets)
	b.Reconcile([]string{"Deepwood", "", "Silken Moon"})

	s.Equal(a.Values(), b.Values())
}

func (s *ListTestSuite) TestRestore() {
	l := choicelist.Restore(2, testSets, []string{"Deepwood", "Retired Set", "Deepwood", "Silken Moon", "Golden Troupe"})
	s.Equal([]string{"Deepwood", "Silken Moon"}, l.Values())
	s.True(l.Full())
}

func (s *ListTestSuite) TestValuesIsACopy() {
	l := choicelist.Restore(3, testSets, []string{"Deepwood"})
	values := l.Values()
	values[0] = "mutated"

	s.Equal([]string{"Deepwood"}, l.Values())
	s.True(l.Contains("Deepwood"))
	s.False(l.Contains("mutated"))
}

func (s *ListTestSuite) TestNormalize() {
	s.Equal([]string{"a", "b"}, choicelist.Normalize([]string{"a", "", "b", "a", "c"}, 2, nil))
	s.Equal([]string{}, choicelist.Normalize([]string{"a"}, 0, nil))
}
