package choicelist_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/artifact-tracker/internal/choicelist"
	"github.com/KirkDiggler/artifact-tracker/internal/errors"
)

type ViewTestSuite struct {
	suite.Suite
	list *choicelist.List
}

func TestViewSuite(t *testing.T) {
	suite.Run(t, new(ViewTestSuite))
}

func (s *ViewTestSuite) SetupTest() {
	s.list = choicelist.New(3, testSets)
}

func (s *ViewTestSuite) TestEmptyListShowsOneBlankSlot() {
	slots := choicelist.View(s.list)

	s.Require().Len(slots, 1)
	s.True(slots[0].Blank())
	s.Equal(testSets, slots[0].Options)
}

func (s *ViewTestSuite) TestTrailingBlankInvariant() {
	for n := 0; n <= 3; n++ {
		s.list.Reconcile(testSets[:n])
		slots := choicelist.View(s.list)

		blanks := 0
		for _, slot := range slots {
			if slot.Blank() {
				blanks++
			}
		}

		if n < 3 {
			s.Len(slots, n+1, "n=%d", n)
			s.Equal(1, blanks, "n=%d", n)
			s.True(slots[len(slots)-1].Blank(), "blank slot must trail, n=%d", n)
		} else {
			s.Len(slots, 3)
			s.Equal(0, blanks)
		}
	}
}

func (s *ViewTestSuite) TestOptionsExcludeOtherSlots() {
	s.list.Reconcile([]string{"Deepwood", "Silken Moon"})
	slots := choicelist.View(s.list)
	s.Require().Len(slots, 3)

	want := [][]string{
		{"Deepwood", "Golden Troupe", "Wanderer's Troupe", "Blizzard Strayer"},
		{"Golden Troupe", "Silken Moon", "Wanderer's Troupe", "Blizzard Strayer"},
		{"Golden Troupe", "Wanderer's Troupe", "Blizzard Strayer"},
	}
	for i, slot := range slots {
		s.Equal(i, slot.Index)
		if diff := cmp.Diff(want[i], slot.Options); diff != "" {
			s.Failf("unexpected options", "slot %d (-want +got):\n%s", i, diff)
		}
	}
}

func (s *ViewTestSuite) TestEndToEndArtifactSets() {
	// slot 1 <- Deepwood
	s.Require().NoError(choicelist.Edit(s.list, 0, "Deepwood"))
	s.Equal([]string{"Deepwood"}, s.list.Values())

	slots := choicelist.View(s.list)
	s.Require().Len(slots, 2)
	s.Equal("Deepwood", slots[0].Value)
	s.True(slots[1].Blank())

	// slot 2 must not offer Deepwood again
	s.NotContains(slots[1].Options, "Deepwood")
	s.Contains(slots[0].Options, "Deepwood")
}

func (s *ViewTestSuite) TestEditFillsAndGrows() {
	s.Require().NoError(choicelist.Edit(s.list, 0, "Deepwood"))
	s.Require().NoError(choicelist.Edit(s.list, 1, "Silken Moon"))
	s.Require().NoError(choicelist.Edit(s.list, 2, "Golden Troupe"))

	s.Equal([]string{"Deepwood", "Silken Moon", "Golden Troupe"}, s.list.Values())
	s.Len(choicelist.View(s.list), 3)

	err := choicelist.Edit(s.list, 3, "Blizzard Strayer")
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ViewTestSuite) TestClearingMiddleSlotShiftsUp() {
	s.list.Reconcile([]string{"Deepwood", "Silken Moon", "Golden Troupe"})

	s.Require().NoError(choicelist.Edit(s.list, 1, ""))

	s.Equal([]string{"Deepwood", "Golden Troupe"}, s.list.Values())
	slots := choicelist.View(s.list)
	s.Require().Len(slots, 3)
	s.True(slots[2].Blank())
}

func (s *ViewTestSuite) TestReplacingValueKeepsPosition() {
	s.list.Reconcile([]string{"Deepwood", "Silken Moon"})

	s.Require().NoError(choicelist.Edit(s.list, 0, "Blizzard Strayer"))

	s.Equal([]string{"Blizzard Strayer", "Silken Moon"}, s.list.Values())
}

func (s *ViewTestSuite) TestDuplicateEditIsDropped() {
	s.list.Reconcile([]string{"Deepwood"})

	// A misbehaving view could still send a taken value; reconcile keeps the first.
	s.Require().NoError(choicelist.Edit(s.list, 1, "Deepwood"))

	s.Equal([]string{"Deepwood"}, s.list.Values())
}

func (s *ViewTestSuite) TestEditRejectsNegativeIndex() {
	s.Error(choicelist.Edit(s.list, -1, "Deepwood"))
	s.Empty(s.list.Values())
}

func (s *ViewTestSuite) TestEmptyVocabulary() {
	l := choicelist.New(3, nil)
	s.Require().NoError(choicelist.Edit(l, 0, "Deepwood"))

	s.Empty(l.Values())
	slots := choicelist.View(l)
	s.Require().Len(slots, 1)
	s.Empty(slots[0].Options)
}
