package entities

import (
	"github.com/KirkDiggler/artifact-tracker/internal/choicelist"
	"github.com/KirkDiggler/artifact-tracker/internal/errors"
)

// CharacterData is the persisted and exported shape of a character.
type CharacterData struct {
	Name         string   `json:"name"`
	ArtifactSets []string `json:"artifactSets"`
	CircletStats []string `json:"circletStats"`
	GobletStats  []string `json:"gobletStats"`
	SandsStats   []string `json:"sandsStats"`
	SubStats     []string `json:"subStats"`
}

// Values returns the stored values of one list
func (d *CharacterData) Values(kind SlotKind) []string {
	switch kind {
	case SlotArtifactSets:
		return d.ArtifactSets
	case SlotCirclet:
		return d.CircletStats
	case SlotGoblet:
		return d.GobletStats
	case SlotSands:
		return d.SandsStats
	case SlotSubStats:
		return d.SubStats
	default:
		return nil
	}
}

// SetValues replaces the stored values of one list
func (d *CharacterData) SetValues(kind SlotKind, values []string) {
	switch kind {
	case SlotArtifactSets:
		d.ArtifactSets = values
	case SlotCirclet:
		d.CircletStats = values
	case SlotGoblet:
		d.GobletStats = values
	case SlotSands:
		d.SandsStats = values
	case SlotSubStats:
		d.SubStats = values
	}
}

// Character is a tracked character: a unique name plus one choice list per slot kind.
type Character struct {
	Name  string
	lists map[SlotKind]*choicelist.List
}

// NewCharacter creates a character with five empty lists
func NewCharacter(name string, vocab *Vocabulary, limits Limits) *Character {
	return RestoreCharacter(CharacterData{Name: name}, vocab, limits)
}

// RestoreCharacter rebuilds a character from persisted data.
// Every list is reconciled against the current vocabulary and limits.
func RestoreCharacter(data CharacterData, vocab *Vocabulary, limits Limits) *Character {
	c := &Character{
		Name:  data.Name,
		lists: make(map[SlotKind]*choicelist.List, len(SlotKinds)),
	}
	for _, kind := range SlotKinds {
		c.lists[kind] = choicelist.Restore(limits.Capacity(kind), vocab.Options(kind), data.Values(kind))
	}
	return c
}

// List returns the choice list of the given kind, or nil for an unknown kind
func (c *Character) List(kind SlotKind) *choicelist.List {
	return c.lists[kind]
}

// Edit applies one slot edit to the list of the given kind
func (c *Character) Edit(kind SlotKind, index int, value string) error {
	l, ok := c.lists[kind]
	if !ok {
		return errors.InvalidArgumentf("unknown slot kind %q", kind).WithMeta("slot", string(kind))
	}
	return choicelist.Edit(l, index, value)
}

// UsesSet reports whether the artifact set list contains set
func (c *Character) UsesSet(set string) bool {
	return c.lists[SlotArtifactSets].Contains(set)
}

// Data returns the persisted shape of the character
func (c *Character) Data() CharacterData {
	data := CharacterData{Name: c.Name}
	for _, kind := range SlotKinds {
		data.SetValues(kind, c.lists[kind].Values())
	}
	return data
}

// Views renders every list of the character in display order
func (c *Character) Views() []ListView {
	views := make([]ListView, 0, len(SlotKinds))
	for _, kind := range SlotKinds {
		views = append(views, c.View(kind))
	}
	return views
}

// View renders one list of the character
func (c *Character) View(kind SlotKind) ListView {
	l := c.lists[kind]
	return ListView{
		Kind:     kind,
		Label:    kind.Label(),
		Capacity: l.Capacity(),
		Slots:    choicelist.View(l),
	}
}

// ListView is a rendered choice list, ready to be drawn as dropdowns.
type ListView struct {
	Kind     SlotKind          `json:"kind"`
	Label    string            `json:"label"`
	Capacity int               `json:"capacity"`
	Slots    []choicelist.Slot `json:"slots"`
}
