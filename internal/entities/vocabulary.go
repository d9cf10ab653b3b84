package entities

// Entry is a named vocabulary item with an optional icon reference.
type Entry struct {
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// MainStats holds the main stat options per artifact piece.
type MainStats struct {
	Sands   []string `json:"sands" yaml:"sands"`
	Goblet  []string `json:"goblet" yaml:"goblet"`
	Circlet []string `json:"circlet" yaml:"circlet"`
}

// Vocabulary is the static data every choice list draws its options from.
type Vocabulary struct {
	Characters   []Entry   `json:"characters" yaml:"characters"`
	ArtifactSets []Entry   `json:"artifactSets" yaml:"artifactSets"`
	MainStats    MainStats `json:"mainStats" yaml:"mainStats"`
	SubStats     []string  `json:"subStats" yaml:"subStats"`
}

// CharacterNames returns the allowed character names in vocabulary order
func (v *Vocabulary) CharacterNames() []string {
	return entryNames(v.Characters)
}

// SetNames returns the artifact set names in vocabulary order
func (v *Vocabulary) SetNames() []string {
	return entryNames(v.ArtifactSets)
}

// Options returns the vocabulary a list of the given kind may choose from
func (v *Vocabulary) Options(kind SlotKind) []string {
	if v == nil {
		return nil
	}
	switch kind {
	case SlotArtifactSets:
		return v.SetNames()
	case SlotCirclet:
		return v.MainStats.Circlet
	case SlotGoblet:
		return v.MainStats.Goblet
	case SlotSands:
		return v.MainStats.Sands
	case SlotSubStats:
		return v.SubStats
	default:
		return nil
	}
}

// HasCharacter reports whether name is a known character
func (v *Vocabulary) HasCharacter(name string) bool {
	if v == nil {
		return false
	}
	for _, c := range v.Characters {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Icon returns the icon of a character or artifact set, or "" when none is known
func (v *Vocabulary) Icon(name string) string {
	if v == nil {
		return ""
	}
	for _, group := range [][]Entry{v.Characters, v.ArtifactSets} {
		for _, e := range group {
			if e.Name == name {
				return e.Icon
			}
		}
	}
	return ""
}

// Empty reports whether the vocabulary offers nothing at all
func (v *Vocabulary) Empty() bool {
	return v == nil || (len(v.Characters) == 0 && len(v.ArtifactSets) == 0 &&
		len(v.MainStats.Sands) == 0 && len(v.MainStats.Goblet) == 0 &&
		len(v.MainStats.Circlet) == 0 && len(v.SubStats) == 0)
}

func entryNames(entries []Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}
