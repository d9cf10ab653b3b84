// Package entities provides the core data structures of the artifact tracker.
package entities

import (
	"strings"

	"github.com/KirkDiggler/artifact-tracker/internal/errors"
)

// SlotKind names one of the five choice lists every character carries.
// The string value doubles as the JSON field of the persisted record.
type SlotKind string

// Slot kinds in display order
const (
	SlotArtifactSets SlotKind = "artifactSets"
	SlotCirclet      SlotKind = "circletStats"
	SlotGoblet       SlotKind = "gobletStats"
	SlotSands        SlotKind = "sandsStats"
	SlotSubStats     SlotKind = "subStats"
)

// SlotKinds lists every slot kind in display order.
var SlotKinds = []SlotKind{SlotArtifactSets, SlotCirclet, SlotGoblet, SlotSands, SlotSubStats}

// Capacity defaults
const (
	MaxSets         = 3
	DefaultMaxStats = 6
	MinMaxStats     = 1
	MaxMaxStats     = 10
)

// Label returns the display label of the slot kind
func (k SlotKind) Label() string {
	switch k {
	case SlotArtifactSets:
		return "Artifact Set"
	case SlotCirclet:
		return "Circlet"
	case SlotGoblet:
		return "Goblet"
	case SlotSands:
		return "Sands"
	case SlotSubStats:
		return "Substat"
	default:
		return string(k)
	}
}

var slotAliases = map[string]SlotKind{
	"artifactsets": SlotArtifactSets,
	"sets":         SlotArtifactSets,
	"set":          SlotArtifactSets,
	"artifacts":    SlotArtifactSets,
	"circletstats": SlotCirclet,
	"circlet":      SlotCirclet,
	"gobletstats":  SlotGoblet,
	"goblet":       SlotGoblet,
	"sandsstats":   SlotSands,
	"sands":        SlotSands,
	"substats":     SlotSubStats,
	"substat":      SlotSubStats,
	"subs":         SlotSubStats,
}

// ParseSlotKind accepts the JSON field name or a short alias such as "sets" or "circlet".
func ParseSlotKind(s string) (SlotKind, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	if kind, ok := slotAliases[key]; ok {
		return kind, nil
	}
	return "", errors.InvalidArgumentf("unknown slot kind %q", s).WithMeta("slot", s)
}

// Limits holds the capacity of each kind of list.
type Limits struct {
	MaxSets  int
	MaxStats int
}

// DefaultLimits returns the stock capacities
func DefaultLimits() Limits {
	return Limits{MaxSets: MaxSets, MaxStats: DefaultMaxStats}
}

// Capacity returns the capacity of lists of the given kind
func (l Limits) Capacity(kind SlotKind) int {
	if kind == SlotArtifactSets {
		return l.MaxSets
	}
	return l.MaxStats
}
