// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/artifact-tracker/internal/entities"
)

// CharacterDataBuilder provides a fluent interface for building persisted character records
type CharacterDataBuilder struct {
	data entities.CharacterData
}

// NewCharacterDataBuilder creates a builder for a character with empty lists
func NewCharacterDataBuilder(name string) *CharacterDataBuilder {
	return &CharacterDataBuilder{
		data: entities.CharacterData{
			Name:         name,
			ArtifactSets: []string{},
			CircletStats: []string{},
			GobletStats:  []string{},
			SandsStats:   []string{},
			SubStats:     []string{},
		},
	}
}

// WithSets sets the artifact sets
func (b *CharacterDataBuilder) WithSets(sets ...string) *CharacterDataBuilder {
	b.data.ArtifactSets = sets
	return b
}

// WithStats sets the values of one stat list
func (b *CharacterDataBuilder) WithStats(kind entities.SlotKind, stats ...string) *CharacterDataBuilder {
	b.data.SetValues(kind, stats)
	return b
}

// Build returns the built record
func (b *CharacterDataBuilder) Build() entities.CharacterData {
	return b.data
}
