package tracker

import (
	"github.com/KirkDiggler/artifact-tracker/internal/entities"
)

// CharacterView is a character together with its rendered lists
type CharacterView struct {
	Name  string                 `json:"name"`
	Icon  string                 `json:"icon,omitempty"`
	Data  entities.CharacterData `json:"data"`
	Lists []entities.ListView    `json:"lists"`
}

// SummaryEntry is one line of the tracker summary for an artifact set
type SummaryEntry struct {
	Name    string      `json:"name"`
	Sets    []string    `json:"sets"`
	Stats   []StatGroup `json:"stats"`
	Details string      `json:"details"`
}

// StatGroup is a non-empty stat list shown in the summary
type StatGroup struct {
	Kind   entities.SlotKind `json:"kind"`
	Label  string            `json:"label"`
	Values []string          `json:"values"`
}

// LoadInput defines the input for loading the persisted roster
type LoadInput struct{}

// LoadOutput defines the output for loading the persisted roster
type LoadOutput struct {
	Characters int
	Found      bool
}

// AddCharacterInput defines the input for adding a character
type AddCharacterInput struct {
	Name string
}

// AddCharacterOutput defines the output for adding a character
type AddCharacterOutput struct {
	Character *CharacterView
}

// RemoveCharacterInput defines the input for removing a character
type RemoveCharacterInput struct {
	Name string
}

// RemoveCharacterOutput defines the output for removing a character
type RemoveCharacterOutput struct {
	Removed bool
}

// UpdateSlotInput defines a single slot edit. An empty Value clears the slot.
type UpdateSlotInput struct {
	Name  string
	Kind  entities.SlotKind
	Index int
	Value string
}

// UpdateSlotOutput defines the output for a slot edit
type UpdateSlotOutput struct {
	Character *CharacterView
	List      entities.ListView
}

// GetCharacterInput defines the input for getting a character
type GetCharacterInput struct {
	Name string
}

// GetCharacterOutput defines the output for getting a character
type GetCharacterOutput struct {
	Character *CharacterView
}

// ListCharactersInput defines the input for listing characters
type ListCharactersInput struct{}

// ListCharactersOutput defines the output for listing characters
type ListCharactersOutput struct {
	Characters []*CharacterView
}

// CharactersUsingSetInput defines the input for filtering by artifact set
type CharactersUsingSetInput struct {
	Set string
}

// CharactersUsingSetOutput defines the output for filtering by artifact set
type CharactersUsingSetOutput struct {
	Characters []*CharacterView
}

// FilterOptionsInput defines the input for listing tracker filter options
type FilterOptionsInput struct{}

// FilterOptionsOutput defines the output for listing tracker filter options
type FilterOptionsOutput struct {
	Sets []string
}

// SummaryInput defines the input for the tracker summary
type SummaryInput struct {
	Set string
}

// SummaryOutput defines the output for the tracker summary
type SummaryOutput struct {
	Entries []SummaryEntry
}

// AvailableCharactersInput defines the input for listing addable characters
type AvailableCharactersInput struct{}

// AvailableCharactersOutput defines the output for listing addable characters
type AvailableCharactersOutput struct {
	Names []string
}

// SuggestInput defines the input for name autocomplete
type SuggestInput struct {
	Prefix string
	Limit  int
}

// SuggestOutput defines the output for name autocomplete
type SuggestOutput struct {
	Names []string
}

// ExportInput defines the input for exporting the roster
type ExportInput struct{}

// ExportOutput defines the output for exporting the roster
type ExportOutput struct {
	Data     []byte
	FileName string
}

// ImportInput defines the input for importing a roster
type ImportInput struct {
	Data []byte
}

// ImportOutput defines the output for importing a roster
type ImportOutput struct {
	Characters int
	// Duplicates counts entries dropped because an earlier entry had the same name
	Duplicates int
}
