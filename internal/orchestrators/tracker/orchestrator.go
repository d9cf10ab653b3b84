// Package tracker owns the roster of tracked characters and every operation on it
package tracker

//go:generate mockgen -destination=mock/mock_service.go -package=trackermock github.com/KirkDiggler/artifact-tracker/internal/orchestrators/tracker Service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/KirkDiggler/artifact-tracker/internal/entities"
	"github.com/KirkDiggler/artifact-tracker/internal/errors"
	"github.com/KirkDiggler/artifact-tracker/internal/repositories/roster"
)

const (
	// ExportFileName is the suggested file name for exported rosters
	ExportFileName = "genshin-tracker.json"

	// NoTrackedStats is the summary detail of a character without stat selections
	NoTrackedStats = "No tracked stats for this character."

	summarySeparator = " • "
)

// Service defines the operations on the tracked roster
type Service interface {
	// Load replaces the in-memory roster with the persisted one, reconciled
	// against the current vocabulary and limits.
	Load(ctx context.Context, input *LoadInput) (*LoadOutput, error)

	// Roster mutations; each one saves the whole roster
	AddCharacter(ctx context.Context, input *AddCharacterInput) (*AddCharacterOutput, error)
	RemoveCharacter(ctx context.Context, input *RemoveCharacterInput) (*RemoveCharacterOutput, error)
	UpdateSlot(ctx context.Context, input *UpdateSlotInput) (*UpdateSlotOutput, error)
	Import(ctx context.Context, input *ImportInput) (*ImportOutput, error)

	// Reads
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	CharactersUsingSet(ctx context.Context, input *CharactersUsingSetInput) (*CharactersUsingSetOutput, error)
	FilterOptions(ctx context.Context, input *FilterOptionsInput) (*FilterOptionsOutput, error)
	Summary(ctx context.Context, input *SummaryInput) (*SummaryOutput, error)
	AvailableCharacters(ctx context.Context, input *AvailableCharactersInput) (*AvailableCharactersOutput, error)
	Suggest(ctx context.Context, input *SuggestInput) (*SuggestOutput, error)
	Export(ctx context.Context, input *ExportInput) (*ExportOutput, error)
}

// Config holds the dependencies for the tracker orchestrator
type Config struct {
	Repository roster.Repository
	Vocabulary *entities.Vocabulary
	Limits     entities.Limits
	Logger     *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Vocabulary == nil {
		vb.RequiredField("Vocabulary")
	}
	if c.Limits == (entities.Limits{}) {
		c.Limits = entities.DefaultLimits()
	}
	errors.ValidateRange("Limits.MaxSets", c.Limits.MaxSets, 1, entities.MaxSets, vb)
	errors.ValidateRange("Limits.MaxStats", c.Limits.MaxStats, entities.MinMaxStats, entities.MaxMaxStats, vb)

	return vb.Build()
}

type orchestrator struct {
	mu sync.Mutex

	repo   roster.Repository
	vocab  *entities.Vocabulary
	limits entities.Limits
	logger *zap.Logger

	characters []*entities.Character
}

// NewOrchestrator creates a tracker orchestrator with an empty roster.
// Call Load to pick up the persisted one.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &orchestrator{
		repo:       cfg.Repository,
		vocab:      cfg.Vocabulary,
		limits:     cfg.Limits,
		logger:     logger,
		characters: []*entities.Character{},
	}, nil
}

func (o *orchestrator) Load(ctx context.Context, _ *LoadInput) (*LoadOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	out, err := o.repo.Load(ctx, roster.LoadInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load roster")
	}

	characters, dropped := o.restore(out.Characters)
	if dropped > 0 {
		o.logger.Warn("dropped repeated characters from stored roster", zap.Int("dropped", dropped))
	}
	o.characters = characters

	o.logger.Info("roster loaded",
		zap.Bool("found", out.Found),
		zap.Int("characters", len(characters)))

	return &LoadOutput{Characters: len(characters), Found: out.Found}, nil
}

func (o *orchestrator) AddCharacter(ctx context.Context, input *AddCharacterInput) (*AddCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	name := strings.TrimSpace(input.Name)

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.indexOf(name) >= 0 {
		o.logger.Info("rejected duplicate character", zap.String("name", name))
		return nil, errors.Duplicate(name)
	}
	if !o.vocab.HasCharacter(name) {
		suggestion := entities.Closest(name, o.vocab.CharacterNames())
		o.logger.Info("rejected unknown character",
			zap.String("name", name),
			zap.String("suggestion", suggestion))
		return nil, errors.InvalidName(name, suggestion)
	}

	c := entities.NewCharacter(name, o.vocab, o.limits)
	next := make([]*entities.Character, 0, len(o.characters)+1)
	next = append(next, o.characters...)
	next = append(next, c)

	if err := o.commit(ctx, next); err != nil {
		return nil, err
	}

	return &AddCharacterOutput{Character: o.view(c)}, nil
}

func (o *orchestrator) RemoveCharacter(ctx context.Context, input *RemoveCharacterInput) (*RemoveCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	name := strings.TrimSpace(input.Name)

	o.mu.Lock()
	defer o.mu.Unlock()

	idx := o.indexOf(name)
	if idx < 0 {
		o.logger.Warn("character not found, nothing removed", zap.String("name", name))
		return &RemoveCharacterOutput{Removed: false}, nil
	}

	next := make([]*entities.Character, 0, len(o.characters)-1)
	next = append(next, o.characters[:idx]...)
	next = append(next, o.characters[idx+1:]...)

	if err := o.commit(ctx, next); err != nil {
		return nil, err
	}

	return &RemoveCharacterOutput{Removed: true}, nil
}

func (o *orchestrator) UpdateSlot(ctx context.Context, input *UpdateSlotInput) (*UpdateSlotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	idx, err := o.find(input.Name)
	if err != nil {
		return nil, err
	}

	// Edit a copy so a failed save leaves the roster untouched
	c := entities.RestoreCharacter(o.characters[idx].Data(), o.vocab, o.limits)
	if err := c.Edit(input.Kind, input.Index, input.Value); err != nil {
		return nil, errors.Wrapf(err, "failed to update %s", input.Kind).
			WithMeta("name", c.Name)
	}

	next := make([]*entities.Character, len(o.characters))
	copy(next, o.characters)
	next[idx] = c

	if err := o.commit(ctx, next); err != nil {
		return nil, err
	}

	return &UpdateSlotOutput{
		Character: o.view(c),
		List:      c.View(input.Kind),
	}, nil
}

func (o *orchestrator) GetCharacter(_ context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	idx, err := o.find(input.Name)
	if err != nil {
		return nil, err
	}
	return &GetCharacterOutput{Character: o.view(o.characters[idx])}, nil
}

func (o *orchestrator) ListCharacters(_ context.Context, _ *ListCharactersInput) (*ListCharactersOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	views := make([]*CharacterView, 0, len(o.characters))
	for _, c := range o.characters {
		views = append(views, o.view(c))
	}
	return &ListCharactersOutput{Characters: views}, nil
}

func (o *orchestrator) CharactersUsingSet(_ context.Context, input *CharactersUsingSetInput) (*CharactersUsingSetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	views := []*CharacterView{}
	for _, c := range o.usingSet(input.Set) {
		views = append(views, o.view(c))
	}
	return &CharactersUsingSetOutput{Characters: views}, nil
}

func (o *orchestrator) FilterOptions(_ context.Context, _ *FilterOptionsInput) (*FilterOptionsOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	seen := make(map[string]struct{})
	sets := []string{}
	for _, c := range o.characters {
		for _, s := range c.List(entities.SlotArtifactSets).Values() {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			sets = append(sets, s)
		}
	}
	sort.Strings(sets)

	return &FilterOptionsOutput{Sets: sets}, nil
}

func (o *orchestrator) Summary(_ context.Context, input *SummaryInput) (*SummaryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	entries := []SummaryEntry{}
	for _, c := range o.usingSet(input.Set) {
		entries = append(entries, summarize(c))
	}
	return &SummaryOutput{Entries: entries}, nil
}

func (o *orchestrator) AvailableCharacters(_ context.Context, _ *AvailableCharactersInput) (*AvailableCharactersOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	return &AvailableCharactersOutput{
		Names: entities.Suggest(o.vocab.CharacterNames(), "", o.names(), 0),
	}, nil
}

func (o *orchestrator) Suggest(_ context.Context, input *SuggestInput) (*SuggestOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgument("limit cannot be negative")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	return &SuggestOutput{
		Names: entities.Suggest(o.vocab.CharacterNames(), input.Prefix, o.names(), input.Limit),
	}, nil
}

func (o *orchestrator) Export(_ context.Context, _ *ExportInput) (*ExportOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	data, err := json.MarshalIndent(o.snapshot(o.characters), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode roster")
	}
	return &ExportOutput{Data: data, FileName: ExportFileName}, nil
}

func (o *orchestrator) Import(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	records, err := decodeImport(input.Data)
	if err != nil {
		o.logger.Info("rejected import", zap.Error(err))
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	characters, dropped := o.restore(records)
	if dropped > 0 {
		o.logger.Warn("dropped repeated characters from import", zap.Int("dropped", dropped))
	}
	if err := o.commit(ctx, characters); err != nil {
		return nil, err
	}

	return &ImportOutput{Characters: len(characters), Duplicates: dropped}, nil
}

// decodeImport accepts only a JSON array whose every entry names a character.
func decodeImport(data []byte) ([]entities.CharacterData, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil || entries == nil {
		return nil, errors.ImportFormat("import must be a JSON array of characters")
	}

	records := make([]entities.CharacterData, 0, len(entries))
	for i, raw := range entries {
		var record entities.CharacterData
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, errors.ImportFormatf("entry %d is not a character: %v", i, err).
				WithMeta("entry", i)
		}
		if strings.TrimSpace(record.Name) == "" {
			return nil, errors.ImportFormatf("entry %d must have a name", i).
				WithMeta("entry", i)
		}
		record.Name = strings.TrimSpace(record.Name)
		records = append(records, record)
	}
	return records, nil
}

// commit persists next and makes it the roster. The roster is unchanged when
// saving fails. Callers hold o.mu.
func (o *orchestrator) commit(ctx context.Context, next []*entities.Character) error {
	out, err := o.repo.Save(ctx, roster.SaveInput{Characters: o.snapshot(next)})
	if err != nil {
		o.logger.Error("failed to save roster", zap.Error(err))
		return errors.Wrap(err, "failed to save roster")
	}

	o.characters = next
	o.logger.Debug("roster saved",
		zap.Int("characters", len(next)),
		zap.Int("bytes", out.Bytes))
	return nil
}

// restore rebuilds characters from records, keeping the first of any repeated name.
func (o *orchestrator) restore(records []entities.CharacterData) ([]*entities.Character, int) {
	seen := make(map[string]struct{}, len(records))
	characters := make([]*entities.Character, 0, len(records))
	dropped := 0
	for _, r := range records {
		if _, ok := seen[r.Name]; ok {
			dropped++
			continue
		}
		seen[r.Name] = struct{}{}
		characters = append(characters, entities.RestoreCharacter(r, o.vocab, o.limits))
	}
	return characters, dropped
}

func (o *orchestrator) snapshot(characters []*entities.Character) []entities.CharacterData {
	data := make([]entities.CharacterData, 0, len(characters))
	for _, c := range characters {
		data = append(data, c.Data())
	}
	return data
}

func (o *orchestrator) find(name string) (int, error) {
	name = strings.TrimSpace(name)
	idx := o.indexOf(name)
	if idx < 0 {
		return -1, errors.NotFoundf("character %s not found", name).WithMeta("name", name)
	}
	return idx, nil
}

func (o *orchestrator) indexOf(name string) int {
	for i, c := range o.characters {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (o *orchestrator) names() []string {
	names := make([]string, 0, len(o.characters))
	for _, c := range o.characters {
		names = append(names, c.Name)
	}
	return names
}

func (o *orchestrator) usingSet(set string) []*entities.Character {
	var matched []*entities.Character
	if strings.TrimSpace(set) == "" {
		return matched
	}
	for _, c := range o.characters {
		if c.UsesSet(set) {
			matched = append(matched, c)
		}
	}
	return matched
}

func (o *orchestrator) view(c *entities.Character) *CharacterView {
	return &CharacterView{
		Name:  c.Name,
		Icon:  o.vocab.Icon(c.Name),
		Data:  c.Data(),
		Lists: c.Views(),
	}
}

var summaryLabels = map[entities.SlotKind]string{
	entities.SlotCirclet:  "Circlet",
	entities.SlotGoblet:   "Goblet",
	entities.SlotSands:    "Sands",
	entities.SlotSubStats: "Substats",
}

func summarize(c *entities.Character) SummaryEntry {
	entry := SummaryEntry{
		Name:  c.Name,
		Sets:  c.List(entities.SlotArtifactSets).Values(),
		Stats: []StatGroup{},
	}

	parts := []string{}
	for _, kind := range entities.SlotKinds {
		if kind == entities.SlotArtifactSets {
			continue
		}
		values := c.List(kind).Values()
		if len(values) == 0 {
			continue
		}
		label := summaryLabels[kind]
		entry.Stats = append(entry.Stats, StatGroup{Kind: kind, Label: label, Values: values})
		parts = append(parts, label+": "+strings.Join(values, ", "))
	}

	entry.Details = NoTrackedStats
	if len(parts) > 0 {
		entry.Details = strings.Join(parts, summarySeparator)
	}
	return entry
}
