package v1

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/artifact-tracker/internal/entities"
	"github.com/KirkDiggler/artifact-tracker/internal/errors"
	"github.com/KirkDiggler/artifact-tracker/internal/orchestrators/tracker"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	TrackerService tracker.Service
	Logger         *zap.Logger
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.TrackerService == nil {
		return errors.InvalidArgument("tracker service is required")
	}
	return nil
}

// Handler implements the tracker gRPC service
type Handler struct {
	trackerService tracker.Service
	logger         *zap.Logger
}

var _ TrackerServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		trackerService: cfg.TrackerService,
		logger:         logger,
	}, nil
}

// ListCharacters returns every tracked character in display order
func (h *Handler) ListCharacters(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.trackerService.ListCharacters(ctx, &tracker.ListCharactersInput{})
	if err != nil {
		return nil, h.fail(MethodListCharacters, err)
	}
	return h.respond(MethodListCharacters, map[string]any{"characters": out.Characters})
}

// GetCharacter returns one character with its rendered lists
func (h *Handler) GetCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := requiredString(req, "name")
	if err != nil {
		return nil, h.fail(MethodGetCharacter, err)
	}

	out, err := h.trackerService.GetCharacter(ctx, &tracker.GetCharacterInput{Name: name})
	if err != nil {
		return nil, h.fail(MethodGetCharacter, err)
	}
	return h.respond(MethodGetCharacter, map[string]any{"character": out.Character})
}

// AddCharacter adds a character from the vocabulary
func (h *Handler) AddCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := requiredString(req, "name")
	if err != nil {
		return nil, h.fail(MethodAddCharacter, err)
	}

	out, err := h.trackerService.AddCharacter(ctx, &tracker.AddCharacterInput{Name: name})
	if err != nil {
		return nil, h.fail(MethodAddCharacter, err)
	}
	return h.respond(MethodAddCharacter, map[string]any{"character": out.Character})
}

// RemoveCharacter removes a character. Removing an unknown name is not an error.
func (h *Handler) RemoveCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := requiredString(req, "name")
	if err != nil {
		return nil, h.fail(MethodRemoveCharacter, err)
	}

	out, err := h.trackerService.RemoveCharacter(ctx, &tracker.RemoveCharacterInput{Name: name})
	if err != nil {
		return nil, h.fail(MethodRemoveCharacter, err)
	}
	return h.respond(MethodRemoveCharacter, map[string]any{"removed": out.Removed})
}

// UpdateSlot edits one slot of one list
func (h *Handler) UpdateSlot(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := updateSlotInput(req)
	if err != nil {
		return nil, h.fail(MethodUpdateSlot, err)
	}

	out, err := h.trackerService.UpdateSlot(ctx, input)
	if err != nil {
		return nil, h.fail(MethodUpdateSlot, err)
	}
	return h.respond(MethodUpdateSlot, map[string]any{
		"character": out.Character,
		"list":      out.List,
	})
}

// CharactersUsingSet returns the characters wearing a set along with their summary lines
func (h *Handler) CharactersUsingSet(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	set := stringField(req, "set")

	using, err := h.trackerService.CharactersUsingSet(ctx, &tracker.CharactersUsingSetInput{Set: set})
	if err != nil {
		return nil, h.fail(MethodCharactersUsingSet, err)
	}
	summary, err := h.trackerService.Summary(ctx, &tracker.SummaryInput{Set: set})
	if err != nil {
		return nil, h.fail(MethodCharactersUsingSet, err)
	}
	return h.respond(MethodCharactersUsingSet, map[string]any{
		"characters": using.Characters,
		"summary":    summary.Entries,
	})
}

// FilterOptions returns the artifact sets in use, sorted
func (h *Handler) FilterOptions(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.trackerService.FilterOptions(ctx, &tracker.FilterOptionsInput{})
	if err != nil {
		return nil, h.fail(MethodFilterOptions, err)
	}
	return h.respond(MethodFilterOptions, map[string]any{"sets": out.Sets})
}

// Export returns the roster as indented JSON text
func (h *Handler) Export(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.trackerService.Export(ctx, &tracker.ExportInput{})
	if err != nil {
		return nil, h.fail(MethodExport, err)
	}
	return h.respond(MethodExport, map[string]any{
		"fileName": out.FileName,
		"data":     string(out.Data),
	})
}

// Import replaces the roster with the JSON text in the data field
func (h *Handler) Import(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	data, err := requiredString(req, "data")
	if err != nil {
		return nil, h.fail(MethodImport, err)
	}

	out, err := h.trackerService.Import(ctx, &tracker.ImportInput{Data: []byte(data)})
	if err != nil {
		return nil, h.fail(MethodImport, err)
	}
	return h.respond(MethodImport, map[string]any{
		"characters": out.Characters,
		"duplicates": out.Duplicates,
	})
}

// Suggest autocompletes character names that are not tracked yet
func (h *Handler) Suggest(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	limit, err := intField(req, "limit")
	if err != nil {
		return nil, h.fail(MethodSuggest, err)
	}

	out, err := h.trackerService.Suggest(ctx, &tracker.SuggestInput{
		Prefix: stringField(req, "prefix"),
		Limit:  limit,
	})
	if err != nil {
		return nil, h.fail(MethodSuggest, err)
	}
	return h.respond(MethodSuggest, map[string]any{"names": out.Names})
}

func (h *Handler) fail(method string, err error) error {
	h.logger.Debug("tracker request failed",
		zap.String("method", method),
		zap.String("code", string(errors.GetCode(err))),
		zap.Error(err))
	return errors.ToGRPCError(err)
}

func (h *Handler) respond(method string, v any) (*structpb.Struct, error) {
	s, err := ToStruct(v)
	if err != nil {
		return nil, h.fail(method, err)
	}
	return s, nil
}

// ToStruct converts any JSON-encodable value whose encoding is an object into a Struct
func ToStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "failed to build response struct")
	}
	return s, nil
}

// FromStruct decodes a Struct into v through its JSON form
func FromStruct(s *structpb.Struct, v any) error {
	data, err := protojson.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "failed to encode struct")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "unexpected response shape")
	}
	return nil
}

func updateSlotInput(req *structpb.Struct) (*tracker.UpdateSlotInput, error) {
	name, err := requiredString(req, "name")
	if err != nil {
		return nil, err
	}
	rawKind, err := requiredString(req, "kind")
	if err != nil {
		return nil, err
	}
	kind, err := entities.ParseSlotKind(rawKind)
	if err != nil {
		return nil, err
	}
	if _, ok := req.GetFields()["index"]; !ok {
		return nil, errors.InvalidArgument("index is required")
	}
	index, err := intField(req, "index")
	if err != nil {
		return nil, err
	}

	return &tracker.UpdateSlotInput{
		Name:  name,
		Kind:  kind,
		Index: index,
		Value: stringField(req, "value"),
	}, nil
}

func stringField(req *structpb.Struct, key string) string {
	return strings.TrimSpace(req.GetFields()[key].GetStringValue())
}

func requiredString(req *structpb.Struct, key string) (string, error) {
	v := stringField(req, key)
	if v == "" {
		return "", errors.InvalidArgumentf("%s is required", key)
	}
	return v, nil
}

// intField reads a whole number, 0 when absent
func intField(req *structpb.Struct, key string) (int, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return 0, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, errors.InvalidArgumentf("%s must be a number", key)
	}
	if n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
		return 0, errors.InvalidArgumentf("%s must be a whole number", key)
	}
	return int(n.NumberValue), nil
}
