package v1_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/artifact-tracker/internal/entities"
	"github.com/KirkDiggler/artifact-tracker/internal/errors"
	v1 "github.com/KirkDiggler/artifact-tracker/internal/handlers/tracker/v1"
	"github.com/KirkDiggler/artifact-tracker/internal/orchestrators/tracker"
	trackermock "github.com/KirkDiggler/artifact-tracker/internal/orchestrators/tracker/mock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type HandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockTracker *trackermock.MockService
	handler     *v1.Handler
	ctx         context.Context
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockTracker = trackermock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	handler, err := v1.NewHandler(&v1.HandlerConfig{TrackerService: s.mockTracker})
	s.Require().NoError(err)
	s.handler = handler
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) request(fields map[string]any) *structpb.Struct {
	req, err := structpb.NewStruct(fields)
	s.Require().NoError(err)
	return req
}

func (s *HandlerTestSuite) requireCode(err error, code codes.Code) *status.Status {
	s.Require().Error(err)
	st, ok := status.FromError(err)
	s.Require().True(ok)
	s.Equal(code, st.Code())
	return st
}

func (s *HandlerTestSuite) TestNewHandlerValidation() {
	_, err := v1.NewHandler(&v1.HandlerConfig{})
	s.True(errors.IsInvalidArgument(err))

	_, err = v1.NewHandler(nil)
	s.Error(err)
}

func (s *HandlerTestSuite) TestAddCharacter() {
	s.mockTracker.EXPECT().
		AddCharacter(s.ctx, &tracker.AddCharacterInput{Name: "Zhongli"}).
		Return(&tracker.AddCharacterOutput{Character: &tracker.CharacterView{Name: "Zhongli"}}, nil)

	resp, err := s.handler.AddCharacter(s.ctx, s.request(map[string]any{"name": "Zhongli"}))

	s.Require().NoError(err)
	character := resp.GetFields()["character"].GetStructValue()
	s.Equal("Zhongli", character.GetFields()["name"].GetStringValue())
}

func (s *HandlerTestSuite) TestAddCharacterRequiresName() {
	_, err := s.handler.AddCharacter(s.ctx, s.request(map[string]any{"name": "  "}))

	st := s.requireCode(err, codes.InvalidArgument)
	s.Equal("name is required", st.Message())
}

func (s *HandlerTestSuite) TestAddCharacterDuplicateCarriesReason() {
	s.mockTracker.EXPECT().
		AddCharacter(s.ctx, gomock.Any()).
		Return(nil, errors.Duplicate("Zhongli"))

	_, err := s.handler.AddCharacter(s.ctx, s.request(map[string]any{"name": "Zhongli"}))

	s.requireCode(err, codes.AlreadyExists)
	back := errors.FromGRPCError(err)
	s.True(errors.IsDuplicate(back))
	s.Equal("Zhongli", errors.GetMeta(back)["name"])
}

func (s *HandlerTestSuite) TestAddCharacterInvalidNameCarriesSuggestion() {
	s.mockTracker.EXPECT().
		AddCharacter(s.ctx, gomock.Any()).
		Return(nil, errors.InvalidName("Zhongi", "Zhongli"))

	_, err := s.handler.AddCharacter(s.ctx, s.request(map[string]any{"name": "Zhongi"}))

	s.requireCode(err, codes.InvalidArgument)
	back := errors.FromGRPCError(err)
	s.True(errors.IsInvalidName(back))
	s.Equal("Zhongli", errors.GetMeta(back)["suggestion"])
}

func (s *HandlerTestSuite) TestRemoveCharacter() {
	s.mockTracker.EXPECT().
		RemoveCharacter(s.ctx, &tracker.RemoveCharacterInput{Name: "Nahida"}).
		Return(&tracker.RemoveCharacterOutput{Removed: false}, nil)

	resp, err := s.handler.RemoveCharacter(s.ctx, s.request(map[string]any{"name": "Nahida"}))

	s.Require().NoError(err)
	s.False(resp.GetFields()["removed"].GetBoolValue())
}

func (s *HandlerTestSuite) TestUpdateSlot() {
	s.mockTracker.EXPECT().
		UpdateSlot(s.ctx, &tracker.UpdateSlotInput{
			Name: "Tighnari", Kind: entities.SlotGoblet, Index: 1, Value: "EM",
		}).
		Return(&tracker.UpdateSlotOutput{
			Character: &tracker.CharacterView{Name: "Tighnari"},
			List:      entities.ListView{Kind: entities.SlotGoblet, Label: "Goblet", Capacity: 6},
		}, nil)

	resp, err := s.handler.UpdateSlot(s.ctx, s.request(map[string]any{
		"name": "Tighnari", "kind": "goblet", "index": 1, "value": "EM",
	}))

	s.Require().NoError(err)
	list := resp.GetFields()["list"].GetStructValue()
	s.Equal("gobletStats", list.GetFields()["kind"].GetStringValue())
	s.Equal(float64(6), list.GetFields()["capacity"].GetNumberValue())
}

func (s *HandlerTestSuite) TestUpdateSlotValidation() {
	testCases := []struct {
		name   string
		fields map[string]any
	}{
		{name: "missing name", fields: map[string]any{"kind": "sets", "index": 0}},
		{name: "unknown kind", fields: map[string]any{"name": "Aino", "kind": "boots", "index": 0}},
		{name: "missing index", fields: map[string]any{"name": "Aino", "kind": "sets"}},
		{name: "fractional index", fields: map[string]any{"name": "Aino", "kind": "sets", "index": 1.5}},
		{name: "string index", fields: map[string]any{"name": "Aino", "kind": "sets", "index": "one"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.handler.UpdateSlot(s.ctx, s.request(tc.fields))
			s.requireCode(err, codes.InvalidArgument)
		})
	}
}

func (s *HandlerTestSuite) TestCharactersUsingSet() {
	s.mockTracker.EXPECT().
		CharactersUsingSet(s.ctx, &tracker.CharactersUsingSetInput{Set: "Deepwood"}).
		Return(&tracker.CharactersUsingSetOutput{Characters: []*tracker.CharacterView{{Name: "Nahida"}}}, nil)
	s.mockTracker.EXPECT().
		Summary(s.ctx, &tracker.SummaryInput{Set: "Deepwood"}).
		Return(&tracker.SummaryOutput{Entries: []tracker.SummaryEntry{
			{Name: "Nahida", Sets: []string{"Deepwood"}, Details: tracker.NoTrackedStats},
		}}, nil)

	resp, err := s.handler.CharactersUsingSet(s.ctx, s.request(map[string]any{"set": "Deepwood"}))

	s.Require().NoError(err)
	s.Len(resp.GetFields()["characters"].GetListValue().GetValues(), 1)
	summary := resp.GetFields()["summary"].GetListValue().GetValues()
	s.Require().Len(summary, 1)
	s.Equal(tracker.NoTrackedStats, summary[0].GetStructValue().GetFields()["details"].GetStringValue())
}

func (s *HandlerTestSuite) TestFilterOptionsAndSuggest() {
	s.mockTracker.EXPECT().
		FilterOptions(s.ctx, &tracker.FilterOptionsInput{}).
		Return(&tracker.FilterOptionsOutput{Sets: []string{"Deepwood", "Golden Troupe"}}, nil)
	s.mockTracker.EXPECT().
		Suggest(s.ctx, &tracker.SuggestInput{Prefix: "x", Limit: 3}).
		Return(&tracker.SuggestOutput{Names: []string{"Xiangling"}}, nil)

	sets, err := s.handler.FilterOptions(s.ctx, &structpb.Struct{})
	s.Require().NoError(err)
	s.Len(sets.GetFields()["sets"].GetListValue().GetValues(), 2)

	names, err := s.handler.Suggest(s.ctx, s.request(map[string]any{"prefix": "x", "limit": 3}))
	s.Require().NoError(err)
	s.Equal("Xiangling", names.GetFields()["names"].GetListValue().GetValues()[0].GetStringValue())
}

func (s *HandlerTestSuite) TestExportImport() {
	s.mockTracker.EXPECT().
		Export(s.ctx, &tracker.ExportInput{}).
		Return(&tracker.ExportOutput{Data: []byte(`[]`), FileName: tracker.ExportFileName}, nil)
	s.mockTracker.EXPECT().
		Import(s.ctx, &tracker.ImportInput{Data: []byte(`{}`)}).
		Return(nil, errors.ImportFormat("import must be a JSON array of characters"))

	exported, err := s.handler.Export(s.ctx, &structpb.Struct{})
	s.Require().NoError(err)
	s.Equal("[]", exported.GetFields()["data"].GetStringValue())
	s.Equal(tracker.ExportFileName, exported.GetFields()["fileName"].GetStringValue())

	_, err = s.handler.Import(s.ctx, s.request(map[string]any{"data": "{}"}))
	s.requireCode(err, codes.InvalidArgument)
	s.True(errors.IsImportFormat(errors.FromGRPCError(err)))
}

func (s *HandlerTestSuite) TestGetCharacterNotFound() {
	s.mockTracker.EXPECT().
		GetCharacter(s.ctx, &tracker.GetCharacterInput{Name: "Aino"}).
		Return(nil, errors.NotFoundf("character %s not found", "Aino").WithMeta("name", "Aino"))

	_, err := s.handler.GetCharacter(s.ctx, s.request(map[string]any{"name": "Aino"}))

	s.requireCode(err, codes.NotFound)
}
