package roster_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/artifact-tracker/internal/entities"
	"github.com/KirkDiggler/artifact-tracker/internal/errors"
	mockclock "github.com/KirkDiggler/artifact-tracker/internal/pkg/clock/mock"
	"github.com/KirkDiggler/artifact-tracker/internal/repositories/roster"
	"github.com/KirkDiggler/artifact-tracker/internal/testutils/builders"
)

type SQLiteRepositoryTestSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	clock *mockclock.MockClock
	path  string
	repo  *roster.SQLiteRepository
	ctx   context.Context
	now   time.Time
}

func TestSQLiteRepositorySuite(t *testing.T) {
	suite.Run(t, new(SQLiteRepositoryTestSuite))
}

func (s *SQLiteRepositoryTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.clock = mockclock.NewMockClock(s.ctrl)
	s.ctx = context.Background()
	s.now = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	s.path = filepath.Join(s.T().TempDir(), "tracker.db")

	repo, err := roster.OpenSQLite(s.ctx, &roster.SQLiteConfig{
		Path:  s.path,
		Clock: s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *SQLiteRepositoryTestSuite) TearDownTest() {
	s.NoError(s.repo.Close())
	s.ctrl.Finish()
}

func (s *SQLiteRepositoryTestSuite) TestOpenValidation() {
	_, err := roster.OpenSQLite(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = roster.OpenSQLite(s.ctx, &roster.SQLiteConfig{Path: "  "})
	s.True(errors.IsInvalidArgument(err))
}

func (s *SQLiteRepositoryTestSuite) TestLoadEmpty() {
	out, err := s.repo.Load(s.ctx, roster.LoadInput{})

	s.Require().NoError(err)
	s.False(out.Found)
	s.Empty(out.Characters)
}

func (s *SQLiteRepositoryTestSuite) TestSaveThenLoad() {
	s.clock.EXPECT().Now().Return(s.now)

	characters := []entities.CharacterData{
		builders.NewCharacterDataBuilder("Tighnari").
			WithSets("Deepwood").
			WithStats(entities.SlotGoblet, "Dendro DMG%").
			Build(),
	}

	_, err := s.repo.Save(s.ctx, roster.SaveInput{Characters: characters})
	s.Require().NoError(err)

	out, err := s.repo.Load(s.ctx, roster.LoadInput{})
	s.Require().NoError(err)
	s.True(out.Found)
	s.Equal(characters, out.Characters)
}

func (s *SQLiteRepositoryTestSuite) TestSaveUpsertsSingleRow() {
	s.clock.EXPECT().Now().Return(s.now)
	s.clock.EXPECT().Now().Return(s.now.Add(time.Minute))

	_, err := s.repo.Save(s.ctx, roster.SaveInput{Characters: []entities.CharacterData{
		builders.NewCharacterDataBuilder("Zhongli").Build(),
	}})
	s.Require().NoError(err)
	_, err = s.repo.Save(s.ctx, roster.SaveInput{Characters: []entities.CharacterData{}})
	s.Require().NoError(err)

	out, err := s.repo.Load(s.ctx, roster.LoadInput{})
	s.Require().NoError(err)
	s.True(out.Found)
	s.Empty(out.Characters)

	s.Require().NoError(s.repo.Close())
	db, err := sql.Open("sqlite", s.path)
	s.Require().NoError(err)
	defer db.Close()

	var rows int
	var savedAt int64
	s.Require().NoError(db.QueryRow(`SELECT COUNT(*), MAX(saved_at) FROM snapshots`).Scan(&rows, &savedAt))
	s.Equal(1, rows)
	s.Equal(s.now.Add(time.Minute).UnixMilli(), savedAt)
}

func (s *SQLiteRepositoryTestSuite) TestPersistsAcrossReopen() {
	s.clock.EXPECT().Now().Return(s.now)

	characters := []entities.CharacterData{builders.NewCharacterDataBuilder("Aino").Build()}
	_, err := s.repo.Save(s.ctx, roster.SaveInput{Characters: characters})
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Close())

	reopened, err := roster.OpenSQLite(s.ctx, &roster.SQLiteConfig{Path: s.path})
	s.Require().NoError(err)
	s.repo = reopened

	out, err := reopened.Load(s.ctx, roster.LoadInput{})
	s.Require().NoError(err)
	s.Equal(characters, out.Characters)
}

func (s *SQLiteRepositoryTestSuite) TestLoadCorrupted() {
	s.Require().NoError(s.repo.Close())

	db, err := sql.Open("sqlite", s.path)
	s.Require().NoError(err)
	_, err = db.Exec(`INSERT INTO snapshots (key, body, saved_at) VALUES (?, ?, 0)`, roster.DefaultKey, []byte("nope"))
	s.Require().NoError(err)
	s.Require().NoError(db.Close())

	reopened, err := roster.OpenSQLite(s.ctx, &roster.SQLiteConfig{Path: s.path})
	s.Require().NoError(err)
	s.repo = reopened

	_, err = reopened.Load(s.ctx, roster.LoadInput{})
	s.Equal(errors.CodeDataLoss, errors.GetCode(err))
}

func (s *SQLiteRepositoryTestSuite) TestInMemory() {
	repo, err := roster.OpenSQLite(s.ctx, &roster.SQLiteConfig{Path: ":memory:", Key: "alt"})
	s.Require().NoError(err)
	defer repo.Close()

	_, err = repo.Save(s.ctx, roster.SaveInput{Characters: []entities.CharacterData{
		builders.NewCharacterDataBuilder("Kinich").Build(),
	}})
	s.Require().NoError(err)

	out, err := repo.Load(s.ctx, roster.LoadInput{})
	s.Require().NoError(err)
	s.Len(out.Characters, 1)
}
