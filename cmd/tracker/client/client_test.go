package client

import (
	"bytes"
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/KirkDiggler/artifact-tracker/internal/errors"
	v1 "github.com/KirkDiggler/artifact-tracker/internal/handlers/tracker/v1"
	"github.com/KirkDiggler/artifact-tracker/internal/orchestrators/tracker"
	"github.com/KirkDiggler/artifact-tracker/internal/repositories/roster"
	"github.com/KirkDiggler/artifact-tracker/internal/testutils"
)

type ClientTestSuite struct {
	suite.Suite
	addr string
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	ctx := context.Background()

	repo, err := roster.OpenSQLite(ctx, &roster.SQLiteConfig{Path: ":memory:"})
	s.Require().NoError(err)

	svc, err := tracker.NewOrchestrator(&tracker.Config{
		Repository: repo,
		Vocabulary: testutils.CreateTestVocabulary(),
	})
	s.Require().NoError(err)

	handler, err := v1.NewHandler(&v1.HandlerConfig{TrackerService: svc})
	s.Require().NoError(err)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	s.addr = lis.Addr().String()

	srv, _ := v1.NewServer(handler, zap.NewNop())
	go func() {
		_ = srv.Serve(lis)
	}()

	s.T().Cleanup(func() {
		srv.Stop()
		_ = repo.Close()
	})
}

func (s *ClientTestSuite) run(args ...string) (string, error) {
	cmd := NewClientCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", s.addr}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func (s *ClientTestSuite) TestRoundTrip() {
	out, err := s.run("add", "Tighnari")
	s.Require().NoError(err)
	s.Contains(out, "Added Tighnari")

	out, err = s.run("set", "Tighnari", "sets", "0", "Deepwood")
	s.Require().NoError(err)
	s.Contains(out, "Artifact Set: Deepwood, —")

	out, err = s.run("list")
	s.Require().NoError(err)
	s.Contains(out, "Tighnari")

	out, err = s.run("tracker")
	s.Require().NoError(err)
	s.Equal("Deepwood\n", out)

	out, err = s.run("tracker", "Deepwood")
	s.Require().NoError(err)
	s.Contains(out, "Tighnari - Sets: Deepwood")
	s.Contains(out, tracker.NoTrackedStats)

	out, err = s.run("remove", "Tighnari")
	s.Require().NoError(err)
	s.Contains(out, "Removed Tighnari")

	out, err = s.run("remove", "Tighnari")
	s.Require().NoError(err)
	s.Contains(out, "Tighnari is not tracked")
}

func (s *ClientTestSuite) TestErrorsKeepTheirReason() {
	_, err := s.run("add", "Tighnari")
	s.Require().NoError(err)

	_, err = s.run("add", "Tighnari")
	s.True(errors.IsDuplicate(err))

	_, err = s.run("add", "Tignari")
	s.True(errors.IsInvalidName(err))
	s.Equal("Tighnari", errors.GetMeta(err)["suggestion"])
}

func (s *ClientTestSuite) TestSetRejectsNonNumericIndex() {
	_, err := s.run("set", "Tighnari", "sets", "one", "Deepwood")
	s.True(errors.IsInvalidArgument(err))
}
