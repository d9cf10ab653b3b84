package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/artifact-tracker/internal/errors"
)

type CommandsTestSuite struct {
	suite.Suite
	dir    string
	dbPath string
}

func TestCommandsSuite(t *testing.T) {
	suite.Run(t, new(CommandsTestSuite))
}

func (s *CommandsTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.dbPath = filepath.Join(s.dir, "tracker.db")
	s.T().Setenv("TRACKER_STORE", "sqlite")
	s.T().Setenv("TRACKER_STORAGE_KEY", "genshinTracker_v1")
	s.T().Setenv("TRACKER_VOCABULARY", "")
	s.T().Setenv("TRACKER_MAX_STATS", "6")
}

// run executes one command against a fresh root, the way a new process would
func (s *CommandsTestSuite) run(stdin string, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--sqlite-path", s.dbPath, "--log-level", "error"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func (s *CommandsTestSuite) mustRun(args ...string) string {
	out, err := s.run("", args...)
	s.Require().NoError(err, out)
	return out
}

func (s *CommandsTestSuite) TestAddSetAndTrackerPersistAcrossRuns() {
	s.Contains(s.mustRun("add", "Tighnari"), "Added Tighnari")

	out := s.mustRun("set", "Tighnari", "sets", "0", "Deepwood")
	s.Contains(out, "Deepwood")
	s.Contains(out, "[1]")

	s.mustRun("set", "Tighnari", "circlet", "0", "Crit Rate")

	out = s.mustRun("tracker", "Deepwood")
	s.Contains(out, "Tighnari - Sets: Deepwood")
	s.Contains(out, "Circlet: Crit Rate")

	s.Equal("Deepwood\n", s.mustRun("sets"))
	s.Contains(s.mustRun("tracker", "Golden Troupe"), "Nobody uses Golden Troupe.")
}

func (s *CommandsTestSuite) TestAddRejectsDuplicateAndUnknown() {
	s.mustRun("add", "Nahida")

	_, err := s.run("", "add", "Nahida")
	s.True(errors.IsDuplicate(err))

	_, err = s.run("", "add", "Nahda")
	s.True(errors.IsInvalidName(err))
	s.Contains(err.Error(), "Nahida")
}

func (s *CommandsTestSuite) TestSetRejectsBadArguments() {
	s.mustRun("add", "Nahida")

	_, err := s.run("", "set", "Nahida", "boots", "0", "EM")
	s.True(errors.IsInvalidArgument(err))

	_, err = s.run("", "set", "Nahida", "sands", "first", "EM")
	s.True(errors.IsInvalidArgument(err))
}

func (s *CommandsTestSuite) TestRemoveAsksFirst() {
	s.mustRun("add", "Zhongli")

	out, err := s.run("n\n", "remove", "Zhongli")
	s.Require().NoError(err)
	s.Contains(out, "Remove Zhongli? [y/N]: ")
	s.Contains(out, "Kept")
	s.Contains(s.mustRun("list"), "Zhongli")

	out, err = s.run("y\n", "remove", "Zhongli")
	s.Require().NoError(err)
	s.Contains(out, "Removed Zhongli")
	s.Contains(s.mustRun("list"), "No characters tracked yet.")

	s.Contains(s.mustRun("remove", "--yes", "Zhongli"), "Zhongli is not tracked")
}

func (s *CommandsTestSuite) TestExportThenImport() {
	s.mustRun("add", "Kinich")
	s.mustRun("set", "Kinich", "sets", "0", "Silken Moon")

	file := filepath.Join(s.dir, "backup.json")
	s.Contains(s.mustRun("export", "--out", file), "Exported to "+file)

	s.mustRun("remove", "-y", "Kinich")
	s.Contains(s.mustRun("import", file), "Imported 1 characters")
	s.Contains(s.mustRun("show", "Kinich"), "Silken Moon")

	stdout := s.mustRun("export", "-o", "-")
	s.Contains(stdout, `"name": "Kinich"`)
}

func (s *CommandsTestSuite) TestImportRejectsMalformedFile() {
	file := filepath.Join(s.dir, "bad.json")
	s.Require().NoError(os.WriteFile(file, []byte(`{"name":"Kinich"}`), 0o600))

	_, err := s.run("", "import", file)
	s.True(errors.IsImportFormat(err))

	_, err = s.run("", "import", filepath.Join(s.dir, "missing.json"))
	s.True(errors.IsNotFound(err))
}

func (s *CommandsTestSuite) TestSuggestSkipsTrackedNames() {
	s.mustRun("add", "Xiangling")

	out := s.mustRun("suggest", "x")
	s.NotContains(out, "Xiangling")

	out = s.mustRun("suggest", "--limit", "1")
	s.Len(strings.Fields(out), 1)
}

func (s *CommandsTestSuite) TestInvalidStoreFlag() {
	_, err := s.run("", "--store", "postgres", "list")
	s.True(errors.IsInvalidArgument(err))
}
