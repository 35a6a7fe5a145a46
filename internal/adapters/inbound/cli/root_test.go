package cli_test

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/standardrb/standardgo/internal/adapters/inbound/cli"
	"github.com/standardrb/standardgo/internal/adapters/outbound/rubocop"
	"github.com/standardrb/standardgo/internal/domain"
	"github.com/standardrb/standardgo/internal/testutil/fakerubocop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const repoRoot = "../../../.."

func TestMain(m *testing.M) {
	fakerubocop.Main()
	os.Exit(m.Run())
}

// useFakeRubocop points the CLI at the fake engine for the given scenario.
func useFakeRubocop(t *testing.T, scenario string) {
	t.Helper()
	t.Setenv(rubocop.EnvCommand, fakerubocop.Command()[0])
	t.Setenv(fakerubocop.EnvScenario, scenario)
	t.Setenv("NO_COLOR", "1")
}

type result struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// newProject creates a project directory holding lib/agreeable.rb with
// offenses and makes it the working directory.
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib", "agreeable.rb"), []byte(fakerubocop.AgreeableSource), 0644))
	t.Chdir(dir)
	return dir
}

func TestVersionFlag(t *testing.T) {
	r := execute(t, "", "-v")
	require.NoError(t, r.err)
	assert.Equal(t, "dev\n", r.stdout)
}

func TestVersionCommand(t *testing.T) {
	r := execute(t, "", "version")
	require.NoError(t, r.err)
	assert.Equal(t, "standardrb dev (none)\n", r.stdout)
}

func TestVerboseVersion(t *testing.T) {
	useFakeRubocop(t, fakerubocop.ScenarioFixture)

	r := execute(t, "", "-V")
	require.NoError(t, r.err)
	assert.Equal(t, "Standard version: dev\nRuboCop version: "+fakerubocop.Version+"\n", r.stdout)
}

func TestStdinFix(t *testing.T) {
	useFakeRubocop(t, fakerubocop.ScenarioFixture)

	r := execute(t, fakerubocop.AgreeableSource,
		"--fix", "--parallel", "--stderr", "--stdin", "lib/agreeable.rb", "--path", t.TempDir())

	require.Error(t, r.err)
	assert.ErrorIs(t, r.err, domain.ErrLintFailed)
	assert.Equal(t, 1, cli.ExitCode(r.err))
	assert.Equal(t, fakerubocop.AgreeableFixed, r.stdout, "stdout only carries the corrected source")
	assert.Contains(t, r.stderr, "standard: Use Ruby Standard Style")
	assert.Contains(t, r.stderr, "lib/agreeable.rb:1:5: Naming/MethodName: Use snake_case for method names.")
	assert.True(t, strings.HasSuffix(r.stderr, domain.CorrectedSourceSeparator+"\n"))
}

func TestCleanFileQuiet(t *testing.T) {
	useFakeRubocop(t, fakerubocop.ScenarioFixture)

	r := execute(t, "", "--format", "quiet", filepath.Join(repoRoot, "testdata", "runner", "agreeable.rb"))
	require.NoError(t, r.err)
	assert.Empty(t, r.stdout)
	assert.Empty(t, r.stderr)
}

func TestStandardFormatter(t *testing.T) {
	useFakeRubocop(t, fakerubocop.ScenarioFixture)
	newProject(t)

	r := execute(t, "", "lib")
	assert.Equal(t, 1, cli.ExitCode(r.err))
	assert.Contains(t, r.stdout, "standard: Use Ruby Standard Style")
	assert.Contains(t, r.stdout, "  lib/agreeable.rb:1:1: Style/SingleLineMethods: Avoid single-line method definitions.")
	assert.Contains(t, r.stdout, "Run `standardrb --fix` to fix up")
}

func TestPassthroughAfterDash(t *testing.T) {
	useFakeRubocop(t, fakerubocop.ScenarioFixture)
	newProject(t)

	r := execute(t, "", "-f", "simple", "lib", "--", "--fail-level", "error")
	require.NoError(t, r.err, "convention offenses are below the passed fail level")
	assert.Contains(t, r.stdout, "lib/agreeable.rb")
	assert.Contains(t, r.stdout, "6 offenses detected")
}

func TestStdinForcesExclusion(t *testing.T) {
	useFakeRubocop(t, fakerubocop.ScenarioEcho)
	newProject(t)

	r := execute(t, "x = 1\n", "--stdin", "lib/agreeable.rb", "-f", "quiet")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "--force-exclusion\n")
	assert.Contains(t, r.stdout, "--- stdin ---\nx = 1\n")
}

func TestCopFault(t *testing.T) {
	useFakeRubocop(t, fakerubocop.ScenarioBadCop)
	newProject(t)

	r := execute(t, "", "-f", "simple", "lib")
	assert.ErrorIs(t, r.err, domain.ErrLintFailed)
	assert.Equal(t, 1, cli.ExitCode(r.err))
	assert.Contains(t, r.stderr, "BadCop")
	assert.Contains(t, r.stderr, "1 error occurred:")
}

func TestSummary(t *testing.T) {
	useFakeRubocop(t, fakerubocop.ScenarioFixture)
	newProject(t)

	r := execute(t, "", "--summary", "-f", "quiet", "lib")
	assert.Equal(t, 1, cli.ExitCode(r.err))
	assert.Contains(t, r.stderr, "standard: failed, 6 problems in 1 of 1 file")
	assert.Contains(t, r.stderr, "Naming: Method Name")
}

func TestGenerateTodo(t *testing.T) {
	useFakeRubocop(t, fakerubocop.ScenarioFixture)
	dir := newProject(t)

	r := execute(t, "", "--generate-todo", "lib")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "excusing 1 file")

	data, err := os.ReadFile(filepath.Join(dir, domain.TodoFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "lib/agreeable.rb")
	assert.Contains(t, string(data), "Naming/MethodName")

	r = execute(t, "", "todo")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "lib/agreeable.rb: ")
	assert.Contains(t, r.stdout, "Style/Semicolon")
}

func TestGenerateTodo_FromParentDir(t *testing.T) {
	useFakeRubocop(t, fakerubocop.ScenarioFixture)
	dir := newProject(t)
	t.Chdir(filepath.Dir(dir))
	proj := filepath.Base(dir)

	r := execute(t, "", "--generate-todo", "--path", proj, filepath.Join(proj, "lib"))
	require.NoError(t, r.err)

	data, err := os.ReadFile(filepath.Join(dir, domain.TodoFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "- lib/agreeable.rb:")
	assert.NotContains(t, string(data), proj+"/lib")
}

func TestChanged_NotAGitRepo(t *testing.T) {
	useFakeRubocop(t, fakerubocop.ScenarioFixture)
	newProject(t)

	r := execute(t, "", "--changed")
	assert.ErrorIs(t, r.err, domain.ErrInvalidConfig)
	assert.Equal(t, 2, cli.ExitCode(r.err))
}

func TestChanged_NothingChanged(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	useFakeRubocop(t, fakerubocop.ScenarioFixture)
	dir := newProject(t)

	for _, args := range [][]string{
		{"init", "-q"},
		{"-c", "user.email=t@example.com", "-c", "user.name=t", "add", "."},
		{"-c", "user.email=t@example.com", "-c", "user.name=t", "commit", "-q", "-m", "init"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}

	r := execute(t, "", "--changed")
	require.NoError(t, r.err)
	assert.Empty(t, r.stdout)
}

func TestInvalidConfig(t *testing.T) {
	r := execute(t, "", "--stdin", "a.rb", "b.rb")
	require.Error(t, r.err)
	assert.ErrorIs(t, r.err, domain.ErrInvalidConfig)
	assert.Equal(t, 2, cli.ExitCode(r.err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, cli.ExitCode(nil))
	assert.Equal(t, 2, cli.ExitCode(errors.New("boom")))
}
