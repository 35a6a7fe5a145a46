package fakerubocop

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardrb/standardgo/internal/domain"
)

func TestParseArgs(t *testing.T) {
	opts, err := parseArgs([]string{
		"-a", "--parallel",
		"--only", "Style/Semicolon,Naming/MethodName", "--only", "Lint/Void",
		"-o", "early.txt",
		"-f", "simple", "--format", "json", "--out", "report.json",
		"--config", "/tmp/cfg.yml", "--cache", "false",
		"lib", "app/models",
	})
	require.NoError(t, err)

	assert.True(t, opts.autocorrect)
	assert.False(t, opts.autocorrectAll)
	assert.True(t, opts.parallel)
	assert.Equal(t, []string{"Style/Semicolon", "Naming/MethodName", "Lint/Void"}, opts.only)
	assert.Equal(t, []formatter{
		{name: domain.FormatterProgress, out: "early.txt"},
		{name: "simple"},
		{name: "json", out: "report.json"},
	}, opts.formatters)
	assert.Equal(t, "/tmp/cfg.yml", opts.config)
	assert.Equal(t, "false", opts.cache)
	assert.Equal(t, []string{"lib", "app/models"}, opts.paths)
}

func TestParseArgs_Errors(t *testing.T) {
	_, err := parseArgs([]string{"--no-such-option"})
	assert.ErrorContains(t, err, "no-such-option")

	_, err = parseArgs([]string{"lib", "--stdin"})
	assert.ErrorContains(t, err, "stdin")
}

func TestRun_FailLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	status := Run(ScenarioFixture, []string{"--stdin", "a.rb", "--fail-level", "error", "-f", "quiet"},
		strings.NewReader(AgreeableSource), &stdout, &stderr)

	assert.Equal(t, int(domain.ExitSuccess), status, "convention offenses are below the error level")
	assert.Contains(t, stdout.String(), "6 offenses detected")
}

func TestRun_CopFaultExitsWithOffenseStatus(t *testing.T) {
	var stdout, stderr bytes.Buffer
	status := Run(ScenarioBadCop, []string{"--stdin", "a.rb", "--only", "Standard/BadCop"},
		strings.NewReader(AgreeableSource), &stdout, &stderr)

	assert.Equal(t, int(domain.ExitOffenses), status)
	assert.Contains(t, stderr.String(), "1 error occurred:")
}
