package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"lifecalc/internal/calc"
	apperrors "lifecalc/internal/errors"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	var stdout, stderr bytes.Buffer
	cli := NewCLI(strings.NewReader(""), &stdout, &stderr)
	err := cli.Run(args)
	return stdout.String(), stderr.String(), err
}

func TestCalcCommandEvaluates(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"calc", "2+3*4"}, want: "14"},
		{args: []string{"calc", "√9"}, want: "3"},
		{args: []string{"calc", "2^3^2"}, want: "512"},
		{args: []string{"calc", "(1", "+", "2)", "*", "3"}, want: "9"},
		{args: []string{"calc", "0.1+0.2"}, want: "0.30000000000000004"},
		{args: []string{"calc", "-2+3"}, want: "1"},
		{args: []string{"calc", "-2^2"}, want: "-4"},
		{args: []string{"calc", "-v", "-(1+2)"}, want: "-3"},
		{args: []string{"calc", "--", "-√9"}, want: "-3"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args[1:], " "), func(t *testing.T) {
			out, _, err := runCLI(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestCalcCommandHelpAndFlags(t *testing.T) {
	out, _, err := runCLI(t, "calc", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "lifecalc calc -2^2")

	_, _, err = runCLI(t, "calc", "--bogus", "1")
	require.Error(t, err)
}

func TestGuardNegativeOperand(t *testing.T) {
	assert.Equal(t, []string{"--", "-2+3"}, guardNegativeOperand([]string{"-2+3"}))
	assert.Equal(t, []string{"--config", "x.yaml", "--", "-.5*2"}, guardNegativeOperand([]string{"--config", "x.yaml", "-.5*2"}))
	assert.Equal(t, []string{"-v", "1-2"}, guardNegativeOperand([]string{"-v", "1-2"}))
	assert.Equal(t, []string{"--", "-1"}, guardNegativeOperand([]string{"--", "-1"}))
}

func TestCalcCommandReportsError(t *testing.T) {
	out, _, err := runCLI(t, "calc", "5/0")
	require.Error(t, err)
	assert.Equal(t, "Error\n", out)
	assert.True(t, apperrors.IsEvaluatorFailure(err))
}

func TestVerboseLogsErrorClass(t *testing.T) {
	_, stderr, err := runCLI(t, "-v", "calc", "1/0")
	require.Error(t, err)
	assert.Contains(t, stderr, "command failed (evaluator)")
}

func TestPredictYAML(t *testing.T) {
	out, _, err := runCLI(t, "predict", "money", "--field", "principal=1000", "--no-delay", "--output", "yaml")
	require.NoError(t, err)

	var res calc.Result
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.Equal(t, "Wealth Projection", res.Title)
	assert.Equal(t, "money", res.Category)
	assert.InDelta(t, 1.61051, res.Score, 1e-9)
}

func TestPredictDefaultsForEmptyForm(t *testing.T) {
	out, _, err := runCLI(t, "predict", "health", "--no-delay", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "BMI = 70 / (1.75²) = 22.9")
}

func TestPredictTextReport(t *testing.T) {
	out, _, err := runCLI(t, "predict", "career", "--no-delay")
	require.NoError(t, err)
	assert.Contains(t, out, "Final Result:")
	assert.Contains(t, out, "92.00")
	assert.Contains(t, out, "Skill match: 94%")
}

func TestPredictRejectsBadInput(t *testing.T) {
	_, _, err := runCLI(t, "predict", "lottery", "--no-delay")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")

	_, _, err = runCLI(t, "predict", "results", "--no-delay")
	require.Error(t, err, "a page that is not a category")
	assert.Contains(t, err.Error(), "unknown category")

	_, _, err = runCLI(t, "predict", "money", "--field", "principal", "--no-delay")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id=value")

	_, _, err = runCLI(t, "predict", "money", "--no-delay", "--output", "xml")
	require.Error(t, err)

	_, _, err = runCLI(t, "predict", "--no-delay")
	require.Error(t, err, "no category and no terminal to prompt on")
}

func TestParseFieldFlags(t *testing.T) {
	fields, unknown, err := parseFieldFlags("health", []string{"weight=80", " height = 180", "shoe=44"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"weight": "80", "height": "180", "shoe": "44"}, fields)
	assert.Equal(t, []string{"shoe"}, unknown)
}

func TestConfigShow(t *testing.T) {
	out, _, err := runCLI(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "analyze_delay: 2s")
	assert.Contains(t, out, "cache_size: 128")
}

func TestConfigShowReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analyze_delay: 250ms\nsplash: false\n"), 0o644))

	out, _, err := runCLI(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "analyze_delay: 250ms")
	assert.Contains(t, out, "splash: false")
	assert.Contains(t, out, path)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "lifecalc "))
}

func TestRootPrintsHelpWithoutTerminal(t *testing.T) {
	out, _, err := runCLI(t)
	require.NoError(t, err)
	assert.Contains(t, out, "predict")
	assert.Contains(t, out, "calc")
}
