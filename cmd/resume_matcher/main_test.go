package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-resume-matcher/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "resume-matcher version: unknown\n", out)
}

func TestMatchCmd(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", "Experienced in Python, AWS, and teamwork")
	job := writeFile(t, dir, "job.txt", "Looking for Python, Docker, leadership skills")

	t.Run("text output", func(t *testing.T) {
		out, err := execute(t, "match", "--resume", resume, "--job", job)
		require.NoError(t, err)
		assert.Contains(t, out, "Matching skills: python\n")
		assert.Contains(t, out, "Missing skills:  docker, leadership\n")
	})

	t.Run("json output", func(t *testing.T) {
		out, err := execute(t, "match", "--json", "--resume", resume, "--job", job)
		require.NoError(t, err)

		var result model.MatchResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, []string{"python"}, result.MatchingSkills)
		assert.Equal(t, []string{"docker", "leadership"}, result.MissingSkills)
		assert.Equal(t, []string{}, result.Recommendations)
	})

	t.Run("custom vocabulary from config file", func(t *testing.T) {
		cfg := writeFile(t, dir, "matcher.yaml", "matcher:\n  skills: [python, kubernetes]\n")
		out, err := execute(t, "match", "--config", cfg, "--resume", resume, "--job", job)
		require.NoError(t, err)
		assert.Contains(t, out, "Matching skills: python\n")
		assert.Contains(t, out, "Missing skills:  -\n")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "match", "--resume", filepath.Join(dir, "nope.txt"), "--job", job)
		assert.ErrorContains(t, err, "reading resume file")
	})

	t.Run("required flags", func(t *testing.T) {
		_, err := execute(t, "match", "--resume", resume)
		assert.Error(t, err)
	})
}
