package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp(&out, &errOut)
	app.ExitErrHandler = func(c *cli.Context, err error) {}

	err := app.Run(append([]string{"contentctl"}, args...))
	return out.String(), err
}

func TestContentctl_Create(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "modules")
	templates := filepath.Join(root, "templates")
	require.NoError(t, os.MkdirAll(templates, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(templates, "module-template.json"), []byte(`{}`), 0o644))

	out, err := runApp(t, "--base", base, "--templates", templates, "create", "devops")

	require.NoError(t, err)
	assert.Contains(t, out, "Created base content directory at "+base)
	assert.Contains(t, out, "Created learning area directory at "+filepath.Join(base, "devops"))
	assert.Contains(t, out, "Copied module template to")
	assert.FileExists(t, filepath.Join(base, "devops", "module-template.json"))
}

func TestContentctl_CreateWithoutTemplate(t *testing.T) {
	root := t.TempDir()

	out, err := runApp(t, "--base", filepath.Join(root, "modules"), "--templates", filepath.Join(root, "none"), "create", "ai-ml")

	require.NoError(t, err)
	assert.Contains(t, out, "Template not found")
}

func TestContentctl_Import(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "modules")
	source := filepath.Join(root, "docker.json")
	require.NoError(t, os.WriteFile(source, []byte(`{"id":"docker","title":"Docker","description":"Containers","order":3,"lessons":[]}`), 0o644))

	out, err := runApp(t, "--base", base, "import", source, "devops")

	require.NoError(t, err)
	assert.Contains(t, out, "Successfully imported module to "+filepath.Join(base, "devops", "module-03-docker.json"))
	assert.FileExists(t, filepath.Join(base, "devops", "module-03-docker.json"))
}

func TestContentctl_Errors(t *testing.T) {
	root := t.TempDir()
	invalid := filepath.Join(root, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"id":"x"}`), 0o644))

	tests := []struct {
		name          string
		args          []string
		expectedError string
	}{
		{
			name:          "create without area",
			args:          []string{"create"},
			expectedError: "usage: contentctl create <area>",
		},
		{
			name:          "import with missing area",
			args:          []string{"import", invalid},
			expectedError: "usage: contentctl import <file> <area>",
		},
		{
			name:          "import missing file",
			args:          []string{"import", filepath.Join(root, "missing.json"), "devops"},
			expectedError: "not found",
		},
		{
			name:          "import invalid module",
			args:          []string{"import", invalid, "devops"},
			expectedError: "required field 'title' missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, append([]string{"--base", filepath.Join(root, "modules")}, tt.args...)...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}
