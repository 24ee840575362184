// pkg/project/loader_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: Real filesystem (temp dir)
// PURPOSE: Test manifest loading across formats and validation

package project_test

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/nexpatch/pkg/errors"
	"github.com/arthur-debert/nexpatch/pkg/project"
	"github.com/arthur-debert/nexpatch/pkg/testutil"
	"github.com/arthur-debert/nexpatch/pkg/types"
)

var wantProject = types.Project{
	UID:      "demo",
	Workpath: "/Users/alice/Projects/demo",
	Template: "project.xml",
	Assets: []types.Asset{
		{Type: types.AssetTypeScript, Name: "main", Path: "scripts/main.js"},
		{Type: types.AssetTypeImage, Name: "logo", Path: "img/logo.png"},
	},
}

const tomlManifest = `
uid = "demo"
workpath = "/Users/alice/Projects/demo"
template = "project.xml"

[[assets]]
type = "script"
name = "main"
path = "scripts/main.js"

[[assets]]
type = "IMAGE"
name = "logo"
path = "img/logo.png"
`

const yamlManifest = `
uid: demo
workpath: /Users/alice/Projects/demo
template: project.xml
assets:
  - type: script
    name: main
    path: scripts/main.js
  - type: image
    name: logo
    path: img/logo.png
`

const jsonManifest = `{
  "uid": "demo",
  "workpath": "/Users/alice/Projects/demo",
  "template": "project.xml",
  "assets": [
    {"type": "script", "name": "main", "path": "scripts/main.js"},
    {"type": "image", "name": "logo", "path": "img/logo.png"}
  ]
}`

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "demo.toml", tomlManifest},
		{"yaml", "demo.yaml", yamlManifest},
		{"yml", "demo.yml", yamlManifest},
		{"json", "demo.json", jsonManifest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.CreateFile(t, t.TempDir(), tt.file, tt.content)

			got, err := project.Load(path)
			require.NoError(t, err)
			assert.Equal(t, wantProject, got)
		})
	}
}

func TestLoad_DerivesUIDFromFileName(t *testing.T) {
	path := testutil.CreateFile(t, t.TempDir(), "menu.toml", `
workpath = "build/menu"
template = "menu.xml"
`)

	got, err := project.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "menu", got.UID)
	assert.Equal(t, "build/menu", got.Workpath, "relative workpaths are kept as written")
	assert.Empty(t, got.Assets)
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    errors.ErrorCode
	}{
		{"unsupported extension", "demo.ini", "uid=demo", errors.ErrProjectLoad},
		{"malformed toml", "demo.toml", "uid = ", errors.ErrProjectLoad},
		{"missing workpath", "demo.toml", "template = \"p.xml\"", errors.ErrProjectInvalid},
		{"missing template", "demo.toml", "workpath = \"/srv\"", errors.ErrProjectInvalid},
		{"absolute template", "demo.toml", "workpath = \"/srv\"\ntemplate = \"/etc/p.xml\"", errors.ErrProjectInvalid},
		{"asset without type", "demo.toml", "workpath = \"/srv\"\ntemplate = \"p.xml\"\n[[assets]]\nname = \"x\"", errors.ErrProjectInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.CreateFile(t, t.TempDir(), tt.file, tt.content)

			_, err := project.Load(path)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.Equal(t, path, errors.GetErrorDetails(err)["path"])
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := project.Load(filepath.Join(t.TempDir(), "none.toml"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrProjectLoad))
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	good := testutil.CreateFile(t, dir, "demo.toml", tomlManifest)
	bad := testutil.CreateFile(t, dir, "bad.toml", "workpath = \"/srv\"")
	other := testutil.CreateFile(t, dir, "menu.yaml", "workpath: /srv/menu\ntemplate: menu.xml\n")

	projects, err := project.LoadAll([]string{good, bad, other})
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 1)

	require.Len(t, projects, 2)
	assert.Equal(t, "demo", projects[0].UID)
	assert.Equal(t, "menu", projects[1].UID)
}
