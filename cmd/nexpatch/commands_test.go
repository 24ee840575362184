// cmd/nexpatch/commands_test.go
// TEST TYPE: CLI Integration
// DEPENDENCIES: Real filesystem (temp dir), environment
// PURPOSE: Test the cobra commands end to end

package nexpatch

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/nexpatch/pkg/errors"
	"github.com/arthur-debert/nexpatch/pkg/testutil"
	"github.com/arthur-debert/nexpatch/pkg/types"
)

// isolate keeps config lookups and the log file inside a temp dir
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("NO_COLOR", "1")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// fixture writes a project directory with a template and its manifest
func fixture(t *testing.T, uid string, assetType string, values ...string) (manifest, workpath string) {
	t.Helper()
	workpath = t.TempDir()
	testutil.CreateFile(t, workpath, "project.xml", testutil.TemplateXML(values...))
	manifest = testutil.CreateFile(t, t.TempDir(), uid+".toml",
		"uid = \""+uid+"\"\nworkpath = '"+workpath+"'\ntemplate = \"project.xml\"\n\n[[assets]]\ntype = \""+assetType+"\"\n")
	return manifest, workpath
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if filepath.Separator != '/' {
		t.Skip("fixtures use POSIX paths")
	}
}

func TestRoot_NoCommand(t *testing.T) {
	isolate(t)

	_, err := run(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), MsgErrNoCommand)
}

func TestPatchCmd(t *testing.T) {
	skipOnWindows(t)
	isolate(t)

	manifest, workpath := fixture(t, "game", "script", "//nex/Users/alice/Projects/game/data.bin", "keep me")

	out, err := run(t, "patch", "--format", "text", manifest)
	require.NoError(t, err)
	assert.Contains(t, out, "Patched 1 of 1 projects (1 written, 0 skipped, 0 failed)")

	content := testutil.ReadFile(t, filepath.Join(workpath, "project.xml"))
	assert.Contains(t, content, "<string>"+workpath+"/</string>")
	assert.Contains(t, content, "<string>keep me</string>")
	assert.NotContains(t, content, "//nex")
}

func TestPatchCmd_IneligibleProjectIsSkipped(t *testing.T) {
	skipOnWindows(t)
	isolate(t)

	manifest, workpath := fixture(t, "media", "image", "//nex/Users/alice/")
	before := testutil.ReadFile(t, filepath.Join(workpath, "project.xml"))

	out, err := run(t, "patch", "--format", "text", manifest)
	require.NoError(t, err)
	assert.Contains(t, out, "media  skipped")
	assert.Equal(t, before, testutil.ReadFile(t, filepath.Join(workpath, "project.xml")))
}

func TestPatchCmd_EligibleFlag(t *testing.T) {
	skipOnWindows(t)
	isolate(t)

	manifest, workpath := fixture(t, "fonts", "font", "//nex/Users/alice/")

	_, err := run(t, "patch", "--format", "text", "--eligible", "font", manifest)
	require.NoError(t, err)
	assert.Contains(t, testutil.ReadFile(t, filepath.Join(workpath, "project.xml")), "<string>"+workpath+"/</string>")
}

func TestPatchCmd_JSONAndFailures(t *testing.T) {
	skipOnWindows(t)
	isolate(t)

	good, _ := fixture(t, "good", "data", "//nex/old/")
	bad, badDir := fixture(t, "bad", "data")
	testutil.CreateFile(t, badDir, "project.xml", "<project><string>//nex/x</string")
	missing := filepath.Join(t.TempDir(), "missing.toml")

	out, err := run(t, "patch", "--format", "json", good, bad, missing)
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2, "one manifest error and one run error")

	var report types.PatchReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 1)
	assert.Equal(t, "good", report.Results[0].Project.UID)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "bad", report.Failures[0].Project)
	assert.Equal(t, string(errors.ErrTemplateParse), report.Failures[0].Code)
}

func TestPatchCmd_InvalidWritePolicy(t *testing.T) {
	isolate(t)

	manifest, _ := fixture(t, "game", "script")
	_, err := run(t, "patch", "--write-policy", "sometimes", manifest)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestPatchCmd_RequiresManifest(t *testing.T) {
	isolate(t)

	_, err := run(t, "patch")
	assert.Error(t, err)
}

func TestScanCmd(t *testing.T) {
	skipOnWindows(t)
	isolate(t)

	manifest, workpath := fixture(t, "app", "script", "//path~/projects/123/lib.js", "//nex/Users/bob/x")
	before := testutil.ReadFile(t, filepath.Join(workpath, "project.xml"))

	out, err := run(t, "scan", "--format", "json", "--marker", "//path", manifest)
	require.NoError(t, err)

	var report types.ScanReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 1)
	require.Len(t, report.Results[0].Marked, 1)
	assert.Equal(t, "~/projects/123/lib.js", report.Results[0].Marked[0].Payload)
	assert.Equal(t, "home", report.Results[0].Marked[0].Paths[0].Style)

	assert.Equal(t, before, testutil.ReadFile(t, filepath.Join(workpath, "project.xml")), "scan must not write")
}

func TestConfigCmd(t *testing.T) {
	isolate(t)
	t.Setenv("NEXPATCH_RUNNER_JOBS", "7")

	out, err := run(t, "config", "--write-policy", "always")
	require.NoError(t, err)
	assert.Contains(t, out, "[patch]")
	assert.Contains(t, out, "always")
	assert.Contains(t, out, "jobs = 7")
}

func TestConfigCmd_ExplicitFile(t *testing.T) {
	isolate(t)

	path := testutil.CreateFile(t, t.TempDir(), "nexpatch.toml", "[patch]\nmarker = \"//custom\"\n")
	out, err := run(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "//custom")
}

func TestConfigCmd_Defaults(t *testing.T) {
	isolate(t)

	out, err := run(t, "config", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "[patch]")
	assert.Contains(t, out, "# marker = \"//nex\"")
}

func TestVersionCmd(t *testing.T) {
	isolate(t)

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "nexpatch version dev"))
}

func TestCompletionCmd(t *testing.T) {
	isolate(t)

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := run(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "nexpatch")
		})
	}

	_, err := run(t, "completion", "tcsh")
	assert.Error(t, err)
}
