// pkg/commands/patch/patch_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: Memory FS
// PURPOSE: Test eligibility decisions and multi-project patch orchestration

package patch_test

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/nexpatch/pkg/commands/patch"
	"github.com/arthur-debert/nexpatch/pkg/errors"
	"github.com/arthur-debert/nexpatch/pkg/template"
	"github.com/arthur-debert/nexpatch/pkg/testutil"
	"github.com/arthur-debert/nexpatch/pkg/types"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if filepath.Separator != '/' {
		t.Skip("fixtures use POSIX workpaths")
	}
}

func project(uid, workpath string, assetTypes ...types.AssetType) types.Project {
	p := types.Project{UID: uid, Workpath: workpath, Template: "project.xml"}
	for _, at := range assetTypes {
		p.Assets = append(p.Assets, types.Asset{Type: at, Name: uid + "-" + string(at)})
	}
	return p
}

func TestPatchProject_IneligibleIsSkippedWithoutIO(t *testing.T) {
	skipOnWindows(t)

	mfs := testutil.NewMemoryFS()
	original := testutil.TemplateXML("//nex/Users/alice/proj/")
	mfs.AddFile("/srv/app/project.xml", original)

	result, err := patch.PatchProject(patch.PatchProjectOptions{
		Project: project("imgs", "/srv/app", types.AssetTypeImage, types.AssetTypeAudio),
		Patcher: template.NewPatcher(template.Options{FS: mfs}),
	})
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.False(t, result.Written)
	assert.Equal(t, "imgs", result.Project.UID)
	assert.Equal(t, 0, mfs.ReadCount(), "skipped project must not read its template")
	assert.Equal(t, 0, mfs.WriteCount(), "skipped project must not write its template")

	content, _ := mfs.Content("/srv/app/project.xml")
	assert.Equal(t, original, content)
}

func TestPatchProject_NoAssetsIsSkipped(t *testing.T) {
	result, err := patch.PatchProject(patch.PatchProjectOptions{
		Project: types.Project{UID: "empty", Workpath: "/nowhere", Template: "project.xml"},
	})
	require.NoError(t, err)
	assert.True(t, result.Skipped)
}

func TestPatchProject_EligiblePatchesOnce(t *testing.T) {
	skipOnWindows(t)

	mfs := testutil.NewMemoryFS()
	mfs.AddFile("/srv/app/project.xml", testutil.TemplateXML("//nex/Users/alice/proj/"))

	// Two eligible assets still mean a single template pass
	result, err := patch.PatchProject(patch.PatchProjectOptions{
		Project: project("game", "/srv/app", types.AssetTypeScript, types.AssetTypeData, types.AssetTypeFont),
		Patcher: template.NewPatcher(template.Options{FS: mfs}),
	})
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.True(t, result.Written)
	assert.Equal(t, 1, mfs.ReadCount())
	assert.Equal(t, 1, mfs.WriteCount())
}

func TestPatchProject_CustomEligibleTypes(t *testing.T) {
	skipOnWindows(t)

	mfs := testutil.NewMemoryFS()
	mfs.AddFile("/srv/app/project.xml", testutil.TemplateXML("//nex/Users/alice/proj/"))

	result, err := patch.PatchProject(patch.PatchProjectOptions{
		Project:       project("fonts", "/srv/app", types.AssetTypeFont),
		EligibleTypes: []types.AssetType{types.AssetTypeFont},
		Patcher:       template.NewPatcher(template.Options{FS: mfs}),
	})
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, 1, result.Visited)
}

func TestPatchProject_PropagatesPatcherErrors(t *testing.T) {
	skipOnWindows(t)

	mfs := testutil.NewMemoryFS()

	_, err := patch.PatchProject(patch.PatchProjectOptions{
		Project: project("missing", "/srv/app", types.AssetTypeScript),
		Patcher: template.NewPatcher(template.Options{FS: mfs}),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRead))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestPatchProjects(t *testing.T) {
	skipOnWindows(t)

	mfs := testutil.NewMemoryFS()
	mfs.AddFile("/srv/a/project.xml", testutil.TemplateXML("//nex/old/a/", "keep"))
	mfs.AddFile("/srv/b/project.xml", testutil.TemplateXML("//nex/old/b/"))
	mfs.AddFile("/srv/broken/project.xml", "<project><string>//nex/x</string")

	noTemplate := project("no-template", "/srv/none", types.AssetTypeScript)
	noTemplate.Template = ""

	ineligibleNoTemplate := project("media", "/srv/media", types.AssetTypeVideo)
	ineligibleNoTemplate.Template = ""

	report, err := patch.PatchProjects(patch.PatchProjectsOptions{
		Projects: []types.Project{
			project("a", "/srv/a", types.AssetTypeScript),
			project("broken", "/srv/broken", types.AssetTypeData),
			ineligibleNoTemplate,
			project("b", "/srv/b", types.AssetTypeData),
			noTemplate,
			project("missing", "/srv/missing", types.AssetTypeScript),
		},
		Patcher: template.Options{FS: mfs},
		Jobs:    2,
	})
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 3)

	require.Len(t, report.Results, 3)
	assert.Equal(t, "a", report.Results[0].Project.UID)
	assert.Equal(t, "media", report.Results[1].Project.UID)
	assert.True(t, report.Results[1].Skipped)
	assert.Equal(t, "b", report.Results[2].Project.UID)
	assert.Equal(t, 2, report.Written())

	require.Len(t, report.Failures, 3)
	assert.Equal(t, types.ProjectFailure{Project: "broken", Code: "TEMPLATE_PARSE", Error: report.Failures[0].Error}, report.Failures[0])
	assert.Equal(t, "no-template", report.Failures[1].Project)
	assert.Equal(t, "PROJECT_INVALID", report.Failures[1].Code)
	assert.Equal(t, "missing", report.Failures[2].Project)
	assert.Equal(t, "TEMPLATE_READ", report.Failures[2].Code)

	a, _ := mfs.Content("/srv/a/project.xml")
	assert.Contains(t, a, "<string>/srv/a/</string>")
	assert.Contains(t, a, "<string>keep</string>")

	broken, _ := mfs.Content("/srv/broken/project.xml")
	assert.Equal(t, "<project><string>//nex/x</string", broken, "unparsable template must be left untouched")
}

func TestPatchProjects_SharedTemplate(t *testing.T) {
	skipOnWindows(t)

	mfs := testutil.NewMemoryFS()
	mfs.AddFile("/srv/shared/project.xml", testutil.TemplateXML("//nex/old/"))

	// Both projects point at the same file: the first pass strips the
	// marker, so the second finds nothing to visit.
	report, err := patch.PatchProjects(patch.PatchProjectsOptions{
		Projects: []types.Project{
			project("first", "/srv/shared", types.AssetTypeScript),
			project("second", "/srv/shared/", types.AssetTypeScript),
		},
		Patcher: template.Options{FS: mfs},
		Jobs:    4,
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	assert.Equal(t, 1, report.Results[0].Visited)
	assert.True(t, report.Results[0].Written)
	assert.Equal(t, 0, report.Results[1].Visited)
	assert.False(t, report.Results[1].Written)
	assert.Equal(t, 1, mfs.WriteCount())
}

func TestPatchProjects_Empty(t *testing.T) {
	report, err := patch.PatchProjects(patch.PatchProjectsOptions{})
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.Empty(t, report.Failures)
}
