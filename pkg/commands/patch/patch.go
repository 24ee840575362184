// Package patch drives template patching for one or many projects.
package patch

import (
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/arthur-debert/nexpatch/pkg/commands/internal"
	"github.com/arthur-debert/nexpatch/pkg/logging"
	"github.com/arthur-debert/nexpatch/pkg/template"
	"github.com/arthur-debert/nexpatch/pkg/types"
)

// PatchProjectOptions defines the options for PatchProject.
type PatchProjectOptions struct {
	// Project is the project whose template is patched.
	Project types.Project
	// EligibleTypes are the asset types that require patching. Empty means
	// types.DefaultEligibleTypes.
	EligibleTypes []types.AssetType
	// Patcher performs the rewrite. Nil uses a patcher with default options.
	Patcher *template.Patcher
}

// PatchProject patches the project's template once if any of its assets is
// eligible. Ineligible projects resolve with Skipped set and no file access.
func PatchProject(opts PatchProjectOptions) (*types.PatchResult, error) {
	log := logging.GetLogger("commands.patch").With().Str("project", opts.Project.UID).Logger()

	if !opts.Project.Eligible(opts.EligibleTypes) {
		log.Debug().Int("assets", len(opts.Project.Assets)).Msg("No eligible assets, skipping")
		return &types.PatchResult{Project: opts.Project, Skipped: true}, nil
	}

	patcher := opts.Patcher
	if patcher == nil {
		patcher = template.NewPatcher(template.Options{})
	}

	log.Info().Str("template", opts.Project.Template).Msg("Patching project")
	return patcher.Patch(opts.Project)
}

// PatchProjectsOptions defines the options for PatchProjects.
type PatchProjectsOptions struct {
	// Projects are patched in input order within each template group.
	Projects []types.Project
	// EligibleTypes as in PatchProjectOptions.
	EligibleTypes []types.AssetType
	// Patcher configures the shared patcher.
	Patcher template.Options
	// Jobs bounds how many templates are patched concurrently.
	Jobs int
}

// PatchProjects patches every project. Projects sharing a template file are
// patched one after the other; distinct templates run concurrently. Every
// project is attempted: the report lists all successes and failures, and
// the returned error aggregates the failures.
func PatchProjects(opts PatchProjectsOptions) (*types.PatchReport, error) {
	log := logging.GetLogger("commands.patch")
	log.Debug().Str("command", "PatchProjects").Int("projects", len(opts.Projects)).Msg("Executing command")
	defer logging.LogDuration(time.Now(), "patch projects")

	patcher := template.NewPatcher(opts.Patcher)

	outcomes := internal.RunGrouped(internal.RunOptions[*types.PatchResult]{
		Projects: opts.Projects,
		Jobs:     opts.Jobs,
		Key: func(project types.Project) (string, error) {
			if !project.Eligible(opts.EligibleTypes) {
				return "", nil
			}
			return patcher.TemplatePath(project)
		},
		Run: func(project types.Project) (*types.PatchResult, error) {
			return PatchProject(PatchProjectOptions{
				Project:       project,
				EligibleTypes: opts.EligibleTypes,
				Patcher:       patcher,
			})
		},
	})

	report := &types.PatchReport{}
	var merr *multierror.Error
	for _, o := range outcomes {
		if o.Err != nil {
			log.Error().Err(o.Err).Str("project", o.Project.UID).Msg("Patch failed")
			report.Failures = append(report.Failures, internal.Failure(o.Project, o.Err))
			merr = internal.Aggregate(merr, o.Project, o.Err)
			continue
		}
		report.Results = append(report.Results, o.Value)
	}

	log.Info().
		Str("command", "PatchProjects").
		Int("patched", len(report.Results)).
		Int("written", report.Written()).
		Int("failed", len(report.Failures)).
		Msg("Command finished")

	return report, merr.ErrorOrNil()
}
