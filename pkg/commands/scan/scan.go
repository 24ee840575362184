// Package scan reports the marked string elements of project templates
// and what patching would make of them, without writing anything.
package scan

import (
	"github.com/hashicorp/go-multierror"

	"github.com/arthur-debert/nexpatch/pkg/commands/internal"
	"github.com/arthur-debert/nexpatch/pkg/logging"
	"github.com/arthur-debert/nexpatch/pkg/template"
	"github.com/arthur-debert/nexpatch/pkg/types"
)

// ScanProjectsOptions defines the options for ScanProjects.
type ScanProjectsOptions struct {
	Projects      []types.Project
	EligibleTypes []types.AssetType
	Patcher       template.Options
	Jobs          int
}

// ScanProjects inspects every project's template. Ineligible projects are
// reported as skipped without being read.
func ScanProjects(opts ScanProjectsOptions) (*types.ScanReport, error) {
	log := logging.GetLogger("commands.scan")
	log.Debug().Str("command", "ScanProjects").Int("projects", len(opts.Projects)).Msg("Executing command")

	patcher := template.NewPatcher(opts.Patcher)

	outcomes := internal.RunGrouped(internal.RunOptions[*types.ScanResult]{
		Projects: opts.Projects,
		Jobs:     opts.Jobs,
		Key: func(project types.Project) (string, error) {
			// Scans never write, so there is nothing to serialize on
			return project.UID, nil
		},
		Run: func(project types.Project) (*types.ScanResult, error) {
			if !project.Eligible(opts.EligibleTypes) {
				return &types.ScanResult{Project: project, Skipped: true}, nil
			}
			return patcher.Inspect(project)
		},
	})

	report := &types.ScanReport{}
	var merr *multierror.Error
	for _, o := range outcomes {
		if o.Err != nil {
			report.Failures = append(report.Failures, internal.Failure(o.Project, o.Err))
			merr = internal.Aggregate(merr, o.Project, o.Err)
			continue
		}
		report.Results = append(report.Results, o.Value)
	}

	log.Debug().Str("command", "ScanProjects").Int("failed", len(report.Failures)).Msg("Command finished")
	return report, merr.ErrorOrNil()
}
