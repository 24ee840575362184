package internal

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/nexpatch/pkg/errors"
	"github.com/arthur-debert/nexpatch/pkg/logging"
	"github.com/arthur-debert/nexpatch/pkg/types"
)

// DefaultJobs is used when RunOptions.Jobs is not positive
const DefaultJobs = 4

// RunOptions configures RunGrouped
type RunOptions[T any] struct {
	// Projects are processed in order within a group
	Projects []types.Project

	// Jobs bounds how many groups run at once
	Jobs int

	// Key groups projects. Projects with the same key never run
	// concurrently. A key error fails the project without calling Run.
	Key func(types.Project) (string, error)

	// Run processes one project
	Run func(types.Project) (T, error)
}

// Outcome is the result of one project, at the project's input index
type Outcome[T any] struct {
	Project types.Project
	Value   T
	Err     error
}

// RunGrouped processes projects concurrently, one goroutine per group.
// Every project is attempted; outcomes come back in input order.
func RunGrouped[T any](opts RunOptions[T]) []Outcome[T] {
	logger := logging.GetLogger("commands.runner")

	outcomes := make([]Outcome[T], len(opts.Projects))
	groups := make(map[string][]int)
	var order []string

	for i, project := range opts.Projects {
		outcomes[i].Project = project
		key, err := opts.Key(project)
		if err != nil {
			outcomes[i].Err = err
			continue
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = DefaultJobs
	}
	logger.Debug().
		Int("projects", len(opts.Projects)).
		Int("groups", len(order)).
		Int("jobs", jobs).
		Msg("Running projects")

	var g errgroup.Group
	g.SetLimit(jobs)
	for _, key := range order {
		indexes := groups[key]
		g.Go(func() error {
			for _, i := range indexes {
				outcomes[i].Value, outcomes[i].Err = opts.Run(outcomes[i].Project)
			}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// Failure converts a project error for reports
func Failure(project types.Project, err error) types.ProjectFailure {
	return types.ProjectFailure{
		Project: project.UID,
		Code:    string(errors.GetErrorCode(err)),
		Error:   err.Error(),
	}
}

// Aggregate appends err to merr, prefixed with the project UID
func Aggregate(merr *multierror.Error, project types.Project, err error) *multierror.Error {
	return multierror.Append(merr, fmt.Errorf("project %s: %w", project.UID, err))
}
