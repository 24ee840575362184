package nexpatch

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/nexpatch/internal/version"
	"github.com/arthur-debert/nexpatch/pkg/commands/patch"
	"github.com/arthur-debert/nexpatch/pkg/commands/scan"
	"github.com/arthur-debert/nexpatch/pkg/config"
	"github.com/arthur-debert/nexpatch/pkg/logging"
	"github.com/arthur-debert/nexpatch/pkg/project"
	"github.com/arthur-debert/nexpatch/pkg/types"
	"github.com/arthur-debert/nexpatch/pkg/ui"
)

// globalFlags holds the persistent flags shared by every command
type globalFlags struct {
	verbosity   int
	configFile  string
	format      string
	marker      string
	writePolicy string
	jobs        int
	eligible    []string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "nexpatch",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(flags.verbosity)
			logging.LogCommand(cmd.Name(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&flags.configFile, "config", "", MsgFlagConfig)
	pf.StringVar(&flags.format, "format", "", MsgFlagFormat)
	pf.StringVar(&flags.marker, "marker", "", MsgFlagMarker)
	pf.StringVar(&flags.writePolicy, "write-policy", "", MsgFlagWritePolicy)
	pf.IntVarP(&flags.jobs, "jobs", "j", 0, MsgFlagJobs)
	pf.StringSliceVar(&flags.eligible, "eligible", nil, MsgFlagEligible)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newPatchCmd(flags))
	rootCmd.AddCommand(newScanCmd(flags))
	rootCmd.AddCommand(newConfigCmd(flags))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// loadConfig layers the flags the user actually set on top of the config
// file and environment
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	overrides := map[string]interface{}{}
	set := func(name, key string, value interface{}) {
		if cmd.Flags().Changed(name) {
			overrides[key] = value
		}
	}
	set("format", "output.format", flags.format)
	set("marker", "patch.marker", flags.marker)
	set("write-policy", "patch.write_policy", flags.writePolicy)
	set("jobs", "runner.jobs", flags.jobs)
	set("eligible", "patch.eligible_types", flags.eligible)

	cfg, err := config.Load(config.LoadOptions{
		File:      flags.configFile,
		Overrides: overrides,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

// newRenderer builds the renderer for the configured output format
func newRenderer(cmd *cobra.Command, cfg *config.Config) (ui.Renderer, error) {
	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// loadProjects loads every manifest. Manifests that fail to load are
// returned as an error next to the projects that did.
func loadProjects(paths []string) ([]types.Project, error) {
	projects, err := project.LoadAll(paths)
	if err != nil {
		log.Warn().Err(err).Int("loaded", len(projects)).Msg("Some manifests failed to load")
		return projects, fmt.Errorf(MsgErrLoadManifests, err)
	}
	return projects, nil
}

// combine joins the manifest and run errors
func combine(errs ...error) error {
	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}

func newPatchCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "patch <manifest>...",
		Short:   MsgPatchShort,
		Long:    MsgPatchLong,
		Example: MsgPatchExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd, cfg)
			if err != nil {
				return err
			}

			projects, loadErr := loadProjects(args)

			logger := logging.GetLogger("cmd.patch")
			logger.Info().
				Int("projects", len(projects)).
				Str("policy", cfg.Patch.WritePolicy).
				Int("jobs", cfg.Runner.Jobs).
				Msg("Starting patch")

			report, runErr := patch.PatchProjects(patch.PatchProjectsOptions{
				Projects:      projects,
				EligibleTypes: cfg.Patch.AssetTypes(),
				Patcher:       cfg.PatcherOptions(),
				Jobs:          cfg.Runner.Jobs,
			})

			if err := renderer.RenderResult(report); err != nil {
				return fmt.Errorf(MsgErrRender, err)
			}
			return combine(loadErr, runErr)
		},
	}
}

func newScanCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "scan <manifest>...",
		Short:   MsgScanShort,
		Long:    MsgScanLong,
		Example: MsgScanExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd, cfg)
			if err != nil {
				return err
			}

			projects, loadErr := loadProjects(args)

			report, runErr := scan.ScanProjects(scan.ScanProjectsOptions{
				Projects:      projects,
				EligibleTypes: cfg.Patch.AssetTypes(),
				Patcher:       cfg.PatcherOptions(),
				Jobs:          cfg.Runner.Jobs,
			})

			if err := renderer.RenderResult(report); err != nil {
				return fmt.Errorf(MsgErrRender, err)
			}
			return combine(loadErr, runErr)
		},
	}
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(config.GenerateConfigContent(), "\n"))
				return err
			}

			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			out, err := cfg.MarshalTOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
