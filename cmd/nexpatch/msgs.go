package nexpatch

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Rewrite hardcoded paths in exported project templates"
	MsgPatchShort      = "Patch project templates in place"
	MsgScanShort       = "Show what patch would change without writing"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat = "nexpatch version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand     = "no command specified"
	MsgErrLoadConfig    = "failed to load configuration: %w"
	MsgErrLoadManifests = "failed to load manifests: %w"
	MsgErrRender        = "failed to render output: %w"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Config file (default is $XDG_CONFIG_HOME/nexpatch/config.toml)"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagMarker      = "Prefix marking string elements that hold paths"
	MsgFlagWritePolicy = "When to write templates back: always, visited or changed"
	MsgFlagJobs        = "Number of templates processed concurrently"
	MsgFlagEligible    = "Asset types that make a project eligible (comma separated)"
	MsgFlagDefaults    = "Print a commented starter config file instead"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/patch-long.txt
	msgPatchLongRaw string
	MsgPatchLong    = strings.TrimSpace(msgPatchLongRaw)

	//go:embed msgs/patch-example.txt
	msgPatchExampleRaw string
	MsgPatchExample    = strings.TrimRight(msgPatchExampleRaw, "\n")

	//go:embed msgs/scan-long.txt
	msgScanLongRaw string
	MsgScanLong    = strings.TrimSpace(msgScanLongRaw)

	//go:embed msgs/scan-example.txt
	msgScanExampleRaw string
	MsgScanExample    = strings.TrimRight(msgScanExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
