package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/arthur-debert/nexpatch/pkg/errors"
	"github.com/arthur-debert/nexpatch/pkg/template"
	"github.com/arthur-debert/nexpatch/pkg/types"
)

// Config is the effective nexpatch configuration
type Config struct {
	Patch  Patch  `koanf:"patch" toml:"patch" json:"patch"`
	Runner Runner `koanf:"runner" toml:"runner" json:"runner"`
	Output Output `koanf:"output" toml:"output" json:"output"`
}

// Patch holds the template patching settings
type Patch struct {
	// Marker is the prefix identifying string nodes that carry a path
	Marker string `koanf:"marker" toml:"marker" json:"marker"`
	// EligibleTypes lists the asset types that make a project eligible
	EligibleTypes []string `koanf:"eligible_types" toml:"eligible_types" json:"eligibleTypes"`
	// WritePolicy is one of always, visited or changed
	WritePolicy string `koanf:"write_policy" toml:"write_policy" json:"writePolicy"`
	// FileMode is an octal permission string such as "0644"
	FileMode string `koanf:"file_mode" toml:"file_mode" json:"fileMode"`
}

// Runner holds the multi-project runner settings
type Runner struct {
	Jobs int `koanf:"jobs" toml:"jobs" json:"jobs"`
}

// Output holds the rendering settings
type Output struct {
	Format string `koanf:"format" toml:"format" json:"format"`
}

// Validate checks values that cannot be expressed in the TOML schema
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Patch.Marker) == "" {
		return errors.New(errors.ErrConfigValid, "patch.marker must not be empty")
	}
	if _, err := template.ParseWritePolicy(c.Patch.WritePolicy); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid patch.write_policy").
			WithDetail("value", c.Patch.WritePolicy)
	}
	if _, err := c.Patch.Mode(); err != nil {
		return err
	}
	if c.Runner.Jobs < 1 {
		return errors.Newf(errors.ErrConfigValid, "runner.jobs must be at least 1, got %d", c.Runner.Jobs)
	}
	for _, t := range c.Patch.EligibleTypes {
		if strings.TrimSpace(t) == "" {
			return errors.New(errors.ErrConfigValid, "patch.eligible_types contains an empty entry")
		}
	}
	return nil
}

// Mode parses FileMode as an octal permission
func (p Patch) Mode() (os.FileMode, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(p.FileMode, "0o"), 8, 32)
	if err != nil || v > 0o777 {
		return 0, errors.Newf(errors.ErrConfigValid, "patch.file_mode %q is not an octal permission", p.FileMode).
			WithDetail("value", p.FileMode)
	}
	return os.FileMode(v), nil
}

// Policy returns the parsed write policy, falling back to the default
func (p Patch) Policy() template.WritePolicy {
	policy, err := template.ParseWritePolicy(p.WritePolicy)
	if err != nil {
		return template.DefaultWritePolicy
	}
	return policy
}

// AssetTypes returns the eligible asset types
func (p Patch) AssetTypes() []types.AssetType {
	out := make([]types.AssetType, 0, len(p.EligibleTypes))
	for _, t := range p.EligibleTypes {
		out = append(out, types.AssetType(strings.ToLower(strings.TrimSpace(t))))
	}
	return out
}

// PatcherOptions builds template patcher options from the config
func (c *Config) PatcherOptions() template.Options {
	mode, err := c.Patch.Mode()
	if err != nil {
		mode = 0
	}
	return template.Options{
		Marker:      c.Patch.Marker,
		WritePolicy: c.Patch.Policy(),
		FileMode:    mode,
	}
}
