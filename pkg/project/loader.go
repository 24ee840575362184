package project

import (
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/nexpatch/pkg/errors"
	"github.com/arthur-debert/nexpatch/pkg/logging"
	"github.com/arthur-debert/nexpatch/pkg/types"
)

// parserFor picks the koanf parser for a manifest extension. JSON is read
// by the YAML parser.
func parserFor(path string) (koanf.Parser, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), true
	case ".yaml", ".yml", ".json":
		return yaml.Parser(), true
	default:
		return nil, false
	}
}

// Load reads and validates a single manifest
func Load(path string) (types.Project, error) {
	logger := logging.GetLogger("project.loader")

	parser, ok := parserFor(path)
	if !ok {
		return types.Project{}, errors.Newf(errors.ErrProjectLoad, "unsupported manifest format %q", filepath.Ext(path)).
			WithDetail("path", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return types.Project{}, errors.Wrapf(err, errors.ErrProjectLoad, "failed to load manifest %s", path).
			WithDetail("path", path)
	}

	var project types.Project
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &project,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &project, unmarshalConf); err != nil {
		return types.Project{}, errors.Wrapf(err, errors.ErrProjectLoad, "failed to decode manifest %s", path).
			WithDetail("path", path)
	}

	normalize(&project, path)
	if err := Validate(project); err != nil {
		return types.Project{}, errors.Wrapf(err, errors.ErrProjectInvalid, "invalid manifest %s", path).
			WithDetail("path", path)
	}

	logger.Debug().
		Str("path", path).
		Str("project", project.UID).
		Int("assets", len(project.Assets)).
		Msg("Loaded manifest")

	return project, nil
}

// LoadAll loads every manifest. Manifests that fail are skipped and their
// errors aggregated; the projects that loaded are still returned.
func LoadAll(paths []string) ([]types.Project, error) {
	var result *multierror.Error
	projects := make([]types.Project, 0, len(paths))

	for _, path := range paths {
		project, err := Load(path)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		projects = append(projects, project)
	}

	return projects, result.ErrorOrNil()
}

// Validate checks the fields the patcher needs
func Validate(project types.Project) error {
	if strings.TrimSpace(project.Workpath) == "" {
		return errors.New(errors.ErrProjectInvalid, "workpath is required")
	}
	if strings.TrimSpace(project.Template) == "" {
		return errors.New(errors.ErrProjectInvalid, "template is required")
	}
	if filepath.IsAbs(project.Template) {
		return errors.Newf(errors.ErrProjectInvalid, "template %q must be relative to the workpath", project.Template)
	}
	for i, asset := range project.Assets {
		if asset.Type == "" {
			return errors.Newf(errors.ErrProjectInvalid, "asset %d has no type", i).
				WithDetail("asset", asset.Name)
		}
	}
	return nil
}

// normalize lowercases asset types and derives a missing UID from the
// manifest file name
func normalize(project *types.Project, path string) {
	if project.UID == "" {
		base := filepath.Base(path)
		project.UID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	for i := range project.Assets {
		project.Assets[i].Type = types.AssetType(strings.ToLower(strings.TrimSpace(string(project.Assets[i].Type))))
	}
}
