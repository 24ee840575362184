package types

import (
	"path/filepath"
	"slices"
)

// AssetType tags an asset with its kind
type AssetType string

const (
	AssetTypeScript AssetType = "script"
	AssetTypeData   AssetType = "data"
	AssetTypeImage  AssetType = "image"
	AssetTypeAudio  AssetType = "audio"
	AssetTypeVideo  AssetType = "video"
	AssetTypeFont   AssetType = "font"
)

// DefaultEligibleTypes are the asset types whose presence makes a project's
// template eligible for patching
var DefaultEligibleTypes = []AssetType{AssetTypeScript, AssetTypeData}

// Asset is a single file that belongs to a project
type Asset struct {
	// Type decides whether the asset makes its project eligible for patching
	Type AssetType `koanf:"type" json:"type"`

	// Name and Path are informational only
	Name string `koanf:"name" json:"name,omitempty"`
	Path string `koanf:"path" json:"path,omitempty"`
}

// Project describes an exported project whose template may need its paths
// rewritten
type Project struct {
	// UID identifies the project in logs and results
	UID string `koanf:"uid" json:"uid"`

	// Workpath is the project's working directory, absolute or relative to
	// the process working directory
	Workpath string `koanf:"workpath" json:"workpath"`

	// Template is the XML project file name, relative to Workpath
	Template string `koanf:"template" json:"template"`

	// Assets lists the project's files in manifest order
	Assets []Asset `koanf:"assets" json:"assets"`
}

// TemplatePath returns the template location joined onto the workpath
func (p Project) TemplatePath() string {
	return filepath.Join(p.Workpath, p.Template)
}

// Eligible reports whether any asset has one of the given types.
// A nil or empty set falls back to DefaultEligibleTypes.
func (p Project) Eligible(eligible []AssetType) bool {
	if len(eligible) == 0 {
		eligible = DefaultEligibleTypes
	}
	for _, a := range p.Assets {
		if slices.Contains(eligible, a.Type) {
			return true
		}
	}
	return false
}
