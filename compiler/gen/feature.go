package gen

var (
	// FeatureMigrations emits a create-table migration per model.
	FeatureMigrations = Feature{
		Name:        "migrations",
		Stage:       Stable,
		Default:     true,
		Description: "Emits a create-table migration for every model",
	}

	// FeatureModels emits an Eloquent model class per model.
	FeatureModels = Feature{
		Name:        "models",
		Stage:       Stable,
		Default:     true,
		Description: "Emits an Eloquent model class with fillable columns and relationship accessors",
	}

	// FeaturePivots emits a migration per many-to-many join table discovered
	// from belongsToMany relationships.
	FeaturePivots = Feature{
		Name:        "pivots",
		Stage:       Stable,
		Default:     true,
		Description: "Emits join-table migrations for belongsToMany relationships",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureMigrations,
		FeatureModels,
		FeaturePivots,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development and may change without notice.
	Experimental

	// Alpha features are complete, but their output may still change.
	Alpha

	// Beta features produce stable output; options may still be added.
	Beta

	// Stable features are not expected to change.
	Stable
)

// String returns the stage name.
func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return "unknown"
	}
}

// A Feature of the blueprint codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string
}

// DefaultFeatures returns the features enabled when none are configured.
func DefaultFeatures() []Feature {
	var fs []Feature
	for _, f := range AllFeatures {
		if f.Default {
			fs = append(fs, f)
		}
	}
	return fs
}

// LookupFeature returns the feature with the given name.
func LookupFeature(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}
