// Package v1alpha1 defines the configuration schema for astrogaia-setup.
package v1alpha1

// Setup is the root configuration for one installer run.
type Setup struct {
	Repo   RepoSpec   `json:"repo,omitzero"   mapstructure:"repo"`
	Env    EnvSpec    `json:"env,omitzero"    mapstructure:"env"`
	Python PythonSpec `json:"python,omitzero" mapstructure:"python"`
}

// RepoSpec describes the source tree to fetch and the dependency manifest
// expected inside it.
type RepoSpec struct {
	// URL is the git remote of the astrogaia application.
	URL string `json:"url,omitzero" mapstructure:"url"`

	// Branch is an optional branch to check out on clone. Empty means the
	// remote's default branch.
	Branch string `json:"branch,omitzero" mapstructure:"branch"`

	// Dir is the directory the clone produces, relative to the working
	// directory.
	Dir string `json:"dir,omitzero" mapstructure:"dir"`

	// Manifest is the dependency list file inside the cloned tree.
	Manifest string `json:"manifest,omitzero" mapstructure:"manifest"`

	// Entrypoint is the program invoked for the smoke test, relative to Dir.
	Entrypoint string `json:"entrypoint,omitzero" mapstructure:"entrypoint"`
}

// EnvSpec describes the isolated virtual environment to provision.
type EnvSpec struct {
	// Name is the directory name of the virtual environment.
	Name string `json:"name,omitzero" mapstructure:"name"`
}

// PythonSpec describes the interpreter requirements.
type PythonSpec struct {
	// Binary is the interpreter executable looked up on the PATH.
	Binary string `json:"binary,omitzero" mapstructure:"binary"`

	// MinVersion is the minimum interpreter version, "major.minor".
	MinVersion string `json:"minVersion,omitzero" mapstructure:"minVersion"`

	// IgnoreCheck skips the interpreter version check when true.
	IgnoreCheck bool `json:"ignoreCheck,omitzero" mapstructure:"ignoreCheck"`
}
