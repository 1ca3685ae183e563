package v1alpha1

// Default values for a Setup configuration.
const (
	// DefaultRepoURL is the git remote of the astrogaia application.
	DefaultRepoURL = "https://github.com/ffcarrasco/astrogaia-python.git"
	// DefaultRepoDir is the directory produced by cloning DefaultRepoURL.
	DefaultRepoDir = "astrogaia-python"
	// DefaultManifest is the dependency manifest inside the cloned tree.
	DefaultManifest = "requirements.txt"
	// DefaultEntrypoint is the program invoked for the smoke test.
	DefaultEntrypoint = "astrogaia-python.py"
	// DefaultEnvName is the directory name of the virtual environment.
	DefaultEnvName = "astrogaia-env"
	// DefaultPythonBinary is the interpreter looked up on the PATH.
	DefaultPythonBinary = "python3"
	// DefaultPythonMinVersion is the minimum supported interpreter version.
	DefaultPythonMinVersion = "3.10"
)

// NewSetup creates a Setup with default values.
func NewSetup() *Setup {
	return &Setup{
		Repo:   NewRepoSpec(),
		Env:    NewEnvSpec(),
		Python: NewPythonSpec(),
	}
}

// NewRepoSpec creates a RepoSpec with default values.
func NewRepoSpec() RepoSpec {
	return RepoSpec{
		URL:        DefaultRepoURL,
		Branch:     "",
		Dir:        DefaultRepoDir,
		Manifest:   DefaultManifest,
		Entrypoint: DefaultEntrypoint,
	}
}

// NewEnvSpec creates an EnvSpec with default values.
func NewEnvSpec() EnvSpec {
	return EnvSpec{
		Name: DefaultEnvName,
	}
}

// NewPythonSpec creates a PythonSpec with default values.
func NewPythonSpec() PythonSpec {
	return PythonSpec{
		Binary:      DefaultPythonBinary,
		MinVersion:  DefaultPythonMinVersion,
		IgnoreCheck: false,
	}
}
