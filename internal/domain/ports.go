package domain

// FileLocator expands layer file patterns into concrete file paths.
type FileLocator interface {
	// Resolve expands each glob pattern independently against root and
	// returns the deduplicated union of existing regular files, in stable
	// order. Patterns matching nothing are not an error.
	Resolve(root string, patterns []string) ([]string, error)
}

// ManifestLoader reads and parses the dependency manifest.
type ManifestLoader interface {
	// Load parses the manifest at path. A missing manifest returns an empty
	// manifest and no error; a malformed one returns an error carrying the
	// parser's message alongside a manifest with the raw text populated, so
	// parse-free scans still run while the caller converts the error into a
	// MANIFEST_PARSE_ERROR violation.
	Load(path string) (*Manifest, error)
}

// GitInfo provides repository metadata for run history.
type GitInfo interface {
	CommitHash(projectPath string) (string, error)
}

// RunEntry is one historical check run.
type RunEntry struct {
	Timestamp  string                `json:"timestamp"`
	CommitHash string                `json:"commit_hash,omitempty"`
	Profile    Profile               `json:"profile"`
	Total      int                   `json:"total"`
	ByKind     map[ViolationKind]int `json:"by_kind,omitempty"`
	Clean      bool                  `json:"clean"`
}

// RunHistory stores past check runs for a project.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// ReportWriter persists the machine report artifact.
type ReportWriter interface {
	// Write serializes the report's flat record sequence to path. Called on
	// every run, clean or not.
	Write(path string, report *Report) error
}
