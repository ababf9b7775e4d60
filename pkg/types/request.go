package types

// Request carries the bound common parameters of one invocation plus the
// raw argument bag for operation-specific values.
type Request struct {
	FilePath   string
	Line       int // 1-based
	Column     int // 0-based
	OutputPath string
	DryRun     bool
	Args       map[string]any
}

// Target returns the path the operation writes to: OutputPath if set,
// otherwise the input file itself.
func (r *Request) Target() string {
	if r.OutputPath != "" {
		return r.OutputPath
	}
	return r.FilePath
}

// Result is the outcome of a completed operation.
type Result struct {
	// Message is a one-line summary of what was (or would be) done.
	Message string
	// Report carries the dry-run change description; empty otherwise.
	Report string
	// OutputPath is the file that was written; empty for dry runs.
	OutputPath string
	// Changed is false when the operation was a no-op.
	Changed bool
}
