package classify

import (
	"fmt"
	"time"
)

// Request represents a classification request
type Request struct {
	Paths     []string
	Publisher string
	Recursive bool

	// Run settings, normally filled from configuration
	KeyFile           string
	ResourceMap       string
	Workers           int
	UnwrapEnvelopes   bool
	MaxUnwrappedBytes int64
	Fingerprint       bool
}

// Response represents classification results
type Response struct {
	RunID     string         `json:"run_id" yaml:"run_id"`
	Publisher string         `json:"publisher" yaml:"publisher"`
	Files     []FileResult   `json:"files" yaml:"files"`
	Counts    map[string]int `json:"counts" yaml:"counts"`
	Failed    int            `json:"failed" yaml:"failed"`
	Elapsed   time.Duration  `json:"elapsed" yaml:"elapsed"`
}

// FileResult represents the outcome for one file
type FileResult struct {
	Path        string `json:"path" yaml:"path"`
	Name        string `json:"name" yaml:"name"`
	Size        int64  `json:"size" yaml:"size"`
	Format      string `json:"format,omitempty" yaml:"format,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	ZipEntries  int    `json:"zip_entries,omitempty" yaml:"zip_entries,omitempty"`
	MapEntries  int    `json:"map_entries,omitempty" yaml:"map_entries,omitempty"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorCode   string `json:"error_code,omitempty" yaml:"error_code,omitempty"`
}

// Failed reports whether the file could not be classified.
func (f *FileResult) Failed() bool {
	return f.Error != ""
}

// FormatSize returns a human-readable size string
func (f *FileResult) FormatSize() string {
	return formatBytes(f.Size)
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
