// Package preflight verifies the environment before processing starts:
// workspace directories, external binaries, and API credentials.
package preflight

import (
	"valuebell/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all preflight checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Staging directory", cfg.Paths.StagingDir))
	results = append(results, CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	results = append(results, CheckDirectoryAccess("Cache directory", cfg.Paths.CacheDir))

	results = append(results, CheckAPIKey(cfg))

	for _, status := range CheckBinaries(MediaRequirements(cfg)) {
		result := Result{Name: status.Name, Passed: status.Available}
		if status.Available {
			result.Detail = status.Command
		} else {
			result.Detail = status.Detail
		}
		results = append(results, result)
	}

	return results
}

// CheckAPIKey verifies a transcription API key is configured. The key
// is not validated against the API here.
func CheckAPIKey(cfg *config.Config) Result {
	const name = "Transcription API key"
	if cfg.Transcription.APIKey == "" {
		return Result{Name: name, Detail: "missing (set transcription.api_key or ELEVENLABS_API_KEY)"}
	}
	return Result{Name: name, Passed: true, Detail: "configured"}
}
