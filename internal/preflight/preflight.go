package preflight

import (
	"filesort/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check for one source/output pair. Empty arguments
// fall back to the configured paths.
func RunAll(cfg *config.Config, sourceDir, outputDir string) []Result {
	if cfg == nil {
		return nil
	}
	if sourceDir == "" {
		sourceDir = cfg.Paths.SourceDir
	}
	if outputDir == "" {
		outputDir = cfg.Paths.OutputDir
	}

	results := []Result{
		CheckDirectoryAccess("Source directory", sourceDir),
		CheckOutputDirectory("Output directory", outputDir),
		CheckSameDevice("Move mode", sourceDir, outputDir),
		CheckFormatTable(cfg),
	}

	if cfg.Journal.Enabled {
		results = append(results, CheckOutputDirectory("Journal directory", parentDir(cfg.Journal.Path)))
	}
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
