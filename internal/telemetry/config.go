package telemetry

import "os"

// ObserveEnabled reports whether JSONL emission is on (AGT_OBSERVE_JSON=1).
// Checked per call so tests can flip it with Setenv.
func ObserveEnabled() bool {
	return os.Getenv("AGT_OBSERVE_JSON") == "1"
}

// ArtifactsDir returns where event files are written: AGT_ARTIFACTS_DIR
// when set, else ".agent" under the current directory.
func ArtifactsDir() string {
	if dir := os.Getenv("AGT_ARTIFACTS_DIR"); dir != "" {
		return dir
	}
	return ".agent"
}
