package domain

import "time"

// RunInfo records the last fully successful bootstrap. It is informational
// only: a later run never skips work based on it, matching the delegated
// tools' own idempotence guarantees.
type RunInfo struct {
	// ManifestDigest is the xxhash digest of the manifest at completion.
	// Empty if the manifest did not exist.
	ManifestDigest string `json:"manifestDigest"`
	// Toolchain is the package list the upgrade step ran with.
	Toolchain []string `json:"toolchain"`
	// CompletedAt is when the run finished.
	CompletedAt time.Time `json:"completedAt"`
}
