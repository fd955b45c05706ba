package domain

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// ManifestDigest computes the xxhash digest of the manifest contents.
// A missing manifest yields an empty digest and no error: its absence is
// the dependency installer's to report, not ours.
func ManifestDigest(path string) (string, error) {
	//nolint:gosec // path comes from resolved configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", zerr.Wrap(err, ErrManifestDigestFailed.Error())
	}

	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}
