package state_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envsync/internal/adapters/state"
	"go.trai.ch/envsync/internal/core/domain"
)

func TestStore_GetBeforeAnyRun(t *testing.T) {
	s := state.NewStore()

	info, err := s.Get(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestStore_PutThenGet(t *testing.T) {
	root := t.TempDir()
	s := state.NewStore()

	want := domain.RunInfo{
		ManifestDigest: "deadbeefdeadbeef",
		Toolchain:      domain.DefaultToolchain(),
		CompletedAt:    time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.Put(root, want))

	got, err := s.Get(root)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ManifestDigest, got.ManifestDigest)
	assert.Equal(t, want.Toolchain, got.Toolchain)
	assert.True(t, want.CompletedAt.Equal(got.CompletedAt))
}

func TestStore_PutOverwrites(t *testing.T) {
	root := t.TempDir()
	s := state.NewStore()

	require.NoError(t, s.Put(root, domain.RunInfo{ManifestDigest: "one"}))
	require.NoError(t, s.Put(root, domain.RunInfo{ManifestDigest: "two"}))

	got, err := s.Get(root)
	require.NoError(t, err)
	assert.Equal(t, "two", got.ManifestDigest)

	// No temp files left behind by the atomic write.
	entries, err := os.ReadDir(filepath.Join(root, domain.StateDirName))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.StateFileName, entries[0].Name())
}

func TestStore_CorruptStateSurfacesError(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, domain.StateDirName)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.StateFileName), []byte("{not json"), 0o600))

	_, err := state.NewStore().Get(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrStoreUnmarshalFailed.Error())
}
