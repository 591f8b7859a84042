package tuning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadPartialFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	data := []byte("seed: 99\nchunk_size: 2000\ntrees:\n  count_per_chunk: 10\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	tun, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, int64(99), tun.Seed)
	require.Equal(t, 2000.0, tun.ChunkSize)
	require.Equal(t, 10, tun.Trees.CountPerChunk)

	// Everything the file does not name keeps its default.
	def := Default()
	require.Equal(t, def.WindowRadius, tun.WindowRadius)
	require.Equal(t, def.Mountains, tun.Mountains)
	require.Equal(t, def.Trees.BossCount, tun.Trees.BossCount)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunk_size: [broken"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunk_size: -1\n"), 0o644))

	_, err := Load(path)
	require.ErrorContains(t, err, "chunk_size")
}

func TestValidate(t *testing.T) {
	bad := Default()
	bad.Trees.ScaleMin = 2
	bad.Trees.ScaleMax = 1
	require.Error(t, bad.Validate())

	bad = Default()
	bad.Mountains.RadialMin = 0.9
	require.Error(t, bad.Validate())

	bad = Default()
	bad.WindowRadius = -1
	require.Error(t, bad.Validate())
}
