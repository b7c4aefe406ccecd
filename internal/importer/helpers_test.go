package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/janbuchar/firefly-iii-fio-importer/internal/store"
)

func newTestNameStore(t *testing.T, yaml string) *store.NameStore {
	t.Helper()
	file := filepath.Join(t.TempDir(), "counterparties.yaml")
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0o644))

	names := store.NewNameStore(file)
	require.NoError(t, names.Load())
	return names
}
