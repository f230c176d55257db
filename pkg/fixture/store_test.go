package fixture_test

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/foomo/mockserver/pkg/fixture"
)

func newTestStore(t *testing.T) *fixture.Store {
	t.Helper()
	store, err := fixture.NewStore(zaptest.NewLogger(t), filepath.Join(t.TempDir(), "nested", "fixtures"))
	require.NoError(t, err)
	return store
}

func TestNewStoreCreatesRoot(t *testing.T) {
	store := newTestStore(t)

	info, err := os.Stat(store.Root())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureMockBinary(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.EnsureMockBinary())

	data, err := os.ReadFile(filepath.Join(store.Root(), fixture.MockBinaryName))
	require.NoError(t, err)
	require.Len(t, data, fixture.MockBinarySize)
	assert.Equal(t, make([]byte, fixture.MockBinarySize), data)
}

func TestEnsureMockBinaryKeepsExistingFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.EnsureMockBinary())

	// an externally replaced fixture must survive a second startup
	path := filepath.Join(store.Root(), fixture.MockBinaryName)
	require.NoError(t, os.WriteFile(path, []byte("replaced"), 0644))
	require.NoError(t, store.EnsureMockBinary())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("replaced"), data)
}

func TestHandlerServesFixtures(t *testing.T) {
	store := newTestStore(t)
	content := []byte("fixture content")
	require.NoError(t, os.WriteFile(filepath.Join(store.Root(), "file.txt"), content, 0644))

	server := httptest.NewServer(store.Handler())
	t.Cleanup(server.Close)

	resp, err := server.Client().Get(server.URL + "/file.txt")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
}
