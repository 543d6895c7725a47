package networkdefinition

import (
	"os"
	"path/filepath"
	"testing"

	"ethereum_server/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func TestLookupKnownNetwork(t *testing.T) {
	r := NewNetworkRegistry(nopLogger{}, nil, nil)

	n, ok := r.Lookup("1")
	require.True(t, ok)
	assert.Equal(t, "Ethereum Mainnet", n.Label)

	again, ok := r.Lookup("1")
	require.True(t, ok)
	assert.Equal(t, n, again)
}

func TestLookupUnknownNetwork(t *testing.T) {
	r := NewNetworkRegistry(nopLogger{}, nil, nil)

	_, ok := r.Lookup("999999")
	assert.False(t, ok)
	_, ok = r.Lookup("")
	assert.False(t, ok)

	var nilRegistry *NetworkRegistry
	_, ok = nilRegistry.Lookup("1")
	assert.False(t, ok)
}

func TestWildcardIsRegistered(t *testing.T) {
	r := NewNetworkRegistry(nopLogger{}, nil, nil)
	n, ok := r.Lookup(entity.WildcardNetworkID)
	require.True(t, ok)
	assert.Equal(t, "Private network", n.Label)
}

func TestOverridesAndSupplements(t *testing.T) {
	overrides := []entity.NetworkEntry{
		{ID: "1", Label: "Custom Mainnet"},
		{ID: "", Label: "ignored"},
		{ID: "1337", Label: "Dev chain"},
	}
	supplements := []entity.NetworkEntry{
		{ID: "1", Label: "Should not win"},
		{ID: "137", Label: "Polygon"},
	}
	r := NewNetworkRegistry(nopLogger{}, overrides, supplements)

	n, _ := r.Lookup("1")
	assert.Equal(t, "Custom Mainnet", n.Label)
	n, _ = r.Lookup("1337")
	assert.Equal(t, "Dev chain", n.Label)
	n, _ = r.Lookup("137")
	assert.Equal(t, "Polygon", n.Label)
}

func TestAllOrdering(t *testing.T) {
	r := NewNetworkRegistry(nopLogger{}, nil, nil)
	all := r.All()
	require.Len(t, all, len(DefaultNetworks()))

	ids := make([]string, 0, len(all))
	for _, n := range all {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "42", "11155111", entity.WildcardNetworkID}, ids)
}

func TestLoadNetworksFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "networks.yml")
	content := `networks:
  - id: "1337"
    label: Dev chain
    explorerLinkTemplate: "http://localhost:4000/address/{address}"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	networks, err := LoadNetworksFile(path)
	require.NoError(t, err)
	require.Len(t, networks, 1)
	assert.Equal(t, "1337", networks[0].ID)
	assert.Equal(t, "http://localhost:4000/address/{address}", networks[0].ExplorerLinkTemplate)

	_, err = LoadNetworksFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
