package service

import (
	"testing"

	"ethereum_server/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapRegistry map[string]entity.NetworkEntry

func (m mapRegistry) Lookup(id string) (entity.NetworkEntry, bool) {
	n, ok := m[id]
	return n, ok
}

func (m mapRegistry) All() []entity.NetworkEntry { return nil }

func fieldContent(t *testing.T, info ServerInfo, key string) string {
	t.Helper()
	for _, f := range info.Fields {
		if f.Key == key {
			return f.Content
		}
	}
	t.Fatalf("field %s not found", key)
	return ""
}

func TestDescribeServerKnownNetwork(t *testing.T) {
	registry := mapRegistry{"1": {
		ID:                   "1",
		Label:                "Ethereum Mainnet",
		Description:          "Live Ethereum network.",
		ExplorerLinkTemplate: "https://etherscan.io/address/{address}",
	}}
	record := entity.ServerRecord{ID: "main", Label: "Main", Description: "Primary node", URL: "http://node:8545", NetworkID: "1"}

	info := DescribeServer(record, registry, "main")
	require.NotNil(t, info.Network)
	assert.True(t, info.Default)
	require.Len(t, info.Fields, 5)

	keys := make([]string, 0, len(info.Fields))
	for _, f := range info.Fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"info", "config_id", "url", "network", "explorer"}, keys)

	assert.Equal(t, "Main\nPrimary node", fieldContent(t, info, "info"))
	assert.Equal(t, "main", fieldContent(t, info, "config_id"))
	assert.Equal(t, "http://node:8545", fieldContent(t, info, "url"))
	assert.Equal(t, "Ethereum Mainnet (Ethereum Network Id: 1)\nLive Ethereum network.", fieldContent(t, info, "network"))
	assert.Equal(t, "https://etherscan.io/address/{address}", fieldContent(t, info, "explorer"))
}

func TestDescribeServerUnknownNetwork(t *testing.T) {
	record := entity.ServerRecord{ID: "dev", Label: "Dev", URL: "localhost:8545", NetworkID: "1337"}

	info := DescribeServer(record, mapRegistry{}, "main")
	assert.Nil(t, info.Network)
	assert.False(t, info.Default)
	assert.Contains(t, fieldContent(t, info, "network"), UnknownNetworkLabel)
	assert.Empty(t, fieldContent(t, info, "explorer"))

	info = DescribeServer(record, nil, "")
	assert.Contains(t, fieldContent(t, info, "network"), UnknownNetworkLabel)
}

func TestDescribeServerForAddress(t *testing.T) {
	registry := mapRegistry{"1": {ID: "1", Label: "Ethereum Mainnet", ExplorerLinkTemplate: "https://etherscan.io/address/{address}"}}
	record := entity.ServerRecord{ID: "main", Label: "Main", URL: "http://node:8545", NetworkID: "1"}
	addr := "0x52908400098527886E0F7030069857D2E4169EE7"

	info := DescribeServerForAddress(record, registry, "", addr)
	assert.Equal(t, "https://etherscan.io/address/"+addr, fieldContent(t, info, "explorer"))

	info = DescribeServerForAddress(record, registry, "", "not-an-address")
	assert.Empty(t, fieldContent(t, info, "explorer"))

	info = DescribeServerForAddress(record, mapRegistry{}, "", addr)
	assert.Empty(t, fieldContent(t, info, "explorer"))
}
