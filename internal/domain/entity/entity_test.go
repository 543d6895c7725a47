package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerRecordIsDefault(t *testing.T) {
	r := ServerRecord{ID: "main"}
	assert.True(t, r.IsDefault("main"))
	assert.False(t, r.IsDefault("other"))
	assert.False(t, r.IsDefault(""))
	assert.False(t, ServerRecord{}.IsDefault(""))
}

func TestServerRecordWildcard(t *testing.T) {
	assert.True(t, ServerRecord{NetworkID: "*"}.AcceptsAnyNetwork())
	assert.False(t, ServerRecord{NetworkID: " *"}.AcceptsAnyNetwork())
	assert.False(t, ServerRecord{NetworkID: "1"}.AcceptsAnyNetwork())
}

func TestServerRecordValidate(t *testing.T) {
	valid := ServerRecord{ID: "main", URL: "localhost:8545", NetworkID: "1"}
	require.NoError(t, valid.Validate())

	for _, r := range []ServerRecord{
		{URL: "localhost:8545", NetworkID: "1"},
		{ID: "main", NetworkID: "1"},
		{ID: "main", URL: "localhost:8545"},
	} {
		err := r.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidServer))
	}
}

func TestExplorerLink(t *testing.T) {
	n := NetworkEntry{ExplorerLinkTemplate: "https://etherscan.io/address/" + AddressPlaceholder}
	addr := "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"

	assert.Equal(t, "https://etherscan.io/address/"+addr, n.ExplorerLink(addr))
	assert.Empty(t, n.ExplorerLink("not-an-address"))
	assert.Empty(t, NetworkEntry{}.ExplorerLink(addr))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, ProtocolInvalidMessage, (&ProtocolError{Raw: "1"}).Error())
	assert.Equal(t, ProtocolInvalidMessage+" rpc failed", (&ProtocolError{Err: errors.New("rpc failed")}).Error())
	assert.Equal(t, NetworkMismatchMessage, (&NetworkMismatchError{Expected: "1", Reported: "3"}).Error())
	assert.Contains(t, (&NetworkMismatchError{Expected: "1", Reported: "3"}).String(), "reported 3")

	inner := errors.New("connection refused")
	connErr := &ConnectionError{URL: "http://node:8545", Err: inner}
	assert.Equal(t, "connection refused", connErr.Error())
	assert.ErrorIs(t, connErr, inner)
	assert.Equal(t, "connection failed", (&ConnectionError{}).Error())
}
