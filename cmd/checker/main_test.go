package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"ethereum_server/internal/domain/entity"
	"ethereum_server/internal/infrastructure/serverstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	err := report(&buf, []entity.ValidationResult{
		{ServerID: "main", Message: "main (http://node:8545) is up and listening on network 1"},
		{ServerID: "dev", Error: true, Message: "Unable to connect to server Dev. connection refused"},
	}, "main")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, buf.String(), "OK   main (default): main (http://node:8545)")
	assert.Contains(t, buf.String(), "FAIL dev: Unable to connect to server Dev.")

	buf.Reset()
	require.NoError(t, report(&buf, []entity.ValidationResult{{ServerID: "main"}}, ""))
}

func TestSelectServers(t *testing.T) {
	store, err := serverstore.NewYAMLStore("", nil)
	require.NoError(t, err)
	require.NoError(t, store.Create(entity.ServerRecord{ID: "a", URL: "localhost:1", NetworkID: "1"}))
	require.NoError(t, store.Create(entity.ServerRecord{ID: "b", URL: "localhost:2", NetworkID: "1"}))

	all, err := selectServers(store, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	some, err := selectServers(store, []string{"b"})
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, "b", some[0].ID)

	_, err = selectServers(store, []string{"missing"})
	require.ErrorIs(t, err, entity.ErrServerNotFound)
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NotNil(t, cmd.Flags().Lookup("config"))
	require.NotNil(t, cmd.Flags().Lookup("timeout"))
	require.NotNil(t, cmd.Flags().Lookup("all"))
}

func newNode(t *testing.T, networkID string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID json.RawMessage `json:"id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%q}`, req.ID, networkID)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeFixtures(t *testing.T, nodeURL string) string {
	t.Helper()
	dir := t.TempDir()
	servers := fmt.Sprintf(`servers:
  - id: main
    label: Main
    url: %[1]s
    network_id: "1"
    status: true
  - id: goerli
    label: Goerli node
    url: %[1]s
    network_id: "5"
    status: true
  - id: spare
    label: Spare
    url: %[1]s
    network_id: "*"
    status: false
`, nodeURL)
	serversPath := filepath.Join(dir, "servers.yml")
	require.NoError(t, os.WriteFile(serversPath, []byte(servers), 0o644))

	cfg := fmt.Sprintf(`logging:
  level: error
ethereum:
  currentServer: main
  serversFile: %s
performance:
  max_concurrent_routines: 2
  rpc_call_timeout_seconds: 5
`, serversPath)
	cfgPath := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath
}

func TestRunAgainstNode(t *testing.T) {
	node := newNode(t, "1")
	cfgPath := writeFixtures(t, node.URL)

	var buf bytes.Buffer
	err := run(context.Background(), &buf, &options{configPath: cfgPath}, []string{"main"})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("OK   main (default): main (%s) is up and listening on network 1\n", node.URL), buf.String())

	buf.Reset()
	err = run(context.Background(), &buf, &options{configPath: cfgPath}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, buf.String(), "FAIL goerli: Unable to connect to server Goerli node. ")
	assert.NotContains(t, buf.String(), "spare")

	buf.Reset()
	err = run(context.Background(), &buf, &options{configPath: cfgPath, all: true}, nil)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "OK   spare: ")
}
