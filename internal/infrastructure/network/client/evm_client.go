package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ethereum_server/internal/app/port"
	"ethereum_server/internal/domain/entity"

	"github.com/ethereum/go-ethereum/rpc"
)

const netVersionMethod = "net_version"

// EVMClient implements port.NetworkVersionClient on top of a go-ethereum RPC client.
type EVMClient struct {
	rpcClient *rpc.Client
	url       string
}

// NewEVMClient wraps an already dialed RPC client.
func NewEVMClient(rpcClient *rpc.Client, url string) port.NetworkVersionClient {
	return &EVMClient{rpcClient: rpcClient, url: url}
}

// NetVersion calls net_version and returns the undecoded result.
// JSON-RPC level failures, undecodable bodies and empty results are reported as
// *entity.ProtocolError, everything else as *entity.ConnectionError.
func (c *EVMClient) NetVersion(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	err := c.rpcClient.CallContext(ctx, &raw, netVersionMethod)
	if err == nil {
		return raw, nil
	}

	var (
		rpcErr    rpc.Error
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.Is(err, rpc.ErrNoResult):
		return nil, &entity.ProtocolError{Err: err}
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		// узел ответил, но тело не является JSON-RPC ответом
		return nil, &entity.ProtocolError{Err: err}
	case errors.As(err, &rpcErr):
		return nil, &entity.ProtocolError{Err: fmt.Errorf("%s failed: %w", netVersionMethod, err)}
	default:
		return nil, &entity.ConnectionError{URL: c.url, Err: err}
	}
}

// Close closes the underlying RPC client.
func (c *EVMClient) Close() {
	c.rpcClient.Close()
}
