package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"ethereum_server/internal/app/port"
	"ethereum_server/internal/domain/entity"
	"ethereum_server/internal/infrastructure/configloader"

	"github.com/ethereum/go-ethereum/rpc"
)

const (
	defaultConnectionTimeout = 10 * time.Second
	defaultScheme            = "http://"
)

// evmDialer implements port.NetworkVersionDialer.
// Клиенты не кэшируются: каждый Dial открывает новое соединение.
type evmDialer struct {
	httpClient        *http.Client
	connectionTimeout time.Duration
	loggerDebug       func(msg string, args ...any)
}

// NewEVMDialer creates a dialer configured from the performance section.
func NewEVMDialer(cfg *configloader.Config, loggerDebug func(msg string, args ...any)) port.NetworkVersionDialer {
	timeout := defaultConnectionTimeout
	if cfg != nil && cfg.Performance.ConnectionTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Performance.ConnectionTimeoutSeconds) * time.Second
	}
	return &evmDialer{
		httpClient:        &http.Client{Timeout: timeout},
		connectionTimeout: timeout,
		loggerDebug:       loggerDebug,
	}
}

// Dial connects to url. A URL without a scheme is treated as plain HTTP
// rather than an IPC socket path.
func (d *evmDialer) Dial(ctx context.Context, url string) (port.NetworkVersionClient, error) {
	endpoint := NormalizeEndpoint(url)

	dialCtx, cancel := context.WithTimeout(ctx, d.connectionTimeout)
	defer cancel()

	if d.loggerDebug != nil {
		d.loggerDebug("Dialing RPC endpoint", "url", endpoint)
	}
	rpcClient, err := rpc.DialOptions(dialCtx, endpoint, rpc.WithHTTPClient(d.httpClient))
	if err != nil {
		return nil, &entity.ConnectionError{URL: url, Err: err}
	}
	return NewEVMClient(rpcClient, endpoint), nil
}

// NormalizeEndpoint adds the default scheme to bare host:port addresses.
func NormalizeEndpoint(url string) string {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" || strings.Contains(trimmed, "://") {
		return trimmed
	}
	return defaultScheme + trimmed
}
