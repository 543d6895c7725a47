package chainlist

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ethereum_server/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Chain is the subset of a chainlist.org chains.json entry used to describe a network.
type Chain struct {
	Name      string     `json:"name"`
	ChainID   int64      `json:"chainId"`
	NetworkID int64      `json:"networkId"`
	InfoURL   string     `json:"infoURL"`
	Explorers []Explorer `json:"explorers,omitempty"`
}

// Explorer defines details about a block explorer for a chain.
type Explorer struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Standard string `json:"standard"`
}

// Fetcher downloads chain lists and converts them into network entries.
type Fetcher interface {
	FetchNetworks(ctx context.Context, url string) ([]entity.NetworkEntry, error)
}

type fetcherImpl struct {
	client  *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewFetcher creates a chain list fetcher.
func NewFetcher(timeout time.Duration, logger *zap.Logger) Fetcher {
	return &fetcherImpl{
		client:  &fasthttp.Client{},
		timeout: timeout,
		logger:  logger.Named("ChainlistFetcher"),
	}
}

// FetchNetworks implements the Fetcher interface.
func (f *fetcherImpl) FetchNetworks(ctx context.Context, url string) ([]entity.NetworkEntry, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	f.logger.Debug("Requesting chain list", zap.String("url", url))

	// fasthttp не принимает context, поэтому берём дедлайн из ctx
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(f.timeout)
	}
	if err := f.client.DoDeadline(req, resp, deadline); err != nil {
		f.logger.Error("Failed to execute chain list request", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", url, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		f.logger.Error("Chain list request failed",
			zap.String("url", url),
			zap.Int("statusCode", resp.StatusCode()))
		return nil, fmt.Errorf("chain list request to %s failed with status %d", url, resp.StatusCode())
	}

	var chains []Chain
	if err := json.Unmarshal(resp.Body(), &chains); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chain list from %s: %w", url, err)
	}

	networks := ToNetworkEntries(chains)
	f.logger.Info("Chain list loaded", zap.Int("chains", len(chains)), zap.Int("networks", len(networks)))
	return networks, nil
}

// ToNetworkEntries converts chains into network entries keyed by network id.
// When several chains share a network id the first one wins.
func ToNetworkEntries(chains []Chain) []entity.NetworkEntry {
	seen := make(map[int64]struct{}, len(chains))
	networks := make([]entity.NetworkEntry, 0, len(chains))
	for _, c := range chains {
		if c.NetworkID <= 0 {
			continue
		}
		if _, dup := seen[c.NetworkID]; dup {
			continue
		}
		seen[c.NetworkID] = struct{}{}

		n := entity.NetworkEntry{
			ID:          strconv.FormatInt(c.NetworkID, 10),
			Label:       c.Name,
			Description: fmt.Sprintf("Chain ID %d", c.ChainID),
		}
		if c.InfoURL != "" {
			n.Description += ", " + c.InfoURL
		}
		if len(c.Explorers) > 0 && c.Explorers[0].URL != "" {
			n.ExplorerLinkTemplate = strings.TrimRight(c.Explorers[0].URL, "/") + "/address/" + entity.AddressPlaceholder
		}
		networks = append(networks, n)
	}
	return networks
}
