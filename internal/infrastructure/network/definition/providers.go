package networkdefinition

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"ethereum_server/internal/app/port"
	"ethereum_server/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

// NetworkRegistry implements port.NetworkRegistry over a fixed table.
// It is built once and never mutated afterwards.
type NetworkRegistry struct {
	logger   port.Logger
	networks map[string]entity.NetworkEntry
}

// Predefined network entries
var ( //nolint:gochecknoglobals // Global for definitions
	Mainnet = entity.NetworkEntry{
		ID:                   "1",
		Label:                "Ethereum Mainnet",
		Description:          "Live Ethereum network.",
		ExplorerLinkTemplate: "https://etherscan.io/address/" + entity.AddressPlaceholder,
	}
	Morden = entity.NetworkEntry{
		ID:          "2",
		Label:       "Morden",
		Description: "Deprecated Ethereum testnet.",
	}
	Ropsten = entity.NetworkEntry{
		ID:                   "3",
		Label:                "Ropsten",
		Description:          "Proof of work testnet (deprecated).",
		ExplorerLinkTemplate: "https://ropsten.etherscan.io/address/" + entity.AddressPlaceholder,
	}
	Rinkeby = entity.NetworkEntry{
		ID:                   "4",
		Label:                "Rinkeby",
		Description:          "Clique proof of authority testnet (deprecated).",
		ExplorerLinkTemplate: "https://rinkeby.etherscan.io/address/" + entity.AddressPlaceholder,
	}
	Goerli = entity.NetworkEntry{
		ID:                   "5",
		Label:                "Goerli",
		Description:          "Cross-client proof of authority testnet.",
		ExplorerLinkTemplate: "https://goerli.etherscan.io/address/" + entity.AddressPlaceholder,
	}
	Kovan = entity.NetworkEntry{
		ID:                   "42",
		Label:                "Kovan",
		Description:          "Parity proof of authority testnet (deprecated).",
		ExplorerLinkTemplate: "https://kovan.etherscan.io/address/" + entity.AddressPlaceholder,
	}
	Sepolia = entity.NetworkEntry{
		ID:                   "11155111",
		Label:                "Sepolia",
		Description:          "Proof of stake testnet.",
		ExplorerLinkTemplate: "https://sepolia.etherscan.io/address/" + entity.AddressPlaceholder,
	}
	Private = entity.NetworkEntry{
		ID:          entity.WildcardNetworkID,
		Label:       "Private network",
		Description: "Any network. The reported network id is not checked.",
	}
)

// DefaultNetworks returns the built-in network table.
func DefaultNetworks() []entity.NetworkEntry {
	return []entity.NetworkEntry{Mainnet, Morden, Ropsten, Rinkeby, Goerli, Kovan, Sepolia, Private}
}

// NewNetworkRegistry builds a registry from the built-in table.
// Entries in overrides replace built-in entries with the same id;
// entries in supplements are only added for ids not yet known.
func NewNetworkRegistry(log port.Logger, overrides []entity.NetworkEntry, supplements []entity.NetworkEntry) *NetworkRegistry {
	r := &NetworkRegistry{
		logger:   log,
		networks: make(map[string]entity.NetworkEntry),
	}
	for _, n := range DefaultNetworks() {
		r.networks[n.ID] = n
	}

	for _, n := range overrides {
		if n.ID == "" {
			r.logger.Warn("Skipping network definition without id", "label", n.Label)
			continue
		}
		if _, exists := r.networks[n.ID]; exists {
			r.logger.Debug(fmt.Sprintf("Overriding built-in network definition %s", n.ID))
		}
		r.networks[n.ID] = n
	}

	added := 0
	for _, n := range supplements {
		if n.ID == "" {
			continue
		}
		if _, exists := r.networks[n.ID]; exists {
			continue
		}
		r.networks[n.ID] = n
		added++
	}

	r.logger.Info(fmt.Sprintf("NetworkRegistry initialized. Known networks: %d", len(r.networks)), "supplemented", added)
	return r
}

// Lookup returns the entry for networkID.
func (r *NetworkRegistry) Lookup(networkID string) (entity.NetworkEntry, bool) {
	if r == nil {
		return entity.NetworkEntry{}, false
	}
	n, ok := r.networks[networkID]
	return n, ok
}

// All returns the known networks ordered by numeric id, the wildcard entry last.
func (r *NetworkRegistry) All() []entity.NetworkEntry {
	if r == nil {
		return []entity.NetworkEntry{}
	}
	all := make([]entity.NetworkEntry, 0, len(r.networks))
	for _, n := range r.networks {
		all = append(all, n)
	}
	sort.Slice(all, func(i, j int) bool {
		return networkLess(all[i].ID, all[j].ID)
	})
	return all
}

func networkLess(a, b string) bool {
	ai, errA := strconv.ParseUint(a, 10, 64)
	bi, errB := strconv.ParseUint(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return ai < bi
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

type networksFile struct {
	Networks []entity.NetworkEntry `yaml:"networks"`
}

// LoadNetworksFile reads additional network definitions from a YAML file.
func LoadNetworksFile(path string) ([]entity.NetworkEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read networks file %s: %w", path, err)
	}
	var f networksFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal networks file %s: %w", path, err)
	}
	return f.Networks, nil
}
