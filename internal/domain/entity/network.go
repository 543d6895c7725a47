package entity

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// AddressPlaceholder is replaced by an account address in explorer link templates.
const AddressPlaceholder = "{address}"

// NetworkEntry holds the descriptive metadata for a known Ethereum network.
// Entries are reference data loaded once at startup.
type NetworkEntry struct {
	ID                   string `json:"id" yaml:"id"`
	Label                string `json:"label" yaml:"label"`
	Description          string `json:"description,omitempty" yaml:"description,omitempty"`
	ExplorerLinkTemplate string `json:"explorerLinkTemplate,omitempty" yaml:"explorerLinkTemplate,omitempty"` // e.g. "https://etherscan.io/address/{address}"
}

// ExplorerLink renders the block explorer link for address.
// It returns an empty string if the network has no explorer or the address is not a hex address.
func (n NetworkEntry) ExplorerLink(address string) string {
	if n.ExplorerLinkTemplate == "" || !common.IsHexAddress(address) {
		return ""
	}
	return strings.ReplaceAll(n.ExplorerLinkTemplate, AddressPlaceholder, address)
}
