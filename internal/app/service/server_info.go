package service

import (
	"fmt"
	"strings"

	"ethereum_server/internal/app/port"
	"ethereum_server/internal/domain/entity"
)

// UnknownNetworkLabel is shown when a server declares a network the registry does not know.
const UnknownNetworkLabel = "unknown network"

// InfoField is one labeled row of a server description.
type InfoField struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Content string `json:"content"`
}

// ServerInfo is the presentation-neutral description of a server.
type ServerInfo struct {
	Server  entity.ServerRecord  `json:"server"`
	Network *entity.NetworkEntry `json:"network,omitempty"`
	Default bool                 `json:"default"`
	Fields  []InfoField          `json:"fields"`
}

// DescribeServer builds the labeled fields describing record. It has no side effects.
func DescribeServer(record entity.ServerRecord, registry port.NetworkRegistry, currentDefaultID string) ServerInfo {
	return DescribeServerForAddress(record, registry, currentDefaultID, "")
}

// DescribeServerForAddress is DescribeServer with the explorer row rendered for address.
// An empty address keeps the raw explorer template.
func DescribeServerForAddress(record entity.ServerRecord, registry port.NetworkRegistry, currentDefaultID, address string) ServerInfo {
	info := ServerInfo{
		Server:  record,
		Default: record.IsDefault(currentDefaultID),
	}

	nodeInfo := record.Label
	if record.Description != "" {
		nodeInfo += "\n" + record.Description
	}

	networkInfo := fmt.Sprintf("%s (Ethereum Network Id: %s)", UnknownNetworkLabel, record.NetworkID)
	explorer := ""
	if registry != nil {
		if n, ok := registry.Lookup(record.NetworkID); ok {
			info.Network = &n
			networkInfo = fmt.Sprintf("%s (Ethereum Network Id: %s)", n.Label, n.ID)
			if n.Description != "" {
				networkInfo += "\n" + n.Description
			}
			explorer = n.ExplorerLinkTemplate
		}
	}

	info.Fields = []InfoField{
		{Key: "info", Label: "Node info", Content: strings.TrimSpace(nodeInfo)},
		{Key: "config_id", Label: "Config name", Content: record.ID},
		{Key: "url", Label: "RPC Url", Content: record.URL},
		{Key: "network", Label: "Network info", Content: networkInfo},
		{Key: "explorer", Label: "Blockchain Explorer", Content: explorer},
	}
	return info
}
