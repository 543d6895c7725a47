package entity

// WildcardNetworkID marks a server that is accepted on any network.
// Stored records rely on this exact literal.
const WildcardNetworkID = "*"

// ServerRecord describes one Ethereum node endpoint known to the application.
type ServerRecord struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// URL is host:port, optionally with a scheme.
	URL         string `json:"url" yaml:"url"`
	// NetworkID is a numeric network id or WildcardNetworkID.
	NetworkID   string `json:"networkId" yaml:"network_id"`
	Enabled     bool   `json:"status" yaml:"status"`
}

// Accessors.

func (r ServerRecord) GetID() string { return r.ID }

func (r ServerRecord) GetLabel() string { return r.Label }

func (r ServerRecord) GetDescription() string { return r.Description }

func (r ServerRecord) GetURL() string { return r.URL }

// GetNetworkID returns the declared network id, possibly WildcardNetworkID.
func (r ServerRecord) GetNetworkID() string { return r.NetworkID }

// IsEnabled reports whether the server is active.
func (r ServerRecord) IsEnabled() bool { return r.Enabled }

// AcceptsAnyNetwork reports whether the declared network id is the wildcard.
func (r ServerRecord) AcceptsAnyNetwork() bool { return r.NetworkID == WildcardNetworkID }

// IsDefault reports whether this server is the currently selected default.
// The current default id is owned by the caller's configuration.
func (r ServerRecord) IsDefault(currentDefaultID string) bool {
	return r.ID != "" && r.ID == currentDefaultID
}

// Validate checks that the fields required to reach the server are present.
func (r ServerRecord) Validate() error {
	switch {
	case r.ID == "":
		return NewInvalidServerError("id is required")
	case r.URL == "":
		return NewInvalidServerError("url is required")
	case r.NetworkID == "":
		return NewInvalidServerError("network id is required")
	}
	return nil
}
