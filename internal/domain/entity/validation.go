package entity

import "fmt"

// FailureKind classifies why a connectivity validation failed.
type FailureKind string

const (
	// FailureNone is used for successful validations.
	FailureNone FailureKind = ""
	// FailureConnection means the endpoint could not be reached.
	FailureConnection FailureKind = "connection"
	// FailureProtocol means the endpoint answered with a malformed network version.
	FailureProtocol FailureKind = "protocol"
	// FailureNetworkMismatch means the endpoint reported another network.
	FailureNetworkMismatch FailureKind = "network_mismatch"
)

// Detail messages kept stable for log scraping and stored results.
const (
	ProtocolInvalidMessage = "eth_protocolVersion return is not valid."
	NetworkMismatchMessage = "Network ID does not match."
)

// ValidationResult is the outcome of probing a server.
type ValidationResult struct {
	ServerID string      `json:"serverId"`
	Error    bool        `json:"error"`
	Message  string      `json:"message"`
	Kind     FailureKind `json:"kind,omitempty"`
}

// ConnectionError is a transport level failure to reach the server.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return "connection failed"
	}
	return e.Err.Error()
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ProtocolError means the server answered but not with a usable network version.
// Raw holds the offending result when it could be read at all.
type ProtocolError struct {
	Raw string
	Err error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return ProtocolInvalidMessage + " " + e.Err.Error()
	}
	return ProtocolInvalidMessage
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// NetworkMismatchError means the server reported a different network than declared.
type NetworkMismatchError struct {
	Expected string
	Reported string
}

func (e *NetworkMismatchError) Error() string {
	return NetworkMismatchMessage
}

// String is used in debug logs where both ids matter.
func (e *NetworkMismatchError) String() string {
	return fmt.Sprintf("%s expected %s, reported %s", NetworkMismatchMessage, e.Expected, e.Reported)
}
