package restapi

import (
	"net/http"

	"ethereum_server/internal/app/port"

	"github.com/gin-gonic/gin"
)

// NetworkHandler serves the network registry.
type NetworkHandler struct {
	registry port.NetworkRegistry
}

// NewNetworkHandler creates a new instance of NetworkHandler.
func NewNetworkHandler(registry port.NetworkRegistry) *NetworkHandler {
	return &NetworkHandler{registry: registry}
}

// ListNetworks returns all known networks.
func (h *NetworkHandler) ListNetworks(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.All())
}

// GetNetwork returns one network by id.
func (h *NetworkHandler) GetNetwork(c *gin.Context) {
	n, ok := h.registry.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, APIError{Error: "network not found"})
		return
	}
	c.JSON(http.StatusOK, n)
}
