package restapi

import (
	"errors"
	"net/http"

	"ethereum_server/internal/app/port"
	"ethereum_server/internal/app/service"
	"ethereum_server/internal/domain/entity"
	"ethereum_server/internal/infrastructure/configloader"
	"ethereum_server/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIServer is a server record as returned by the API.
type APIServer struct {
	entity.ServerRecord
	Default bool `json:"default"`
}

// APIError is the body of every error response.
type APIError struct {
	Error string `json:"error"`
}

// ServerHandler handles the server registry endpoints.
type ServerHandler struct {
	store    port.ServerStore
	checker  port.ConnectivityChecker
	registry port.NetworkRegistry
	cache    port.ValidationCache
	cfg      *configloader.Config
	logger   *zap.Logger
}

// NewServerHandler creates a new instance of ServerHandler.
func NewServerHandler(
	store port.ServerStore,
	checker port.ConnectivityChecker,
	registry port.NetworkRegistry,
	cache port.ValidationCache,
	cfg *configloader.Config,
	logger *zap.Logger,
) *ServerHandler {
	return &ServerHandler{
		store:    store,
		checker:  checker,
		registry: registry,
		cache:    cache,
		cfg:      cfg,
		logger:   logger.Named("ServerHandler"),
	}
}

func (h *ServerHandler) currentServer() string {
	if h.cfg == nil {
		return ""
	}
	return h.cfg.Ethereum.CurrentServer
}

func (h *ServerHandler) toAPI(r entity.ServerRecord) APIServer {
	return APIServer{ServerRecord: r, Default: r.IsDefault(h.currentServer())}
}

// ListServers returns every configured server.
func (h *ServerHandler) ListServers(c *gin.Context) {
	records := h.store.List()
	out := make([]APIServer, 0, len(records))
	for _, r := range records {
		out = append(out, h.toAPI(r))
	}
	c.JSON(http.StatusOK, out)
}

// GetServer returns one server.
func (h *ServerHandler) GetServer(c *gin.Context) {
	r, err := h.store.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toAPI(r))
}

// CreateServer adds a server.
func (h *ServerHandler) CreateServer(c *gin.Context) {
	var r entity.ServerRecord
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: err.Error()})
		return
	}
	if err := h.store.Create(r); err != nil {
		h.writeError(c, err)
		return
	}
	metrics.ServersConfigured.Set(float64(len(h.store.List())))
	h.logger.Info("Server created", zap.String("id", r.ID))
	c.JSON(http.StatusCreated, h.toAPI(r))
}

// UpdateServer replaces a server. The id in the path is authoritative and cannot be changed.
func (h *ServerHandler) UpdateServer(c *gin.Context) {
	id := c.Param("id")
	var r entity.ServerRecord
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: err.Error()})
		return
	}
	if r.ID != "" && r.ID != id {
		c.JSON(http.StatusBadRequest, APIError{Error: "server id cannot be changed"})
		return
	}
	r.ID = id
	if err := h.store.Update(r); err != nil {
		h.writeError(c, err)
		return
	}
	h.cache.Forget(id)
	c.JSON(http.StatusOK, h.toAPI(r))
}

// DeleteServer removes a server.
func (h *ServerHandler) DeleteServer(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.Delete(id); err != nil {
		h.writeError(c, err)
		return
	}
	h.cache.Forget(id)
	metrics.ServersConfigured.Set(float64(len(h.store.List())))
	h.logger.Info("Server deleted", zap.String("id", id))
	c.Status(http.StatusNoContent)
}

// ValidateServer probes one server and caches the result.
func (h *ServerHandler) ValidateServer(c *gin.Context) {
	r, err := h.store.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	result := h.checker.Validate(c.Request.Context(), r)
	h.cache.Put(result)
	c.JSON(http.StatusOK, result)
}

// ValidateAllServers probes every enabled server.
func (h *ServerHandler) ValidateAllServers(c *gin.Context) {
	results := h.checker.ValidateAll(c.Request.Context(), h.store.List(), false)
	for _, r := range results {
		h.cache.Put(r)
	}
	c.JSON(http.StatusOK, results)
}

// GetServerStatus returns the last cached validation result.
func (h *ServerHandler) GetServerStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.store.Get(id); err != nil {
		h.writeError(c, err)
		return
	}
	result, ok := h.cache.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, APIError{Error: "server has not been validated recently"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetServerInfo returns the descriptive field set for a server.
// With ?address= the explorer row is the link for that account.
func (h *ServerHandler) GetServerInfo(c *gin.Context) {
	address := c.Query("address")
	if address != "" && !common.IsHexAddress(address) {
		c.JSON(http.StatusBadRequest, APIError{Error: "invalid address: " + address})
		return
	}
	r, err := h.store.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.DescribeServerForAddress(r, h.registry, h.currentServer(), address))
}

func (h *ServerHandler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, entity.ErrServerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrServerExists):
		status = http.StatusConflict
	case errors.Is(err, entity.ErrInvalidServer):
		status = http.StatusBadRequest
	default:
		h.logger.Error("Server store operation failed", zap.Error(err))
	}
	c.JSON(status, APIError{Error: err.Error()})
}
