package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ethereum_server/internal/app/port"
	"ethereum_server/internal/domain/entity"
	"ethereum_server/internal/infrastructure/configloader"
	"ethereum_server/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const defaultRPCCallTimeout = 10 * time.Second

// ConnectivityServiceImpl implements port.ConnectivityChecker.
type ConnectivityServiceImpl struct {
	dialer                port.NetworkVersionDialer
	logger                port.Logger
	rpcCallTimeout        time.Duration
	maxConcurrentRoutines int
	limiter               *rate.Limiter
}

// NewConnectivityService creates a new instance of ConnectivityServiceImpl.
func NewConnectivityService(dialer port.NetworkVersionDialer, l port.Logger, cfg *configloader.Config) *ConnectivityServiceImpl {
	s := &ConnectivityServiceImpl{
		dialer:                dialer,
		logger:                l,
		rpcCallTimeout:        defaultRPCCallTimeout,
		maxConcurrentRoutines: 1,
	}
	if cfg == nil {
		return s
	}
	if cfg.Performance.RPCCallTimeoutSeconds > 0 {
		s.rpcCallTimeout = time.Duration(cfg.Performance.RPCCallTimeoutSeconds) * time.Second
	}
	if cfg.Performance.MaxConcurrentRoutines > 0 {
		s.maxConcurrentRoutines = cfg.Performance.MaxConcurrentRoutines
	}
	if cfg.Performance.ProbesPerSecond > 0 {
		burst := cfg.Performance.ProbeBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Performance.ProbesPerSecond), burst)
	}
	return s
}

// Validate probes the server once and reports the outcome. It never panics or returns an error.
func (s *ConnectivityServiceImpl) Validate(ctx context.Context, record entity.ServerRecord) entity.ValidationResult {
	start := time.Now()
	err := s.probe(ctx, record)
	result := newValidationResult(record, err)
	metrics.ObserveValidation(string(result.Kind), time.Since(start))

	if result.Error {
		s.logger.Warn("Server validation failed",
			"server", record.ID, "url", record.URL, "kind", result.Kind, "error", err)
	} else {
		s.logger.Debug("Server validation succeeded", "server", record.ID, "url", record.URL)
	}
	return result
}

// ValidateAll validates records concurrently, bounded by max_concurrent_routines and
// throttled by the probe limiter. Results follow the order of the validated records.
// Disabled records are skipped unless includeDisabled is set.
func (s *ConnectivityServiceImpl) ValidateAll(ctx context.Context, records []entity.ServerRecord, includeDisabled bool) []entity.ValidationResult {
	selected := make([]entity.ServerRecord, 0, len(records))
	for _, r := range records {
		if r.IsEnabled() || includeDisabled {
			selected = append(selected, r)
		}
	}
	results := make([]entity.ValidationResult, len(selected))
	if len(selected) == 0 {
		return results
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.maxConcurrentRoutines)
	for i, record := range selected {
		eg.Go(func() error {
			if s.limiter != nil {
				if err := s.limiter.Wait(egCtx); err != nil {
					results[i] = newValidationResult(record, &entity.ConnectionError{URL: record.URL, Err: err})
					return nil
				}
			}
			// Validate не возвращает ошибок, поэтому группа не отменяется
			results[i] = s.Validate(egCtx, record)
			return nil
		})
	}
	_ = eg.Wait()

	failed := 0
	for _, r := range results {
		if r.Error {
			failed++
		}
	}
	s.logger.Info("Validated servers", "count", len(results), "failed", failed)
	return results
}

func (s *ConnectivityServiceImpl) probe(ctx context.Context, record entity.ServerRecord) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &entity.ConnectionError{URL: record.URL, Err: fmt.Errorf("panic during validation: %v", r)}
		}
	}()

	// один таймаут на весь запрос: dial + net_version
	callCtx, cancel := context.WithTimeout(ctx, s.rpcCallTimeout)
	defer cancel()

	client, err := s.dialer.Dial(callCtx, record.URL)
	if err != nil {
		return err
	}
	defer client.Close()

	raw, err := client.NetVersion(callCtx)
	if err != nil {
		return err
	}

	version, err := decodeNetworkVersion(raw)
	if err != nil {
		return err
	}

	if record.AcceptsAnyNetwork() { // "*" принимает любую сеть
		return nil
	}
	if version != record.NetworkID {
		return &entity.NetworkMismatchError{Expected: record.NetworkID, Reported: version}
	}
	return nil
}

// decodeNetworkVersion принимает только строковый результат JSON.
// Числа, null и объекты считаются ошибкой протокола.
func decodeNetworkVersion(raw []byte) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, `"`) {
		return "", &entity.ProtocolError{Raw: trimmed}
	}
	var version string
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(trimmed, &version); err != nil {
		return "", &entity.ProtocolError{Raw: trimmed}
	}
	return version, nil
}

func newValidationResult(record entity.ServerRecord, err error) entity.ValidationResult {
	if err == nil {
		return entity.ValidationResult{
			ServerID: record.ID,
			Message:  fmt.Sprintf("%s (%s) is up and listening on network %s", record.ID, record.URL, record.NetworkID),
		}
	}
	return entity.ValidationResult{
		ServerID: record.ID,
		Error:    true,
		Message:  fmt.Sprintf("Unable to connect to server %s. %s", record.Label, err.Error()),
		Kind:     failureKind(err),
	}
}

func failureKind(err error) entity.FailureKind {
	var protocolErr *entity.ProtocolError
	var mismatchErr *entity.NetworkMismatchError
	switch {
	case errors.As(err, &protocolErr):
		return entity.FailureProtocol
	case errors.As(err, &mismatchErr):
		return entity.FailureNetworkMismatch
	default:
		return entity.FailureConnection
	}
}
