// internal/common/camunda/client.go
package camunda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scriptgen-workers/internal/common/config"
	"scriptgen-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Client wraps the Zeebe gRPC client with connection retry and a health check.
type Client struct {
	zbc.Client
	requestTimeout time.Duration
}

// RetryConfig defines retry behavior for transient connection failures.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var DefaultRetryConfig = &RetryConfig{
	MaxRetries: 10,
	BaseDelay:  2 * time.Second,
	MaxDelay:   30 * time.Second,
}

// Connect creates the Zeebe client and waits until the broker answers a
// topology request, backing off between attempts.
func Connect(ctx context.Context, cfg config.CamundaConfig, retry *RetryConfig, log logger.Logger) (*Client, error) {
	if retry == nil {
		retry = DefaultRetryConfig
	}
	requestTimeout := config.GetDuration(cfg.RequestTimeout)
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}

	var lastErr error
	for attempt := 0; attempt <= retry.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := retryDelay(retry, attempt-1)
			log.Warn("zeebe not reachable, retrying", map[string]interface{}{
				"attempt":     attempt,
				"nextRetryIn": delay.String(),
				"error":       lastErr.Error(),
			})
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("zeebe connect cancelled after %d attempts: %w", attempt, ctx.Err())
			}
		}

		c, err := zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.BrokerAddress,
			UsePlaintextConnection: true,
		})
		if err != nil {
			lastErr = err
			continue
		}

		client := &Client{Client: c, requestTimeout: requestTimeout}
		if err := client.HealthCheck(ctx); err != nil {
			_ = c.Close()
			lastErr = err
			if !isRetryableZeebeError(err) {
				break
			}
			continue
		}
		return client, nil
	}

	return nil, fmt.Errorf("failed to connect to Zeebe broker at %s: %w", cfg.BrokerAddress, lastErr)
}

// HealthCheck sends a topology request to the broker.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	if _, err := c.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}

func retryDelay(retry *RetryConfig, attempt int) time.Duration {
	delay := retry.BaseDelay * time.Duration(1<<attempt)
	if delay > retry.MaxDelay || delay <= 0 {
		delay = retry.MaxDelay
	}
	return delay
}

func isRetryableZeebeError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, phrase := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"deadline exceeded",
		"unavailable",
		"unreachable",
		"broken pipe",
	} {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
