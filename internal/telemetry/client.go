package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/student-approval/internal/config"
)

// Client ships diagnostic events to the log sink. It is best-effort by
// contract: Emit never returns an error and never blocks the caller beyond
// queueing, so a telemetry failure cannot propagate into application flows.
type Client struct {
	sinkURL string
	http    *http.Client
	logger  *zap.Logger
	queue   chan payload
	done    chan struct{}
}

type payload struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

// NewClient starts the sender goroutine.
func NewClient(cfg config.TelemetryConfig, logger *zap.Logger) *Client {
	c := &Client{
		sinkURL: cfg.SinkURL,
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
		queue:   make(chan payload, 256),
		done:    make(chan struct{}),
	}
	go c.run()
	return c
}

// Emit queues one event. When the queue is full the event is dropped; losing
// telemetry is preferable to blocking the caller.
func (c *Client) Emit(level, message string, data any) {
	p := payload{
		Level:     level,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
	select {
	case c.queue <- p:
	default:
		c.logger.Debug("telemetry queue full, dropping event", zap.String("message", message))
	}
}

// Close stops the sender after draining queued events.
func (c *Client) Close() {
	close(c.queue)
	<-c.done
}

func (c *Client) run() {
	defer close(c.done)
	for p := range c.queue {
		c.send(p)
	}
}

func (c *Client) send(p payload) {
	body, err := json.Marshal(p)
	if err != nil {
		c.logger.Debug("telemetry marshal failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.http.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sinkURL+"/api/logs", bytes.NewReader(body))
	if err != nil {
		c.logger.Debug("telemetry request build failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// Sink unreachable. Swallowed so logging can never crash the caller.
		c.logger.Debug("telemetry send failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("telemetry sink rejected event", zap.Int("status", resp.StatusCode))
	}
}
