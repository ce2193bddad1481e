// Package alert gates SMS notifications behind a per-recipient cooldown so a
// flapping vehicle cannot flood its owner.
package alert

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/vigilstack/vigil/core/location"
	"github.com/vigilstack/vigil/core/logger"
	coremetrics "github.com/vigilstack/vigil/core/metrics"
	"github.com/vigilstack/vigil/core/model"
	"github.com/vigilstack/vigil/internal/eventbus"
)

// SendResult reports the outcome of one pass through the gate.
type SendResult struct {
	Success           bool      `json:"success"`
	Message           string    `json:"message"`
	SID               string    `json:"sid,omitempty"`
	RetryAfterSeconds int       `json:"retry_after_seconds,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
}

// Gate enforces the cooldown and composes alert messages. Cooldown expiry is
// computed lazily from wall-clock deltas; there are no background timers.
type Gate struct {
	notifier Notifier
	cooldown time.Duration
	log      logger.Logger
	bus      *eventbus.TypedBus[coremetrics.AlertEvent]

	mu       sync.Mutex
	lastSend map[string]time.Time
	now      func() time.Time
}

// NewGate creates a Gate. A nil notifier means SMS delivery is not configured;
// every send then reports that without touching cooldown state. The bus may
// be nil.
func NewGate(notifier Notifier, cooldown time.Duration, log logger.Logger, bus *eventbus.TypedBus[coremetrics.AlertEvent]) *Gate {
	return &Gate{
		notifier: notifier,
		cooldown: cooldown,
		log:      log,
		bus:      bus,
		lastSend: map[string]time.Time{},
		now:      time.Now,
	}
}

// Configured reports whether a delivery collaborator is present.
func (g *Gate) Configured() bool { return g.notifier != nil }

// Ping checks connectivity to the delivery provider without sending anything
// and without touching cooldown state.
func (g *Gate) Ping(ctx context.Context) error {
	if g.notifier == nil {
		return errors.New("notifier not configured")
	}
	return g.notifier.Ping(ctx)
}

// Send delivers an alert to the recipient unless the gate is cooling for it.
// The cooldown slot is consumed as soon as an attempt reaches delivery, even
// when the provider reports a failure.
func (g *Gate) Send(ctx context.Context, recipient string, failureProb, rul float64, severity model.Severity, nearest *location.ServiceCenter) SendResult {
	if g.notifier == nil {
		g.record(severity, coremetrics.AlertOutcomeNotConfigured)
		return SendResult{Success: false, Message: "notifier not configured", Timestamp: g.now()}
	}

	g.mu.Lock()
	now := g.now()
	if last, ok := g.lastSend[recipient]; ok {
		if remaining := g.cooldown - now.Sub(last); remaining > 0 {
			g.mu.Unlock()
			g.record(severity, coremetrics.AlertOutcomeRateLimited)
			return SendResult{
				Success:           false,
				Message:           "rate limited",
				RetryAfterSeconds: int(math.Ceil(remaining.Seconds())),
				Timestamp:         now,
			}
		}
	}
	// The slot is consumed here, before delivery, so two concurrent sends to
	// the same recipient cannot both pass the gate.
	g.lastSend[recipient] = now
	g.mu.Unlock()

	body := ComposeMessage(failureProb, rul, severity, nearest)
	sid, err := g.notifier.Send(ctx, recipient, body)
	if err != nil {
		g.log.Errorf("alert delivery to %s failed: %v", recipient, err)
		g.record(severity, coremetrics.AlertOutcomeFailed)
		return SendResult{Success: false, Message: fmt.Sprintf("delivery failed: %v", err), Timestamp: now}
	}
	g.log.Infof("alert sent to %s (severity=%s)", recipient, severity)
	g.record(severity, coremetrics.AlertOutcomeSent)
	return SendResult{Success: true, Message: "alert sent", SID: sid, Timestamp: now}
}

func (g *Gate) record(severity model.Severity, outcome string) {
	if g.bus == nil {
		return
	}
	g.bus.Publish(coremetrics.AlertEvent{Severity: string(severity), Outcome: outcome, Time: g.now()})
}

// ComposeMessage renders the alert body. FailureProb is a percentage, rul is
// in cycles.
func ComposeMessage(failureProb, rul float64, severity model.Severity, nearest *location.ServiceCenter) string {
	var b strings.Builder
	b.WriteString("Vehicle Health Alert\n\n")
	switch severity {
	case model.SeverityCritical:
		b.WriteString("CRITICAL: Immediate maintenance required!\n\n")
	case model.SeverityWarning:
		b.WriteString("WARNING: Schedule maintenance soon.\n\n")
	}
	b.WriteString("Health Metrics:\n")
	fmt.Fprintf(&b, "- Failure Risk: %.1f%%\n", failureProb)
	fmt.Fprintf(&b, "- Remaining Life: %.0f cycles\n\n", rul)
	if nearest != nil {
		b.WriteString("Nearest Service Center:\n")
		fmt.Fprintf(&b, "%s\n", nearest.Name)
		fmt.Fprintf(&b, "Distance: %.2f km\n\n", nearest.DistanceKm)
	}
	b.WriteString("Open your dashboard for detailed analysis.")
	return b.String()
}
