package alert

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vigilstack/vigil/core/location"
	coremetrics "github.com/vigilstack/vigil/core/metrics"
	"github.com/vigilstack/vigil/core/model"
	"github.com/vigilstack/vigil/infra/logger"
	"github.com/vigilstack/vigil/internal/eventbus"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestGate(n Notifier, cooldown time.Duration) (*Gate, *fakeClock) {
	g := NewGate(n, cooldown, logger.NopLogger{}, nil)
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	g.now = clock.Now
	return g, clock
}

func TestGate_NotConfigured(t *testing.T) {
	g, _ := newTestGate(nil, time.Hour)
	res := g.Send(context.Background(), "+15550001", 80, 20, model.SeverityCritical, nil)
	if res.Success {
		t.Fatalf("expected failure without notifier")
	}
	if res.Message != "notifier not configured" {
		t.Fatalf("unexpected message %q", res.Message)
	}
}

func TestGate_CooldownCycle(t *testing.T) {
	notifier := &MockNotifier{}
	g, clock := newTestGate(notifier, time.Hour)

	first := g.Send(context.Background(), "+15550001", 80, 20, model.SeverityCritical, nil)
	if !first.Success {
		t.Fatalf("first send failed: %+v", first)
	}
	if first.SID == "" {
		t.Fatalf("expected provider id on success")
	}

	second := g.Send(context.Background(), "+15550001", 80, 20, model.SeverityCritical, nil)
	if second.Success {
		t.Fatalf("expected rate limit on immediate retry")
	}
	if second.Message != "rate limited" {
		t.Fatalf("unexpected message %q", second.Message)
	}
	if second.RetryAfterSeconds <= 0 {
		t.Fatalf("expected positive retry_after_seconds, got %d", second.RetryAfterSeconds)
	}

	clock.Advance(time.Hour + time.Second)
	third := g.Send(context.Background(), "+15550001", 80, 20, model.SeverityCritical, nil)
	if !third.Success {
		t.Fatalf("expected send after cooldown: %+v", third)
	}
	if len(notifier.Sent()) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(notifier.Sent()))
	}
}

func TestGate_RecipientsIndependent(t *testing.T) {
	g, _ := newTestGate(&MockNotifier{}, time.Hour)
	if res := g.Send(context.Background(), "a", 80, 20, model.SeverityCritical, nil); !res.Success {
		t.Fatalf("first recipient blocked: %+v", res)
	}
	if res := g.Send(context.Background(), "b", 80, 20, model.SeverityCritical, nil); !res.Success {
		t.Fatalf("second recipient blocked: %+v", res)
	}
}

func TestGate_DeliveryFailureConsumesSlot(t *testing.T) {
	notifier := &MockNotifier{Err: errors.New("provider rejected")}
	g, _ := newTestGate(notifier, time.Hour)

	first := g.Send(context.Background(), "+15550001", 80, 20, model.SeverityCritical, nil)
	if first.Success {
		t.Fatalf("expected delivery failure")
	}
	// A failed attempt still records a timestamp; the retry is rate limited.
	second := g.Send(context.Background(), "+15550001", 80, 20, model.SeverityCritical, nil)
	if second.Message != "rate limited" {
		t.Fatalf("expected rate limit after failed attempt, got %q", second.Message)
	}
}

func TestGate_ConcurrentSendsSingleDelivery(t *testing.T) {
	notifier := &MockNotifier{}
	g, _ := newTestGate(notifier, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Send(context.Background(), "+15550001", 80, 20, model.SeverityCritical, nil)
		}()
	}
	wg.Wait()
	if n := len(notifier.Sent()); n != 1 {
		t.Fatalf("expected exactly 1 delivery, got %d", n)
	}
}

func TestGate_PublishesOutcomes(t *testing.T) {
	bus := eventbus.NewTyped[coremetrics.AlertEvent]()
	sub := bus.Subscribe()
	g := NewGate(&MockNotifier{}, time.Hour, logger.NopLogger{}, bus)
	g.Send(context.Background(), "+15550001", 80, 20, model.SeverityWarning, nil)
	select {
	case ev := <-sub:
		if ev.Outcome != coremetrics.AlertOutcomeSent || ev.Severity != "warning" {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatalf("no alert event published")
	}
}

func TestComposeMessage(t *testing.T) {
	open := true
	center := &location.ServiceCenter{Name: "Downtown Service Center", DistanceKm: 1.2, IsOpen: &open}
	body := ComposeMessage(75.5, 25, model.SeverityCritical, center)
	for _, want := range []string{
		"CRITICAL: Immediate maintenance required!",
		"Failure Risk: 75.5%",
		"Remaining Life: 25 cycles",
		"Downtown Service Center",
		"Distance: 1.20 km",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("message missing %q:\n%s", want, body)
		}
	}

	normal := ComposeMessage(10, 200, model.SeverityNormal, nil)
	if strings.Contains(normal, "CRITICAL") || strings.Contains(normal, "WARNING") {
		t.Fatalf("normal severity must not carry an urgency line:\n%s", normal)
	}
	if strings.Contains(normal, "Nearest Service Center") {
		t.Fatalf("message must omit center block when none supplied:\n%s", normal)
	}
}
