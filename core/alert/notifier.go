package alert

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notifier delivers a composed message to a recipient. Implementations wrap
// an SMS provider; the gate never depends on provider specifics.
type Notifier interface {
	// Send delivers the body and returns the provider-assigned message id.
	Send(ctx context.Context, recipient, body string) (string, error)

	// Ping verifies the provider is reachable with the configured credentials.
	Ping(ctx context.Context) error
}

// MockNotifier records sent messages and optionally fails every send.
type MockNotifier struct {
	mu       sync.Mutex
	Messages []MockMessage
	Err      error
}

// MockMessage is one message captured by MockNotifier.
type MockMessage struct {
	Recipient string
	Body      string
	SID       string
	Time      time.Time
}

func (m *MockNotifier) Send(_ context.Context, recipient, body string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	sid := uuid.NewString()
	m.Messages = append(m.Messages, MockMessage{Recipient: recipient, Body: body, SID: sid, Time: time.Now()})
	return sid, nil
}

func (m *MockNotifier) Ping(context.Context) error { return m.Err }

// Sent returns a copy of the captured messages.
func (m *MockNotifier) Sent() []MockMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockMessage, len(m.Messages))
	copy(out, m.Messages)
	return out
}
