package testfixtures

import (
	"context"
	"sync"

	"github.com/example/dorm-duty-bot/internal/conversation"
)

// SentMessage records one outbound prompt captured by the gateway fixture.
type SentMessage struct {
	ChatID  string
	Text    string
	Options []conversation.Option
}

// SentDocument records one outbound artifact delivery.
type SentDocument struct {
	ChatID   string
	Delivery conversation.DocumentDelivery
}

// Gateway is a recording transport.Gateway for dispatcher tests.
type Gateway struct {
	mu        sync.Mutex
	Messages  []SentMessage
	Documents []SentDocument

	MessageErr  error
	DocumentErr error
}

// NewGateway returns an empty recording gateway.
func NewGateway() *Gateway {
	return &Gateway{}
}

// SendMessage implements transport.Gateway.
func (g *Gateway) SendMessage(ctx context.Context, chatID string, text string, options []conversation.Option) error {
	if g.MessageErr != nil {
		return g.MessageErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Messages = append(g.Messages, SentMessage{ChatID: chatID, Text: text, Options: append([]conversation.Option(nil), options...)})
	return nil
}

// SendDocument implements transport.Gateway.
func (g *Gateway) SendDocument(ctx context.Context, chatID string, delivery conversation.DocumentDelivery) error {
	if g.DocumentErr != nil {
		return g.DocumentErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Documents = append(g.Documents, SentDocument{ChatID: chatID, Delivery: delivery})
	return nil
}
