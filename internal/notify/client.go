package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectConversationLoaded is published after every successful load.
const SubjectConversationLoaded = "backupviewer.conversation.loaded"

// LoadedEvent announces that a new conversation replaced the previous one.
type LoadedEvent struct {
	ConversationID string    `json:"conversation_id"`
	Source         string    `json:"source"`
	MessageCount   int       `json:"message_count"`
	PrimaryUser    string    `json:"primary_user,omitempty"`
	Skipped        int       `json:"skipped"`
	LoadedAt       time.Time `json:"loaded_at"`
}

type Client struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewClient(url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.Name("backupviewer"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

// PublishLoaded announces evt on SubjectConversationLoaded.
func (c *Client) PublishLoaded(evt LoadedEvent) error {
	if err := c.Publish(SubjectConversationLoaded, evt); err != nil {
		return fmt.Errorf("publish %s: %w", SubjectConversationLoaded, err)
	}
	c.logger.Debug("published load event", "conversation_id", evt.ConversationID)
	return nil
}

func (c *Client) Close() {
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
	}
}
