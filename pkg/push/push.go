package push

import (
	"context"
	"fmt"
	"os"

	"pulse-backend/config"
	"pulse-backend/pkg/logger"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Client wraps FCM. When the service-account file is missing the client
// stays in mock mode: sends are logged and reported as delivered, so the
// rest of the system behaves identically with or without credentials.
type Client struct {
	messaging *messaging.Client
	enabled   bool
}

// New initializes the FCM client from config. Initialization failure
// degrades to mock mode rather than failing startup.
func New(ctx context.Context, cfg config.PushConfig) *Client {
	if cfg.CredentialsFile == "" {
		logger.Warn("push: no FCM credentials file configured, sends will be mocked")
		return &Client{}
	}
	if _, err := os.Stat(cfg.CredentialsFile); err != nil {
		logger.Warn("push: FCM credentials file not found, sends will be mocked",
			zap.String("path", cfg.CredentialsFile))
		return &Client{}
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		logger.Error("push: firebase init failed, sends will be mocked", zap.Error(err))
		return &Client{}
	}
	msg, err := app.Messaging(ctx)
	if err != nil {
		logger.Error("push: messaging client init failed, sends will be mocked", zap.Error(err))
		return &Client{}
	}

	logger.Info("push: FCM client initialized")
	return &Client{messaging: msg, enabled: true}
}

// Enabled reports whether real FCM delivery is configured.
func (c *Client) Enabled() bool { return c.enabled }

// Send delivers one notification to a device token. An empty token is
// skipped silently; mock mode logs and succeeds.
func (c *Client) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	if token == "" {
		return nil
	}

	if !c.enabled {
		logger.Info("push: mock send",
			zap.String("title", title),
			zap.String("body", body),
			zap.Any("data", data),
		)
		return nil
	}

	msg := &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:  data,
		Token: token,
	}
	if _, err := c.messaging.Send(ctx, msg); err != nil {
		return fmt.Errorf("send push failed: %w", err)
	}
	return nil
}
