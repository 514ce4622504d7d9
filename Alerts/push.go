package Alerts

import (
	"context"
	"fmt"
	"strconv"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"SpeedWatch/Models"
)

// PushSink mirrors notifications to an operator device over FCM.
type PushSink struct {
	client *messaging.Client
	token  string
}

// NewPushSink initializes Firebase from a service account file.
func NewPushSink(ctx context.Context, credentialsFile, token string) (*PushSink, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Messaging client: %w", err)
	}
	return &PushSink{client: client, token: token}, nil
}

func (p *PushSink) Deliver(ctx context.Context, n *Models.Notification) error {
	if _, err := p.client.Send(ctx, pushMessage(p.token, n)); err != nil {
		return fmt.Errorf("error sending Firebase message: %w", err)
	}
	return nil
}

func pushMessage(token string, n *Models.Notification) *messaging.Message {
	priority := "normal"
	color := "#2E7D32"
	if n.Level == Models.LevelError {
		priority = "high"
		color = "#FF0000"
	}
	return &messaging.Message{
		Token: token,
		Data: map[string]string{
			"id":      strconv.FormatUint(uint64(n.ID), 10),
			"level":   string(n.Level),
			"source":  n.Source,
			"message": n.Message,
		},
		Notification: &messaging.Notification{
			Title: "SpeedWatch",
			Body:  n.Message,
		},
		Android: &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				Color: color,
				Sound: "default",
			},
			Priority: priority,
		},
	}
}
