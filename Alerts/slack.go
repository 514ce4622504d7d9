package Alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"SpeedWatch/Models"
)

// SlackSink posts notifications to a Slack channel.
// Required Bot Token Scopes:
// - chat:write
// - chat:write.public (post without being invited)
type SlackSink struct {
	Token   string
	Channel string
	BaseURL string
	client  *http.Client
}

type slackMessage struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
	Parse   string `json:"parse,omitempty"`
}

type slackResponse struct {
	OK    bool   `json:"ok"`
	TS    string `json:"ts,omitempty"`
	Error string `json:"error,omitempty"`
}

func NewSlackSink(token, channel string) *SlackSink {
	return &SlackSink{
		Token:   token,
		Channel: channel,
		BaseURL: "https://slack.com/api",
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *SlackSink) Deliver(ctx context.Context, n *Models.Notification) error {
	jsonData, err := json.Marshal(slackMessage{
		Channel: s.Channel,
		Text:    slackText(n),
		Parse:   "full",
	})
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/chat.postMessage", bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.Token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	var slackResp slackResponse
	if err := json.Unmarshal(body, &slackResp); err != nil {
		return fmt.Errorf("error unmarshaling response: %w", err)
	}
	if !slackResp.OK {
		return fmt.Errorf("slack API error: %s", slackResp.Error)
	}
	return nil
}

func slackText(n *Models.Notification) string {
	return fmt.Sprintf("%s *%s* %s", levelEmoji(n.Level), n.Source, n.Message)
}

func levelEmoji(level Models.NotificationLevel) string {
	switch level {
	case Models.LevelError:
		return "🔴"
	case Models.LevelSuccess:
		return "🟢"
	default:
		return "🔵"
	}
}
