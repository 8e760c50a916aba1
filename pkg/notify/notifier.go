package notify

import (
	"context"
	"fmt"

	"github.com/pubwatch/pubwatch/pkg/adapters/slack"
	"github.com/pubwatch/pubwatch/pkg/report"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=notifier.go -destination=mock_notifier.gen.go -package=notify

// Notifier delivers the report message to the team channel.
type Notifier interface {
	// Post sends the composed report message and returns its timestamp,
	// which anchors the thread the workbook is attached to.
	Post(ctx context.Context, rep *report.Report) (string, error)
}

type notifier struct {
	client    slack.Client
	channelID string
}

// NewNotifier creates a Notifier posting to the given channel.
func NewNotifier(client slack.Client, channelID string) Notifier {
	return &notifier{client: client, channelID: channelID}
}

// Post composes and delivers the report message.
func (n *notifier) Post(ctx context.Context, rep *report.Report) (string, error) {
	msg := Compose(rep)
	timestamp, err := n.client.PostMessage(ctx, slack.PostMessageParams{
		ChannelID: n.channelID,
		Text:      msg.Text,
		Blocks:    msg.Blocks,
	})
	if err != nil {
		return "", fmt.Errorf("posting report message: %w", err)
	}
	return timestamp, nil
}
