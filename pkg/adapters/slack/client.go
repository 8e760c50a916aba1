//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=client.go -destination=mock.gen.go -package=slack
package slack

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/pubwatch/pubwatch/pkg/adapters"
	slackapi "github.com/slack-go/slack"
)

// PostMessageParams contains parameters for PostMessage.
type PostMessageParams struct {
	ChannelID string
	// Text is the plain fallback shown by notification surfaces that do
	// not render blocks.
	Text   string
	Blocks []slackapi.Block
}

// GetUploadURLParams contains parameters for GetUploadURL.
type GetUploadURLParams struct {
	Filename string
	Length   int
}

// UploadTicket is the collaborator's answer to an upload request: where
// to send the bytes and the identity the file will have once completed.
type UploadTicket struct {
	UploadURL string
	FileID    string
}

// CompleteUploadParams contains parameters for CompleteUpload.
type CompleteUploadParams struct {
	FileID          string
	Title           string
	ChannelID       string
	ThreadTimestamp string
}

// Client defines the notification surface pubwatch consumes: message
// posting plus the three file-upload primitives.
type Client interface {
	PostMessage(ctx context.Context, params PostMessageParams) (string, error)
	GetUploadURL(ctx context.Context, params GetUploadURLParams) (UploadTicket, error)
	TransferFile(ctx context.Context, uploadURL string, body []byte) error
	CompleteUpload(ctx context.Context, params CompleteUploadParams) error
}

// client implements Client using slack-go.
type client struct {
	api  *slackapi.Client
	http *http.Client
}

// New creates a Slack Web API client bound to the given bot token.
func New(token string) Client {
	hc := &http.Client{Timeout: adapters.RequestTimeout}
	return &client{
		api:  slackapi.New(token, slackapi.OptionHTTPClient(hc)),
		http: hc,
	}
}

// PostMessage delivers a block-based message to a channel and returns
// the message timestamp, which anchors the report thread.
func (c *client) PostMessage(ctx context.Context, params PostMessageParams) (string, error) {
	opts := []slackapi.MsgOption{slackapi.MsgOptionText(params.Text, false)}
	if len(params.Blocks) > 0 {
		opts = append(opts, slackapi.MsgOptionBlocks(params.Blocks...))
	}

	_, timestamp, err := c.api.PostMessageContext(ctx, params.ChannelID, opts...)
	if err != nil {
		return "", err
	}
	return timestamp, nil
}

// GetUploadURL asks for an upload slot sized to the artifact.
func (c *client) GetUploadURL(ctx context.Context, params GetUploadURLParams) (UploadTicket, error) {
	resp, err := c.api.GetUploadURLExternalContext(ctx, slackapi.GetUploadURLExternalParameters{
		FileName: params.Filename,
		FileSize: params.Length,
	})
	if err != nil {
		return UploadTicket{}, err
	}
	return UploadTicket{UploadURL: resp.UploadURL, FileID: resp.FileID}, nil
}

// TransferFile sends the whole artifact body to the upload URL handed
// out by GetUploadURL. The body is written in one request, whatever its
// size.
func (c *client) TransferFile(ctx context.Context, uploadURL string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building transfer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("upload host returned %d (%s)",
			resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return nil
}

// CompleteUpload finalizes the uploaded file and shares it, threaded
// under the report message when a thread timestamp is given.
func (c *client) CompleteUpload(ctx context.Context, params CompleteUploadParams) error {
	_, err := c.api.CompleteUploadExternalContext(ctx, slackapi.CompleteUploadExternalParameters{
		Files:           []slackapi.FileSummary{{ID: params.FileID, Title: params.Title}},
		Channel:         params.ChannelID,
		ThreadTimestamp: params.ThreadTimestamp,
	})
	return err
}
