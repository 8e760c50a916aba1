package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/pubwatch/pubwatch/pkg/adapters/slack"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=uploader.go -destination=mock_uploader.gen.go -package=notify

// Each handshake phase fails with its own sentinel so callers can tell
// from the log which step the collaborator rejected.
var (
	ErrUploadRequest  = errors.New("upload request phase failed")
	ErrUploadTransfer = errors.New("upload transfer phase failed")
	ErrUploadComplete = errors.New("upload completion phase failed")
)

// UploadParams contains parameters for Upload.
type UploadParams struct {
	Filename string
	Title    string
	Body     []byte
	// ThreadTimestamp anchors the file under the report message. Empty
	// attaches it at the channel root.
	ThreadTimestamp string
}

// Uploader attaches a binary artifact to the team channel through the
// external upload handshake.
type Uploader interface {
	Upload(ctx context.Context, params UploadParams) error
}

type uploader struct {
	client    slack.Client
	channelID string
}

// NewUploader creates an Uploader sharing files into the given channel.
func NewUploader(client slack.Client, channelID string) Uploader {
	return &uploader{client: client, channelID: channelID}
}

// Upload runs the three-phase handshake strictly in order: request an
// upload slot sized to the body, transfer the bytes in one PUT, then
// complete to make the file visible. No phase is retried; the first
// failure aborts the remaining phases.
func (u *uploader) Upload(ctx context.Context, params UploadParams) error {
	ticket, err := u.client.GetUploadURL(ctx, slack.GetUploadURLParams{
		Filename: params.Filename,
		Length:   len(params.Body),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUploadRequest, err)
	}
	if ticket.UploadURL == "" || ticket.FileID == "" {
		return fmt.Errorf("%w: collaborator returned no upload URL or file ID", ErrUploadRequest)
	}

	if err := u.client.TransferFile(ctx, ticket.UploadURL, params.Body); err != nil {
		return fmt.Errorf("%w: %v", ErrUploadTransfer, err)
	}

	if err := u.client.CompleteUpload(ctx, slack.CompleteUploadParams{
		FileID:          ticket.FileID,
		Title:           params.Title,
		ChannelID:       u.channelID,
		ThreadTimestamp: params.ThreadTimestamp,
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrUploadComplete, err)
	}
	return nil
}
