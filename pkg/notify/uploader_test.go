package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/pubwatch/pubwatch/pkg/adapters/slack"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var uploadFixture = UploadParams{
	Filename:        "flutter_dependency_report_2026-08-23T09-00-00Z.xlsx",
	Title:           "Flutter Dependency Report 2026-08-23",
	Body:            []byte("workbook bytes"),
	ThreadTimestamp: "1724400000.000100",
}

func newUploader(t *testing.T) (Uploader, *slack.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	client := slack.NewMockClient(ctrl)
	return NewUploader(client, "C0123456789"), client
}

func TestUpload_PhasesRunInOrder(t *testing.T) {
	uploader, client := newUploader(t)
	ctx := context.Background()

	request := client.EXPECT().GetUploadURL(ctx, slack.GetUploadURLParams{
		Filename: uploadFixture.Filename,
		Length:   len(uploadFixture.Body),
	}).Return(slack.UploadTicket{UploadURL: "https://files.example.com/ab12", FileID: "F0123"}, nil)

	transfer := client.EXPECT().
		TransferFile(ctx, "https://files.example.com/ab12", uploadFixture.Body).
		Return(nil).
		After(request)

	client.EXPECT().CompleteUpload(ctx, slack.CompleteUploadParams{
		FileID:          "F0123",
		Title:           uploadFixture.Title,
		ChannelID:       "C0123456789",
		ThreadTimestamp: uploadFixture.ThreadTimestamp,
	}).Return(nil).After(transfer)

	require.NoError(t, uploader.Upload(ctx, uploadFixture))
}

func TestUpload_WithoutThreadTimestamp(t *testing.T) {
	uploader, client := newUploader(t)
	ctx := context.Background()

	params := uploadFixture
	params.ThreadTimestamp = ""

	client.EXPECT().GetUploadURL(ctx, gomock.Any()).
		Return(slack.UploadTicket{UploadURL: "https://files.example.com/ab12", FileID: "F0123"}, nil)
	client.EXPECT().TransferFile(ctx, gomock.Any(), gomock.Any()).Return(nil)
	client.EXPECT().CompleteUpload(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, completeParams slack.CompleteUploadParams) error {
			// The file lands at the channel root.
			require.Empty(t, completeParams.ThreadTimestamp)
			return nil
		})

	require.NoError(t, uploader.Upload(ctx, params))
}

func TestUpload_RequestPhaseError(t *testing.T) {
	uploader, client := newUploader(t)
	ctx := context.Background()

	client.EXPECT().GetUploadURL(ctx, gomock.Any()).
		Return(slack.UploadTicket{}, errors.New("invalid_auth"))

	err := uploader.Upload(ctx, uploadFixture)
	require.ErrorIs(t, err, ErrUploadRequest)
	require.Contains(t, err.Error(), "invalid_auth")
}

func TestUpload_RequestPhaseMissingFileID(t *testing.T) {
	uploader, client := newUploader(t)
	ctx := context.Background()

	// No transfer or completion expectations: a ticket without a file ID
	// aborts the handshake before any byte moves.
	client.EXPECT().GetUploadURL(ctx, gomock.Any()).
		Return(slack.UploadTicket{UploadURL: "https://files.example.com/ab12"}, nil)

	err := uploader.Upload(ctx, uploadFixture)
	require.ErrorIs(t, err, ErrUploadRequest)
}

func TestUpload_TransferPhaseError(t *testing.T) {
	uploader, client := newUploader(t)
	ctx := context.Background()

	client.EXPECT().GetUploadURL(ctx, gomock.Any()).
		Return(slack.UploadTicket{UploadURL: "https://files.example.com/ab12", FileID: "F0123"}, nil)
	client.EXPECT().TransferFile(ctx, gomock.Any(), gomock.Any()).
		Return(errors.New("upload host returned 403 (Forbidden)"))

	err := uploader.Upload(ctx, uploadFixture)
	require.ErrorIs(t, err, ErrUploadTransfer)
	require.NotErrorIs(t, err, ErrUploadRequest)
}

func TestUpload_CompletionPhaseError(t *testing.T) {
	uploader, client := newUploader(t)
	ctx := context.Background()

	client.EXPECT().GetUploadURL(ctx, gomock.Any()).
		Return(slack.UploadTicket{UploadURL: "https://files.example.com/ab12", FileID: "F0123"}, nil)
	client.EXPECT().TransferFile(ctx, gomock.Any(), gomock.Any()).Return(nil)
	client.EXPECT().CompleteUpload(ctx, gomock.Any()).Return(errors.New("file_not_found"))

	err := uploader.Upload(ctx, uploadFixture)
	require.ErrorIs(t, err, ErrUploadComplete)
	require.Contains(t, err.Error(), "file_not_found")
}
