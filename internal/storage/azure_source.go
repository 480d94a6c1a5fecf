package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// AzureFrameSource reads frames from Azure blob storage. Frame references
// take the form azure://<container>/<blob path>.
type AzureFrameSource struct {
	client *azblob.Client
}

// NewAzureFrameSource creates an Azure blob frame source with shared key
// credentials.
func NewAzureFrameSource(accountName, accountKey string) (*AzureFrameSource, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("azure client: %w", err)
	}

	return &AzureFrameSource{client: client}, nil
}

func (s *AzureFrameSource) GetFrame(ctx context.Context, frameRef string) (image.Image, error) {
	container, blob, err := parseBlobRef(frameRef)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.DownloadStream(ctx, container, blob, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, frameRef)
		}
		return nil, fmt.Errorf("blob download failed: %w", err)
	}

	reader := resp.Body
	defer reader.Close()

	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUndecodable, frameRef, err)
	}

	return img, nil
}

// parseBlobRef splits azure://container/path/to/blob.jpg.
func parseBlobRef(frameRef string) (container, blob string, err error) {
	parsed, err := url.Parse(frameRef)
	if err != nil || parsed.Scheme != "azure" || parsed.Host == "" || len(parsed.Path) < 2 {
		return "", "", fmt.Errorf("invalid azure blob reference: %q", frameRef)
	}
	return parsed.Host, parsed.Path[1:], nil
}
