package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Blob storage buckets.
const (
	BucketSignatures = "signatures"
	BucketLogos      = "report-logos"
)

// UploadBlob stores raw bytes under bucket/path in the blob service and
// returns the public URL of the object. Uploads go through the same retry
// policy as row operations.
func (c *Client) UploadBlob(ctx context.Context, bucket, path, contentType string, data []byte) (string, error) {
	objectPath := fmt.Sprintf("/storage/v1/object/%s/%s", bucket, strings.TrimLeft(path, "/"))

	err := c.retry.Do(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+objectPath, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("creating upload request: %w", err)
		}

		req.Header.Set("apikey", c.anonKey)
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		} else {
			req.Header.Set("Authorization", "Bearer "+c.anonKey)
		}
		req.Header.Set("Content-Type", contentType)
		// Re-uploading the same signature replaces it.
		req.Header.Set("x-upsert", "true")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("uploading %s/%s: %w", bucket, path, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized {
			return &AuthError{Message: "session expired or invalid credentials"}
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body, _ := io.ReadAll(resp.Body)
			return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, bucket, strings.TrimLeft(path, "/")), nil
}

// UploadSignature stores a signature image for one user and date and
// returns its public URL.
func (c *Client) UploadSignature(ctx context.Context, userID, date string, png []byte) (string, error) {
	return c.UploadBlob(ctx, BucketSignatures, fmt.Sprintf("%s/%s.png", userID, date), "image/png", png)
}

// UploadLogo stores a report header logo under the given name and
// returns its public URL. Logos are shared across users.
func (c *Client) UploadLogo(ctx context.Context, name string, png []byte) (string, error) {
	return c.UploadBlob(ctx, BucketLogos, fmt.Sprintf("%s.png", name), "image/png", png)
}
