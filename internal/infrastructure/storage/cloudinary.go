package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// CloudinaryStorage implements domain.FileStorage against Cloudinary's
// unsigned upload REST endpoint.
type CloudinaryStorage struct {
	uploadURL    string
	uploadPreset string
	client       *http.Client
}

// NewCloudinaryStorage creates a new file storage client.
func NewCloudinaryStorage(uploadURL, uploadPreset string) domain.FileStorage {
	return &CloudinaryStorage{
		uploadURL:    uploadURL,
		uploadPreset: uploadPreset,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload implements domain.FileStorage
func (s *CloudinaryStorage) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	if s.uploadURL == "" {
		return "", fmt.Errorf("file storage is not configured")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "upload")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	_ = writer.WriteField("upload_preset", s.uploadPreset)
	_ = writer.WriteField("folder", folder)
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.uploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload file: unexpected status %d", resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("upload file decode: %w", err)
	}
	return parsed.SecureURL, nil
}
