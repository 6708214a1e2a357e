package storage

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// MediaStore uploads attachment files to the hosted media service and
// returns opaque locator URLs. Content is never inspected or downloaded
// by this service; only the locator is recorded against a media slot.
//
// Configured via MEDIA_CLOUD_NAME, MEDIA_API_KEY, MEDIA_API_SECRET and
// optionally MEDIA_FOLDER.
type MediaStore struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	Client    *http.Client
}

// NewMediaStoreFromEnv builds a MediaStore from environment variables.
func NewMediaStoreFromEnv() (*MediaStore, error) {
	m := &MediaStore{
		CloudName: os.Getenv("MEDIA_CLOUD_NAME"),
		APIKey:    os.Getenv("MEDIA_API_KEY"),
		APISecret: os.Getenv("MEDIA_API_SECRET"),
		Folder:    os.Getenv("MEDIA_FOLDER"),
		Client:    &http.Client{Timeout: 30 * time.Second},
	}
	if m.CloudName == "" || m.APIKey == "" || m.APISecret == "" {
		return nil, errors.New("media store not configured: MEDIA_CLOUD_NAME, MEDIA_API_KEY and MEDIA_API_SECRET are required")
	}
	return m, nil
}

// Upload sends one file to the media service. kind selects the upload
// endpoint ("image", "video"; audio rides the video pipeline upstream).
// Returns the secure locator URL for the stored object.
func (m *MediaStore) Upload(kind string, r io.Reader, publicID string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	endpoint := "https://api.cloudinary.com/v1_1/" + m.CloudName + "/" + kind + "/upload"

	finalPublicID := publicID
	if m.Folder != "" {
		finalPublicID = m.Folder + "/" + publicID
	}
	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	// Signature covers public_id and timestamp, per the signed-upload API.
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", finalPublicID, timestamp, m.APISecret)
	signature := fmt.Sprintf("%x", sha1.Sum([]byte(signatureString)))

	form := url.Values{}
	form.Add("file", "data:application/octet-stream;base64,"+base64.StdEncoding.EncodeToString(data))
	form.Add("api_key", m.APIKey)
	form.Add("public_id", finalPublicID)
	form.Add("timestamp", timestamp)
	form.Add("signature", signature)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := m.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("media upload: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("media upload response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("media upload failed with status %d", res.StatusCode)
	}

	var uploadRes struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &uploadRes); err != nil {
		return "", fmt.Errorf("media upload response: %w", err)
	}
	if uploadRes.Error.Message != "" {
		return "", fmt.Errorf("media upload rejected: %s", uploadRes.Error.Message)
	}
	if uploadRes.SecureURL != "" {
		return uploadRes.SecureURL, nil
	}
	return uploadRes.URL, nil
}
