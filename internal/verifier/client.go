package verifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/shenikar/geoface_attendance/internal/models"
)

var dataURLPrefix = regexp.MustCompile(`^data:image/(png|jpeg|jpg);base64,`)

// Client обращается к HTTP-сервису распознавания
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// NewClient создает клиента. Таймаут http.Client - верхняя граница,
// основной лимит задает WithTimeout.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type imagePayload struct {
	Image    string `json:"image"`
	MimeType string `json:"mime_type"`
}

// EncodeImage переводит кадр в base64 без префикса data URL.
// Если кадр уже пришел строкой data URL, префикс отрезается.
func EncodeImage(image []byte) string {
	if dataURLPrefix.Match(image) {
		return dataURLPrefix.ReplaceAllString(string(image), "")
	}
	return base64.StdEncoding.EncodeToString(image)
}

// ExtractIdentity читает номер и имя ученика с фотографии билета
func (c *Client) ExtractIdentity(ctx context.Context, image []byte) (ExtractedIdentity, error) {
	var out struct {
		StudentID *string `json:"studentId"`
		Name      *string `json:"name"`
		Valid     *bool   `json:"valid"`
	}
	if err := c.post(ctx, "/extract-identity", image, &out); err != nil {
		return ExtractedIdentity{}, err
	}
	if out.Valid == nil {
		return ExtractedIdentity{}, fmt.Errorf("%w: missing valid flag", ErrMalformedResponse)
	}

	identity := ExtractedIdentity{Valid: *out.Valid}
	if out.StudentID != nil {
		identity.StudentID = strings.TrimSpace(*out.StudentID)
	}
	if out.Name != nil {
		identity.StudentName = strings.TrimSpace(*out.Name)
	}
	// valid без номера или имени использовать нельзя
	if identity.Valid && (identity.StudentID == "" || identity.StudentName == "") {
		return ExtractedIdentity{}, fmt.Errorf("%w: valid identity without id or name", ErrMalformedResponse)
	}
	return identity, nil
}

// VerifySelfie проверяет, что на селфи живой человек и лицо хорошо видно
func (c *Client) VerifySelfie(ctx context.Context, image []byte) (SelfieVerdict, error) {
	var out struct {
		Status *string `json:"status"`
		Note   string  `json:"note"`
	}
	if err := c.post(ctx, "/verify-selfie", image, &out); err != nil {
		return SelfieVerdict{}, err
	}
	if out.Status == nil {
		return SelfieVerdict{}, fmt.Errorf("%w: missing status", ErrMalformedResponse)
	}

	status := models.VerificationStatus(*out.Status)
	if status != models.StatusVerified && status != models.StatusRejected {
		return SelfieVerdict{}, fmt.Errorf("%w: unexpected status %q", ErrMalformedResponse, *out.Status)
	}
	return SelfieVerdict{Status: status, Note: out.Note}, nil
}

// Health проверяет доступность сервиса
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("verifier unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("verifier unhealthy: %s", resp.Status)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, image []byte, out any) error {
	if len(image) == 0 {
		return fmt.Errorf("verifier: image required")
	}

	body, err := json.Marshal(imagePayload{Image: EncodeImage(image), MimeType: "image/jpeg"})
	if err != nil {
		return fmt.Errorf("verifier: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("verifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("verifier error %s: %s", resp.Status, string(bodyBytes))
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
}
