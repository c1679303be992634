package verifier

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shenikar/geoface_attendance/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient поднимает тестовый сервер с заданным ответом
func newTestClient(t *testing.T, status int, body string) (*Client, *imagePayload) {
	t.Helper()
	received := &imagePayload{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(received)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "secret"), received
}

func TestExtractIdentity_Success(t *testing.T) {
	client, received := newTestClient(t, http.StatusOK, `{"studentId":" STU001 ","name":"Jane Doe","valid":true}`)

	identity, err := client.ExtractIdentity(context.Background(), []byte("jpeg-bytes"))

	require.NoError(t, err)
	assert.Equal(t, ExtractedIdentity{StudentID: "STU001", StudentName: "Jane Doe", Valid: true}, identity)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("jpeg-bytes")), received.Image)
	assert.Equal(t, "image/jpeg", received.MimeType)
}

func TestExtractIdentity_InvalidCardIsNotAnError(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, `{"studentId":"","name":"","valid":false}`)

	identity, err := client.ExtractIdentity(context.Background(), []byte("jpeg"))

	require.NoError(t, err)
	assert.False(t, identity.Valid)
}

func TestExtractIdentity_Malformed(t *testing.T) {
	bodies := []string{
		`{"studentId":"STU001","name":"Jane"}`,
		`{"studentId":"","name":"Jane","valid":true}`,
		`not json`,
		``,
	}
	for _, body := range bodies {
		client, _ := newTestClient(t, http.StatusOK, body)

		_, err := client.ExtractIdentity(context.Background(), []byte("jpeg"))

		require.Error(t, err, body)
		assert.True(t, errors.Is(err, ErrMalformedResponse), body)
	}
}

func TestExtractIdentity_ServiceError(t *testing.T) {
	client, _ := newTestClient(t, http.StatusBadGateway, `upstream down`)

	_, err := client.ExtractIdentity(context.Background(), []byte("jpeg"))

	require.Error(t, err)
	assert.ErrorContains(t, err, "upstream down")
	assert.False(t, errors.Is(err, ErrMalformedResponse))
}

func TestExtractIdentity_EmptyImage(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", "")

	_, err := client.ExtractIdentity(context.Background(), nil)

	assert.ErrorContains(t, err, "image required")
}

func TestVerifySelfie_Success(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, `{"status":"rejected","note":"face not visible"}`)

	verdict, err := client.VerifySelfie(context.Background(), []byte("jpeg"))

	require.NoError(t, err)
	assert.Equal(t, SelfieVerdict{Status: models.StatusRejected, Note: "face not visible"}, verdict)
}

func TestVerifySelfie_UnknownStatusRejected(t *testing.T) {
	for _, body := range []string{`{"status":"pending","note":""}`, `{"status":"maybe"}`, `{"note":"x"}`} {
		client, _ := newTestClient(t, http.StatusOK, body)

		_, err := client.VerifySelfie(context.Background(), []byte("jpeg"))

		assert.True(t, errors.Is(err, ErrMalformedResponse), body)
	}
}

func TestEncodeImage_StripsDataURL(t *testing.T) {
	assert.Equal(t, "QUJD", EncodeImage([]byte("data:image/jpeg;base64,QUJD")))
	assert.Equal(t, "QUJD", EncodeImage([]byte("data:image/png;base64,QUJD")))
	assert.Equal(t, "QUJD", EncodeImage([]byte("ABC")))
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL+"/", "").Health(context.Background()))
}

type slowVerifier struct{}

func (slowVerifier) ExtractIdentity(ctx context.Context, _ []byte) (ExtractedIdentity, error) {
	<-ctx.Done()
	return ExtractedIdentity{}, ctx.Err()
}

func (slowVerifier) VerifySelfie(ctx context.Context, _ []byte) (SelfieVerdict, error) {
	<-ctx.Done()
	return SelfieVerdict{}, ctx.Err()
}

func TestWithTimeout(t *testing.T) {
	v := WithTimeout(slowVerifier{}, 20*time.Millisecond)

	_, err := v.ExtractIdentity(context.Background(), []byte("x"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = v.VerifySelfie(context.Background(), []byte("x"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWithTimeout_ZeroReturnsSame(t *testing.T) {
	inner := slowVerifier{}
	assert.Equal(t, Verifier(inner), WithTimeout(inner, 0))
}

func TestFallbackVerdict(t *testing.T) {
	assert.Equal(t, SelfieVerdict{Status: models.StatusVerified, Note: FallbackNote}, FallbackVerdict(models.StatusVerified))
	assert.Equal(t, SelfieVerdict{Status: models.StatusPending, Note: FallbackNote}, FallbackVerdict(models.StatusPending))
	assert.Equal(t, models.StatusVerified, FallbackVerdict("").Status)
	assert.Equal(t, models.StatusVerified, FallbackVerdict(models.StatusRejected).Status)
}
