package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
	"github.com/m04kA/SMC-CheckinService/internal/testutil"
)

func testBooking() *domain.Booking {
	slot := time.Date(2026, 3, 14, 7, 30, 0, 0, time.UTC)
	return &domain.Booking{
		ID: "3f1c2b9e-0000-4000-8000-000000000001",
		Fields: domain.Fields{
			{Name: domain.FieldNameFullName, Value: "Ann Lee"},
			{Name: domain.FieldNameEmail, Value: "ann@example.com"},
		},
		SlotTime: &slot,
		Status:   domain.StatusActive,
	}
}

func TestClient_Send(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	c := NewClient(Config{
		URL:           srv.URL,
		ServiceID:     "service_1",
		TemplateID:    "template_1",
		PublicKey:     "public",
		PublicBaseURL: "https://tickets.example.com/",
		Timeout:       time.Second,
		Location:      time.FixedZone("MSK", 3*60*60),
	}, &testutil.Logger{})

	require.NoError(t, c.Send(context.Background(), testBooking()))

	assert.Equal(t, "service_1", got.ServiceID)
	assert.Equal(t, "template_1", got.TemplateID)
	assert.Equal(t, "public", got.UserID)
	assert.Empty(t, got.AccessToken)
	assert.Equal(t, TemplateParams{
		ToName:      "Ann Lee",
		ToEmail:     "ann@example.com",
		BookingDate: "14.03.2026 10:30",
		BookingID:   "3f1c2b9e-0000-4000-8000-000000000001",
		QRCodeURL:   "https://tickets.example.com/api/v1/bookings/3f1c2b9e-0000-4000-8000-000000000001/qr",
	}, got.TemplateParams)
}

func TestClient_SendErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The Public Key is invalid", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL, Timeout: time.Second}, &testutil.Logger{})

	err := c.Send(context.Background(), testBooking())
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "400")

	noEmail := testBooking()
	noEmail.Fields = domain.Fields{{Name: domain.FieldNameFullName, Value: "Ann"}}
	assert.ErrorIs(t, c.Send(context.Background(), noEmail), ErrNoRecipient)
}

func TestClient_SendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(Config{URL: url, Timeout: time.Second}, &testutil.Logger{})
	assert.ErrorIs(t, c.Send(context.Background(), testBooking()), ErrInternal)
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	c := NewClient(Config{URL: "http://localhost"}, &testutil.Logger{})
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)

	c = NewClient(Config{URL: "http://localhost", Timeout: 3 * time.Second}, &testutil.Logger{})
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
}

func TestLogNotifier(t *testing.T) {
	log := &testutil.Logger{}
	n := NewLogNotifier("http://localhost:8080", nil, log)

	require.NoError(t, n.Send(context.Background(), testBooking()))
	entries := log.Entries()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0], "http://localhost:8080/api/v1/bookings/3f1c2b9e-0000-4000-8000-000000000001/qr")

	b := testBooking()
	b.Fields = nil
	assert.ErrorIs(t, n.Send(context.Background(), b), ErrNoRecipient)
}
