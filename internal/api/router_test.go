package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CheckinService/internal/api"
	checkAvailabilityHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/get_booking"
	getBookingQRHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/get_booking_qr"
	getFormHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/get_form"
	getSettingsHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/get_settings"
	getStatsHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/get_stats"
	listBookingsHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/list_bookings"
	loginHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/login"
	updateSettingsHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/update_settings"
	verifyBookingHandler "github.com/m04kA/SMC-CheckinService/internal/api/handlers/verify_booking"
	"github.com/m04kA/SMC-CheckinService/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-CheckinService/internal/integrations/notifier"
	adminService "github.com/m04kA/SMC-CheckinService/internal/service/admin"
	bookingsService "github.com/m04kA/SMC-CheckinService/internal/service/bookings"
	settingsService "github.com/m04kA/SMC-CheckinService/internal/service/settings"
	"github.com/m04kA/SMC-CheckinService/internal/testutil"
	checkAvailabilityUC "github.com/m04kA/SMC-CheckinService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-CheckinService/internal/usecase/create_booking"
	verifyBookingUC "github.com/m04kA/SMC-CheckinService/internal/usecase/verify_booking"
	"github.com/m04kA/SMC-CheckinService/pkg/auth"
	"github.com/m04kA/SMC-CheckinService/pkg/metrics"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "door-staff-42"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := &testutil.Logger{}
	loc := time.UTC

	reg := prometheus.NewRegistry()
	m := metrics.New("checkin_test", reg)

	bookingStore := memstore.NewBookingStore()
	settingsSvc := settingsService.NewService(memstore.NewSettingsStore(), nil, log)
	bookingSvc := bookingsService.NewService(bookingStore, loc, log)

	hash, err := auth.HashPassword(adminPassword)
	require.NoError(t, err)
	issuer := auth.NewIssuer("test-secret", time.Hour)
	adminSvc := adminService.NewService(adminEmail, hash, issuer, log)

	availability := checkAvailabilityUC.NewUseCase(bookingStore, settingsSvc, log)
	createBooking := createBookingUC.NewUseCase(
		bookingStore,
		availability,
		settingsSvc,
		notifier.NewLogNotifier("http://checkin.test", loc, log),
		m,
		loc,
		log,
	)
	verify := verifyBookingUC.NewUseCase(bookingStore, m, log)

	router := api.NewRouter(api.Handlers{
		CreateBooking:     createBookingHandler.NewHandler(createBooking, "http://checkin.test", log).Handle,
		CheckAvailability: checkAvailabilityHandler.NewHandler(availability, loc, log).Handle,
		GetBooking:        getBookingHandler.NewHandler(bookingSvc, log).Handle,
		GetBookingQR:      getBookingQRHandler.NewHandler(bookingSvc, log).Handle,
		GetForm:           getFormHandler.NewHandler(settingsSvc, log).Handle,
		Login:             loginHandler.NewHandler(adminSvc, log).Handle,
		VerifyBooking:     verifyBookingHandler.NewHandler(verify, log).Handle,
		ListBookings:      listBookingsHandler.NewHandler(bookingSvc, log).Handle,
		GetStats:          getStatsHandler.NewHandler(bookingSvc, log).Handle,
		GetSettings:       getSettingsHandler.NewHandler(settingsSvc, log).Handle,
		UpdateSettings:    updateSettingsHandler.NewHandler(settingsSvc, log).Handle,
	}, api.Options{
		TokenParser:    issuer,
		Logger:         log,
		Metrics:        m,
		MetricsPath:    "/metrics",
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp := do(t, srv, http.MethodPost, "/api/v1/admin/login", "", map[string]string{
		"email":    adminEmail,
		"password": adminPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken string `json:"accessToken"`
	}
	decode(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func createBooking(t *testing.T, srv *httptest.Server, date string) string {
	t.Helper()
	resp := do(t, srv, http.MethodPost, "/api/v1/bookings", "", map[string]interface{}{
		"fields": map[string]string{
			"fullName": "Ann Lee",
			"email":    "ann@example.com",
			"date":     date,
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		ID           string `json:"id"`
		Status       string `json:"status"`
		QRCodeURL    string `json:"qrCodeUrl"`
		Availability struct {
			Available bool `json:"available"`
			Max       int  `json:"max"`
		} `json:"availability"`
	}
	decode(t, resp, &body)
	require.NotEmpty(t, body.ID)
	assert.Equal(t, "active", body.Status)
	assert.Equal(t, "http://checkin.test/api/v1/bookings/"+body.ID+"/qr", body.QRCodeURL)
	assert.True(t, body.Availability.Available)
	assert.Equal(t, 10, body.Availability.Max)
	return body.ID
}

func TestRouter_CheckInFlow(t *testing.T) {
	srv := newServer(t)

	resp := do(t, srv, http.MethodGet, "/api/v1/form", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	id := createBooking(t, srv, "2020-01-01T10:00")

	// Публичный просмотр отдает только поля формы
	resp = do(t, srv, http.MethodGet, "/api/v1/bookings/"+id, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var public map[string]interface{}
	decode(t, resp, &public)
	assert.Equal(t, id, public["id"])
	assert.NotContains(t, public, "status")

	resp = do(t, srv, http.MethodGet, "/api/v1/bookings/"+id+"/qr", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	token := login(t, srv)

	type verifyResult struct {
		Valid     bool       `json:"valid"`
		Reason    string     `json:"reason"`
		ScannedAt *time.Time `json:"scannedAt"`
		Booking   *struct {
			Status string `json:"status"`
		} `json:"booking"`
	}

	resp = do(t, srv, http.MethodPost, "/api/v1/admin/verify", token, map[string]string{"bookingId": id})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var first verifyResult
	decode(t, resp, &first)
	assert.True(t, first.Valid)
	assert.Equal(t, "confirmed", first.Reason)
	require.NotNil(t, first.Booking)
	assert.Equal(t, "scanned", first.Booking.Status)

	resp = do(t, srv, http.MethodPost, "/api/v1/admin/verify", token, map[string]string{"bookingId": id})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var second verifyResult
	decode(t, resp, &second)
	assert.False(t, second.Valid)
	assert.Equal(t, "already_scanned", second.Reason)
	assert.NotNil(t, second.ScannedAt)

	resp = do(t, srv, http.MethodPost, "/api/v1/admin/verify", token, map[string]string{"bookingId": "nope"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var missing verifyResult
	decode(t, resp, &missing)
	assert.Equal(t, "not_found", missing.Reason)

	resp = do(t, srv, http.MethodGet, "/api/v1/admin/bookings?status=scanned", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Total int `json:"total"`
	}
	decode(t, resp, &list)
	assert.Equal(t, 1, list.Total)

	resp = do(t, srv, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var metricsBody bytes.Buffer
	_, err := metricsBody.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, metricsBody.String(), `checkin_verifications_total`)
	assert.Contains(t, metricsBody.String(), `route="/api/v1/admin/verify"`)
}

func TestRouter_FutureBookingIsRejectedAtTheDoor(t *testing.T) {
	srv := newServer(t)
	id := createBooking(t, srv, time.Now().Add(48*time.Hour).UTC().Format("2006-01-02T15:04"))
	token := login(t, srv)

	resp := do(t, srv, http.MethodPost, "/api/v1/admin/verify", token, map[string]string{"bookingId": id})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Valid  bool   `json:"valid"`
		Reason string `json:"reason"`
	}
	decode(t, resp, &body)
	assert.False(t, body.Valid)
	assert.Equal(t, "future_booking", body.Reason)
}

func TestRouter_AdminRoutesRequireToken(t *testing.T) {
	srv := newServer(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/admin/verify"},
		{http.MethodGet, "/api/v1/admin/bookings"},
		{http.MethodGet, "/api/v1/admin/stats"},
		{http.MethodGet, "/api/v1/admin/settings"},
		{http.MethodPut, "/api/v1/admin/settings"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			resp := do(t, srv, rt.method, rt.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			resp = do(t, srv, rt.method, rt.path, "garbage", nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestRouter_SettingsUpdateChangesCapacity(t *testing.T) {
	srv := newServer(t)
	token := login(t, srv)

	resp := do(t, srv, http.MethodPut, "/api/v1/admin/settings", token, map[string]interface{}{
		"systemSettings": map[string]interface{}{
			"maxBookingsPerSlot":  1,
			"slotDurationMinutes": 30,
			"advanceBookingDays":  7,
			"emailNotifications":  false,
			"enforceSlotCapacity": true,
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	submit := func() int {
		resp := do(t, srv, http.MethodPost, "/api/v1/bookings", "", map[string]interface{}{
			"fields": map[string]string{"fullName": "Bo Kim", "email": "bo@example.com", "date": "2030-05-01T18:00"},
		})
		return resp.StatusCode
	}
	assert.Equal(t, http.StatusCreated, submit())
	assert.Equal(t, http.StatusConflict, submit())

	resp = do(t, srv, http.MethodGet, "/api/v1/availability?slotTime=2030-05-01T18:00", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var avail struct {
		Available    bool `json:"available"`
		CurrentCount int  `json:"currentCount"`
		Max          int  `json:"max"`
	}
	decode(t, resp, &avail)
	assert.False(t, avail.Available)
	assert.Equal(t, 1, avail.CurrentCount)
	assert.Equal(t, 1, avail.Max)
}

func TestRouter_LoginRejectsWrongPassword(t *testing.T) {
	srv := newServer(t)

	resp := do(t, srv, http.MethodPost, "/api/v1/admin/login", "", map[string]string{
		"email":    adminEmail,
		"password": "guess",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
