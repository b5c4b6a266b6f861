package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
)

// Config параметры подключения к EmailJS-совместимому API
type Config struct {
	URL           string
	ServiceID     string
	TemplateID    string
	PublicKey     string
	PrivateKey    string // опционально, передается как accessToken
	PublicBaseURL string
	Timeout       time.Duration
	Location      *time.Location
}

// DefaultTimeout используется, если в Config не задан положительный Timeout
const DefaultTimeout = 10 * time.Second

// Client отправляет письма-подтверждения через EmailJS REST API
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(cfg Config, log Logger) *Client {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// Send отправляет подтверждение по email из полей бронирования
func (c *Client) Send(ctx context.Context, booking *domain.Booking) error {
	params, err := buildParams(booking, c.cfg.PublicBaseURL, c.cfg.Location)
	if err != nil {
		return err
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      c.cfg.ServiceID,
		TemplateID:     c.cfg.TemplateID,
		UserID:         c.cfg.PublicKey,
		AccessToken:    c.cfg.PrivateKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	c.log.Info("Confirmation for booking id=%s sent", booking.ID)
	return nil
}
