package telegram

import (
	"aquabot/internal/core/domain"
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultAPIBaseURL     = "https://api.telegram.org"
	DefaultRequestTimeout = 10 * time.Second

	maxResponseBytes = 1 << 20
	redactedToken    = "<token>"
)

type TransportConfig struct {
	Token   string
	BaseURL string
	Timeout time.Duration
	// CAFile pins the trust anchors to a PEM bundle instead of the system roots.
	CAFile string
	// RootCAs takes precedence over CAFile when set.
	RootCAs            *x509.CertPool
	InsecureSkipVerify bool
}

// StatusError is returned for a reply outside [200, 400). It matches domain.ErrTransport.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status code %d", domain.ErrTransport, e.Code)
}

func (e *StatusError) Unwrap() error {
	return domain.ErrTransport
}

// Retryable reports false for 4xx replies other than 429.
func (e *StatusError) Retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code < http.StatusBadRequest || e.Code >= http.StatusInternalServerError
}

// HTTPTransport talks to the Bot API over HTTPS. Every request uses a fresh connection.
type HTTPTransport struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewTransport(cfg TransportConfig) (*HTTPTransport, error) {
	if cfg.Token == "" {
		return nil, errors.New("bot token is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAPIBaseURL
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRequestTimeout
	}

	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
		RootCAs:    cfg.RootCAs,
	}

	if tlsConfig.RootCAs == nil && cfg.CAFile != "" {
		pool, err := loadCertPool(cfg.CAFile)
		if err != nil {
			return nil, err
		}
		tlsConfig.RootCAs = pool
	}

	if cfg.InsecureSkipVerify {
		log.Warn().Msg("TLS certificate verification is disabled for the bot api")
		tlsConfig.InsecureSkipVerify = true //nolint:gosec // explicit opt-in
	}

	return &HTTPTransport{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				TLSClientConfig:     tlsConfig,
				TLSHandshakeTimeout: cfg.Timeout,
				DisableKeepAlives:   true,
			},
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/") + "/bot" + cfg.Token + "/",
		token:   cfg.Token,
	}, nil
}

func loadCertPool(path string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ca file: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in %s", path)
	}

	return pool, nil
}

func (t *HTTPTransport) Get(ctx context.Context, method string) ([]byte, error) {
	return t.do(ctx, http.MethodGet, method, nil)
}

func (t *HTTPTransport) Post(ctx context.Context, method string, body []byte) ([]byte, error) {
	return t.do(ctx, http.MethodPost, method, body)
}

func (t *HTTPTransport) do(ctx context.Context, httpMethod, method string, body []byte) ([]byte, error) {
	l := log.With().Str("method", method).Str("http", httpMethod).Logger()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, t.baseURL+method, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: error creating request: %w", domain.ErrTransport, t.redact(err))
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()

	res, err := t.client.Do(req)
	if err != nil {
		err = fmt.Errorf("%w: error executing request: %w", domain.ErrTransport, t.redact(err))
		l.Debug().Err(err).Msg("request failed")
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxResponseBytes))
		err = &StatusError{Code: res.StatusCode}
		l.Debug().Err(err).Msg("request failed")
		return nil, err
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: error reading response: %w", domain.ErrTransport, t.redact(err))
	}

	l.Trace().Int("status", res.StatusCode).Int("bytes", len(buf)).Dur("took", time.Since(start)).Msg("request done")

	return buf, nil
}

// redact strips the bot token out of URLs embedded in err.
func (t *HTTPTransport) redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = strings.ReplaceAll(urlErr.URL, t.token, redactedToken)
	}

	return err
}
