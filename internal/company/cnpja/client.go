// Package cnpja talks to the CNPJá registry API.
package cnpja

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/consulta-cnpj/consulta-cnpj/internal/company"
)

// DefaultBaseURL is the public CNPJá endpoint.
const DefaultBaseURL = "https://open.cnpja.com"

const maxBodyBytes = 4 << 20

var officeSchema = gojsonschema.NewStringLoader(`{"type":"object"}`)

// Observer receives the latency of each registry call.
type Observer interface {
	ObserveUpstream(status string, elapsed time.Duration)
}

// Config configures the client.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client wraps interactions with the CNPJá API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
	observer   Observer
}

// NewClient constructs a new client.
func NewClient(cfg Config, logger *slog.Logger, observer Observer) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:   logger,
		observer: observer,
	}
}

// Ping checks if the remote API answers at all.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("cnpja returned status %d", resp.StatusCode)
	}
	return nil
}

// Fetch retrieves the office record for a 14-digit identifier.
func (c *Client) Fetch(ctx context.Context, cnpj string) (company.Raw, error) {
	endpoint := fmt.Sprintf("%s/office/%s", c.baseURL, url.PathEscape(cnpj))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe("error", start)
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		c.logger.Warn("cnpja request failed", slog.String("request_id", requestID), slog.Any("error", err))
		return nil, company.NewError(company.KindUpstreamUnavailable, "", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	c.observe(strconv.Itoa(resp.StatusCode), start)

	if resp.StatusCode >= 400 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		c.logger.Info("cnpja rejected request",
			slog.String("request_id", requestID),
			slog.Int("status", resp.StatusCode))
		return nil, classifyStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, company.NewError(company.KindUpstreamUnavailable, "", err)
	}
	raw, err := decodeOffice(body)
	if err != nil {
		c.logger.Warn("cnpja returned unusable body",
			slog.String("request_id", requestID),
			slog.Any("error", err))
		return nil, company.NewError(company.KindUpstreamMalformedResponse, "", err)
	}
	return raw, nil
}

func (c *Client) observe(status string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveUpstream(status, time.Since(start))
	}
}

func classifyStatus(status int) error {
	cause := fmt.Errorf("cnpja returned status %d", status)
	switch status {
	case http.StatusNotFound:
		return company.NewError(company.KindUpstreamNotFound, "", cause)
	case http.StatusUnauthorized, http.StatusForbidden:
		return company.NewError(company.KindUpstreamAuthFailure, "", cause)
	case http.StatusTooManyRequests:
		return company.NewError(company.KindUpstreamRateLimited, "", cause)
	default:
		return company.NewError(company.KindUpstreamUnavailable, "", cause)
	}
}

// decodeOffice checks that body is a JSON object and decodes it with numbers
// kept as json.Number.
func decodeOffice(body []byte) (company.Raw, error) {
	result, err := gojsonschema.Validate(officeSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("decode office: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("office payload rejected: %v", errs)
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode office: %w", err)
	}
	return company.Raw(raw), nil
}
