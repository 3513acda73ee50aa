// Package oracle talks to the external follower-count service. The service is
// known to fail unpredictably; callers treat every result as advisory.
package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/noah-isme/creator-campaign-api/internal/models"
	"github.com/noah-isme/creator-campaign-api/pkg/config"
)

// FailureKind classifies oracle failures for per-platform user messaging.
type FailureKind string

const (
	FailureUnauthorized FailureKind = "unauthorized"
	FailureNotFound     FailureKind = "not_found"
	FailureUnavailable  FailureKind = "unavailable"
)

// Failure is a typed oracle error.
type Failure struct {
	Kind     FailureKind
	Platform models.Platform
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return fmt.Sprintf("oracle %s for %s", f.Kind, f.Platform)
}

// Result is a successful follower-count lookup.
type Result struct {
	Count     int64     `json:"count"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Client queries the follower-count oracle over HTTP. Identical concurrent
// lookups are coalesced so one slow upstream call serves them all.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	group   singleflight.Group
}

// NewClient constructs an oracle client with a bounded timeout.
func NewClient(cfg config.OracleConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchFollowers resolves the follower/subscriber count for a handle or URL.
func (c *Client) FetchFollowers(ctx context.Context, platform models.Platform, value string) (*Result, error) {
	key := string(platform) + "|" + value
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		return c.fetch(ctx, platform, value)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

func (c *Client) fetch(ctx context.Context, platform models.Platform, value string) (*Result, error) {
	endpoint := fmt.Sprintf("%s/v1/followers?platform=%s&handle=%s",
		c.baseURL, url.QueryEscape(string(platform)), url.QueryEscape(value))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &Failure{Kind: FailureUnavailable, Platform: platform}
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Failure{Kind: FailureUnavailable, Platform: platform}
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusOK:
		var result Result
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, &Failure{Kind: FailureUnavailable, Platform: platform}
		}
		if result.FetchedAt.IsZero() {
			result.FetchedAt = time.Now().UTC()
		}
		return &result, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &Failure{Kind: FailureUnauthorized, Platform: platform}
	case resp.StatusCode == http.StatusNotFound:
		return nil, &Failure{Kind: FailureNotFound, Platform: platform}
	default:
		return nil, &Failure{Kind: FailureUnavailable, Platform: platform}
	}
}

// KindOf extracts the failure kind, defaulting to unavailable.
func KindOf(err error) FailureKind {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Kind
	}
	return FailureUnavailable
}
