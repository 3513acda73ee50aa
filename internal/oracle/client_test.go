package oracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/creator-campaign-api/internal/models"
	"github.com/noah-isme/creator-campaign-api/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.OracleConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	})
}

func TestFetchFollowersSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "instagram", r.URL.Query().Get("platform"))
		assert.Equal(t, "@yuki_creates", r.URL.Query().Get("handle"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 12400, "fetched_at": "2026-08-01T12:00:00Z"}`)) //nolint:errcheck
	})

	result, err := client.FetchFollowers(context.Background(), models.PlatformInstagram, "@yuki_creates")
	require.NoError(t, err)
	assert.Equal(t, int64(12400), result.Count)
	assert.Equal(t, 2026, result.FetchedAt.Year())
}

func TestFetchFollowersFillsFetchedAt(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 99}`)) //nolint:errcheck
	})

	result, err := client.FetchFollowers(context.Background(), models.PlatformYouTube, "https://youtube.com/@ch")
	require.NoError(t, err)
	assert.False(t, result.FetchedAt.IsZero())
}

func TestFetchFollowersFailureKinds(t *testing.T) {
	cases := []struct {
		name   string
		status int
		kind   FailureKind
	}{
		{"unauthorized", http.StatusUnauthorized, FailureUnauthorized},
		{"forbidden", http.StatusForbidden, FailureUnauthorized},
		{"not found", http.StatusNotFound, FailureNotFound},
		{"server error", http.StatusInternalServerError, FailureUnavailable},
		{"rate limited", http.StatusTooManyRequests, FailureUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})

			_, err := client.FetchFollowers(context.Background(), models.PlatformTikTok, "@someone")
			require.Error(t, err)
			assert.Equal(t, tc.kind, KindOf(err))
		})
	}
}

func TestFetchFollowersMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`)) //nolint:errcheck
	})

	_, err := client.FetchFollowers(context.Background(), models.PlatformRed, "https://xiaohongshu.com/u/1")
	require.Error(t, err)
	assert.Equal(t, FailureUnavailable, KindOf(err))
}

func TestFetchFollowersUnreachableHost(t *testing.T) {
	client := NewClient(config.OracleConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 200 * time.Millisecond,
	})

	_, err := client.FetchFollowers(context.Background(), models.PlatformInstagram, "@x")
	require.Error(t, err)
	assert.Equal(t, FailureUnavailable, KindOf(err))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, FailureUnavailable, KindOf(context.DeadlineExceeded))
}
