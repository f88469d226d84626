package gamelocker

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		header     http.Header
		body       string
		wantKind   ErrorKind
		wantRetry  time.Duration
		wantDetail string
	}{
		{name: "unauthorized 401", status: 401, wantKind: KindUnauthorized},
		{name: "unauthorized 403", status: 403, wantKind: KindUnauthorized},
		{name: "not found", status: 404, wantKind: KindNotFound},
		{name: "malformed 400", status: 400, wantKind: KindMalformedRequest},
		{name: "malformed 422", status: 422, wantKind: KindMalformedRequest},
		{
			name:      "rate limited with hint",
			status:    429,
			header:    http.Header{"Retry-After": []string{"30"}},
			wantKind:  KindRateLimited,
			wantRetry: 30 * time.Second,
		},
		{name: "rate limited without hint", status: 429, wantKind: KindRateLimited},
		{name: "server error 500", status: 500, wantKind: KindServerError},
		{name: "server error 502", status: 502, wantKind: KindServerError},
		{name: "server error 503", status: 503, wantKind: KindServerError},
		{
			name:       "detail from error body",
			status:     422,
			body:       `{"errors":[{"title":"Malformed Query","detail":"filter[playerNames] is invalid"}]}`,
			wantKind:   KindMalformedRequest,
			wantDetail: "filter[playerNames] is invalid",
		},
		{
			name:       "title fallback when no detail",
			status:     400,
			body:       `{"errors":[{"title":"Bad Request"}]}`,
			wantKind:   KindMalformedRequest,
			wantDetail: "Bad Request",
		},
		{
			name:     "non-json error body is tolerated",
			status:   500,
			body:     "<html>Bad Gateway</html>",
			wantKind: KindServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{StatusCode: tt.status, Header: tt.header}
			if resp.Header == nil {
				resp.Header = http.Header{}
			}

			apiErr := classify(resp, []byte(tt.body))
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantRetry, apiErr.RetryAfter)
			assert.Equal(t, tt.wantDetail, apiErr.Message)
		})
	}
}

func TestClassifySuccess(t *testing.T) {
	for _, status := range []int{200, 201, 204, 299} {
		resp := &http.Response{StatusCode: status, Header: http.Header{}}
		assert.Nil(t, classify(resp, nil), "status %d should pass through", status)
	}
}

func TestRetryAfterDate(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", time.Now().Add(time.Minute).UTC().Format(http.TimeFormat))

	d := retryAfter(h)
	assert.Greater(t, d, 30*time.Second)
	assert.LessOrEqual(t, d, time.Minute)
}

func TestAPIErrorPredicates(t *testing.T) {
	assert.True(t, (&APIError{Kind: KindNotFound}).IsNotFound())
	assert.True(t, (&APIError{Kind: KindUnauthorized}).IsUnauthorized())
	assert.True(t, (&APIError{Kind: KindRateLimited}).IsRateLimited())
	assert.False(t, (&APIError{Kind: KindServerError}).IsNotFound())
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Kind: KindRateLimited, StatusCode: 429, Message: "too many requests"}
	assert.Equal(t, "gamelocker: rate limited (status 429): too many requests", err.Error())

	err = &APIError{Kind: KindInvalidArgument, Message: "region is required"}
	assert.Equal(t, "gamelocker: invalid argument: region is required", err.Error())
}
