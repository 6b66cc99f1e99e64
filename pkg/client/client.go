package client

import (
	"net/http"
	"strings"
	"time"

	"github.com/Pradeep-10x/synapse-cli/pkg/config"
	"github.com/Pradeep-10x/synapse-cli/pkg/credentials"
	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
	"github.com/go-resty/resty/v2"
	json "github.com/json-iterator/go"
)

var httpClient *resty.Client

// Init initializes the HTTP client
func Init() {
	httpClient = resty.New()

	baseURL := config.GetString("api.base_url")
	timeout := time.Duration(config.GetInt("api.timeout")) * time.Second

	httpClient.SetBaseURL(baseURL)
	httpClient.SetTimeout(timeout)
	httpClient.SetHeader("User-Agent", "Synapse-CLI/0.1.0")

	// Add request/response logging
	httpClient.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL)
		return nil
	})

	httpClient.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response", "status", resp.StatusCode())
		return nil
	})

	// A 401 on any call gets one silent refresh-and-retry before the
	// error propagates to the caller.
	httpClient.SetRetryCount(1)
	httpClient.AddRetryCondition(func(resp *resty.Response, err error) bool {
		if err != nil || resp == nil {
			return false
		}
		if resp.StatusCode() != http.StatusUnauthorized {
			return false
		}
		if isAuthEndpoint(resp.Request.URL) {
			return false
		}
		token, ok := refreshSession()
		if !ok {
			return false
		}
		// The retried request re-uses its already-merged headers, so the
		// new token has to be set on both the client and the request.
		httpClient.SetHeader("Authorization", "Bearer "+token)
		resp.Request.SetHeader("Authorization", "Bearer "+token)
		return true
	})
}

// isAuthEndpoint reports whether the URL is one of the auth endpoints
// that must never trigger a silent refresh.
func isAuthEndpoint(url string) bool {
	return strings.Contains(url, "/auth/login") ||
		strings.Contains(url, "/auth/register") ||
		strings.Contains(url, "/auth/refresh")
}

// refreshSession exchanges the stored refresh token for a new access
// token. It uses a bare client so the refresh call itself can never
// recurse into the retry hook.
func refreshSession() (string, bool) {
	creds, err := credentials.Load()
	if err != nil || creds == nil || creds.RefreshToken == "" {
		return "", false
	}

	body, err := json.Marshal(map[string]string{"refresh_token": creds.RefreshToken})
	if err != nil {
		return "", false
	}

	var refreshResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}

	resp, err := resty.New().
		SetBaseURL(config.GetString("api.base_url")).
		SetTimeout(time.Duration(config.GetInt("api.timeout"))*time.Second).
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&refreshResp).
		Post("/api/v1/auth/refresh")

	if err != nil || !resp.IsSuccess() || refreshResp.AccessToken == "" {
		logger.Debug("Silent session refresh failed")
		return "", false
	}

	creds.AccessToken = refreshResp.AccessToken
	creds.ExpiresAt = time.Now().Add(time.Duration(refreshResp.ExpiresIn) * time.Second)
	if err := credentials.Save(creds); err != nil {
		logger.Error("Failed to save refreshed credentials", "error", err)
	}

	logger.Debug("Session refreshed silently")
	return refreshResp.AccessToken, true
}

// GetClient returns the HTTP client
func GetClient() *resty.Client {
	if httpClient == nil {
		Init()
	}
	return httpClient
}

// SetAuthToken sets the authorization token
func SetAuthToken(token string) {
	if httpClient == nil {
		Init()
	}
	httpClient.SetHeader("Authorization", "Bearer "+token)
}

// ClearAuthToken clears the authorization token
func ClearAuthToken() {
	// Re-init the client to clear auth headers
	Init()
}
