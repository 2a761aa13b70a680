package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)
	gateway := &GitHubGateway{
		client: github.NewClient(server.Client()),
		logger: log.New(io.Discard, "", 0),
	}
	return gateway, server
}

func TestGitHubGateway_GetJSON(t *testing.T) {
	testCases := []struct {
		name           string
		path           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expected       any
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - object payload",
			path: "/orgs/google",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/orgs/google", r.URL.Path)
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `{"login": "google", "id": 1342004, "repos_url": "https://api.github.com/orgs/google/repos"}`)
			},
			expected: map[string]any{
				"login":     "google",
				"id":        float64(1342004),
				"repos_url": "https://api.github.com/orgs/google/repos",
			},
		},
		{
			name: "happy path - array payload",
			path: "/orgs/google/repos",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `[{"name": "truth", "license": {"key": "apache-2.0"}}, {"name": "ruby-openid-apps-discovery", "license": null}]`)
			},
			expected: []any{
				map[string]any{"name": "truth", "license": map[string]any{"key": "apache-2.0"}},
				map[string]any{"name": "ruby-openid-apps-discovery", "license": nil},
			},
		},
		{
			name: "happy path - scalar payload",
			path: "/payload",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `true`)
			},
			expected: true,
		},
		{
			name: "error case - GitHub API returns an error",
			path: "/orgs/missing",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
			expectError:    true,
			expectedErrMsg: "404 Not Found",
		},
		{
			name: "error case - body is not JSON",
			path: "/orgs/broken",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `<html>`)
			},
			expectError:    true,
			expectedErrMsg: "failed to fetch",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			url := server.URL + tc.path
			result, err := gateway.GetJSON(context.Background(), url)
			if tc.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
				assert.True(t, errors.Is(err, ErrFetch))

				var fetchErr *FetchError
				require.True(t, errors.As(err, &fetchErr))
				assert.Equal(t, url, fetchErr.URL)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, result)
			}
		})
	}
}

func TestGitHubGateway_GetJSON_ErrorResponse(t *testing.T) {
	gateway, server := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message": "Internal Server Error"}`)
	}))
	defer server.Close()

	_, err := gateway.GetJSON(context.Background(), server.URL+"/orgs/acme")
	var errResp *github.ErrorResponse
	require.True(t, errors.As(err, &errResp))
	assert.Equal(t, http.StatusInternalServerError, errResp.Response.StatusCode)
}

func TestGitHubGateway_GetJSON_InvalidURL(t *testing.T) {
	gateway, server := setupTestGateway(t, http.NotFoundHandler())
	defer server.Close()

	_, err := gateway.GetJSON(context.Background(), "://not-a-url")
	assert.True(t, errors.Is(err, ErrFetch))
}

func TestNewGitHubGateway(t *testing.T) {
	testCases := []struct {
		name         string
		token        string
		expectedAuth string
	}{
		{name: "authenticated", token: "secret", expectedAuth: "Bearer secret"},
		{name: "anonymous", token: "", expectedAuth: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tc.expectedAuth, r.Header.Get("Authorization"))
				fmt.Fprint(w, `{"login": "acme"}`)
			}))
			defer server.Close()

			gateway, err := NewGitHubGateway(tc.token, log.New(io.Discard, "", 0))
			require.NoError(t, err)

			result, err := gateway.GetJSON(context.Background(), server.URL+"/orgs/acme")
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"login": "acme"}, result)
		})
	}
}
