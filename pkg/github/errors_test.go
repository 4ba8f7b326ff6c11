package github

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github3/pkg/resource"
)

func fastRetry(maxRetries int) *RetryConfig {
	return &RetryConfig{
		MaxRetries:    maxRetries,
		InitialDelay:  time.Millisecond,
		MaxDelay:      10 * time.Millisecond,
		BackoffFactor: 2.0,
		MaxResetWait:  time.Second,
	}
}

func TestGitHubError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *GitHubError
		expected string
	}{
		{
			name: "error with resource",
			err: &GitHubError{
				Type:     ErrorTypeAuth,
				Message:  "invalid token",
				Resource: "repos/test/repo",
			},
			expected: "authentication error for repos/test/repo: invalid token",
		},
		{
			name: "error without resource",
			err: &GitHubError{
				Type:    ErrorTypeValidation,
				Message: "validation failed",
			},
			expected: "validation error: validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestGitHubError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &GitHubError{
		Type:    ErrorTypeNetwork,
		Message: "network error",
		Cause:   cause,
	}

	assert.Equal(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, cause)
}

func TestGitHubError_IsNotFound(t *testing.T) {
	notFound := &GitHubError{Type: ErrorTypeNotFound, Message: "gone"}
	assert.ErrorIs(t, notFound, resource.ErrNotFound)

	wrapped := errors.Join(errors.New("context"), notFound)
	assert.ErrorIs(t, wrapped, resource.ErrNotFound)

	auth := &GitHubError{Type: ErrorTypeAuth, Message: "bad credentials"}
	assert.NotErrorIs(t, auth, resource.ErrNotFound)
}

func TestNewGitHubError(t *testing.T) {
	cause := errors.New("underlying error")

	err := NewGitHubError(ErrorTypeAuth, "authentication failed", cause)
	assert.Equal(t, ErrorTypeAuth, err.Type)
	assert.Equal(t, "authentication failed", err.Message)
	assert.Equal(t, cause, err.Cause)
	assert.False(t, err.Retryable)

	assert.True(t, NewGitHubError(ErrorTypeRateLimit, "slow down", nil).IsRetryable())
}

func TestWrapGitHubError(t *testing.T) {
	tests := []struct {
		name         string
		inputError   error
		resource     string
		expectedType ErrorType
		expectedMsg  string
		retryable    bool
	}{
		{
			name:       "nil error returns nil",
			inputError: nil,
			resource:   "users/octocat",
		},
		{
			name: "401 unauthorized error",
			inputError: &github.ErrorResponse{
				Response: &http.Response{StatusCode: http.StatusUnauthorized},
				Message:  "Bad credentials",
			},
			resource:     "user",
			expectedType: ErrorTypeAuth,
			expectedMsg:  "Authentication failed. Please check your GitHub token",
		},
		{
			name: "403 forbidden error",
			inputError: &github.ErrorResponse{
				Response: &http.Response{StatusCode: http.StatusForbidden},
				Message:  "Forbidden",
			},
			resource:     "repos/test/repo",
			expectedType: ErrorTypePermission,
			expectedMsg:  "Insufficient permissions",
		},
		{
			name: "403 rate limit message",
			inputError: &github.ErrorResponse{
				Response: &http.Response{StatusCode: http.StatusForbidden},
				Message:  "API rate limit exceeded for 127.0.0.1",
			},
			resource:     "users/octocat",
			expectedType: ErrorTypeRateLimit,
			expectedMsg:  "rate limit exceeded",
			retryable:    true,
		},
		{
			name: "404 repository",
			inputError: &github.ErrorResponse{
				Response: &http.Response{StatusCode: http.StatusNotFound},
				Message:  "Not Found",
			},
			resource:     "repos/test/repo",
			expectedType: ErrorTypeNotFound,
			expectedMsg:  "Repository resource not found",
		},
		{
			name: "404 user",
			inputError: &github.ErrorResponse{
				Response: &http.Response{StatusCode: http.StatusNotFound},
				Message:  "Not Found",
			},
			resource:     "users/ghost",
			expectedType: ErrorTypeNotFound,
			expectedMsg:  "User resource not found",
		},
		{
			name: "404 gist",
			inputError: &github.ErrorResponse{
				Response: &http.Response{StatusCode: http.StatusNotFound},
				Message:  "Not Found",
			},
			resource:     "gists/abc",
			expectedType: ErrorTypeNotFound,
			expectedMsg:  "Resource not found",
		},
		{
			name: "409 conflict error",
			inputError: &github.ErrorResponse{
				Response: &http.Response{StatusCode: http.StatusConflict},
				Message:  "Repository already exists",
			},
			resource:     "user/repos",
			expectedType: ErrorTypeConflict,
			expectedMsg:  "Resource already exists with the same name",
		},
		{
			name: "422 validation error",
			inputError: &github.ErrorResponse{
				Response: &http.Response{StatusCode: http.StatusUnprocessableEntity},
				Message:  "Validation Failed",
				Errors: []github.Error{
					{Field: "name", Message: "is required", Code: "missing_field"},
					{Message: "Repository name is invalid"},
				},
			},
			resource:     "user/repos",
			expectedType: ErrorTypeValidation,
			expectedMsg:  "Validation failed: name: is required; Repository name is invalid",
		},
		{
			name: "500 server error",
			inputError: &github.ErrorResponse{
				Response: &http.Response{StatusCode: http.StatusInternalServerError},
				Message:  "Internal Server Error",
			},
			resource:     "repos/test/repo",
			expectedType: ErrorTypeNetwork,
			expectedMsg:  "GitHub API is temporarily unavailable",
			retryable:    true,
		},
		{
			name: "primary rate limit",
			inputError: &github.RateLimitError{
				Rate:     github.Rate{Reset: github.Timestamp{Time: time.Now().Add(time.Minute)}},
				Response: &http.Response{StatusCode: http.StatusForbidden},
			},
			resource:     "users/octocat",
			expectedType: ErrorTypeRateLimit,
			expectedMsg:  "Rate limit exceeded",
			retryable:    true,
		},
		{
			name:         "network error",
			inputError:   errors.New("dial tcp 127.0.0.1:1: connection refused"),
			resource:     "users/octocat",
			expectedType: ErrorTypeNetwork,
			expectedMsg:  "Network error occurred",
			retryable:    true,
		},
		{
			name:         "cancelled context is not retried",
			inputError:   context.Canceled,
			resource:     "users/octocat",
			expectedType: ErrorTypeNetwork,
			expectedMsg:  "context canceled",
		},
		{
			name:         "unknown error",
			inputError:   errors.New("something odd"),
			resource:     "users/octocat",
			expectedType: ErrorTypeUnknown,
			expectedMsg:  "something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WrapGitHubError(tt.inputError, tt.resource)

			if tt.inputError == nil {
				assert.Nil(t, result)
				return
			}

			require.NotNil(t, result)
			assert.Equal(t, tt.expectedType, result.Type)
			assert.Contains(t, result.Message, tt.expectedMsg)
			assert.Equal(t, tt.resource, result.Resource)
			assert.Equal(t, tt.retryable, result.IsRetryable())
		})
	}
}

func TestWrapGitHubError_KeepsExisting(t *testing.T) {
	existing := &GitHubError{Type: ErrorTypeAuth, Message: "auth error"}

	result := WrapGitHubError(existing, "user")
	assert.Same(t, existing, result)
	assert.Equal(t, "user", result.Resource)
}

func TestIsNetworkError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"connection timeout", errors.New("dial tcp: connection timeout"), true},
		{"no such host", errors.New("dial tcp: no such host"), true},
		{"i/o timeout", errors.New("read tcp: i/o timeout"), true},
		{"regular error", errors.New("some other error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isNetworkError(tt.err))
		})
	}
}

func TestWithRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("successful operation on first try", func(t *testing.T) {
		callCount := 0
		err := WithRetry(ctx, func() error {
			callCount++
			return nil
		}, fastRetry(3))

		assert.NoError(t, err)
		assert.Equal(t, 1, callCount)
	})

	t.Run("successful operation after retries", func(t *testing.T) {
		callCount := 0
		err := WithRetry(ctx, func() error {
			callCount++
			if callCount < 3 {
				return &GitHubError{Type: ErrorTypeNetwork, Message: "network error", Retryable: true}
			}
			return nil
		}, fastRetry(3))

		assert.NoError(t, err)
		assert.Equal(t, 3, callCount)
	})

	t.Run("non-retryable error fails immediately", func(t *testing.T) {
		callCount := 0
		authErr := &GitHubError{Type: ErrorTypeAuth, Message: "auth error"}
		err := WithRetry(ctx, func() error {
			callCount++
			return authErr
		}, fastRetry(3))

		assert.Same(t, authErr, err)
		assert.Equal(t, 1, callCount)
	})

	t.Run("plain errors are not retried", func(t *testing.T) {
		callCount := 0
		err := WithRetry(ctx, func() error {
			callCount++
			return errors.New("boom")
		}, fastRetry(3))

		assert.EqualError(t, err, "boom")
		assert.Equal(t, 1, callCount)
	})

	t.Run("exhausts max retries", func(t *testing.T) {
		callCount := 0
		err := WithRetry(ctx, func() error {
			callCount++
			return &GitHubError{Type: ErrorTypeNetwork, Message: "network error", Retryable: true}
		}, fastRetry(2))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "operation failed after 2 retries")
		assert.Equal(t, 3, callCount) // Initial attempt + 2 retries

		var ghErr *GitHubError
		assert.ErrorAs(t, err, &ghErr)
	})

	t.Run("no retry runs once and returns the error unwrapped", func(t *testing.T) {
		callCount := 0
		netErr := &GitHubError{Type: ErrorTypeNetwork, Message: "network error", Retryable: true}
		err := WithRetry(ctx, func() error {
			callCount++
			return netErr
		}, NoRetry())

		assert.Same(t, netErr, err)
		assert.Equal(t, 1, callCount)
	})

	t.Run("rate limit error with reset time", func(t *testing.T) {
		callCount := 0
		resetTime := time.Now().Add(50 * time.Millisecond)

		start := time.Now()
		err := WithRetry(ctx, func() error {
			callCount++
			if callCount == 1 {
				return &GitHubError{
					Type:      ErrorTypeRateLimit,
					Message:   "rate limit exceeded",
					Cause:     &github.RateLimitError{Rate: github.Rate{Reset: github.Timestamp{Time: resetTime}}},
					Retryable: true,
				}
			}
			return nil
		}, fastRetry(3))

		assert.NoError(t, err)
		assert.Equal(t, 2, callCount)
		assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	})

	t.Run("cancelled context stops waiting", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		callCount := 0
		err := WithRetry(cctx, func() error {
			callCount++
			cancel()
			return &GitHubError{Type: ErrorTypeNetwork, Message: "network error", Retryable: true}
		}, &RetryConfig{MaxRetries: 3, InitialDelay: time.Hour, MaxDelay: time.Hour, BackoffFactor: 2})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, callCount)
	})
}

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	assert.Equal(t, 3, config.MaxRetries)
	assert.Equal(t, time.Second, config.InitialDelay)
	assert.Equal(t, 30*time.Second, config.MaxDelay)
	assert.Equal(t, 2.0, config.BackoffFactor)
	assert.Equal(t, 5*time.Minute, config.MaxResetWait)
}

func TestIsRetryableErrorType(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  bool
	}{
		{ErrorTypeRateLimit, true},
		{ErrorTypeNetwork, true},
		{ErrorTypeAuth, false},
		{ErrorTypePermission, false},
		{ErrorTypeNotFound, false},
		{ErrorTypeValidation, false},
		{ErrorTypeConflict, false},
		{ErrorTypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			assert.Equal(t, tt.expected, isRetryableErrorType(tt.errorType))
		})
	}
}
