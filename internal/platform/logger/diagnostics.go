package logger

import (
	"errors"
	"time"

	"backoffice/pkg/apierrors"
)

// APIError records a failed BFF call with enough context to reconstruct the
// request without re-running it.
func (l *Logger) APIError(endpoint string, err error, extra Context) {
	fields := Context{
		"endpoint":     endpoint,
		"errorMessage": err.Error(),
	}
	for k, v := range extra {
		fields[k] = v
	}

	var apiErr *apierrors.Error
	if errors.As(err, &apiErr) {
		fields["errorCode"] = string(apiErr.Code)
		if apiErr.Method != "" {
			fields["method"] = apiErr.Method
		}
		if apiErr.IsNetwork() {
			fields["networkError"] = true
			fields["errorDetails"] = "network connection failed or timed out"
		} else {
			fields["statusCode"] = apiErr.StatusCode
			if len(apiErr.Body) > 0 {
				fields["responseBody"] = string(apiErr.Body)
			}
		}
	}

	l.Error("API request failed: "+endpoint, fields)
}

// AuthError classifies an authentication failure and attaches candidate
// causes plus troubleshooting hints for the operator.
func (l *Logger) AuthError(action string, err error, extra Context) {
	fields := Context{
		"action":       action,
		"errorMessage": err.Error(),
	}
	for k, v := range extra {
		fields[k] = v
	}

	var apiErr *apierrors.Error
	status := 0
	network := true
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
		network = apiErr.IsNetwork()
	}

	switch {
	case network:
		fields["issue"] = "BFF_UNREACHABLE"
		fields["possibleCauses"] = []string{
			"BFF service is not running",
			"incorrect BFF URL configuration",
			"network connectivity issues",
		}
		fields["troubleshooting"] = []string{
			"check if the BFF is running on the configured port",
			"verify the BFF_API_URL environment variable",
		}
	case status == 401:
		fields["issue"] = "AUTHENTICATION_FAILED"
		fields["statusCode"] = status
		fields["possibleCauses"] = []string{
			"invalid credentials",
			"user account is inactive",
			"auth service is not responding",
		}
	case status == 502 || status == 503:
		fields["issue"] = "BACKEND_SERVICE_DOWN"
		fields["statusCode"] = status
		fields["possibleCauses"] = []string{
			"auth service is not running",
			"BFF cannot connect to the auth service",
		}
	case status == 500:
		fields["issue"] = "INTERNAL_SERVER_ERROR"
		fields["statusCode"] = status
		if apiErr != nil && len(apiErr.Body) > 0 {
			fields["serverError"] = string(apiErr.Body)
		}
	default:
		fields["statusCode"] = status
	}

	l.Error("authentication error: "+action, fields)
}

// Navigation records a view transition.
func (l *Logger) Navigation(from, to, reason string) {
	l.Info("navigation", Context{"from": from, "to": to, "reason": reason})
}

// UserAction records an operator action for debugging sessions.
func (l *Logger) UserAction(action string, details any) {
	l.Debug("user action", Context{"action": action, "details": details})
}

// Performance records a timing measurement.
func (l *Logger) Performance(metric string, d time.Duration, extra Context) {
	fields := Context{"durationMs": d.Milliseconds()}
	for k, v := range extra {
		fields[k] = v
	}
	l.Info("performance: "+metric, fields)
}
