package apiclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/thermowatch/thermowatch/core/session"
)

// SensorReading is one server-reported measurement. Readings are immutable
// once fetched; each fetch replaces the whole collection, there is no
// incremental merge.
type SensorReading struct {
	ID                 string    `json:"id"`
	Temperature        float64   `json:"temperature"`
	ThresholdAtCapture *float64  `json:"threshold_value,omitempty"`
	RecordedAt         time.Time `json:"recorded_at"`
}

// ThresholdSetting is the single server-side alert threshold, read and
// written as a whole.
type ThresholdSetting struct {
	Value float64 `json:"value"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string            `json:"token"`
	User  *session.Identity `json:"user,omitempty"`
}

// ExchangeCredentials performs the login exchange against POST /auth/login.
// The request carries no bearer header even when a session is already
// authenticated. Errors are mapped into the session package taxonomy, which
// makes Client satisfy session.Authenticator.
func (c *Client) ExchangeCredentials(ctx context.Context, username, password string) (session.Grant, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{
		Username: username,
		Password: password,
	}, &resp, false)

	switch {
	case err == nil:
	case errors.Is(err, ErrUnauthorized):
		return session.Grant{}, session.ErrInvalidCredentials
	case errors.Is(err, ErrMalformedResponse):
		return session.Grant{}, errors.Join(session.ErrMalformedResponse, err)
	default:
		return session.Grant{}, errors.Join(session.ErrServiceUnavailable, err)
	}

	if resp.Token == "" {
		return session.Grant{}, session.ErrMalformedResponse
	}
	return session.Grant{Token: resp.Token, Identity: resp.User}, nil
}

// Threshold reads the current alert threshold. Protected: requires an
// authenticated session, and callers consult the access gate first.
func (c *Client) Threshold(ctx context.Context) (ThresholdSetting, error) {
	var setting ThresholdSetting
	if err := c.Call(ctx, http.MethodGet, "/api/threshold", nil, &setting); err != nil {
		return ThresholdSetting{}, err
	}
	return setting, nil
}

// SetThreshold writes a new alert threshold and returns the value the server
// settled on. Protected like Threshold.
func (c *Client) SetThreshold(ctx context.Context, value float64) (ThresholdSetting, error) {
	var setting ThresholdSetting
	if err := c.Call(ctx, http.MethodPost, "/api/threshold", ThresholdSetting{Value: value}, &setting); err != nil {
		return ThresholdSetting{}, err
	}
	return setting, nil
}

// SensorReadings fetches the full reading collection in server order
// (reverse-chronological); the client does not re-sort. Public endpoint, no
// credential required.
func (c *Client) SensorReadings(ctx context.Context) ([]SensorReading, error) {
	var readings []SensorReading
	if err := c.Call(ctx, http.MethodGet, "/api/sensor-readings", nil, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}
