package backendtest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermowatch/thermowatch/backendtest"
	"github.com/thermowatch/thermowatch/core/apiclient"
	"github.com/thermowatch/thermowatch/core/session"
	"github.com/thermowatch/thermowatch/core/threshold"
)

func newStack(t *testing.T, opts ...backendtest.Option) (*session.Store, *apiclient.Client) {
	t.Helper()

	stub := backendtest.New(opts...)
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)

	var client *apiclient.Client
	store := session.NewStore(authenticatorFunc(func(ctx context.Context, u, p string) (session.Grant, error) {
		return client.ExchangeCredentials(ctx, u, p)
	}))
	client = apiclient.New(srv.URL, store)
	return store, client
}

type authenticatorFunc func(ctx context.Context, username, password string) (session.Grant, error)

func (f authenticatorFunc) ExchangeCredentials(ctx context.Context, username, password string) (session.Grant, error) {
	return f(ctx, username, password)
}

func TestIntegration_LoginFetchSubmitReadings(t *testing.T) {
	store, client := newStack(t, backendtest.WithThreshold(28))
	ctx := context.Background()

	// Public readings work without any session.
	readings, err := client.SensorReadings(ctx)
	require.NoError(t, err)
	require.Len(t, readings, 12)

	// Wrong password: classified, session untouched.
	_, err = store.Login(ctx, "alice", "nope")
	assert.ErrorIs(t, err, session.ErrInvalidCredentials)
	assert.Equal(t, session.Anonymous, store.Current().Mode)

	// Successful login installs the identity the stub registered.
	sess, err := store.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	require.True(t, sess.IsAuthenticated())
	require.NotNil(t, sess.Identity)
	assert.Equal(t, "Alice", sess.Identity.Name)

	// The full threshold workflow against the live stub.
	wf := threshold.NewWorkflow(client, store)
	wf.Fetch(ctx)
	st := wf.State()
	require.Equal(t, threshold.Loaded, st.Phase)
	assert.InDelta(t, 28, st.Value, 0.001)

	wf.SetInput("31.5")
	wf.Submit(ctx)
	st = wf.State()
	require.Equal(t, threshold.Loaded, st.Phase)
	assert.InDelta(t, 31.5, st.Value, 0.001)
	assert.Empty(t, wf.Input())
}

func TestIntegration_ProtectedRouteRequiresToken(t *testing.T) {
	_, client := newStack(t)

	// No login: the threshold endpoints reject the call.
	_, err := client.Threshold(context.Background())
	assert.ErrorIs(t, err, apiclient.ErrUnauthorized)
}

func TestIntegration_BogusTokenRejected(t *testing.T) {
	stub := backendtest.New()
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/threshold", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not-a-real-token")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIntegration_ThresholdValidation(t *testing.T) {
	store, client := newStack(t)
	ctx := context.Background()

	_, err := store.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	_, err = client.SetThreshold(ctx, 9000)

	var verr *apiclient.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "between")
}

func TestIntegration_LogoutInvalidatesClientCalls(t *testing.T) {
	store, client := newStack(t)
	ctx := context.Background()

	_, err := store.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	_, err = client.Threshold(ctx)
	require.NoError(t, err)

	store.Logout()

	// The next call goes out without a bearer header and is rejected.
	_, err = client.Threshold(ctx)
	assert.ErrorIs(t, err, apiclient.ErrUnauthorized)
}

func TestSeedReadings_ReverseChronological(t *testing.T) {
	readings := backendtest.SeedReadings(5, 30)

	require.Len(t, readings, 5)
	for i := 1; i < len(readings); i++ {
		assert.True(t, readings[i].RecordedAt.Before(readings[i-1].RecordedAt),
			"readings must be ordered newest first")
	}
}
