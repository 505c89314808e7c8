package twilio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&Config{AccountSID: "AC123"})
	assert.Error(t, err)

	_, err = New(&Config{AccountSID: "AC123", AuthToken: "secret", BaseURL: "not a url"})
	assert.Error(t, err)

	c, err := New(&Config{AccountSID: "AC123", AuthToken: "secret"})
	require.NoError(t, err)
	assert.Equal(t, DefaultFrom, c.from)
	assert.NotNil(t, c.rest)
}

func TestCreateMessage(t *testing.T) {
	var gotPath, gotUser, gotPass string
	var gotForm map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		_ = r.ParseForm()
		gotForm = map[string]string{
			"From": r.PostForm.Get("From"),
			"To":   r.PostForm.Get("To"),
			"Body": r.PostForm.Get("Body"),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM1","to":"whatsapp:+5511999999999","from":"whatsapp:+14155238886","status":"queued"}`))
	}))
	defer server.Close()

	c, err := New(&Config{AccountSID: "AC123", AuthToken: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	msg, err := c.CreateMessage(context.Background(), "+5511999999999", "Olá")
	require.NoError(t, err)

	assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", gotPath)
	assert.Equal(t, "AC123", gotUser)
	assert.Equal(t, "secret", gotPass)
	assert.Equal(t, map[string]string{
		"From": DefaultFrom,
		"To":   "whatsapp:+5511999999999",
		"Body": "Olá",
	}, gotForm)
	assert.Equal(t, "SM1", msg.SID)
	assert.Equal(t, "queued", msg.Status)
}

func TestSendKeepsWhatsAppPrefix(t *testing.T) {
	var gotTo string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		gotTo = r.PostForm.Get("To")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM2"}`))
	}))
	defer server.Close()

	c, err := New(&Config{AccountSID: "AC123", AuthToken: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	require.NoError(t, c.Send(context.Background(), "whatsapp:+5511999999999", "oi"))
	assert.Equal(t, "whatsapp:+5511999999999", gotTo)
}

func TestSendAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":21211,"message":"The 'To' number is not a valid phone number.","more_info":"https://www.twilio.com/docs/errors/21211","status":400}`))
	}))
	defer server.Close()

	c, err := New(&Config{AccountSID: "AC123", AuthToken: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	err = c.Send(context.Background(), "+1", "oi")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 21211, apiErr.Code)
	assert.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
}

func TestSendNonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	c, err := New(&Config{AccountSID: "AC123", AuthToken: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	err = c.Send(context.Background(), "+5511999999999", "oi")
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestSendWithCancelledContext(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	c, err := New(&Config{AccountSID: "AC123", AuthToken: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = c.Send(ctx, "+5511999999999", "oi")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestSendGivesUpWhenContextEnds(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM3"}`))
	}))
	defer server.Close()
	defer close(release)

	c, err := New(&Config{AccountSID: "AC123", AuthToken: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = c.Send(ctx, "+5511999999999", "oi")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
