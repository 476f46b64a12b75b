package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/beevik/etree"
	"github.com/foomo/wca/client"
	"github.com/foomo/wca/pkg/apierrors"
	"github.com/foomo/wca/pkg/auth"
	"github.com/foomo/wca/pkg/metrics"
	"github.com/foomo/wca/responses"
	"github.com/foomo/wca/testing/server"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/oauth2"
)

const jobStatusRequest = `<?xml version="1.0" encoding="UTF-8"?><GetJobStatus><JOB_ID>1</JOB_ID></GetJobStatus>`

type failingTokenSource struct{}

func (failingTokenSource) Token() (*oauth2.Token, error) {
	return nil, errors.New("token endpoint unavailable")
}

func newTestTransport(t *testing.T, ts oauth2.TokenSource) (*server.Server, *client.HTTPTransport) {
	t.Helper()
	l := zaptest.NewLogger(t)
	s := server.New(l)
	t.Cleanup(s.Close)
	if ts == nil {
		ts = auth.StaticTokenSource(server.AccessToken)
	}
	transport, err := client.NewHTTPTransport(l, s.URL+"/", ts, client.HTTPTransportWithHTTPClient(s.Client()))
	require.NoError(t, err)
	return s, transport
}

func respond(status int, body string) server.Handler {
	return func(*etree.Element) (int, string) {
		return status, body
	}
}

func TestHTTPTransportSubmit(t *testing.T) {
	s, transport := newTestTransport(t, nil)
	s.Result("GetJobStatus", `<JOB_ID>1</JOB_ID><JOB_STATUS>RUNNING</JOB_STATUS>`)

	before := testutil.ToFloat64(metrics.RequestCounter.WithLabelValues("GetJobStatus", metrics.StatusSuccess))
	result, err := transport.Submit(context.Background(), jobStatusRequest)
	require.NoError(t, err)
	assert.Equal(t, "RESULT", result.Tag)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RequestCounter.WithLabelValues("GetJobStatus", metrics.StatusSuccess)))

	received := s.Requests()
	require.Len(t, received, 1)
	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?><Envelope><Body><GetJobStatus><JOB_ID>1</JOB_ID></GetJobStatus></Body></Envelope>`, received[0].Body)
}

func TestHTTPTransportFault(t *testing.T) {
	s, transport := newTestTransport(t, nil)
	s.Fault("GetJobStatus", "Client", "Invalid Job ID", "123")

	before := testutil.ToFloat64(metrics.RequestCounter.WithLabelValues("GetJobStatus", metrics.StatusFault))
	_, err := transport.Submit(context.Background(), jobStatusRequest)
	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.KindFault))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RequestCounter.WithLabelValues("GetJobStatus", metrics.StatusFault)))

	var fault *responses.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, &responses.Fault{Code: "Client", Message: "Invalid Job ID", ErrorID: "123"}, fault)
}

func TestHTTPTransportUnsuccessfulWithoutFault(t *testing.T) {
	s, transport := newTestTransport(t, nil)
	s.Handle("GetJobStatus", respond(http.StatusOK, server.Envelope(`<RESULT><SUCCESS>false</SUCCESS></RESULT>`)))

	_, err := transport.Submit(context.Background(), jobStatusRequest)
	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.KindFault))
}

func TestHTTPTransportErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler server.Handler
		kind    apierrors.Kind
	}{
		{"server error", respond(http.StatusInternalServerError, "oops"), apierrors.KindTransport},
		{"malformed xml", respond(http.StatusOK, "<Envelope><Body><RESULT>"), apierrors.KindProcessing},
		{"missing body", respond(http.StatusOK, "<Envelope/>"), apierrors.KindProcessing},
		{"missing result", respond(http.StatusOK, server.Envelope("")), apierrors.KindProcessing},
		{"missing success", respond(http.StatusOK, server.Envelope("<RESULT/>")), apierrors.KindProcessing},
		{"invalid success", respond(http.StatusOK, server.Envelope("<RESULT><SUCCESS>maybe</SUCCESS></RESULT>")), apierrors.KindProcessing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, transport := newTestTransport(t, nil)
			s.Handle("GetJobStatus", tt.handler)

			_, err := transport.Submit(context.Background(), jobStatusRequest)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apierrors.KindOf(err), err.Error())
		})
	}
}

func TestHTTPTransportUnauthorized(t *testing.T) {
	s, transport := newTestTransport(t, auth.StaticTokenSource("wrong"))
	s.Result("GetJobStatus", `<JOB_ID>1</JOB_ID>`)

	_, err := transport.Submit(context.Background(), jobStatusRequest)
	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.KindTransport))
}

func TestHTTPTransportTokenError(t *testing.T) {
	s, transport := newTestTransport(t, failingTokenSource{})

	before := testutil.ToFloat64(metrics.RequestCounter.WithLabelValues("GetJobStatus", metrics.StatusTokenError))
	_, err := transport.Submit(context.Background(), jobStatusRequest)
	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.KindAccessToken))
	assert.Contains(t, err.Error(), "token endpoint unavailable")
	assert.Empty(t, s.Requests())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RequestCounter.WithLabelValues("GetJobStatus", metrics.StatusTokenError)))
}

func TestHTTPTransportConnectionError(t *testing.T) {
	s, transport := newTestTransport(t, nil)
	s.Close()

	_, err := transport.Submit(context.Background(), jobStatusRequest)
	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.KindTransport))
}

func TestHTTPTransportInvalidRequest(t *testing.T) {
	_, transport := newTestTransport(t, nil)

	_, err := transport.Submit(context.Background(), "<GetJobStatus>")
	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.KindProcessing))
}
