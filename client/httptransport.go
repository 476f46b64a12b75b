package client

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	keelhttp "github.com/foomo/keel/net/http"
	"github.com/foomo/wca/pkg/apierrors"
	"github.com/foomo/wca/pkg/auth"
	"github.com/foomo/wca/pkg/journal"
	"github.com/foomo/wca/pkg/metrics"
	"github.com/foomo/wca/pkg/xmlapi"
	"github.com/foomo/wca/responses"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// APIPath is appended to the endpoint to reach the xml api
const APIPath = "/XMLAPI"

const DefaultTimeout = 60 * time.Second

type (
	// HTTPTransport posts request documents wrapped in an envelope to the xml api
	HTTPTransport struct {
		l           *zap.Logger
		url         string
		tokenSource oauth2.TokenSource
		httpClient  *http.Client
		journal     *journal.Journal
	}
	HTTPTransportOption func(*HTTPTransport)
)

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

func HTTPTransportWithHTTPClient(v *http.Client) HTTPTransportOption {
	return func(o *HTTPTransport) {
		o.httpClient = v
	}
}

// HTTPTransportWithJournal records every exchange; failures to record are logged and counted only
func HTTPTransportWithJournal(v *journal.Journal) HTTPTransportOption {
	return func(o *HTTPTransport) {
		o.journal = v
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

func NewHTTPTransport(l *zap.Logger, endpoint string, tokenSource oauth2.TokenSource, opts ...HTTPTransportOption) (*HTTPTransport, error) {
	if _, err := auth.ParseEndpoint(endpoint); err != nil {
		return nil, errors.Wrapf(err, "invalid endpoint %q", endpoint)
	}
	if tokenSource == nil {
		return nil, errors.New("token source is required")
	}
	inst := &HTTPTransport{
		l:           l.Named("transport.http"),
		url:         strings.TrimRight(endpoint, "/") + APIPath,
		tokenSource: tokenSource,
	}

	for _, opt := range opts {
		opt(inst)
	}

	if inst.httpClient == nil {
		inst.httpClient = keelhttp.NewHTTPClient(
			keelhttp.HTTPClientWithTimeout(DefaultTimeout),
			keelhttp.HTTPClientWithTelemetry(),
		)
	}

	return inst, nil
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

// Submit wraps the request in an envelope, posts it and returns the RESULT element
func (t *HTTPTransport) Submit(ctx context.Context, request string) (*etree.Element, error) {
	start := time.Now()
	requestDoc, err := xmlapi.Parse([]byte(request))
	if err != nil {
		return nil, apierrors.Wrap(apierrors.KindProcessing, "", "invalid request document", err)
	}
	method := requestDoc.Root().Tag

	status := metrics.StatusError
	defer func() {
		metrics.RequestCounter.WithLabelValues(method, status).Inc()
		metrics.RequestDuration.WithLabelValues(method, status).Observe(time.Since(start).Seconds())
	}()

	envelope, err := wrap(requestDoc.Root())
	if err != nil {
		return nil, apierrors.Wrap(apierrors.KindProcessing, method, "failed to serialize envelope", err)
	}

	token, err := t.tokenSource.Token()
	if err != nil {
		status = metrics.StatusTokenError
		return nil, apierrors.Wrap(apierrors.KindAccessToken, method, "failed to obtain access token", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, strings.NewReader(envelope))
	if err != nil {
		return nil, apierrors.Wrap(apierrors.KindTransport, method, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "text/xml;charset=UTF-8")
	token.SetAuthHeader(req)

	t.l.Debug("posting request", zap.String("method", method), zap.String("url", t.url))
	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.record(ctx, &journal.Exchange{Method: method, Time: start, Duration: time.Since(start), Request: envelope})
		return nil, apierrors.Wrap(apierrors.KindTransport, method, "failed to post request", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	t.record(ctx, &journal.Exchange{
		Method:     method,
		Time:       start,
		Duration:   time.Since(start),
		StatusCode: resp.StatusCode,
		Request:    envelope,
		Response:   string(data),
	})
	if err != nil {
		return nil, apierrors.Wrap(apierrors.KindTransport, method, "failed to read response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apierrors.New(apierrors.KindTransport, method, "unexpected status "+resp.Status)
	}

	result, fault, err := unwrap(data)
	if err != nil {
		return nil, apierrors.Wrap(apierrors.KindProcessing, method, "failed to read response", err)
	}
	if fault != nil {
		status = metrics.StatusFault
		t.l.Warn("api returned a fault", zap.String("method", method), zap.Error(fault))
		return nil, apierrors.Wrap(apierrors.KindFault, method, "api returned a fault", fault)
	}
	status = metrics.StatusSuccess
	t.l.Debug("request succeeded", zap.String("method", method), zap.Duration("duration", time.Since(start)))
	return result, nil
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func (t *HTTPTransport) record(ctx context.Context, e *journal.Exchange) {
	if t.journal == nil {
		return
	}
	if _, err := t.journal.Record(ctx, e); err != nil {
		metrics.JournalPersistFailedCounter.WithLabelValues().Inc()
		t.l.Error("failed to record exchange", zap.String("method", e.Method), zap.Error(err))
	}
}

func wrap(method *etree.Element) (string, error) {
	b := xmlapi.NewMethodBuilder("Envelope")
	body := b.Add(b.Root(), "Body")
	body.AddChild(method)
	return b.XML()
}

// unwrap returns either the RESULT element or the fault reported by the api
func unwrap(data []byte) (*etree.Element, *responses.Fault, error) {
	doc, err := xmlapi.Parse(data)
	if err != nil {
		return nil, nil, err
	}
	body := xmlapi.Find(doc.Root(), "Body")
	if body == nil {
		return nil, nil, &xmlapi.MissingError{Path: "Envelope/Body"}
	}
	if fault := xmlapi.Find(body, "Fault"); fault != nil {
		return nil, mapFault(fault), nil
	}
	result := xmlapi.Find(body, "RESULT")
	if result == nil {
		return nil, nil, &xmlapi.MissingError{Path: "Envelope/Body/RESULT"}
	}
	success, err := xmlapi.Bool(result, "SUCCESS")
	if err != nil {
		return nil, nil, err
	}
	if !success {
		return nil, &responses.Fault{Message: "api call was not successful"}, nil
	}
	return result, nil, nil
}

func mapFault(fault *etree.Element) *responses.Fault {
	f := &responses.Fault{}
	f.Code, _ = xmlapi.OptionalText(fault, "FaultCode")
	f.Message, _ = xmlapi.OptionalText(fault, "FaultString")
	f.ErrorID, _ = xmlapi.OptionalText(fault, "detail/error/errorid")
	f.Code = strings.TrimSpace(f.Code)
	f.Message = strings.TrimSpace(f.Message)
	f.ErrorID = strings.TrimSpace(f.ErrorID)
	return f
}
