// Package command maps typed requests onto xml api calls and the api results onto typed responses.
//
// Every Execute call validates its options, builds a fresh request document, submits it
// through the Transport and maps the returned RESULT element. Commands keep no state between
// calls and may be used from several goroutines.
package command

import (
	"context"

	"github.com/beevik/etree"
	"github.com/foomo/wca/pkg/apierrors"
	"github.com/foomo/wca/pkg/xmlapi"
	"github.com/foomo/wca/requests"
	"go.uber.org/zap"
)

// Transport submits a request document and returns the RESULT element of the response.
// Errors are *apierrors.Error values of kind access_token, transport, fault or processing.
type Transport interface {
	Submit(ctx context.Context, request string) (*etree.Element, error)
}

type command struct {
	l         *zap.Logger
	method    requests.Method
	transport Transport
}

func newCommand(l *zap.Logger, method requests.Method, transport Transport) command {
	return command{
		l:         l.Named("command." + string(method)),
		method:    method,
		transport: transport,
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func (c *command) newBuilder() (*xmlapi.Builder, *etree.Element) {
	b := xmlapi.NewMethodBuilder(string(c.method))
	return b, b.Root()
}

func (c *command) nilOptions() error {
	return apierrors.Validationf(string(c.method), "options must not be nil")
}

func (c *command) submit(ctx context.Context, b *xmlapi.Builder) (*etree.Element, error) {
	xml, err := b.XML()
	if err != nil {
		return nil, apierrors.Wrap(apierrors.KindProcessing, string(c.method), "failed to serialize request", err)
	}
	c.l.Debug("xml request", zap.String("xml", xml))
	return c.transport.Submit(ctx, xml)
}

func (c *command) mappingError(err error) error {
	return apierrors.Wrap(apierrors.KindProcessing, string(c.method), "failed to map result", err)
}
