// Package server runs a fake api endpoint for tests
package server

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/beevik/etree"
	httputils "github.com/foomo/keel/utils/net/http"
	"github.com/foomo/wca/pkg/auth"
	"github.com/foomo/wca/pkg/xmlapi"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const AccessToken = "test-access-token"

type (
	// Handler answers a method element with a status code and a response body
	Handler func(method *etree.Element) (int, string)
	// Request is a call received on the api path
	Request struct {
		Method        string
		Authorization string
		ContentType   string
		Body          string
	}
	Server struct {
		*httptest.Server
		l          *zap.Logger
		mu         sync.Mutex
		handlers   map[string]Handler
		requests   []Request
		tokenCalls int
	}
)

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

// New starts a server serving the token endpoint and the xml api; close it when done
func New(l *zap.Logger) *Server {
	inst := &Server{
		l:        l.Named("server"),
		handlers: map[string]Handler{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc(auth.DefaultTokenPath, inst.serveToken)
	mux.HandleFunc("/XMLAPI", inst.serveAPI)
	inst.Server = httptest.NewServer(mux)
	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

func (s *Server) Handle(method string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = h
}

// Result answers method with a successful RESULT holding inner
func (s *Server) Result(method, inner string) {
	s.Handle(method, func(*etree.Element) (int, string) {
		return http.StatusOK, Envelope("<RESULT><SUCCESS>TRUE</SUCCESS>" + inner + "</RESULT>")
	})
}

// Fault answers method with a fault
func (s *Server) Fault(method, code, message, errorID string) {
	s.Handle(method, func(*etree.Element) (int, string) {
		return http.StatusOK, Envelope(fmt.Sprintf(
			"<RESULT><SUCCESS>false</SUCCESS></RESULT>"+
				"<Fault><Request/><FaultCode>%s</FaultCode><FaultString><![CDATA[%s]]></FaultString>"+
				"<detail><error><errorid>%s</errorid><module/><class>SP.API</class><method/></error></detail></Fault>",
			code, message, errorID,
		))
	})
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) TokenCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenCalls
}

// Envelope wraps a response body
func Envelope(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?><Envelope><Body>` + body + `</Body></Envelope>`
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func (s *Server) serveToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputils.BadRequestServerError(s.l, w, r, err)
		return
	}
	if r.PostForm.Get("grant_type") != "refresh_token" || r.PostForm.Get("refresh_token") == "" {
		httputils.BadRequestServerError(s.l, w, r, errors.New("invalid grant"))
		return
	}
	s.mu.Lock()
	s.tokenCalls++
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w, `{"access_token":%q,"token_type":"bearer","expires_in":14400}`, AccessToken)
}

func (s *Server) serveAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputils.ServerError(s.l, w, r, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		httputils.BadRequestServerError(s.l, w, r, errors.Wrap(err, "failed to read incoming request"))
		return
	}
	doc, err := xmlapi.Parse(data)
	if err != nil {
		httputils.BadRequestServerError(s.l, w, r, err)
		return
	}
	var method *etree.Element
	if body := xmlapi.Find(doc.Root(), "Body"); body != nil && len(body.ChildElements()) > 0 {
		method = body.ChildElements()[0]
	}
	if method == nil {
		httputils.BadRequestServerError(s.l, w, r, errors.New("missing method element"))
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:        method.Tag,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Body:          string(data),
	})
	h, ok := s.handlers[method.Tag]
	s.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer "+AccessToken {
		httputils.ServerError(s.l, w, r, http.StatusUnauthorized, errors.New("invalid access token"))
		return
	}
	if !ok {
		httputils.ServerError(s.l, w, r, http.StatusNotImplemented, errors.Errorf("no handler for %s", method.Tag))
		return
	}
	code, body := h(method)
	w.Header().Set("Content-Type", "text/xml;charset=UTF-8")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}
