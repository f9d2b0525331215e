// internal/platform/adapter.go

// Package platform runs the HTTP application one request at a time for hosts
// that hand over a complete request and expect a complete response back, such
// as a serverless HTTP trigger. Nothing is streamed.
package platform

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"

	"wfl-bus-finder-api-server/internal/logging"
)

// Request is one fully buffered inbound request.
type Request struct {
	Method     string
	Path       string
	RawQuery   string
	Host       string
	RemoteAddr string
	Header     http.Header
	Body       []byte
}

// Response is one fully buffered outbound response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// FromHTTP buffers r into a Request.
func FromHTTP(r *http.Request) (Request, error) {
	var body []byte
	if r.Body != nil {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return Request{}, fmt.Errorf("read request body: %w", err)
		}
		body = b
	}
	return Request{
		Method:     r.Method,
		Path:       r.URL.Path,
		RawQuery:   r.URL.RawQuery,
		Host:       r.Host,
		RemoteAddr: r.RemoteAddr,
		Header:     r.Header.Clone(),
		Body:       body,
	}, nil
}

// Invoke runs h against req and captures the whole response.
func Invoke(ctx context.Context, h http.Handler, req Request) (Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	u := &url.URL{Path: req.Path, RawQuery: req.RawQuery}
	if u.Path == "" {
		u.Path = "/"
	}

	r, err := http.NewRequestWithContext(ctx, method, u.RequestURI(), bytes.NewReader(req.Body))
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	r.RequestURI = u.RequestURI()
	if req.Header != nil {
		r.Header = req.Header.Clone()
	}
	r.Host = req.Host
	r.RemoteAddr = req.RemoteAddr
	if r.RemoteAddr == "" {
		r.RemoteAddr = "127.0.0.1:0"
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	res := rec.Result()
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read response body: %w", err)
	}
	return Response{StatusCode: res.StatusCode, Header: res.Header, Body: body}, nil
}

// Write copies resp onto w.
func (resp Response) Write(w http.ResponseWriter) error {
	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, err := w.Write(resp.Body)
	return err
}

// HTTPFunction adapts h into a single-shot handler: the request is buffered,
// run to completion, and the buffered response is written back.
func HTTPFunction(h http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := FromHTTP(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		resp, err := Invoke(r.Context(), h, req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := resp.Write(w); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to write response")
		}
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Error in handler")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
}
