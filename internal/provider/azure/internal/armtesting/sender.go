// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package armtesting provides canned HTTP transports and credentials for
// exercising Azure Resource Manager clients without a live subscription.
package armtesting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
)

// Request is one HTTP request recorded by a Sender, with its body
// captured so tests can assert on submitted resource properties.
type Request struct {
	Method string
	URL    *url.URL
	Body   []byte
}

// Sender implements policy.Transporter, replying to each request with
// the next canned response. Once the canned responses are exhausted it
// replies with an empty JSON object, which keeps long-running-operation
// pollers terminating.
type Sender struct {
	mu        sync.Mutex
	responses []*http.Response
	requests  []Request
}

// NewSenderWithValue returns a sender whose first response carries the
// JSON encoding of v with status 200.
func NewSenderWithValue(v any) *Sender {
	s := &Sender{}
	s.AppendValue(v)
	return s
}

// AppendValue queues a 200 response carrying the JSON encoding of v.
func (s *Sender) AppendValue(v any) {
	body, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	s.AppendResponse(http.StatusOK, string(body))
}

// AppendResponse queues a response with the given status and JSON body.
func (s *Sender) AppendResponse(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, makeResponse(status, body))
}

// Do implements policy.Transporter.
func (s *Sender) Do(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recorded := Request{Method: req.Method, URL: req.URL}
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		recorded.Body = body
	}
	s.requests = append(s.requests, recorded)

	var resp *http.Response
	if len(s.responses) > 0 {
		resp = s.responses[0]
		s.responses = s.responses[1:]
	} else {
		resp = makeResponse(http.StatusOK, "{}")
	}
	resp.Request = req
	return resp, nil
}

// Requests returns the requests seen so far, in order.
func (s *Sender) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func makeResponse(status int, body string) *http.Response {
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        http.Header{"Content-Type": []string{"application/json"}},
		Body:          io.NopCloser(bytes.NewReader([]byte(body))),
		ContentLength: int64(len(body)),
	}
}
