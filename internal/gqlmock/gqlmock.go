// Package gqlmock provides a mocked HTTP client for testing code that
// speaks GraphQL over HTTP. Matchers pair an expected query and variable
// set with a canned response; a request that matches no matcher gets an
// HTTP 400 describing the mismatch so tests fail with useful output.
package gqlmock

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
)

type Matcher struct {
	Query     string
	Variables map[string]any
	Response  *Response
}

// NewQueryMatcher matches a request whose query equals the given query
// (whitespace-insensitively) and whose variables marshal to the same
// JSON as the given variables.
func NewQueryMatcher(query string, variables map[string]any, response *Response) *Matcher {
	return &Matcher{
		Query:     query,
		Variables: variables,
		Response:  response,
	}
}

type Response struct {
	status int
	body   []byte
}

// DataResponse builds a successful GraphQL response envelope.
func DataResponse(data map[string]any) *Response {
	body, err := json.Marshal(map[string]any{"data": data})
	if err != nil {
		panic(err)
	}
	return &Response{status: http.StatusOK, body: body}
}

// ErrorResponse builds a response with a single GraphQL error.
func ErrorResponse(message string) *Response {
	body, err := json.Marshal(map[string]any{
		"errors": []map[string]any{{"message": message}},
	})
	if err != nil {
		panic(err)
	}
	return &Response{status: http.StatusOK, body: body}
}

// StatusResponse builds a non-200 HTTP response with the given body.
func StatusResponse(status int, body string) *Response {
	return &Response{status: status, body: []byte(body)}
}

type mockTransport struct {
	matchers []*Matcher
}

func (t *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	defer func() { _ = req.Body.Close() }()
	raw, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return errorResponse(req, fmt.Sprintf("malformed request body: %v", err)), nil
	}

	for _, m := range t.matchers {
		if normalizeQuery(m.Query) != normalizeQuery(payload.Query) {
			continue
		}
		if !variablesMatch(m.Variables, payload.Variables) {
			continue
		}
		return &http.Response{
			StatusCode: m.Response.status,
			Body:       io.NopCloser(bytes.NewReader(m.Response.body)),
			Request:    req,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
		}, nil
	}

	return errorResponse(req, fmt.Sprintf("no matcher for query %q with variables %v", payload.Query, payload.Variables)), nil
}

func errorResponse(req *http.Request, message string) *http.Response {
	body, _ := json.Marshal(map[string]any{
		"errors": []map[string]any{{"message": message}},
	})
	return &http.Response{
		StatusCode: http.StatusBadRequest,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

// normalizeQuery collapses runs of whitespace so matchers don't need to
// reproduce the exact formatting of the query under test.
func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}

// variablesMatch compares variable maps after a JSON round trip, so
// expected values can use int where the wire carries float64.
func variablesMatch(expected, actual map[string]any) bool {
	if len(expected) == 0 && len(actual) == 0 {
		return true
	}
	normalize := func(v map[string]any) (any, error) {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		var out any
		err = json.Unmarshal(raw, &out)
		return out, err
	}
	e, err := normalize(expected)
	if err != nil {
		return false
	}
	a, err := normalize(actual)
	if err != nil {
		return false
	}
	return reflect.DeepEqual(e, a)
}

// NewMockedHTTPClient returns an HTTP client backed by the given matchers.
func NewMockedHTTPClient(ms ...*Matcher) *http.Client {
	return &http.Client{Transport: &mockTransport{matchers: ms}}
}
