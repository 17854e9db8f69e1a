// Package log adapts logrus to the logging hooks used by the server's
// HTTP plumbing.
package log

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// HTTPLogger implements the github.com/ernesto-jimenez/httplogger.HTTPLogger
// interface, recording each Linear API round trip.
type HTTPLogger struct {
	logger *log.Logger
}

// NewHTTPLogger creates a new HTTPLogger instance
func NewHTTPLogger(logger *log.Logger) *HTTPLogger {
	return &HTTPLogger{
		logger: logger,
	}
}

// LogRequest logs an outgoing API request. Bodies are never logged;
// every request carries the caller's credentials.
func (l *HTTPLogger) LogRequest(req *http.Request) {
	l.logger.WithFields(log.Fields{
		"method":         req.Method,
		"url":            req.URL.String(),
		"host":           req.Host,
		"path":           req.URL.Path,
		"content_length": req.ContentLength,
	}).Info("HTTP request")
}

// LogResponse logs the outcome of an API request, including how long
// the round trip took.
func (l *HTTPLogger) LogResponse(req *http.Request, res *http.Response, err error, duration time.Duration) {
	fields := log.Fields{
		"method":     req.Method,
		"url":        req.URL.String(),
		"host":       req.Host,
		"path":       req.URL.Path,
		"durationMs": duration / time.Millisecond,
	}

	if err != nil {
		fields["error"] = err.Error()
		l.logger.WithFields(fields).Error("HTTP response error")
		return
	}

	fields["status"] = res.StatusCode
	l.logger.WithFields(fields).Info("HTTP response")
}
