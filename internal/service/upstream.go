package service

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "github.com/pageza/fitbuddy/backend/internal/errors"
)

const (
	defaultUpstreamTimeout = 30 * time.Second
	errorBodyLimit         = 2048
)

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultUpstreamTimeout
	}
	return &http.Client{Timeout: timeout}
}

func orStandardLogger(log logrus.FieldLogger) logrus.FieldLogger {
	if log == nil {
		return logrus.StandardLogger()
	}
	return log
}

// transportError classifies a failed round trip as a timeout or a generic upstream failure
func transportError(err error, message string) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.Wrap(apperrors.CodeTimeout, err, message)
	}
	return apperrors.Wrap(apperrors.CodeUpstreamFailure, err, message)
}

// readErrorBody returns at most errorBodyLimit bytes of an error response
func readErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, errorBodyLimit))
	return strings.TrimSpace(string(data))
}
