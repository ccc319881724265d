package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/errors"
)

type errorEnvelope struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError turns a non-2xx storefront API response into an error,
// keeping the server's code and message when the body is the standard
// envelope. The body is consumed and closed.
func ParseResponseError(resp *http.Response, target string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (read body: %w)", target, resp.StatusCode, err)
	}

	var env errorEnvelope
	if json.Unmarshal(body, &env) != nil || env.Error == nil {
		return fmt.Errorf("%s returned status %d: %s", target, resp.StatusCode, body)
	}

	msg := fmt.Sprintf("%s: %s", target, env.Error.Message)
	switch resp.StatusCode {
	case http.StatusBadRequest:
		return apperrors.InvalidInput(msg)
	case http.StatusUnauthorized:
		return apperrors.Unauthorized(msg)
	case http.StatusForbidden:
		return apperrors.Forbidden(msg)
	case http.StatusNotFound:
		return apperrors.NotFound(target, env.Error.Message)
	case http.StatusConflict:
		return apperrors.Conflict(msg)
	default:
		return &apperrors.AppError{Code: env.Error.Code, Message: msg, Status: resp.StatusCode}
	}
}
