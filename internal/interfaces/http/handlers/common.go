// Package handlers implements the HTTP handlers of the recreation API.
package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/recreation-potential/pkg/errors"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// writeAppError maps an error to its HTTP status and writes the standard
// body.  Errors without an application code are masked.
func writeAppError(w http.ResponseWriter, err error) {
	var ae *errors.AppError
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		ae = errors.New(errors.ErrCodeTimeout, errors.DefaultMessageForCode(errors.ErrCodeTimeout))
	case stderrors.As(err, &ae) && ae.Code != errors.CodeUnknown && ae.Code != errors.CodeInternal:
	default:
		ae = errors.Internal(errors.DefaultMessageForCode(errors.CodeInternal))
	}
	writeJSON(w, errors.HTTPStatusForCode(ae.Code), ErrorResponse{
		Code:    ae.Code.String(),
		Message: ae.Message,
		Detail:  ae.Detail,
	})
}

// readBody reads the request body, mapping oversize bodies to a client error.
func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.InvalidParam("request body too large").
				WithDetail("limit " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes")
		}
		return nil, errors.Wrap(err, errors.CodeInvalidParam, "failed to read request body")
	}
	return data, nil
}

// pathParam returns the decoded value of a route parameter.  chi matches on
// URL.RawPath when the client used a non-canonical escaping (lowercase hex,
// escaped unreserved characters), which leaves the parameter encoded.
func pathParam(r *http.Request, name string) (string, error) {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v, nil
	}
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return "", errors.InvalidParam("malformed path parameter " + name).WithDetail(v)
	}
	return decoded, nil
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.InvalidParam(name + " must be a non-negative integer").WithDetail(v)
	}
	return n, nil
}

//Personal.AI order the ending
