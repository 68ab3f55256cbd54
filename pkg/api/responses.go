package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrClient is wrapped by errors for 4xx responses.
	ErrClient = errors.New("request rejected by the server")
	// ErrServer is wrapped by errors for 5xx and other unexpected responses.
	ErrServer = errors.New("server error")
)

// Error is a non-2xx response.
type Error struct {
	StatusCode int
	// Message is a summary chosen by the caller for the status range.
	Message string
	// Detail is the server's own message, when it sent one.
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + "\n" + e.Detail
}

func (e *Error) Unwrap() error {
	if 400 <= e.StatusCode && e.StatusCode < 500 {
		return ErrClient
	}
	return ErrServer
}

type MessageFor map[StatusCodeRange]string

// unmarshalJsonResponse decodes a 2xx body into v. Any other status becomes
// an *Error whose message is taken from messageFor.
func unmarshalJsonResponse[T any](resp *http.Response, v *T, messageFor MessageFor) error {
	body, err := readResponse(resp, messageFor)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("unexpected response: %w (status code = %d)", err, resp.StatusCode)
	}
	return nil
}

// readResponse returns the body of a 2xx response, or an *Error.
func readResponse(resp *http.Response, messageFor MessageFor) ([]byte, error) {
	body, rerr := io.ReadAll(resp.Body)
	scr := StatusCodeRangeOf(resp)
	if scr == Status2xx {
		if rerr != nil {
			return nil, fmt.Errorf("cannot read response: %w", rerr)
		}
		return body, nil
	}

	message, ok := messageFor[scr]
	if !ok {
		message = fmt.Sprintf("%s (status code = %d)", scr, resp.StatusCode)
	}
	e := &Error{StatusCode: resp.StatusCode, Message: message}
	if rerr != nil {
		e.Detail = "cannot read server message: " + rerr.Error()
		return nil, e
	}
	e.Detail = parseErrorMessage(body)
	return nil, e
}

// parseErrorMessage extracts {"message"} or {"detail"} from an error body and
// falls back to the raw body.
func parseErrorMessage(body []byte) string {
	var msg struct {
		Message *string `json:"message"`
		Detail  *string `json:"detail"`
	}
	if err := json.Unmarshal(body, &msg); err == nil {
		switch {
		case msg.Message != nil:
			return *msg.Message
		case msg.Detail != nil:
			return *msg.Detail
		}
	}
	return strings.TrimSpace(string(body))
}
