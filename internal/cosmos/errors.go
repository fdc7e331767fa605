package cosmos

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// UpsertError is returned for a rejected upsert.
// Its message is one line; the full service response stays reachable through Unwrap.
type UpsertError struct {
	StatusCode int
	Code       string
	Err        error
}

func (e *UpsertError) Error() string {
	if e.StatusCode == 0 {
		return e.Err.Error()
	}
	msg := fmt.Sprintf("status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	return msg
}

func (e *UpsertError) Unwrap() error { return e.Err }

func wrapUpsertError(err error) error {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return &UpsertError{StatusCode: respErr.StatusCode, Code: respErr.ErrorCode, Err: err}
	}
	return &UpsertError{Err: err}
}
