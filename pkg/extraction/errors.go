package extraction

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped client errors.
const (
	CodeStatus    = "EXTRACTION_STATUS"
	CodeDecode    = "EXTRACTION_DECODE"
	CodeTransport = "EXTRACTION_TRANSPORT"
	CodeContract  = "EXTRACTION_CONTRACT"
)

// ErrMalformedResponse reports a 2xx answer whose body is not JSON with a
// string "content" field.
var ErrMalformedResponse = errors.New("extraction: malformed response")

// StatusError reports an answer outside the 2xx range.
type StatusError struct {
	StatusCode int
	// Body holds the leading bytes of the response for diagnostics.
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("extraction: unexpected status %d", e.StatusCode)
}

func wrapStatus(err *StatusError) error {
	return goerrors.Wrap(err, goerrors.CategoryExternal, "extraction service rejected the request").
		WithTextCode(CodeStatus)
}

func wrapDecode(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryExternal, "extraction service answer could not be decoded").
		WithTextCode(CodeDecode)
}

func wrapTransport(err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, "extraction service unreachable").
		WithTextCode(CodeTransport)
}

func wrapContract(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "extraction contract violated").
		WithTextCode(CodeContract)
}
