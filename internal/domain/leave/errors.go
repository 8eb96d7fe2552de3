package leave

import "errors"

var (
	ErrUnknownStatus = errors.New("unknown leave request status")
)
