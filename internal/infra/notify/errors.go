package notify

import "errors"

var (
	ErrPublish = errors.New("notify: failed to publish event")
)
