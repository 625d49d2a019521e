package cloud

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetworkUnavailable reports that the remote store could not be reached.
	ErrNetworkUnavailable = errors.New("network unavailable")
	// ErrMalformedState reports a get_state response that is not a state object.
	ErrMalformedState = errors.New("malformed state")
	// ErrLocalCacheCorrupt reports a cached snapshot that cannot be parsed.
	ErrLocalCacheCorrupt = errors.New("local cache corrupt")
)

// RemoteRejectedError reports a non 2xx answer of the remote store.
type RemoteRejectedError struct {
	Op     string // get_state or sync
	Status int
}

func (e *RemoteRejectedError) Error() string {
	return fmt.Sprintf("remote store rejected %s: %d %s", e.Op, e.Status, http.StatusText(e.Status))
}
