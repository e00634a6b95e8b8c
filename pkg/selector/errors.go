package selector

import "errors"

// ErrStoreUnavailable indicates the content store failed to answer a query.
// Re-running the whole pipeline may succeed.
var ErrStoreUnavailable = errors.New("selector: content store unavailable")
