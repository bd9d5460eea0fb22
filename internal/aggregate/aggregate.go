package aggregate

import "errors"

// ErrEmpty is returned by Finish when the aggregate absorbed no values.
var ErrEmpty = errors.New("aggregate: no samples accumulated")
