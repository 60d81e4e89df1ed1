package service

import "errors"

// ErrAccessDenied is returned when an authenticated caller attempts an
// operation they are not permitted to perform, such as mutating another
// user's review. It is distinct from the store's not-found errors so the
// HTTP layer can tell 403 from 404.
var ErrAccessDenied = errors.New("access denied")
