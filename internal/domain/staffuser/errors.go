package staffuser

import "errors"

var ErrUserNotFound = errors.New("staff user not found")
