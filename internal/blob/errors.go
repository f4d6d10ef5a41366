package blob

import "errors"

var ErrFull = errors.New("blob: store is full")
