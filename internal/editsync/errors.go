package editsync

import "errors"

// ErrQueueClosed is returned when an edit is submitted after Close.
var ErrQueueClosed = errors.New("editsync: queue closed")
