package chat

import "fmt"

// StorageError marks a durable read or write failure in the message
// store. Handlers map it to a 500; it is never retried here.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("chat storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
