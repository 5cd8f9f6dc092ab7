package snapshot

import "fmt"

// ErrChecksumMismatch indicates a snapshot whose payload checksum does not
// match its header, i.e. corruption in storage or transfer.
type ErrChecksumMismatch struct {
	Expected uint32
	Actual   uint32
}

func (e *ErrChecksumMismatch) Error() string {
	return fmt.Sprintf("snapshot: checksum mismatch: expected %08x, got %08x", e.Expected, e.Actual)
}
