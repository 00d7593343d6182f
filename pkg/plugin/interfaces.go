package plugin

import (
	"context"
)

// DocumentHost is implemented by document hosts.
type DocumentHost interface {
	// Snapshot returns the current document in tether's JSON document
	// format, including the host's current selection.
	Snapshot(ctx context.Context) ([]byte, error)

	// Connect binds an element to an existing style or variable.
	Connect(ctx context.Context, args ConnectArgs) error

	// CreateStyle creates a style from an element's value and binds the
	// element to it.
	CreateStyle(ctx context.Context, args CreateStyleArgs) (CreatedStyle, error)

	// GetMetadata describes the host.
	GetMetadata() HostInfo
}
