package ports

import (
	"context"

	"transform-deps/internal/types"
)

type Fingerprinter interface {
	Fingerprint(ctx context.Context, files FileCollection) (types.Fingerprint, error)
	Empty() types.Fingerprint
}
