package adapters

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/cespare/xxhash/v2"

	"transform-deps/internal/ports"
	"transform-deps/internal/types"
)

// XXHashFingerprinter hashes the sorted paths of a collection together with
// the content of the files that exist on disk.
type XXHashFingerprinter struct{}

func NewXXHashFingerprinter() XXHashFingerprinter {
	return XXHashFingerprinter{}
}

func (XXHashFingerprinter) Fingerprint(ctx context.Context, files ports.FileCollection) (types.Fingerprint, error) {
	paths, err := files.Files(ctx)
	if err != nil {
		return types.Fingerprint{}, err
	}
	ordered := append([]string(nil), paths...)
	sort.Strings(ordered)
	digest := xxhash.New()
	for _, path := range ordered {
		_, _ = digest.WriteString(path)
		_, _ = digest.Write([]byte{0})
		content, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return types.Fingerprint{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to read %s", path)).
				WithCause(err)
		}
		_, _ = digest.Write(content)
	}
	return types.Fingerprint{
		Hash:      formatHash(digest.Sum64()),
		FileCount: len(ordered),
	}, nil
}

func (XXHashFingerprinter) Empty() types.Fingerprint {
	return types.Fingerprint{Hash: formatHash(xxhash.Sum64(nil))}
}

func formatHash(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}

var _ ports.Fingerprinter = XXHashFingerprinter{}
