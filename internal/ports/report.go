package ports

import "transform-deps/internal/types"

type ReportPort interface {
	WriteUpstreamReport(report types.UpstreamReport) error
}
