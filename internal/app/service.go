package app

import (
	"time"

	"transform-deps/internal/adapters"
	"transform-deps/internal/ports"
)

type Service struct {
	GraphSource   func(path string) ports.GraphSourcePort
	Reports       func(dir string) ports.ReportPort
	Fingerprinter ports.Fingerprinter
	Clock         func() time.Time
}

func NewService() Service {
	return Service{
		GraphSource: func(path string) ports.GraphSourcePort {
			return adapters.NewGraphFileAdapter(path)
		},
		Reports: func(dir string) ports.ReportPort {
			return adapters.NewReportFileAdapter(dir)
		},
		Fingerprinter: adapters.NewXXHashFingerprinter(),
		Clock:         time.Now,
	}
}
