package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"transform-deps/internal/ports"
	"transform-deps/internal/types"
)

type ReportFileAdapter struct {
	Dir string
}

func NewReportFileAdapter(dir string) ReportFileAdapter {
	return ReportFileAdapter{Dir: dir}
}

func (a ReportFileAdapter) WriteUpstreamReport(report types.UpstreamReport) error {
	path, err := a.ensurePath("upstream.report.yaml")
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode upstream report").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write upstream report").
			WithCause(err)
	}
	filesPath, err := a.ensurePath("upstream.files")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filesPath, []byte(strings.Join(report.Files, "\n")), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write upstream file list").
			WithCause(err)
	}
	return nil
}

func (a ReportFileAdapter) ReadUpstreamReport() (types.UpstreamReport, error) {
	path := filepath.Join(a.Dir, "upstream.report.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return types.UpstreamReport{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("upstream report not found").
			WithCause(err)
	}
	var report types.UpstreamReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return types.UpstreamReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid upstream report format").
			WithCause(err)
	}
	return report, nil
}

func (a ReportFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

var _ ports.ReportPort = ReportFileAdapter{}
