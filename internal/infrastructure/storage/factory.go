package storage

import (
	"context"
	"fmt"

	"github.com/crm/backend/internal/application/crm"
	infraconfig "github.com/crm/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Report sink kinds
const (
	SinkFile = "file"
	SinkS3   = "s3"
)

// NewReportSink builds the sink selected by cfg.Sink. For S3 the bucket is
// created when missing.
func NewReportSink(ctx context.Context, cfg infraconfig.ReportsConfig, logger *zap.Logger) (crm.ReportSink, error) {
	switch cfg.Sink {
	case SinkFile, "":
		return NewFileReportSink(cfg.Directory)
	case SinkS3:
		sink, err := NewS3ReportSink(ctx, &cfg.S3, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := sink.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return sink, nil
	default:
		return nil, fmt.Errorf("unknown report sink %q", cfg.Sink)
	}
}

var (
	_ crm.ReportSink = (*FileReportSink)(nil)
	_ crm.ReportSink = (*S3ReportSink)(nil)
)
