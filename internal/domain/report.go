package domain

import (
	"sort"
	"time"
)

// 单文件处理结果（只用于事件与计数，不会上升为整次运行的失败）。
const (
	FileStatusProcessed    = "processed"
	FileStatusSkipped      = "skipped"
	FileStatusDecodeFailed = "decode_failed"
	FileStatusFilterFailed = "filter_failed"
	FileStatusEncodeFailed = "encode_failed"
)

// 致命错误码：出现即中止整次运行（worker 启动之前）。
const (
	ErrCodeInputUnreadable = "input_unreadable"
	ErrCodeNoInputFiles    = "no_input_files"
	ErrCodeInvalidOrder    = "invalid_order"
	ErrCodeOutputDirFailed = "output_dir_failed"
	ErrCodeTextureFailed   = "texture_failed"
	ErrCodeReportFailed    = "report_failed"
)

// TimingReport 是一次运行的计时汇总。
//
// 只在所有 worker join 之后生成；写出一次，之后不再修改。
type TimingReport struct {
	Threads   int
	Order     OrderKey
	Files     int
	OutputDir string

	StartedAt time.Time

	Total    time.Duration
	Ordering time.Duration
	Parallel time.Duration

	Workers []WorkerTiming
	Summary ReportSummary
}

type WorkerTiming struct {
	Ordinal int
	Part    Partition
	Elapsed time.Duration

	Processed int
	Skipped   int
	Failed    int
}

type ReportSummary struct {
	Processed int
	Skipped   int
	Failed    int
}

// NewWorkerTiming 从 join 之后的 WorkerRecord 取出只读快照。
func NewWorkerTiming(rec WorkerRecord) WorkerTiming {
	return WorkerTiming{
		Ordinal:   rec.Ordinal,
		Part:      rec.Part,
		Elapsed:   rec.Elapsed(),
		Processed: rec.Processed,
		Skipped:   rec.Skipped,
		Failed:    rec.Failed,
	}
}

// Finalize 做三件事：
// 1) StartedAt 统一为 UTC
// 2) Workers 按 Ordinal 稳定排序
// 3) Summary 由 Workers 计算得出
func (r *TimingReport) Finalize() {
	r.StartedAt = r.StartedAt.UTC()

	sort.SliceStable(r.Workers, func(i, j int) bool { return r.Workers[i].Ordinal < r.Workers[j].Ordinal })

	var s ReportSummary
	for _, w := range r.Workers {
		s.Processed += w.Processed
		s.Skipped += w.Skipped
		s.Failed += w.Failed
	}
	r.Summary = s
}
