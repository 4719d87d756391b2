// Package report 把 join 之后的 TimingReport 写成对外可读的形式：
// 输出目录里的计时文件（必有）、stdout 摘要、可选的 HTML 页面。
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/John-Robertt/oldphoto/internal/domain"
	"github.com/John-Robertt/oldphoto/internal/infra/fsx"
)

// FileName 返回计时文件名：timing_<threads>-<name|size>.txt。
func FileName(threads int, key domain.OrderKey) string {
	return fmt.Sprintf("timing_%d-%s.txt", threads, key)
}

// HTMLFileName 与 FileName 同名，仅扩展名不同。
func HTMLFileName(threads int, key domain.OrderKey) string {
	return fmt.Sprintf("timing_%d-%s.html", threads, key)
}

// Seconds 把耗时格式化为 "秒.纳秒"（纳秒固定 9 位）；负数按 0 处理。
func Seconds(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%d.%09d", d/time.Second, d%time.Second)
}

// Text 渲染计时文件内容。
//
// 约束：
// - 固定两行阶段耗时（total、ordering），之后每个 worker 一行，单位秒
// - worker 行按序号递增，条数等于线程数（线程数为 0 时没有 worker 行）
// - 并行阶段耗时只出现在 stdout 摘要与 HTML 页面里
func Text(tr domain.TimingReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "total: %s s\n", Seconds(tr.Total))
	fmt.Fprintf(&b, "ordering: %s s\n", Seconds(tr.Ordering))
	for _, w := range tr.Workers {
		fmt.Fprintf(&b, "worker %d: %s s\n", w.Ordinal, Seconds(w.Elapsed))
	}
	return b.String()
}

// Write 把计时文件写入 outDir（同名文件会被原子替换：重跑时以最新一次为准）。
// 返回写入的文件路径。
func Write(outDir string, tr domain.TimingReport) (string, error) {
	name := FileName(tr.Threads, tr.Order)
	if err := fsx.WriteFileAtomicReplace(outDir, name, []byte(Text(tr))); err != nil {
		return "", err
	}
	return joinPath(outDir, name), nil
}

// WriteHTML 渲染并写入 HTML 计时页面。
func WriteHTML(outDir string, tr domain.TimingReport) (string, error) {
	page, err := HTML(tr)
	if err != nil {
		return "", err
	}
	name := HTMLFileName(tr.Threads, tr.Order)
	if err := fsx.WriteFileAtomicReplace(outDir, name, page); err != nil {
		return "", err
	}
	return joinPath(outDir, name), nil
}

// Summary 把运行摘要打印到 w（通常是 stdout）。
func Summary(w io.Writer, tr domain.TimingReport) error {
	_, err := fmt.Fprintf(w,
		"Parallel execution:\n\tseq \t %20s\n\tpar \t %20s\n\ttotal \t %20s\n\tfiles \t processed=%d skipped=%d failed=%d\n",
		Seconds(tr.Ordering), Seconds(tr.Parallel), Seconds(tr.Total),
		tr.Summary.Processed, tr.Summary.Skipped, tr.Summary.Failed,
	)
	return err
}
