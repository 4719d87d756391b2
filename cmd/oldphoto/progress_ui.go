package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/John-Robertt/oldphoto/internal/app/run"
	"github.com/John-Robertt/oldphoto/internal/config"
	"github.com/John-Robertt/oldphoto/internal/domain"
)

var _ run.Observer = (*progressUI)(nil)

// progressUI 是交互终端下的进度输出。
//
// 设计目标：
// - 所有过程信息写到 stderr，不污染 stdout 的计时摘要
// - 事件驱动：run 层只发事件，CLI 决定如何展示
// - keepalive：长时间没有文件完成时也会定期输出一行
type progressUI struct {
	w io.Writer

	mu          sync.Mutex
	startedAt   time.Time
	lastPrinted time.Time

	workers int
	total   int
	done    int
	ok      int
	fail    int
	skip    int

	keepaliveThreshold time.Duration
	tickerInterval     time.Duration

	stopCh        chan struct{}
	tickerStarted bool
}

func newProgressUI(w io.Writer) *progressUI {
	return &progressUI{
		w:                  w,
		keepaliveThreshold: 6 * time.Second,
		tickerInterval:     2 * time.Second,
	}
}

func (p *progressUI) OnStart(eff config.EffectiveConfig) {
	now := time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.startedAt.IsZero() {
		p.startedAt = now
	}

	fmt.Fprintf(p.w, "[%s] oldphoto\n", now.Format("15:04:05"))
	fmt.Fprintln(p.w, "配置（生效）:")
	fmt.Fprintf(p.w, "  input: %s\n", eff.Path)
	fmt.Fprintf(p.w, "  output: %s\n", eff.OutputDir)
	fmt.Fprintf(p.w, "  threads: %d\n", eff.Threads)
	fmt.Fprintf(p.w, "  order: %s\n", eff.Order)
	fmt.Fprintf(p.w, "  texture: %s (opacity=%.2f)\n", eff.Texture, eff.Filters.TextureOpacity)
	fmt.Fprintf(p.w, "  filters: contrast=%.0f smooth=%.0f quality=%d\n",
		eff.Filters.ContrastPercent, eff.Filters.SmoothWeight, eff.Filters.Quality,
	)
	fmt.Fprintln(p.w)

	p.lastPrinted = time.Now()
}

func (p *progressUI) OnPhaseDone(phase domain.Phase, fields map[string]any, dur time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if phase.Terminal() {
		p.stopTickerLocked()
	}

	switch phase {
	case domain.PhaseEnumerating:
		fmt.Fprintf(p.w, "扫描: files=%d (%s)\n", intField(fields, "files"), formatShortDuration(dur))
	case domain.PhaseOrdering:
		fmt.Fprintf(p.w, "排序: order=%s (%s)\n", stringField(fields, "order"), formatShortDuration(dur))
	case domain.PhaseDirectoryPreparing, domain.PhaseTextureLoading:
		// 两个准备阶段通常是毫秒级，合并到 dispatching 行里展示即可。
	case domain.PhaseDispatching:
		p.workers = intField(fields, "workers")
		p.total = intField(fields, "files")
		if p.workers == 0 {
			p.total = 0
		}
		fmt.Fprintf(p.w, "执行: workers=%d files=%d\n\n", p.workers, p.total)
		if p.total > 0 && !p.tickerStarted {
			p.startTickerLocked()
		}
	case domain.PhaseJoining:
		p.stopTickerLocked()
		fmt.Fprintf(p.w, "\n并行阶段完成 (%s)\n", formatShortDuration(dur))
	case domain.PhaseReporting:
		if path := stringField(fields, "report"); path != "" {
			fmt.Fprintf(p.w, "report: %s\n", path)
		}
		if path := stringField(fields, "html"); path != "" {
			fmt.Fprintf(p.w, "html: %s\n", path)
		}
	case domain.PhaseFailed:
		// 诊断行由 main 打印。
	default:
		fmt.Fprintf(p.w, "%s (%s)\n", phase, formatShortDuration(dur))
	}

	p.lastPrinted = time.Now()
}

func (p *progressUI) OnFileDone(worker int, file domain.PhotoFile, status string, dur time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	label := strings.ToUpper(status)
	switch status {
	case domain.FileStatusProcessed:
		p.ok++
		label = "OK"
	case domain.FileStatusSkipped:
		p.skip++
		label = "SKIP"
	default:
		p.fail++
	}

	fmt.Fprintf(p.w, "[%d/%d] w%d %s %s (%s)\n",
		p.done, p.total, worker, truncate(file.Name, 80), label, formatShortDuration(dur),
	)
	p.lastPrinted = time.Now()
}

func (p *progressUI) startTickerLocked() {
	p.stopCh = make(chan struct{})
	p.tickerStarted = true

	interval := p.tickerInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	threshold := p.keepaliveThreshold
	if threshold <= 0 {
		threshold = 6 * time.Second
	}
	stop := p.stopCh

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-t.C:
				p.mu.Lock()
				if time.Since(p.lastPrinted) > threshold {
					fmt.Fprintf(p.w, "进度: done=%d/%d ok=%d fail=%d skip=%d elapsed=%s\n",
						p.done, p.total, p.ok, p.fail, p.skip, formatElapsed(time.Since(p.startedAt)),
					)
					p.lastPrinted = time.Now()
				}
				p.mu.Unlock()
			case <-stop:
				return
			}
		}
	}()
}

func (p *progressUI) stopTickerLocked() {
	if !p.tickerStarted {
		return
	}
	close(p.stopCh)
	p.tickerStarted = false
}

// truncate 按字符（rune）截断，避免把多字节文件名切成半个字符。
func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func formatShortDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	sec := int(d.Seconds())
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func intField(fields map[string]any, key string) int {
	if fields == nil {
		return 0
	}
	switch x := fields[key].(type) {
	case int:
		return x
	case int64:
		return int(x)
	default:
		return 0
	}
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}
