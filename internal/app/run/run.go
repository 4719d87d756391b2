package run

import (
	"fmt"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/John-Robertt/oldphoto/internal/app"
	"github.com/John-Robertt/oldphoto/internal/config"
	"github.com/John-Robertt/oldphoto/internal/domain"
	"github.com/John-Robertt/oldphoto/internal/infra/fsx"
	"github.com/John-Robertt/oldphoto/internal/report"
	"github.com/John-Robertt/oldphoto/internal/scan"
)

// Execute 执行一次批处理，返回 join 之后生成的 TimingReport。
//
// 单文件失败只计数，不会让 Execute 返回错误；返回的 error 总是 *Error。
func Execute(eff config.EffectiveConfig, pipe Pipeline, log *zap.Logger) (domain.TimingReport, error) {
	return ExecuteWithObserver(eff, pipe, log, nil)
}

// ExecuteWithObserver 与 Execute 相同，但允许传入 Observer 以输出进度/阶段信息（由上层决定是否启用）。
//
// 阶段顺序固定：enumerating -> ordering -> directory_preparing -> texture_loading
// -> dispatching -> joining -> reporting。worker 启动之前的任一阶段失败都会中止运行；
// 此时不会启动任何 worker，也不会写出任何照片。
func ExecuteWithObserver(eff config.EffectiveConfig, pipe Pipeline, log *zap.Logger, obs Observer) (domain.TimingReport, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if obs == nil {
		obs = nopObserver{}
	}
	c := &coordinator{eff: eff, pipe: pipe, log: log, obs: obs, phase: domain.PhaseIdle}
	tr, err := c.run()
	if err != nil {
		// 诊断行由 CLI 打印；这里只留 debug 级别的结构化记录。
		log.Debug("运行中止", zap.String("phase", string(c.phase)), zap.String("error_code", Code(err)), zap.Error(err))
		obs.OnPhaseDone(domain.PhaseFailed, map[string]any{"code": Code(err)}, time.Since(c.started))
		return domain.TimingReport{}, err
	}
	return tr, nil
}

type coordinator struct {
	eff  config.EffectiveConfig
	pipe Pipeline
	log  *zap.Logger
	obs  Observer

	phase   domain.Phase
	started time.Time
}

// enter 推进状态机；只允许向前走。
func (c *coordinator) enter(p domain.Phase) time.Time {
	c.phase = p
	c.log.Debug("进入阶段", zap.String("phase", string(p)))
	return time.Now()
}

func (c *coordinator) fail(code string, err error) error {
	return fail(c.phase, code, err)
}

func (c *coordinator) run() (domain.TimingReport, error) {
	c.started = time.Now()
	c.obs.OnStart(c.eff)

	// enumerating
	t := c.enter(domain.PhaseEnumerating)
	found, err := scan.ScanPhotos(c.eff.Path, c.eff.Marker)
	if err != nil {
		return domain.TimingReport{}, c.fail(domain.ErrCodeInputUnreadable, err)
	}
	if len(found) == 0 {
		return domain.TimingReport{}, c.fail(domain.ErrCodeNoInputFiles, fmt.Errorf("目录 %q 下没有包含 %q 的文件", c.eff.Path, c.eff.Marker))
	}
	c.obs.OnPhaseDone(domain.PhaseEnumerating, map[string]any{"files": len(found)}, time.Since(t))

	// ordering
	t = c.enter(domain.PhaseOrdering)
	key, err := app.ParseOrderKey(c.eff.Order)
	if err != nil {
		return domain.TimingReport{}, c.fail(domain.ErrCodeInvalidOrder, err)
	}
	files, err := app.OrderFiles(found, key)
	if err != nil {
		return domain.TimingReport{}, c.fail(domain.ErrCodeInvalidOrder, err)
	}
	// 只计排序本身；目录准备与纹理加载不算在内。
	ordering := time.Since(t)
	c.obs.OnPhaseDone(domain.PhaseOrdering, map[string]any{"order": string(key)}, ordering)

	// directory_preparing
	t = c.enter(domain.PhaseDirectoryPreparing)
	if err := fsx.EnsureDir(c.eff.OutputDir); err != nil {
		return domain.TimingReport{}, c.fail(domain.ErrCodeOutputDirFailed, err)
	}
	c.obs.OnPhaseDone(domain.PhaseDirectoryPreparing, map[string]any{"output": c.eff.OutputDir}, time.Since(t))

	// texture_loading
	t = c.enter(domain.PhaseTextureLoading)
	texture, err := c.pipe.Decode(c.eff.Texture)
	if err != nil {
		return domain.TimingReport{}, c.fail(domain.ErrCodeTextureFailed, fmt.Errorf("加载纹理 %q 失败：%w", c.eff.Texture, err))
	}
	c.obs.OnPhaseDone(domain.PhaseTextureLoading, map[string]any{"texture": c.eff.Texture}, time.Since(t))

	// dispatching + joining
	t = c.enter(domain.PhaseDispatching)
	records := c.dispatch(files, texture)
	parallel := time.Since(t)
	c.obs.OnPhaseDone(domain.PhaseJoining, map[string]any{"workers": len(records)}, parallel)

	// reporting
	t = c.enter(domain.PhaseReporting)
	tr := domain.TimingReport{
		Threads:   c.eff.Threads,
		Order:     key,
		Files:     len(files),
		OutputDir: c.eff.OutputDir,
		StartedAt: c.started,
		Ordering:  ordering,
		Parallel:  parallel,
		Workers:   make([]domain.WorkerTiming, 0, len(records)),
	}
	for _, rec := range records {
		tr.Workers = append(tr.Workers, domain.NewWorkerTiming(rec))
	}
	tr.Total = time.Since(c.started)
	tr.Finalize()

	path, err := report.Write(c.eff.OutputDir, tr)
	if err != nil {
		return domain.TimingReport{}, c.fail(domain.ErrCodeReportFailed, err)
	}
	fields := map[string]any{"report": path}
	if c.eff.HTMLReport {
		htmlPath, err := report.WriteHTML(c.eff.OutputDir, tr)
		if err != nil {
			return domain.TimingReport{}, c.fail(domain.ErrCodeReportFailed, err)
		}
		fields["html"] = htmlPath
	}
	c.obs.OnPhaseDone(domain.PhaseReporting, fields, time.Since(t))

	c.enter(domain.PhaseDone)
	return tr, nil
}

// dispatch 按静态分区一次性启动全部 worker，并在 WaitGroup 上等待全部结束。
//
// 约束：
// - records 是按序号分配的 arena；第 i 个 goroutine 只写 records[i]
// - join 之前 coordinator 不读 records；join 之后 records 只读
// - 线程数为 0 时不启动任何 goroutine，直接进入 join
func (c *coordinator) dispatch(files domain.FileSet, texture image.Image) []domain.WorkerRecord {
	parts := app.Split(len(files), c.eff.Threads)
	records := make([]domain.WorkerRecord, len(parts))
	c.obs.OnPhaseDone(domain.PhaseDispatching, map[string]any{
		"workers": len(parts),
		"files":   len(files),
	}, 0)

	var wg sync.WaitGroup
	for i, p := range parts {
		records[i] = domain.WorkerRecord{
			Ordinal:   i,
			Part:      p,
			Texture:   texture,
			OutputDir: c.eff.OutputDir,
		}
		w := &worker{
			rec:   &records[i],
			files: files,
			pipe:  c.pipe,
			log:   c.log,
			obs:   c.obs,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.run()
		}()
	}

	c.enter(domain.PhaseJoining)
	wg.Wait()
	return records
}
