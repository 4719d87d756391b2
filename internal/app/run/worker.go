package run

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/John-Robertt/oldphoto/internal/domain"
	"github.com/John-Robertt/oldphoto/internal/infra/fsx"
)

// Pipeline 是 worker 需要的全部图像协作者（imgx.Filters 实现它）。
//
// 约束：
// - 四个滤镜都返回新图，不修改输入；texture 在所有 worker 间共享，只读
// - 实现必须可被多个 goroutine 并发调用
// - Encode 在目标已存在时返回 os.ErrExist，且失败时不留下半成品
type Pipeline interface {
	Decode(path string) (image.Image, error)
	Encode(img image.Image, path string) error

	Contrast(img image.Image) image.Image
	Smooth(img image.Image) image.Image
	Texture(img, texture image.Image) image.Image
	Sepia(img image.Image) image.Image
}

// worker 把 arena 里的一个 WorkerRecord 与只读协作者绑在一起。
// 纹理与输出目录都从 rec 读取；只有 rec 的计时与计数字段会被写入。
type worker struct {
	rec   *domain.WorkerRecord
	files domain.FileSet
	pipe  Pipeline
	log   *zap.Logger
	obs   Observer
}

// run 依次处理分区内的文件。单文件失败只计数、记日志，不中止循环。
// Start/End 紧贴循环取值，无论结果如何都会写入。
func (w *worker) run() {
	part := w.rec.Part
	w.rec.Start = time.Now()
	for i := part.Start; i < part.End; i++ {
		f := w.files[i]
		started := time.Now()
		status := w.processOne(f)
		switch status {
		case domain.FileStatusProcessed:
			w.rec.Processed++
		case domain.FileStatusSkipped:
			w.rec.Skipped++
		default:
			w.rec.Failed++
		}
		w.obs.OnFileDone(w.rec.Ordinal, f, status, time.Since(started))
	}
	w.rec.End = time.Now()
}

func (w *worker) processOne(f domain.PhotoFile) string {
	out := filepath.Join(w.rec.OutputDir, filepath.Base(f.Path))
	log := w.log.With(zap.Int("worker", w.rec.Ordinal), zap.String("file", f.Path))

	if fsx.Exists(out) {
		log.Debug("输出已存在，跳过", zap.String("output", out))
		return domain.FileStatusSkipped
	}

	img, err := w.pipe.Decode(f.Path)
	if err != nil {
		log.Warn("读取失败", zap.Error(err))
		return domain.FileStatusDecodeFailed
	}

	img, err = w.filter(img)
	if err != nil {
		log.Warn("滤镜失败", zap.Error(err))
		return domain.FileStatusFilterFailed
	}

	if err := w.pipe.Encode(img, out); err != nil {
		// 与其他进程/重复文件名竞争时，对方已写出完整结果：按跳过处理。
		if errors.Is(err, os.ErrExist) {
			log.Debug("输出已被写出，跳过", zap.String("output", out))
			return domain.FileStatusSkipped
		}
		log.Warn("保存失败", zap.String("output", out), zap.Error(err))
		return domain.FileStatusEncodeFailed
	}
	return domain.FileStatusProcessed
}

// filter 按固定顺序执行 contrast → smooth → texture → sepia。
// 每一步都替换 img，上一步的图随即可被回收。滤镜内的 panic 只影响当前文件。
func (w *worker) filter(img image.Image) (out image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	img = w.pipe.Contrast(img)
	img = w.pipe.Smooth(img)
	img = w.pipe.Texture(img, w.rec.Texture)
	img = w.pipe.Sepia(img)
	if img == nil {
		return nil, errors.New("滤镜返回空图")
	}
	return img, nil
}
