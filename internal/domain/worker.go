package domain

import (
	"image"
	"time"
)

// WorkerRecord 是单个 worker 的身份、分区、共享输入与计时记录。
//
// 约束：
//   - Texture 是所有 worker 共享的同一张纹理图，只读；任何 worker 都不得修改它
//   - OutputDir 在派发之前已经存在
//   - Coordinator 以 []WorkerRecord 按序号分配（arena），启动时把 &records[i] 交给第 i 个 worker
//   - 运行期间只由对应 worker 修改；join 之后只读
//   - Start/End 由 time.Now() 取得（带单调时钟读数），差值不受系统时间回拨影响
type WorkerRecord struct {
	Ordinal int
	Part    Partition

	Texture   image.Image
	OutputDir string

	Start time.Time
	End   time.Time

	Processed int
	Skipped   int
	Failed    int
}

// Elapsed 返回 worker 循环耗时；未运行（零值）时返回 0。
func (w WorkerRecord) Elapsed() time.Duration {
	if w.Start.IsZero() || w.End.IsZero() {
		return 0
	}
	return w.End.Sub(w.Start)
}
