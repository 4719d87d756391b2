package run

import (
	"time"

	"github.com/John-Robertt/oldphoto/internal/config"
	"github.com/John-Robertt/oldphoto/internal/domain"
)

// Observer 用于把“运行进度/阶段/单文件结果”从核心执行流程中解耦出来。
//
// 约束：
// - run 包只负责发事件，不做任何输出（stdout 只留给最终摘要）
// - Observer 的实现必须并发安全：OnFileDone 来自多个 worker goroutine
type Observer interface {
	// OnStart 在 ExecuteWithObserver 开始时调用。
	OnStart(eff config.EffectiveConfig)
	// OnPhaseDone 在阶段结束时调用（fields 是该阶段的统计）。
	OnPhaseDone(phase domain.Phase, fields map[string]any, dur time.Duration)
	// OnFileDone 在某个 worker 处理完一个文件时调用；status 取 domain.FileStatus*。
	OnFileDone(worker int, file domain.PhotoFile, status string, dur time.Duration)
}

// nopObserver 让执行流程不必到处判断 obs != nil。
type nopObserver struct{}

func (nopObserver) OnStart(config.EffectiveConfig) {}
func (nopObserver) OnPhaseDone(domain.Phase, map[string]any, time.Duration) {}
func (nopObserver) OnFileDone(int, domain.PhotoFile, string, time.Duration) {}
