package domain

// Phase 是 Coordinator 状态机的状态。
//
// 正常路径：idle -> enumerating -> ordering -> directory_preparing -> texture_loading
// -> dispatching -> joining -> reporting -> done。
// 任一步无法继续则进入 failed（吸收态）。
type Phase string

const (
	PhaseIdle               Phase = "idle"
	PhaseEnumerating        Phase = "enumerating"
	PhaseOrdering           Phase = "ordering"
	PhaseDirectoryPreparing Phase = "directory_preparing"
	PhaseTextureLoading     Phase = "texture_loading"
	PhaseDispatching        Phase = "dispatching"
	PhaseJoining            Phase = "joining"
	PhaseReporting          Phase = "reporting"
	PhaseDone               Phase = "done"
	PhaseFailed             Phase = "failed"
)

// Terminal 报告该状态是否为终态。
func (p Phase) Terminal() bool {
	return p == PhaseDone || p == PhaseFailed
}
