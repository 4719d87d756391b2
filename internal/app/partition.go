package app

import "github.com/John-Robertt/oldphoto/internal/domain"

// Split 把 [0, total) 切成 workers 个连续、互不相交、保持顺序的区间。
//
// 规则（固定）：
// - base = total / workers，rem = total % workers
// - 前 rem 个区间各 base+1 个，其余各 base 个；区间大小之差至多为 1
// - total == 0：返回 workers 个空区间（worker 仍会启动并立刻结束）
// - workers <= 0：返回 nil，即“不启动任何 worker”的退化运行（显式路径，不 panic）
// - total < 0 按 0 处理
func Split(total, workers int) []domain.Partition {
	if workers <= 0 {
		return nil
	}
	if total < 0 {
		total = 0
	}

	base := total / workers
	rem := total % workers

	parts := make([]domain.Partition, workers)
	start := 0
	for i := 0; i < workers; i++ {
		n := base
		if i < rem {
			n++
		}
		parts[i] = domain.Partition{Start: start, End: start + n}
		start += n
	}
	return parts
}
