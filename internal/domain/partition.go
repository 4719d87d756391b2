package domain

import "fmt"

// Partition 是 FileSet 上的半开区间 [Start, End)，只归属一个 worker。
// 为了数据局部性，Partition 只保存下标，不复制 PhotoFile。
type Partition struct {
	Start int
	End   int
}

// Len 返回区间内的文件数；非法区间（End < Start）视为 0。
func (p Partition) Len() int {
	if p.End < p.Start {
		return 0
	}
	return p.End - p.Start
}

func (p Partition) String() string {
	return fmt.Sprintf("[%d,%d)", p.Start, p.End)
}
