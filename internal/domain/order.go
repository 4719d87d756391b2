package domain

// OrderKey 决定 FileSet 的全序（只影响分区归属与基准可复现性，不影响单个文件的处理结果）。
type OrderKey string

const (
	OrderByName OrderKey = "name"
	OrderBySize OrderKey = "size"
)
