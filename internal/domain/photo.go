package domain

// PhotoFile 描述一次枚举得到的输入照片（只做 stat，不读内容）。
//
// 不变量（实现必须遵守）：
// - Path 必须是 clean 路径（绝对或相对均可，但同一次运行内形态一致）
// - Name 是 filepath.Base(Path)，也是输出文件名
type PhotoFile struct {
	Path string
	Name string
	Size int64
}

// FileSet 是排序完成后的输入集合；Partition 的下标都指向它。
// 排序之后不再修改。
type FileSet []PhotoFile
