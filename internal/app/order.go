package app

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/John-Robertt/oldphoto/internal/domain"
)

// 通过可替换的函数指针，让测试能稳定模拟 stat 失败。
var statSize = func(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// ParseOrderKey 解析排序方式；同时接受 CLI 形态（-name/-size）与裸名（name/size）。
func ParseOrderKey(s string) (domain.OrderKey, error) {
	switch strings.TrimPrefix(strings.TrimSpace(s), "-") {
	case "name":
		return domain.OrderByName, nil
	case "size":
		return domain.OrderBySize, nil
	default:
		return "", fmt.Errorf("排序方式只能是 -name 或 -size，实际是 %q", s)
	}
}

// OrderFiles 按 key 返回一个新的全序 FileSet（不修改入参）。
//
// - name：完整路径不区分大小写比较；相等时按原始路径比较，保证全序
// - size：按字节数升序；每个文件只 stat 一次（不在比较函数里做 IO）。
//   stat 失败的文件按 0 处理（确定性兜底，排在最前）；大小相等时退化为 name 顺序
func OrderFiles(files []domain.PhotoFile, key domain.OrderKey) (domain.FileSet, error) {
	out := make(domain.FileSet, len(files))
	copy(out, files)

	switch key {
	case domain.OrderByName:
		sort.SliceStable(out, func(i, j int) bool { return lessName(out[i].Path, out[j].Path) })
	case domain.OrderBySize:
		for i := range out {
			n, err := statSize(out[i].Path)
			if err != nil {
				n = 0
			}
			out[i].Size = n
		}
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Size != out[j].Size {
				return out[i].Size < out[j].Size
			}
			return lessName(out[i].Path, out[j].Path)
		})
	default:
		return nil, fmt.Errorf("未知排序方式：%q", key)
	}
	return out, nil
}

func lessName(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
