package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/John-Robertt/oldphoto/internal/domain"
)

// DefaultMarker 是文件名中必须出现的扩展名标记。
const DefaultMarker = ".jpeg"

// ScanPhotos 列出 dir 下（不递归）文件名包含 marker 的普通文件。
//
// 规则（硬约束）：
// - 只看 dir 的直接子项；子目录（包括输出目录）一律跳过
// - 匹配是“包含”而不是“后缀”：a.jpeg.bak 也算（与历史行为一致）
// - 扫描阶段只做 stat（DirEntry.Info），不读文件内容
func ScanPhotos(dir, marker string) ([]domain.PhotoFile, error) {
	dir = filepath.Clean(dir)
	if marker == "" {
		marker = DefaultMarker
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]domain.PhotoFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.Contains(name, marker) {
			continue
		}

		info, err := e.Info()
		if err != nil {
			// 列目录与 stat 之间文件被删：当作不存在。
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		if !info.Mode().IsRegular() {
			continue
		}

		files = append(files, domain.PhotoFile{
			Path: filepath.Join(dir, name),
			Name: name,
			Size: info.Size(),
		})
	}

	// ReadDir 本身已按名排序；这里显式再排一次，不依赖实现细节。
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
