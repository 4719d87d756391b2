package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanPhotos_MarkerAndSkipDirs(t *testing.T) {
	root := t.TempDir()

	touch(t, filepath.Join(root, "b.jpeg"))
	touch(t, filepath.Join(root, "a.jpeg"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "c.jpg")) // 不含 .jpeg
	// 输出目录里的同名文件不应被再次当作输入。
	touch(t, filepath.Join(root, "old_photo_PAR_A", "a.jpeg"))
	if err := os.Mkdir(filepath.Join(root, "dir.jpeg"), 0o755); err != nil {
		t.Fatalf("创建目录失败：%v", err)
	}

	got, err := ScanPhotos(root, DefaultMarker)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(got) != 2 {
		t.Fatalf("期望 2 个文件，实际 %d：%+v", len(got), got)
	}
	if got[0].Name != "a.jpeg" || got[1].Name != "b.jpeg" {
		t.Fatalf("顺序不符合预期：%+v", got)
	}
	if got[0].Path != filepath.Join(root, "a.jpeg") {
		t.Fatalf("path 不符合预期：%q", got[0].Path)
	}
	if got[0].Size != 1 {
		t.Fatalf("size 不符合预期：%d", got[0].Size)
	}
}

func TestScanPhotos_MarkerIsSubstring(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "x.jpeg.bak"))

	got, err := ScanPhotos(root, "")
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(got) != 1 {
		t.Fatalf("期望 1 个文件，实际 %d", len(got))
	}
}

func TestScanPhotos_MissingDir(t *testing.T) {
	if _, err := ScanPhotos(filepath.Join(t.TempDir(), "nope"), DefaultMarker); err == nil {
		t.Fatalf("期望目录不存在时报错")
	}
}

func TestScanPhotos_Empty(t *testing.T) {
	got, err := ScanPhotos(t.TempDir(), DefaultMarker)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(got) != 0 {
		t.Fatalf("期望空结果，实际 %+v", got)
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("创建目录失败：%v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("写入文件失败：%v", err)
	}
}
