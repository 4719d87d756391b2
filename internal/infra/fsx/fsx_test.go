package fsx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomicReplace_SuccessAndNoTempLeft(t *testing.T) {
	dir := t.TempDir()

	if err := WriteFileAtomicReplace(dir, "a.txt", []byte("hello")); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if err := WriteFileAtomicReplace(dir, "a.txt", []byte("world")); err != nil {
		t.Fatalf("覆盖写不期望错误：%v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	if err != nil {
		t.Fatalf("读取文件失败：%v", err)
	}
	if string(b) != "world" {
		t.Fatalf("内容不一致：%q", string(b))
	}
	assertNoTemp(t, dir)
}

func TestWriteFileAtomic_RenameFail_CleanupTemp(t *testing.T) {
	dir := t.TempDir()

	old := renameFunc
	renameFunc = func(oldpath, newpath string) error {
		return os.ErrPermission
	}
	defer func() { renameFunc = old }()

	err := WriteFileAtomicNoOverwrite(dir, "a.jpeg", []byte("hello"))
	if err == nil {
		t.Fatalf("期望失败，但得到 nil")
	}

	assertNoTemp(t, dir)
	if _, err := os.Stat(filepath.Join(dir, "a.jpeg")); !os.IsNotExist(err) {
		t.Fatalf("不应写出最终文件，Stat err=%v", err)
	}
}

func TestWriteFileAtomic_MissingDirIsError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gone")

	if err := WriteFileAtomicReplace(dir, "timing.txt", []byte("x")); err == nil {
		t.Fatalf("目录不存在时期望失败，但得到 nil")
	}
	if err := WriteFileAtomicNoOverwrite(dir, "a.jpeg", []byte("x")); err == nil {
		t.Fatalf("目录不存在时期望失败，但得到 nil")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("写入不应创建目录，Stat err=%v", err)
	}
}

func TestWriteFileAtomicNoOverwrite_Exists(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.jpeg"), []byte("old"), 0o644); err != nil {
		t.Fatalf("写入失败：%v", err)
	}

	err := WriteFileAtomicNoOverwrite(dir, "a.jpeg", []byte("new"))
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("期望 os.ErrExist，实际：%v", err)
	}
	b, _ := os.ReadFile(filepath.Join(dir, "a.jpeg"))
	if string(b) != "old" {
		t.Fatalf("已有文件不应被覆盖：%q", string(b))
	}
}

func TestWriteFileAtomicNoOverwrite_TargetConflictDir(t *testing.T) {
	dir := t.TempDir()

	// 目标路径是目录：应返回 PathTypeConflictError，而不是 os.ErrExist。
	if err := os.Mkdir(filepath.Join(dir, "a.jpeg"), 0o755); err != nil {
		t.Fatalf("创建目录失败：%v", err)
	}

	err := WriteFileAtomicNoOverwrite(dir, "a.jpeg", []byte("hello"))
	if err == nil {
		t.Fatalf("期望错误，但得到 nil")
	}
	if !IsPathTypeConflict(err) {
		t.Fatalf("期望 PathTypeConflictError，实际：%T %v", err, err)
	}
}

func TestEnsureDir(t *testing.T) {
	root := t.TempDir()

	dir := filepath.Join(root, "out")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	// 再次调用：已存在的目录不是错误。
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}

	file := filepath.Join(root, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("写入失败：%v", err)
	}
	if err := EnsureDir(file); !IsPathTypeConflict(err) {
		t.Fatalf("期望 PathTypeConflictError，实际：%v", err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a")
	if Exists(p) {
		t.Fatalf("文件尚未创建")
	}
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatalf("写入失败：%v", err)
	}
	if !Exists(p) {
		t.Fatalf("期望存在")
	}
}

func assertNoTemp(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir 失败：%v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".oldphoto.tmp-") {
			t.Fatalf("临时文件未清理：%q", e.Name())
		}
	}
}
