package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/John-Robertt/oldphoto/internal/infra/imgx"
	"github.com/John-Robertt/oldphoto/internal/infra/logx"
	"github.com/John-Robertt/oldphoto/internal/scan"
)

const (
	// ErrCodeInvalid 表示配置文件无法读取/解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
	// ErrCodeMissingPath 表示 CLI 没有给出输入目录。
	ErrCodeMissingPath = "config_missing_path"
)

const (
	// FileName 是输入目录下可选配置文件的固定名字。
	FileName = "oldphoto.json"
	// DefaultOutputDir 是输出子目录的约定名字（位于输入目录下）。
	DefaultOutputDir = "old_photo_PAR_A"
	// DefaultTexture 是纸张纹理的默认位置（相对当前工作目录）。
	DefaultTexture = "paper-texture.png"
)

// CLIArgs 是命令行的三个位置参数。线程数与排序方式总是由 CLI 给出。
type CLIArgs struct {
	Path    string
	Threads int
	Order   string
}

// FileConfig 对应 <path>/oldphoto.json 的解析结构；所有字段可选。
type FileConfig struct {
	OutputDir      string   `json:"output_dir"`
	Marker         string   `json:"marker"`
	Texture        string   `json:"texture"`
	JPEGQuality    int      `json:"jpeg_quality"`
	Contrast       *float64 `json:"contrast"`
	SmoothWeight   *float64 `json:"smooth_weight"`
	TextureOpacity *float64 `json:"texture_opacity"`
	HTMLReport     bool     `json:"html_report"`
	LogLevel       string   `json:"log_level"`
}

// EffectiveConfig 是合并并做最小规范化后的最终配置（实现层直接消费，不再做二次默认判断）。
type EffectiveConfig struct {
	Path      string // 输入目录（clean + absolute）
	OutputDir string // 输出目录（clean + absolute）
	Marker    string
	Texture   string // 纹理文件（clean + absolute）

	Threads int
	// Order 保留原始字符串；合法性在 Ordering 阶段判定（非法即致命错误）。
	Order string

	Filters    imgx.Filters
	HTMLReport bool
	LogLevel   string
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeMissingPath:
		return fmt.Sprintf("%s：缺少输入目录", e.Code)
	case ErrCodeInvalid:
		if e.Err != nil {
			return fmt.Sprintf("%s：配置文件 %q 无效：%v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s：配置文件 %q 无效", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s：%v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective 读取 <path>/oldphoto.json（可选），与 CLI 参数合并为最终配置。
//
// 覆盖优先级（固定）：
// - path/threads/order：只来自 CLI
// - 其他字段：config > 内置默认
//
// 路径解析：
// - 输入目录相对 cwd
// - 配置文件里的 texture 相对输入目录；默认纹理相对 cwd（与历史行为一致）
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cwd, Err: err}
	}
	if strings.TrimSpace(cli.Path) == "" {
		return EffectiveConfig{}, &Error{Code: ErrCodeMissingPath}
	}

	absPath := absCleanFrom(cwdAbs, cli.Path)
	cfgPath := filepath.Join(absPath, FileName)

	fc, err := readFileConfig(cfgPath)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}
	return merge(cwdAbs, absPath, cli, fc, cfgPath)
}

func merge(cwdAbs, absPath string, cli CLIArgs, fc FileConfig, cfgPath string) (EffectiveConfig, error) {
	if cli.Threads < 0 {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("线程数不能为负：%d", cli.Threads)}
	}

	outName := strings.TrimSpace(fc.OutputDir)
	if outName == "" {
		outName = DefaultOutputDir
	}
	// 输出目录必须是输入目录下的一级子目录：避免写到别处，也避免与输入文件混在一起。
	if outName != filepath.Base(outName) || outName == "." || outName == ".." {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("output_dir 必须是单级目录名：%q", fc.OutputDir)}
	}

	marker := fc.Marker
	if strings.TrimSpace(marker) == "" {
		marker = scan.DefaultMarker
	}

	texture := absCleanFrom(cwdAbs, DefaultTexture)
	if t := strings.TrimSpace(fc.Texture); t != "" {
		texture = absCleanFrom(absPath, t)
	}

	filters := imgx.Default()
	if fc.JPEGQuality != 0 {
		if fc.JPEGQuality < 1 || fc.JPEGQuality > 100 {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("jpeg_quality 必须在 [1,100]，实际是 %d", fc.JPEGQuality)}
		}
		filters.Quality = fc.JPEGQuality
	}
	if fc.Contrast != nil {
		if *fc.Contrast < -100 || *fc.Contrast > 100 {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("contrast 必须在 [-100,100]，实际是 %v", *fc.Contrast)}
		}
		filters.ContrastPercent = *fc.Contrast
	}
	if fc.SmoothWeight != nil {
		if *fc.SmoothWeight < 0 {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("smooth_weight 不能为负：%v", *fc.SmoothWeight)}
		}
		filters.SmoothWeight = *fc.SmoothWeight
	}
	if fc.TextureOpacity != nil {
		if *fc.TextureOpacity < 0 || *fc.TextureOpacity > 1 {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("texture_opacity 必须在 [0,1]，实际是 %v", *fc.TextureOpacity)}
		}
		filters.TextureOpacity = *fc.TextureOpacity
	}

	level := strings.ToLower(strings.TrimSpace(fc.LogLevel))
	if level == "" {
		level = logx.DefaultLevel
	}
	if _, err := logx.ParseLevel(level); err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	return EffectiveConfig{
		Path:       absPath,
		OutputDir:  filepath.Join(absPath, outName),
		Marker:     marker,
		Texture:    texture,
		Threads:    cli.Threads,
		Order:      cli.Order,
		Filters:    filters,
		HTMLReport: fc.HTMLReport,
		LogLevel:   level,
	}, nil
}

// absCleanFrom 以 base 为基准，把 p 变为 clean + absolute。
// - p 若已是绝对路径：直接 Clean
// - p 若是相对路径：Join(base, p) 后 Clean
func absCleanFrom(base, p string) string {
	p = filepath.Clean(strings.TrimSpace(p))
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}

// readFileConfig 读取并解析 JSON 配置文件；文件不存在不算错误（返回零值）。
func readFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, err
	}
	if err := json.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, err
	}
	return fc, nil
}
