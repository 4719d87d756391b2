package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/John-Robertt/oldphoto/internal/app/run"
	"github.com/John-Robertt/oldphoto/internal/config"
	"github.com/John-Robertt/oldphoto/internal/infra/logx"
	"github.com/John-Robertt/oldphoto/internal/report"
)

func main() {
	if code := realMain(os.Args[1:], os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// realMain 返回进程退出码：
// - 0：运行完成（单文件失败也算完成）
// - 1：致命错误（配置、输入目录、排序方式、输出目录、纹理、计时文件）
// - 2：参数错误（任何处理开始之前）
func realMain(args []string, stdout, stderr io.Writer) int {
	for _, a := range args {
		if isHelp(a) {
			printUsage(stdout)
			return 0
		}
	}

	cli, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "参数错误：%v\n\n", err)
		printUsage(stderr)
		return 2
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(stderr, "读取当前目录失败：%v\n", err)
		return 1
	}

	eff, err := config.LoadEffective(cwd, cli)
	if err != nil {
		fmt.Fprintf(stderr, "配置错误：%v\n", err)
		return 1
	}

	level, err := logx.ParseLevel(eff.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "配置错误：%v\n", err)
		return 1
	}
	log := logx.New(stderr, level)
	defer func() { _ = log.Sync() }()

	var obs run.Observer
	if w, ok := progressWriter(stderr); ok {
		obs = newProgressUI(w)
	}

	tr, err := run.ExecuteWithObserver(eff, eff.Filters, log, obs)
	if err != nil {
		fmt.Fprintf(stderr, "错误：%v\n", err)
		return 1
	}

	if err := report.Summary(stdout, tr); err != nil {
		fmt.Fprintf(stderr, "输出摘要失败：%v\n", err)
		return 1
	}
	return 0
}

// parseArgs 只接受三个位置参数：<input-dir> <threads> <-name|-size>。
//
// 排序方式在这里只做非空检查；取值是否合法由运行的排序阶段判定。
func parseArgs(args []string) (config.CLIArgs, error) {
	if len(args) != 3 {
		return config.CLIArgs{}, fmt.Errorf("需要 3 个参数，实际 %d 个", len(args))
	}
	path := strings.TrimSpace(args[0])
	if path == "" {
		return config.CLIArgs{}, fmt.Errorf("输入目录不能为空")
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[1]))
	if err != nil {
		return config.CLIArgs{}, fmt.Errorf("线程数必须是整数，实际是 %q", args[1])
	}
	if n < 0 {
		return config.CLIArgs{}, fmt.Errorf("线程数不能为负，实际是 %d", n)
	}
	order := strings.TrimSpace(args[2])
	if order == "" {
		return config.CLIArgs{}, fmt.Errorf("排序方式不能为空")
	}
	return config.CLIArgs{Path: path, Threads: n, Order: order}, nil
}

func isHelp(s string) bool {
	return s == "-h" || s == "--help" || s == "help"
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `用法：
  oldphoto <input-dir> <threads> <-name|-size>

参数：
  input-dir   包含 .jpeg 照片的目录（不递归）
  threads     worker 数量（>= 0；0 表示只做准备与计时，不处理照片）
  -name       按完整路径排序（大小写不敏感）
  -size       按文件字节数升序排序
  -h, --help  显示帮助

输出：
  <input-dir>/old_photo_PAR_A/                 处理后的照片（已存在的不会重复处理）
  <input-dir>/old_photo_PAR_A/timing_<n>-<k>.txt 计时文件

可选配置文件 <input-dir>/oldphoto.json 可覆盖输出目录名、纹理、滤镜参数与日志级别。
`)
}

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// progressWriter 只在 stderr 是交互终端时启用进度输出（stdout 只留给最终摘要）。
func progressWriter(stderr io.Writer) (io.Writer, bool) {
	f, ok := stderr.(*os.File)
	if !ok || !isTTY(f) {
		return nil, false
	}
	return f, true
}
