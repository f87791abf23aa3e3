// xttlctl 是 xttl 缓存的命令行工具。
//
// 用法:
//
//	xttlctl <命令> [命令参数]
//
// 命令:
//
//	demo           演示 TTL 缓存的过期行为
//	serve          按配置文件运行缓存与定期回收，直到收到 SIGINT/SIGTERM
//	config check   校验配置文件并打印生效配置
//
// 退出码:
//
//	0: 成功
//	1: 运行失败
//	2: 参数或配置错误
//
// 示例:
//
//	xttlctl demo --fast
//	xttlctl serve --config /etc/xttl/xttl.yaml
//	xttlctl config check -c xttl.yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// createApp 创建 CLI 应用。
func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xttlctl",
		Usage:     "xttl 缓存命令行工具",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			createDemoCommand(),
			createServeCommand(),
			createConfigCommand(),
		},
		// 禁止 urfave/cli 直接调用 os.Exit，退出码由 run 统一映射。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(stderr, err)
			}
		},
	}
}

// run 执行 CLI 并返回退出码。
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := createApp(stdout, stderr).Run(ctx, args)
	if err == nil {
		return 0
	}

	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
		return 2
	}
	if isCLIUsageError(err) {
		fmt.Fprintf(stderr, "参数错误: %v\n", err)
		return 2
	}
	fmt.Fprintf(stderr, "错误: %v\n", err)
	return 1
}

// usageError 参数或配置错误，对应退出码 2。
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// isCLIUsageError 识别 urfave/cli 解析参数时产生的错误。
func isCLIUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{
		"flag provided but not defined",
		"Required flag",
		"Required flags",
		"invalid value",
		"No help topic",
	} {
		if strings.Contains(msg, prefix) {
			return true
		}
	}
	return false
}
