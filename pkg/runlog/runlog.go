package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/smart-organizer/internal"
)

// Writer 追加式运行记录
// 日志文件固定位于目标根目录下，而不是进程当前目录，
// 这样多个目录的整理互不干扰，测试也不依赖进程状态
type Writer struct {
	file afero.File
}

// Open 打开（或创建）根目录下的运行日志并写入本次运行的头部
func Open(fs afero.Fs, rootDir string, dryRun bool) (*Writer, error) {
	path := filepath.Join(rootDir, internal.RunLogFileName)

	file, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("打开运行日志失败: %w", err)
	}

	w := &Writer{file: file}
	if err := w.writeHeader(rootDir, dryRun); err != nil {
		file.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) writeHeader(rootDir string, dryRun bool) error {
	banner := strings.Repeat("=", 40)
	ts := time.Now().Format("2006-01-02 15:04:05")

	header := fmt.Sprintf("\n%s\nRun started:  %s\nDirectory:    %s\nDry-run:      %v\n%s\n\n",
		banner, ts, rootDir, dryRun, banner)

	if _, err := w.file.WriteString(header); err != nil {
		return fmt.Errorf("写入运行日志头部失败: %w", err)
	}
	return nil
}

// Record 记录一次成功的移动
func (w *Writer) Record(src, dst string) error {
	if _, err := w.file.WriteString(fmt.Sprintf("%s -> %s\n", src, dst)); err != nil {
		return fmt.Errorf("写入运行日志失败: %w", err)
	}
	return nil
}

// Close 关闭日志文件
func (w *Writer) Close() error {
	return w.file.Close()
}
