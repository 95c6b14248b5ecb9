package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/moyu-x/smart-organizer/internal"
	"github.com/moyu-x/smart-organizer/logger"
)

// FileWalker 递归枚举根目录下的所有普通文件
// 使用显式的待处理目录栈，避免深层目录嵌套时的递归深度问题
type FileWalker struct {
	fs afero.Fs
}

// NewFileWalker 创建文件遍历器
func NewFileWalker(fs afero.Fs) *FileWalker {
	return &FileWalker{fs: fs}
}

// Walk 枚举 root 下的所有文件路径
// excluded: 需要跳过的目录名（通常是分类目录名，避免重复整理已分类的文件）
// 隐藏条目（以 . 开头）在枚举时直接跳过，目录名过滤发生在目录入栈之前
// 任一目录读取失败时整个遍历立即中止
func (w *FileWalker) Walk(root string, excluded []string) ([]string, error) {
	var files []string

	pending := []string{root}
	for len(pending) > 0 {
		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		entries, err := afero.ReadDir(w.fs, dir)
		if err != nil {
			return nil, fmt.Errorf("读取目录失败 %s: %w", dir, err)
		}

		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}

			path := filepath.Join(dir, name)

			if entry.IsDir() {
				if isExcluded(name, excluded) {
					logger.Get().Debug().Str("dir", path).Msg("跳过分类目录")
					continue
				}
				pending = append(pending, path)
				continue
			}

			files = append(files, path)
		}
	}

	logger.Get().Debug().Int("count", len(files)).Str("root", root).Msg("目录枚举完成")
	return files, nil
}

func isExcluded(name string, excluded []string) bool {
	for _, candidate := range excluded {
		if name == candidate {
			return true
		}
	}
	return false
}

// IsJunk 判断文件是否为应当忽略的隐藏或垃圾文件
// 包括点号开头的文件、已知的系统垃圾文件以及工具自己的运行日志
func IsJunk(path string) bool {
	name := filepath.Base(path)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return true
	}
	if strings.HasPrefix(name, ".") {
		return true
	}
	if name == internal.RunLogFileName {
		return true
	}
	for _, junk := range internal.OSJunkNames {
		if name == junk {
			return true
		}
	}
	return false
}
