package resolver

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/smart-organizer/logger"
)

// Resolver 解决目标文件名冲突
// 命名策略: 原名 -> 原名_日期 -> 原名_日期_v2 -> 原名_日期_v3 ...
type Resolver struct {
	fs afero.Fs
}

// New 创建冲突解决器
func New(fs afero.Fs) *Resolver {
	return &Resolver{fs: fs}
}

// Resolve 返回 destDir 下一个当前不存在的目标路径
// originalName: 原始文件名（含扩展名）
// ext: 不含点号的扩展名
// 版本号从 2 开始递增，直到找到未占用的路径为止
func (r *Resolver) Resolve(destDir, originalName, ext string) (string, error) {
	candidate := filepath.Join(destDir, originalName)
	exists, err := afero.Exists(r.fs, candidate)
	if err != nil {
		return "", fmt.Errorf("检查目标路径失败: %w", err)
	}
	if !exists {
		return candidate, nil
	}

	stem := strings.TrimSuffix(originalName, filepath.Ext(originalName))
	today := time.Now().Format("2006-01-02")

	dated := filepath.Join(destDir, fmt.Sprintf("%s_%s.%s", stem, today, ext))
	exists, err = afero.Exists(r.fs, dated)
	if err != nil {
		return "", fmt.Errorf("检查目标路径失败: %w", err)
	}
	if !exists {
		logger.Get().Debug().Str("original", candidate).Str("resolved", dated).Msg("文件名冲突，追加日期后缀")
		return dated, nil
	}

	for n := 2; ; n++ {
		versioned := filepath.Join(destDir, fmt.Sprintf("%s_%s_v%d.%s", stem, today, n, ext))
		exists, err = afero.Exists(r.fs, versioned)
		if err != nil {
			return "", fmt.Errorf("检查目标路径失败: %w", err)
		}
		if !exists {
			logger.Get().Debug().Str("original", candidate).Str("resolved", versioned).Msg("文件名冲突，追加版本后缀")
			return versioned, nil
		}
	}
}
