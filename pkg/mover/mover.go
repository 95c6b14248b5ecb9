package mover

import (
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/moyu-x/smart-organizer/logger"
)

// Outcome 移动操作的结果类型
type Outcome int

const (
	// OutcomeRenamed 通过 rename 完成移动（同卷，最快路径）
	OutcomeRenamed Outcome = iota
	// OutcomeCopied 通过复制后删除源文件完成移动（通常是跨卷）
	OutcomeCopied
	// OutcomeCopiedSourceRetained 复制成功但源文件删除失败，文件同时存在于两处
	OutcomeCopiedSourceRetained
)

// Mover 执行单个文件的物理移动
type Mover struct {
	fs afero.Fs
}

// New 创建移动器
func New(fs afero.Fs) *Mover {
	return &Mover{fs: fs}
}

// Move 将文件从 src 移动到 dst
// 先尝试 rename，失败时（通常是跨卷移动）回退到复制后删除
// 复制失败时错误向上传播，源文件保持原样
// 复制成功但删除源文件失败时返回 OutcomeCopiedSourceRetained，不视为错误
func (m *Mover) Move(src, dst string) (Outcome, error) {
	err := m.fs.Rename(src, dst)
	if err == nil {
		return OutcomeRenamed, nil
	}

	logger.Get().Debug().
		Err(err).
		Str("source", src).
		Str("destination", dst).
		Msg("直接重命名失败，尝试复制后删除")

	if err := m.copyFile(src, dst); err != nil {
		return 0, err
	}

	if err := m.fs.Remove(src); err != nil {
		logger.Get().Warn().
			Err(err).
			Str("source", src).
			Str("destination", dst).
			Msg("复制成功但删除源文件失败，文件同时存在于两处")
		return OutcomeCopiedSourceRetained, nil
	}

	return OutcomeCopied, nil
}

// copyFile 复制文件内容并保留权限位
func (m *Mover) copyFile(src, dst string) error {
	sourceFile, err := m.fs.Open(src)
	if err != nil {
		return fmt.Errorf("打开源文件失败: %w", err)
	}
	defer sourceFile.Close()

	destFile, err := m.fs.Create(dst)
	if err != nil {
		return fmt.Errorf("创建目标文件失败: %w", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return fmt.Errorf("复制文件内容失败: %w", err)
	}

	info, err := m.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("读取源文件信息失败: %w", err)
	}

	if err := m.fs.Chmod(dst, info.Mode()); err != nil {
		return fmt.Errorf("设置目标文件权限失败: %w", err)
	}

	return nil
}
