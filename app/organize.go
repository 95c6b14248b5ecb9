package app

import (
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/smart-organizer/config"
	"github.com/moyu-x/smart-organizer/internal"
	"github.com/moyu-x/smart-organizer/logger"
	"github.com/moyu-x/smart-organizer/pkg/category"
	"github.com/moyu-x/smart-organizer/pkg/organizer"
)

// OrganizeOptions 整理命令的选项
type OrganizeOptions struct {
	Path           string
	DryRun         bool
	FindDuplicates bool
	KeepStructure  bool
	DetectTypes    bool
	Verbose        bool
	ConfigFile     string
	Report         organizer.ReportFunc
}

// RunOrganize 执行一次整理
// 校验根目录、加载配置、构建编排器并运行，非预览运行结束后追加历史记录
func RunOrganize(opts *OrganizeOptions) (*internal.Stats, error) {
	logLevel := "info"
	if opts.Verbose {
		logLevel = "debug"
	}
	if err := logger.Init(logLevel, ""); err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.ConfigFile, opts.Path)
	if err != nil {
		return nil, err
	}

	if cfg.Logging.File != "" {
		if err := logger.Init(logLevel, cfg.Logging.File); err != nil {
			return nil, err
		}
	}

	fs := afero.NewOsFs()

	info, err := fs.Stat(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("无法访问目标目录 %s: %w", opts.Path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s 不是一个目录", opts.Path)
	}

	index := category.New(cfg.Categories)

	runOpts := internal.Options{
		Root:           opts.Path,
		DryRun:         opts.DryRun,
		FindDuplicates: opts.FindDuplicates,
		KeepStructure:  opts.KeepStructure,
		DetectTypes:    opts.DetectTypes,
	}

	logger.Get().Info().
		Str("root", opts.Path).
		Bool("dry_run", opts.DryRun).
		Bool("find_duplicates", opts.FindDuplicates).
		Bool("keep_structure", opts.KeepStructure).
		Msg("开始整理")

	started := time.Now()

	org := organizer.New(fs, index, runOpts, opts.Report)
	stats, err := org.Run()
	if err != nil {
		return nil, fmt.Errorf("整理失败: %w", err)
	}

	logger.Get().Info().
		Dur("duration", time.Since(started).Round(time.Millisecond)).
		Int("moved", stats.Moved).
		Int("duplicates", stats.Duplicates).
		Int("skipped", stats.Skipped).
		Int("errors", stats.Errors).
		Msg("整理完成")

	// 预览模式不记录历史
	if !opts.DryRun {
		recordHistory(cfg, opts, stats, started)
	}

	return stats, nil
}
