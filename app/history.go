package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/moyu-x/smart-organizer/config"
	"github.com/moyu-x/smart-organizer/database"
	"github.com/moyu-x/smart-organizer/internal"
	"github.com/moyu-x/smart-organizer/logger"
)

// HistoryOptions 历史查询命令的选项
type HistoryOptions struct {
	ConfigFile string
	Limit      int
}

// ListHistory 返回最近的运行历史记录
func ListHistory(opts *HistoryOptions) ([]database.RunRecord, error) {
	cfg, err := config.Load(opts.ConfigFile, "")
	if err != nil {
		return nil, err
	}

	db, err := database.New(cfg.HistoryDBPath())
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.ListRuns(opts.Limit)
}

// recordHistory 将一次运行的摘要追加到历史数据库
// 历史记录写入失败只记录警告，整理结果本身不受影响
func recordHistory(cfg *config.Config, opts *OrganizeOptions, stats *internal.Stats, started time.Time) {
	db, err := database.New(cfg.HistoryDBPath())
	if err != nil {
		logger.Get().Warn().Err(err).Msg("打开历史数据库失败，跳过历史记录")
		return
	}
	defer db.Close()

	rec := &database.RunRecord{
		ID:             uuid.NewString(),
		StartedAt:      started,
		Root:           opts.Path,
		DryRun:         opts.DryRun,
		FindDuplicates: opts.FindDuplicates,
		KeepStructure:  opts.KeepStructure,
		Moved:          stats.Moved,
		Duplicates:     stats.Duplicates,
		Skipped:        stats.Skipped,
		Errors:         stats.Errors,
	}

	if err := db.SaveRun(rec); err != nil {
		logger.Get().Warn().Err(err).Msg("写入历史记录失败")
	}
}
