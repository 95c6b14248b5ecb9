package organizer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/moyu-x/smart-organizer/internal"
	"github.com/moyu-x/smart-organizer/logger"
	"github.com/moyu-x/smart-organizer/pkg/category"
	"github.com/moyu-x/smart-organizer/pkg/dupes"
	"github.com/moyu-x/smart-organizer/pkg/mover"
	"github.com/moyu-x/smart-organizer/pkg/resolver"
	"github.com/moyu-x/smart-organizer/pkg/runlog"
	"github.com/moyu-x/smart-organizer/pkg/scanner"
)

// ReportFunc 接收单个文件的处理结果，供上层渲染
type ReportFunc func(internal.Event)

// Organizer 整理编排器
// 对发现的文件做单趟处理: 过滤、查重、分类、解决命名冲突、移动，
// 过程中累积四个计数器并逐文件上报结果
type Organizer struct {
	fs       afero.Fs
	index    *category.Index
	walker   *scanner.FileWalker
	resolver *resolver.Resolver
	mover    *mover.Mover
	opts     internal.Options
	report   ReportFunc
}

// New 创建整理编排器
// report 可以为 nil，此时结果只反映在统计计数器中
func New(fs afero.Fs, index *category.Index, opts internal.Options, report ReportFunc) *Organizer {
	if report == nil {
		report = func(internal.Event) {}
	}
	return &Organizer{
		fs:       fs,
		index:    index,
		walker:   scanner.NewFileWalker(fs),
		resolver: resolver.New(fs),
		mover:    mover.New(fs),
		opts:     opts,
		report:   report,
	}
}

// Run 执行一次完整的整理
// 单线程顺序处理，一个文件处理完毕后才考虑下一个
// 目录枚举失败、元数据读取失败和日志打开失败会中止整个运行，
// 单个文件的移动失败只计入 errors 计数器，继续处理后续文件
func (o *Organizer) Run() (*internal.Stats, error) {
	stats := &internal.Stats{}

	// 分类目录名作为遍历排除项，避免重复整理已分类的文件
	files, err := o.walker.Walk(o.opts.Root, o.index.Names())
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		logger.Get().Info().Str("root", o.opts.Root).Msg("没有需要整理的文件")
		return stats, nil
	}

	logger.Get().Info().Int("count", len(files)).Msg("发现待处理文件")

	// 预览模式不写运行日志
	var log *runlog.Writer
	if !o.opts.DryRun {
		log, err = runlog.Open(o.fs, o.opts.Root, o.opts.DryRun)
		if err != nil {
			return nil, err
		}
		defer log.Close()
	}

	tracker := dupes.NewTracker()

	for _, file := range files {
		if err := o.processFile(file, tracker, log, stats); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

// processFile 处理单个文件，返回非 nil 错误表示需要中止整个运行
func (o *Organizer) processFile(file string, tracker *dupes.Tracker, log *runlog.Writer, stats *internal.Stats) error {
	if scanner.IsJunk(file) {
		logger.Get().Debug().Str("file", file).Msg("跳过垃圾文件")
		return nil
	}

	name := filepath.Base(file)
	ext := strings.TrimPrefix(filepath.Ext(name), ".")

	// 无扩展名的文件直接跳过，除非启用了内容探测
	if ext == "" && !o.opts.DetectTypes {
		stats.Skipped++
		o.report(internal.Event{Kind: internal.EventSkipped, Source: o.relative(file)})
		return nil
	}

	// 元数据读取失败属于运行级致命错误
	info, err := o.fs.Stat(file)
	if err != nil {
		return fmt.Errorf("读取文件信息失败 %s: %w", file, err)
	}

	if o.opts.FindDuplicates {
		fingerprint := dupes.Fingerprint(name, info.ModTime(), info.Size())
		if first, seen := tracker.CheckAndRecord(fingerprint, file); seen {
			stats.Duplicates++
			o.report(internal.Event{
				Kind:        internal.EventDuplicate,
				Source:      o.relative(file),
				DuplicateOf: o.relative(first),
			})
			return nil
		}
	}

	categoryName, ok := o.index.Categorize(ext)
	if !ok && o.opts.DetectTypes {
		categoryName, ok = o.detectCategory(file)
	}
	if !ok {
		stats.Skipped++
		o.report(internal.Event{Kind: internal.EventSkipped, Source: o.relative(file)})
		return nil
	}

	destDir := o.destDir(file, categoryName)

	dest, err := o.resolver.Resolve(destDir, name, ext)
	if err != nil {
		return fmt.Errorf("解决文件名冲突失败 %s: %w", file, err)
	}

	if o.opts.DryRun {
		stats.Moved++
		o.report(internal.Event{
			Kind:     internal.EventPreviewed,
			Source:   o.relative(file),
			Dest:     o.relative(dest),
			Category: categoryName,
		})
		return nil
	}

	if err := o.fs.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("创建分类目录失败 %s: %w", destDir, err)
	}

	outcome, err := o.mover.Move(file, dest)
	if err != nil {
		stats.Errors++
		logger.Get().Error().Err(err).Str("file", file).Msg("移动文件失败")
		o.report(internal.Event{
			Kind:   internal.EventError,
			Source: o.relative(file),
			Dest:   o.relative(dest),
			Err:    err,
		})
		return nil
	}

	stats.Moved++

	kind := internal.EventMoved
	if outcome == mover.OutcomeCopiedSourceRetained {
		kind = internal.EventCopiedRetained
	}
	o.report(internal.Event{
		Kind:     kind,
		Source:   o.relative(file),
		Dest:     o.relative(dest),
		Category: categoryName,
	})

	if log != nil {
		// 日志写入失败不影响移动结果
		if err := log.Record(o.relative(file), o.relative(dest)); err != nil {
			logger.Get().Warn().Err(err).Msg("写入运行日志失败")
		}
	}

	return nil
}

// destDir 计算目标目录
// 默认为根目录下的分类目录，启用结构保留时在分类目录内追加原有的相对子路径
func (o *Organizer) destDir(file, categoryName string) string {
	base := filepath.Join(o.opts.Root, categoryName)
	if !o.opts.KeepStructure {
		return base
	}

	rel, err := filepath.Rel(o.opts.Root, file)
	if err != nil {
		return base
	}

	parent := filepath.Dir(rel)
	if parent == "." {
		return base
	}
	return filepath.Join(base, parent)
}

// relative 将路径转换为相对于根目录的形式，转换失败时原样返回
func (o *Organizer) relative(path string) string {
	rel, err := filepath.Rel(o.opts.Root, path)
	if err != nil {
		return path
	}
	return rel
}
