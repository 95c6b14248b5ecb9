package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moyu-x/smart-organizer/app"
	"github.com/moyu-x/smart-organizer/internal"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "按扩展名将目录中的文件整理到分类子目录",
	Long: `遍历目标目录中的所有文件，按扩展名归入分类子目录（如 jpg -> Images）。
目标文件名冲突时自动追加日期后缀，仍冲突时追加递增的版本号。
使用 --dry-run 可以在不移动任何文件的情况下预览结果。`,
	RunE: runOrganize,
}

func runOrganize(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("path")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	findDuplicates, _ := cmd.Flags().GetBool("find-duplicates")
	keepStructure, _ := cmd.Flags().GetBool("keep-structure")
	detectTypes, _ := cmd.Flags().GetBool("detect-types")
	verbose, _ := cmd.Flags().GetBool("verbose")
	cfgFile, _ := cmd.Flags().GetString("config")

	fmt.Println(styleHeader.Render("═══════════════════════════════════════"))
	fmt.Println(styleHeader.Render("        Smart File Organizer"))
	fmt.Println(styleHeader.Render("═══════════════════════════════════════"))
	fmt.Println()

	if dryRun {
		fmt.Println(styleWarn.Render("预览模式 — 不会移动任何文件"))
		fmt.Println()
	}
	fmt.Printf("目标目录: %s\n\n", path)

	opts := &app.OrganizeOptions{
		Path:           path,
		DryRun:         dryRun,
		FindDuplicates: findDuplicates,
		KeepStructure:  keepStructure,
		DetectTypes:    detectTypes,
		Verbose:        verbose,
		ConfigFile:     cfgFile,
		Report:         renderEvent,
	}

	stats, err := app.RunOrganize(opts)
	if err != nil {
		return err
	}

	printSummary(stats, dryRun)

	// 单个文件的移动失败不会中止运行，但整体仍以非零状态结束
	if stats.Errors > 0 {
		return fmt.Errorf("%d 个文件移动失败", stats.Errors)
	}

	return nil
}

// renderEvent 渲染单个文件的处理结果
func renderEvent(e internal.Event) {
	switch e.Kind {
	case internal.EventMoved:
		fmt.Printf("  %s %s %s %s\n",
			styleOK.Render("✓"), e.Source, styleDim.Render("->"), stylePreview.Render(e.Dest))
	case internal.EventPreviewed:
		fmt.Printf("  %s %s %s %s\n",
			stylePreview.Render("→"), e.Source, styleDim.Render("->"), styleOK.Render(e.Dest))
	case internal.EventDuplicate:
		fmt.Printf("  %s %s (与 %s 重复)\n",
			styleWarn.Render("⚠ 跳过:"), e.Source, e.DuplicateOf)
	case internal.EventCopiedRetained:
		fmt.Printf("  %s %s %s %s (源文件未能删除)\n",
			styleWarn.Render("⚠"), e.Source, styleDim.Render("->"), e.Dest)
	case internal.EventError:
		fmt.Printf("  %s %s — %v\n", styleErr.Render("✗"), e.Source, e.Err)
	}
}

// printSummary 渲染最终统计
func printSummary(stats *internal.Stats, dryRun bool) {
	fmt.Println()
	if dryRun {
		fmt.Printf("%s 预览完成: %d 个文件待移动\n", styleOK.Render("✓"), stats.Moved)
	} else {
		fmt.Printf("%s 已整理 %d 个文件\n", styleOK.Render("✓"), stats.Moved)
	}
	if stats.Duplicates > 0 {
		fmt.Printf("   %d 个重复文件\n", stats.Duplicates)
	}
	if stats.Skipped > 0 {
		fmt.Printf("   %d 个文件无匹配分类，已跳过\n", stats.Skipped)
	}
	if stats.Errors > 0 {
		fmt.Printf("   %s 个文件移动失败\n", styleErr.Render(fmt.Sprintf("%d", stats.Errors)))
	}
	if dryRun {
		fmt.Println(styleWarn.Render("   去掉 --dry-run 后重新运行以应用更改"))
	} else {
		fmt.Println(styleDim.Render("   详细记录见 " + internal.RunLogFileName))
	}
}

func init() {
	runCmd.Flags().StringP("path", "p", ".", "待整理的目录")
	runCmd.Flags().BoolP("dry-run", "d", false, "预览模式，不移动任何文件")
	runCmd.Flags().Bool("find-duplicates", false, "启用重复文件检测（文件名+修改日期+大小）")
	runCmd.Flags().Bool("keep-structure", false, "在分类目录内保留原有的子目录结构")
	runCmd.Flags().Bool("detect-types", false, "对无扩展名或未匹配的文件尝试内容探测")
	runCmd.Flags().BoolP("verbose", "v", false, "显示详细日志")
	runCmd.Flags().String("config", "", "配置文件路径（默认搜索目标目录和 ~/.smart-organizer）")

	rootCmd.AddCommand(runCmd)
}
