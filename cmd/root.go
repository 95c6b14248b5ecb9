package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smart-organizer",
	Short: "按扩展名将文件整理到分类目录的工具",
	Long: `Smart Organizer 是一个命令行工具，按文件扩展名将目录中的文件整理到分类子目录。

主要功能:
- 递归遍历目标目录，跳过隐藏文件和已分类的目录
- 按扩展名将文件归入分类目录（如 jpg -> Images）
- 目标文件名冲突时自动追加日期和版本号后缀
- 基于 文件名+修改日期+大小 指纹的轻量重复检测
- 预览模式、子目录结构保留、运行日志和历史记录`,

	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
