package cmd

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/moyu-x/smart-organizer/app"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "查看最近的整理运行记录",
	Long:  `列出历史数据库中最近的整理运行，包括时间、目录、选项和各项计数。`,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	cfgFile, _ := cmd.Flags().GetString("config")

	records, err := app.ListHistory(&app.HistoryOptions{
		ConfigFile: cfgFile,
		Limit:      limit,
	})
	if err != nil {
		return err
	}

	if len(records) == 0 {
		cmd.Println("暂无运行记录")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"时间", "目录", "移动", "重复", "跳过", "错误"})

	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.StartedAt.Format("2006-01-02 15:04:05"),
			rec.Root,
			rec.Moved,
			rec.Duplicates,
			rec.Skipped,
			rec.Errors,
		})
	}

	t.SetStyle(table.StyleLight)
	t.Render()

	return nil
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "显示的记录条数")
	historyCmd.Flags().String("config", "", "配置文件路径")

	rootCmd.AddCommand(historyCmd)
}
