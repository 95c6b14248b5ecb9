package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moyu-x/smart-organizer/config"
	"github.com/moyu-x/smart-organizer/pkg/category"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "显示当前生效的分类配置",
	Long:  `打印解析后的分类名到扩展名列表的映射，用于排查配置文件问题。`,
	RunE:  runCategories,
}

func runCategories(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(cfgFile, "")
	if err != nil {
		return err
	}

	index := category.New(cfg.Categories)
	for _, entry := range index.Entries() {
		fmt.Printf("%s  %s\n",
			styleHeader.Render(fmt.Sprintf("%-12s", entry.Name)),
			strings.Join(entry.Extensions, ", "))
	}

	return nil
}

func init() {
	categoriesCmd.Flags().String("config", "", "配置文件路径")

	rootCmd.AddCommand(categoriesCmd)
}
