package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/moyu-x/smart-organizer/internal"
	"github.com/moyu-x/smart-organizer/logger"
)

// Config 运行配置
// Categories 为分类名到扩展名列表的映射，来自 config.toml 的 [categories] 表
type Config struct {
	Categories map[string][]string
	History    struct {
		Path string
	}
	Logging struct {
		Level string
		File  string
	}
}

// DefaultCategories 内置的默认分类
// 当找不到配置文件或配置文件有错误时使用
func DefaultCategories() map[string][]string {
	return map[string][]string{
		"Images":    {"jpg", "jpeg", "png", "gif", "bmp", "webp", "svg"},
		"Documents": {"pdf", "doc", "docx", "txt", "rtf", "odt", "xlsx", "csv"},
		"Videos":    {"mp4", "mkv", "mov", "avi", "webm"},
		"Music":     {"mp3", "wav", "flac", "aac", "ogg"},
		"Archives":  {"zip", "rar", "7z", "tar", "gz"},
	}
}

// Load 加载配置
// cfgFile: 显式指定的配置文件路径，可以为空
// rootDir: 待整理的根目录，配置文件的首选搜索位置
// 配置文件缺失或格式错误时回退到内置默认分类，不视为错误
func Load(cfgFile string, rootDir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if rootDir != "" {
			v.AddConfigPath(rootDir)
		}
		v.AddConfigPath("$HOME/.smart-organizer")
		v.AddConfigPath(".")
	}

	v.SetDefault("history.path", internal.DefaultHistoryDBPath)
	v.SetDefault("logging.level", "info")

	cfg := defaultConfig()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.Get().Info().Msg("未找到配置文件，使用默认分类")
		} else {
			logger.Get().Warn().Err(err).Msg("配置文件有错误，使用默认分类")
		}
		return cfg, nil
	}

	cfg.History.Path = v.GetString("history.path")
	cfg.Logging.Level = v.GetString("logging.level")
	cfg.Logging.File = v.GetString("logging.file")

	// viper 会把映射键统一转成小写，而分类名需要保留大小写作为目录名，
	// 因此 [categories] 表从定位到的文件中单独解码
	if cats, err := decodeCategories(v.ConfigFileUsed()); err != nil {
		logger.Get().Warn().Err(err).Msg("解析分类配置失败，使用默认分类")
	} else if len(cats) > 0 {
		cfg.Categories = cats
	}

	logger.Get().Info().Str("file", v.ConfigFileUsed()).Msg("已加载配置文件")
	return cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{Categories: DefaultCategories()}
	cfg.History.Path = internal.DefaultHistoryDBPath
	cfg.Logging.Level = "info"
	return cfg
}

// decodeCategories 以保留键大小写的方式解码 [categories] 表
func decodeCategories(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Categories map[string][]string `toml:"categories"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw.Categories, nil
}

// HistoryDBPath 展开历史数据库路径中的 ~ 前缀
func (c *Config) HistoryDBPath() string {
	path := c.History.Path
	if path == "" {
		path = internal.DefaultHistoryDBPath
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return path
}
