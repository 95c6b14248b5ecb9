package internal

const (
	// RunLogFileName 运行日志文件名，写入目标目录根部
	// 该文件本身会被垃圾过滤排除，避免下次运行时被当作待整理文件
	RunLogFileName = "organizer_log.txt"

	// DefaultHistoryDBPath 运行历史数据库的默认路径
	DefaultHistoryDBPath = "~/.smart-organizer/history.db"

	// FileHeaderSize 文件类型探测所需的文件头部大小（字节）
	FileHeaderSize = 261
)

// OSJunkNames 已知的操作系统垃圾文件名，按名称精确匹配
var OSJunkNames = []string{
	"Thumbs.db",
	"desktop.ini",
}
