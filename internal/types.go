package internal

// Options 一次整理运行的选项，运行期间不可变
type Options struct {
	Root           string // 待整理的根目录
	DryRun         bool   // 预览模式，不移动任何文件
	FindDuplicates bool   // 启用重复文件检测
	KeepStructure  bool   // 在分类目录内保留原有的子目录结构
	DetectTypes    bool   // 对无扩展名或未匹配的文件尝试内容探测
}

// EventKind 单个文件的处理结果类型
type EventKind string

const (
	EventMoved          EventKind = "moved"           // 文件已移动
	EventPreviewed      EventKind = "previewed"       // 预览模式下的待移动文件
	EventDuplicate      EventKind = "duplicate"       // 重复文件，保留原位
	EventSkipped        EventKind = "skipped"         // 无匹配分类或无扩展名
	EventError          EventKind = "error"           // 移动失败
	EventCopiedRetained EventKind = "copied_retained" // 已复制到目标位置，但源文件删除失败
)

// Event 单个文件的处理结果，供上层渲染
type Event struct {
	Kind        EventKind
	Source      string // 相对于根目录的源路径
	Dest        string // 相对于根目录的目标路径（moved/previewed 时有效）
	DuplicateOf string // 首次出现该指纹的文件路径（duplicate 时有效）
	Category    string // 命中的分类名
	Err         error  // 失败原因（error 时有效）
}

// Stats 一次运行的统计结果，四个计数器单调递增
type Stats struct {
	Moved      int // 已移动（预览模式下为待移动）的文件数
	Duplicates int // 检测到的重复文件数
	Skipped    int // 无分类或无扩展名而跳过的文件数
	Errors     int // 移动失败的文件数
}
