package dupes

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Tracker 单次运行内的重复文件追踪器
// 指纹由 文件名 + 修改日期（天粒度）+ 字节大小 组成，经 xxhash 压缩为 64 位键
// 这是启发式判断而非内容哈希: 不同内容的文件可能指纹相同，
// 内容相同但名称或日期不同的文件不会被识别为重复
type Tracker struct {
	seen map[uint64]string
}

// NewTracker 创建空的追踪器，指纹只在一次运行内累积，不跨运行持久化
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[uint64]string)}
}

// Fingerprint 计算文件指纹
// name: 文件基础名
// modTime: 最后修改时间，截断到天粒度
// size: 精确的字节大小
func Fingerprint(name string, modTime time.Time, size int64) uint64 {
	key := fmt.Sprintf("%s|%s|%d", name, modTime.Format("2006-01-02"), size)
	return xxhash.Sum64String(key)
}

// CheckAndRecord 检查指纹是否出现过
// 首次出现时记录该文件路径并返回 ("", false)
// 再次出现时返回首次出现的文件路径和 true，不更新记录
func (t *Tracker) CheckAndRecord(fingerprint uint64, path string) (string, bool) {
	if first, ok := t.seen[fingerprint]; ok {
		return first, true
	}
	t.seen[fingerprint] = path
	return "", false
}

// Len 返回已记录的指纹数量
func (t *Tracker) Len() int {
	return len(t.seen)
}
