package category

import (
	"sort"
	"strings"
)

// Index 扩展名到分类名的内存索引
// 分类按名称排序存储，扩展名重叠时按排序后的首个匹配返回，保证结果确定
type Index struct {
	entries []Entry
}

// Entry 单个分类及其扩展名列表
type Entry struct {
	Name       string
	Extensions []string
}

// New 从分类名到扩展名列表的映射构建索引
func New(categories map[string][]string) *Index {
	entries := make([]Entry, 0, len(categories))
	for name, exts := range categories {
		entries = append(entries, Entry{Name: name, Extensions: exts})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return &Index{entries: entries}
}

// Categorize 返回扩展名所属的分类名
// 扩展名比较不区分大小写，无匹配时第二个返回值为 false
func (idx *Index) Categorize(ext string) (string, bool) {
	for _, entry := range idx.entries {
		for _, candidate := range entry.Extensions {
			if strings.EqualFold(candidate, ext) {
				return entry.Name, true
			}
		}
	}
	return "", false
}

// Names 返回所有分类名，按名称排序
func (idx *Index) Names() []string {
	names := make([]string, 0, len(idx.entries))
	for _, entry := range idx.entries {
		names = append(names, entry.Name)
	}
	return names
}

// Entries 返回所有分类及其扩展名，按分类名排序
func (idx *Index) Entries() []Entry {
	return idx.entries
}
