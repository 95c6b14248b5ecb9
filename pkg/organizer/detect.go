package organizer

import (
	"io"

	"github.com/h2non/filetype"

	"github.com/moyu-x/smart-organizer/internal"
	"github.com/moyu-x/smart-organizer/logger"
)

// mimeCategories MIME 主类型到分类名的映射
var mimeCategories = map[string]string{
	"image": "Images",
	"video": "Videos",
	"audio": "Music",
}

// archiveExtensions 内容探测识别出的压缩格式扩展名
var archiveExtensions = map[string]bool{
	"zip": true,
	"tar": true,
	"gz":  true,
	"rar": true,
	"7z":  true,
	"xz":  true,
	"bz2": true,
}

// detectCategory 通过文件头内容探测推断分类
// 仅在扩展名缺失或未匹配任何分类时使用，探测失败不视为错误
func (o *Organizer) detectCategory(file string) (string, bool) {
	head, err := o.readFileHeader(file, internal.FileHeaderSize)
	if err != nil {
		logger.Get().Debug().Err(err).Str("file", file).Msg("读取文件头部失败")
		return "", false
	}

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return "", false
	}

	var name string
	if mapped, ok := mimeCategories[kind.MIME.Type]; ok {
		name = mapped
	} else if archiveExtensions[kind.Extension] {
		name = "Archives"
	}

	if name == "" || !o.hasCategory(name) {
		return "", false
	}

	logger.Get().Debug().
		Str("file", file).
		Str("mime", kind.MIME.Value).
		Str("category", name).
		Msg("通过内容探测确定分类")
	return name, true
}

// hasCategory 判断配置中是否存在指定名称的分类
func (o *Organizer) hasCategory(name string) bool {
	for _, candidate := range o.index.Names() {
		if candidate == name {
			return true
		}
	}
	return false
}

// readFileHeader 读取文件的前 size 个字节，用于文件类型探测
func (o *Organizer) readFileHeader(file string, size int) ([]byte, error) {
	f, err := o.fs.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, size)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}
