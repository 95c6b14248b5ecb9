package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/smart-organizer/config"
	"github.com/moyu-x/smart-organizer/internal"
	"github.com/moyu-x/smart-organizer/pkg/category"
)

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}
}

func newOrganizer(root string, mutate func(*internal.Options), report ReportFunc) *Organizer {
	opts := internal.Options{Root: root}
	if mutate != nil {
		mutate(&opts)
	}
	idx := category.New(config.DefaultCategories())
	return New(afero.NewOsFs(), idx, opts, report)
}

func TestOrganizer_SortsByExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "photo.jpg"), []byte("img"))
	writeFile(t, filepath.Join(root, "report.pdf"), []byte("doc"))
	writeFile(t, filepath.Join(root, "song.mp3"), []byte("snd"))

	stats, err := newOrganizer(root, nil, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Moved != 3 {
		t.Errorf("Moved = %d, want 3", stats.Moved)
	}
	if stats.Errors != 0 {
		t.Errorf("Errors = %d, want 0", stats.Errors)
	}

	expected := map[string]string{
		"Images/photo.jpg":     "img",
		"Documents/report.pdf": "doc",
		"Music/song.mp3":       "snd",
	}
	for rel, content := range expected {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			t.Errorf("读取 %s 失败: %v", rel, err)
			continue
		}
		if string(data) != content {
			t.Errorf("%s 内容 = %q, want %q", rel, data, content)
		}
	}

	for _, name := range []string{"photo.jpg", "report.pdf", "song.mp3"} {
		if _, err := os.Stat(filepath.Join(root, name)); !os.IsNotExist(err) {
			t.Errorf("%s 应当已从根目录移走", name)
		}
	}
}

func TestOrganizer_WritesRunLog(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "photo.jpg"), []byte("img"))

	if _, err := newOrganizer(root, nil, nil).Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, internal.RunLogFileName))
	if err != nil {
		t.Fatalf("读取运行日志失败: %v", err)
	}

	log := string(data)
	for _, want := range []string{"Run started:", "Directory:", "photo.jpg ->"} {
		if !strings.Contains(log, want) {
			t.Errorf("运行日志缺少 %q:\n%s", want, log)
		}
	}
}

func TestOrganizer_DryRunMovesNothing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "photo.jpg"), []byte("img"))
	writeFile(t, filepath.Join(root, "report.pdf"), []byte("doc"))

	stats, err := newOrganizer(root, func(o *internal.Options) {
		o.DryRun = true
	}, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Moved != 2 {
		t.Errorf("Moved = %d, want 2", stats.Moved)
	}

	for _, name := range []string{"photo.jpg", "report.pdf"} {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			t.Errorf("预览模式下 %s 应当留在原处: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "Images")); !os.IsNotExist(err) {
		t.Error("预览模式下不应创建分类目录")
	}
	if _, err := os.Stat(filepath.Join(root, internal.RunLogFileName)); !os.IsNotExist(err) {
		t.Error("预览模式下不应写运行日志")
	}
}

func TestOrganizer_FlagsDuplicates(t *testing.T) {
	root := t.TempDir()
	pathA := filepath.Join(root, "a", "photo.jpg")
	pathB := filepath.Join(root, "b", "photo.jpg")
	writeFile(t, pathA, []byte("identical"))
	writeFile(t, pathB, []byte("identical"))

	// 修改时间对齐到同一时刻，保证天粒度指纹一致
	mtime := time.Now().Add(-time.Hour)
	for _, path := range []string{pathA, pathB} {
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatalf("设置修改时间失败: %v", err)
		}
	}

	var dupEvents []internal.Event
	stats, err := newOrganizer(root, func(o *internal.Options) {
		o.FindDuplicates = true
	}, func(e internal.Event) {
		if e.Kind == internal.EventDuplicate {
			dupEvents = append(dupEvents, e)
		}
	}).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Moved != 1 {
		t.Errorf("Moved = %d, want 1", stats.Moved)
	}
	if stats.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", stats.Duplicates)
	}
	if len(dupEvents) != 1 {
		t.Fatalf("重复事件数 = %d, want 1", len(dupEvents))
	}
	if dupEvents[0].DuplicateOf == "" {
		t.Error("重复事件应标注首次出现的文件路径")
	}

	// 未移动的那个文件保留在原位
	remainA, _ := os.Stat(pathA)
	remainB, _ := os.Stat(pathB)
	if (remainA == nil) == (remainB == nil) {
		t.Error("两个重复文件中应当恰好有一个留在原位")
	}
}

func TestOrganizer_DifferentSizesAreNotDuplicates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "photo.jpg"), []byte("short"))
	writeFile(t, filepath.Join(root, "b", "photo.jpg"), []byte("much longer content here"))

	stats, err := newOrganizer(root, func(o *internal.Options) {
		o.FindDuplicates = true
	}, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Duplicates != 0 {
		t.Errorf("Duplicates = %d, want 0", stats.Duplicates)
	}
	if stats.Moved != 2 {
		t.Errorf("Moved = %d, want 2", stats.Moved)
	}
}

func TestOrganizer_KeepStructure(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "projects", "work", "report.pdf"), []byte("doc"))
	writeFile(t, filepath.Join(root, "vacation", "photo.jpg"), []byte("img"))

	stats, err := newOrganizer(root, func(o *internal.Options) {
		o.KeepStructure = true
	}, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Moved != 2 {
		t.Errorf("Moved = %d, want 2", stats.Moved)
	}
	for _, rel := range []string{
		"Documents/projects/work/report.pdf",
		"Images/vacation/photo.jpg",
	} {
		if _, err := os.Stat(filepath.Join(root, rel)); err != nil {
			t.Errorf("%s 应当存在: %v", rel, err)
		}
	}
}

func TestOrganizer_ResolvesCollision(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "photo.jpg"), []byte("first"))
	writeFile(t, filepath.Join(root, "Images", "photo.jpg"), []byte("already here"))

	stats, err := newOrganizer(root, nil, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Moved != 1 {
		t.Errorf("Moved = %d, want 1", stats.Moved)
	}

	data, err := os.ReadFile(filepath.Join(root, "Images", "photo.jpg"))
	if err != nil {
		t.Fatalf("读取原有文件失败: %v", err)
	}
	if string(data) != "already here" {
		t.Errorf("原有文件内容被覆盖: %q", data)
	}

	today := time.Now().Format("2006-01-02")
	dated := filepath.Join(root, "Images", fmt.Sprintf("photo_%s.jpg", today))
	if _, err := os.Stat(dated); err != nil {
		t.Errorf("追加日期后缀的文件应当存在: %v", err)
	}
}

func TestOrganizer_SkipsJunkAndUnknown(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Thumbs.db"), []byte("junk"))
	writeFile(t, filepath.Join(root, "desktop.ini"), []byte("junk"))
	writeFile(t, filepath.Join(root, "mystery.xyz"), []byte("wat"))
	writeFile(t, filepath.Join(root, "photo.jpg"), []byte("img"))

	stats, err := newOrganizer(root, nil, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Moved != 1 {
		t.Errorf("Moved = %d, want 1", stats.Moved)
	}
	// 垃圾文件不计入任何计数器，未知扩展名计入 skipped
	if stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", stats.Skipped)
	}

	for _, name := range []string{"Thumbs.db", "desktop.ini", "mystery.xyz"} {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			t.Errorf("%s 应当留在原处: %v", name, err)
		}
	}
}

func TestOrganizer_ExtensionlessFilesAreSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Makefile"), []byte("all: build"))
	writeFile(t, filepath.Join(root, "LICENSE"), []byte("MIT"))
	writeFile(t, filepath.Join(root, "photo.jpg"), []byte("img"))

	stats, err := newOrganizer(root, nil, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Moved != 1 {
		t.Errorf("Moved = %d, want 1", stats.Moved)
	}
	if stats.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", stats.Skipped)
	}
}

func TestOrganizer_EmptyDirReturnsZeros(t *testing.T) {
	stats, err := newOrganizer(t.TempDir(), nil, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Moved != 0 || stats.Duplicates != 0 || stats.Skipped != 0 || stats.Errors != 0 {
		t.Errorf("空目录应返回零值统计: %+v", stats)
	}
}

func TestOrganizer_DetectTypes(t *testing.T) {
	root := t.TempDir()
	// JPEG 文件头，无扩展名
	writeFile(t, filepath.Join(root, "holiday_photo"), []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"))

	stats, err := newOrganizer(root, func(o *internal.Options) {
		o.DetectTypes = true
	}, nil).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Moved != 1 {
		t.Fatalf("Moved = %d, want 1", stats.Moved)
	}
	if _, err := os.Stat(filepath.Join(root, "Images", "holiday_photo")); err != nil {
		t.Errorf("内容探测应将文件归入 Images: %v", err)
	}
}

func TestOrganizer_EventStream(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "photo.jpg"), []byte("img"))
	writeFile(t, filepath.Join(root, "mystery.xyz"), []byte("wat"))

	var kinds []internal.EventKind
	_, err := newOrganizer(root, nil, func(e internal.Event) {
		kinds = append(kinds, e.Kind)
	}).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	counts := map[internal.EventKind]int{}
	for _, k := range kinds {
		counts[k]++
	}
	if counts[internal.EventMoved] != 1 {
		t.Errorf("moved 事件数 = %d, want 1", counts[internal.EventMoved])
	}
	if counts[internal.EventSkipped] != 1 {
		t.Errorf("skipped 事件数 = %d, want 1", counts[internal.EventSkipped])
	}
}
