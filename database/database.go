package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB 运行历史数据库连接
type DB struct {
	conn *sql.DB
}

// RunRecord 一次整理运行的摘要记录
type RunRecord struct {
	ID             string
	StartedAt      time.Time
	Root           string
	DryRun         bool
	FindDuplicates bool
	KeepStructure  bool
	Moved          int
	Duplicates     int
	Skipped        int
	Errors         int
}

// New 创建一个新的数据库连接
// 父目录不存在时自动创建
func New(dbPath string) (*DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("创建数据库目录失败: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TIMESTAMP NOT NULL,
		root TEXT NOT NULL,
		dry_run INTEGER NOT NULL,
		find_duplicates INTEGER NOT NULL,
		keep_structure INTEGER NOT NULL,
		moved INTEGER NOT NULL,
		duplicates INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		errors INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`

	if _, err := conn.Exec(createTableSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("创建表失败: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close 关闭数据库连接
func (db *DB) Close() error {
	return db.conn.Close()
}

// SaveRun 保存一次运行的摘要记录
func (db *DB) SaveRun(rec *RunRecord) error {
	_, err := db.conn.Exec(
		`INSERT INTO runs (id, started_at, root, dry_run, find_duplicates, keep_structure,
			moved, duplicates, skipped, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.StartedAt, rec.Root, rec.DryRun, rec.FindDuplicates, rec.KeepStructure,
		rec.Moved, rec.Duplicates, rec.Skipped, rec.Errors,
	)
	if err != nil {
		return fmt.Errorf("插入运行记录失败: %w", err)
	}
	return nil
}

// ListRuns 按开始时间倒序返回最近的运行记录
// limit 小于等于 0 时返回全部记录
func (db *DB) ListRuns(limit int) ([]RunRecord, error) {
	query := `SELECT id, started_at, root, dry_run, find_duplicates, keep_structure,
		moved, duplicates, skipped, errors FROM runs ORDER BY started_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("查询运行记录失败: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(&rec.ID, &rec.StartedAt, &rec.Root, &rec.DryRun,
			&rec.FindDuplicates, &rec.KeepStructure,
			&rec.Moved, &rec.Duplicates, &rec.Skipped, &rec.Errors); err != nil {
			return nil, fmt.Errorf("读取行数据失败: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历结果集失败: %w", err)
	}

	return records, nil
}
