package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/paulmach/orb/maptile"

	_ "github.com/mattn/go-sqlite3"
)

// Store 种子清单, 记录每个瓦片的请求地址
type Store struct {
	db   *sql.DB
	stmt *sql.Stmt
}

// OpenStore 打开或创建清单文件
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS metadata (name TEXT PRIMARY KEY, value TEXT);
		CREATE TABLE IF NOT EXISTS tiles (
			zoom_level INTEGER,
			tile_column INTEGER,
			tile_row INTEGER,
			url TEXT
		);
		CREATE UNIQUE INDEX IF NOT EXISTS tile_index ON tiles (zoom_level, tile_column, tile_row);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	stmt, err := db.Prepare("INSERT OR REPLACE INTO tiles (zoom_level, tile_column, tile_row, url) VALUES (?, ?, ?, ?)")
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, stmt: stmt}, nil
}

// SetMetadata 写入元数据
func (s *Store) SetMetadata(md map[string]string) error {
	for k, v := range md {
		if _, err := s.db.Exec("INSERT OR REPLACE INTO metadata (name, value) VALUES (?, ?)", k, v); err != nil {
			return fmt.Errorf("metadata %s: %w", k, err)
		}
	}
	return nil
}

// Metadata 读取元数据
func (s *Store) Metadata() (map[string]string, error) {
	rows, err := s.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	md := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		md[k] = v
	}
	return md, rows.Err()
}

// Put 保存瓦片地址, 行号使用 XYZ 编号
func (s *Store) Put(t maptile.Tile, url string) error {
	_, err := s.stmt.Exec(int(t.Z), int(t.X), int(t.Y), url)
	return err
}

// Batch 单个事务内的批量写入
type Batch struct {
	tx   *sql.Tx
	stmt *sql.Stmt
}

// Begin 开启批量写入事务
func (s *Store) Begin() (*Batch, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	return &Batch{tx: tx, stmt: tx.Stmt(s.stmt)}, nil
}

func (b *Batch) Put(t maptile.Tile, url string) error {
	_, err := b.stmt.Exec(int(t.Z), int(t.X), int(t.Y), url)
	return err
}

func (b *Batch) Commit() error {
	return errors.Join(b.stmt.Close(), b.tx.Commit())
}

// Rollback 放弃未提交的写入, 提交后调用无副作用
func (b *Batch) Rollback() error {
	b.stmt.Close()
	if err := b.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

// URL 查询瓦片地址
func (s *Store) URL(t maptile.Tile) (string, error) {
	var url string
	err := s.db.QueryRow(
		"SELECT url FROM tiles WHERE zoom_level = ? AND tile_column = ? AND tile_row = ?",
		int(t.Z), int(t.X), int(t.Y),
	).Scan(&url)
	return url, err
}

// Count 瓦片总数, z < 0 时统计全部级别
func (s *Store) Count(z int) (int64, error) {
	var n int64
	var err error
	if z < 0 {
		err = s.db.QueryRow("SELECT COUNT(*) FROM tiles").Scan(&n)
	} else {
		err = s.db.QueryRow("SELECT COUNT(*) FROM tiles WHERE zoom_level = ?", z).Scan(&n)
	}
	return n, err
}

func (s *Store) Close() error {
	return errors.Join(s.stmt.Close(), s.db.Close())
}
