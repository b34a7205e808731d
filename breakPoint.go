package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var BreakPointInst *BreakPoint

func InitBreakPoint() {
	bp, err := newBreakPoint(conf.BreakPoint.SaveFilePath, conf.Tm.Name)
	if err != nil {
		log.Fatalf("break point file open is error: %s", err)
	}
	BreakPointInst = bp
}

// BreakPoint 记录已完成的级别, 重新运行时跳过
type BreakPoint struct {
	file *os.File
	done map[string]struct{}
	mu   sync.Mutex
}

func newBreakPoint(dir, name string) (*BreakPoint, error) {
	os.MkdirAll(dir, os.ModePerm)
	path := filepath.Join(dir, fmt.Sprintf("%s.log", name))
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}

	// 获取断点记录
	done := make(map[string]struct{})
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			done[line] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		file.Close()
		return nil, err
	}
	return &BreakPoint{file: file, done: done}, nil
}

func zoomKey(z int) string {
	return fmt.Sprintf("z%d", z)
}

func (b *BreakPoint) IsDone(z int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.done[zoomKey(z)]
	return ok
}

func (b *BreakPoint) SetDone(z int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.file == nil {
		return os.ErrClosed
	}
	key := zoomKey(z)
	if _, ok := b.done[key]; ok {
		return nil
	}
	if _, err := b.file.WriteString(key + "\n"); err != nil {
		return err
	}
	b.done[key] = struct{}{}
	return nil
}

func (b *BreakPoint) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.file == nil {
		return nil
	}
	err := b.file.Close()
	b.file = nil
	return err
}

func (b *BreakPoint) BreakPointSafeFun() {
	b.Close()
	log.Infof("断点记录任务已安全退出")
}
