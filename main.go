package main

import (
	"context"
	"encoding/json"
	"fmt"
)

func main() {
	// 初始化控制台
	InitFlag()
	// 开始安全退出任务
	InitSafeExit()
	// 初始化配置
	InitConf(configPath)
	// 初始化日志
	InitLog()

	if df {
		tl := newTileLayer(conf)
		data, err := json.MarshalIndent(map[string]any{"url": tl.URL, "options": tl.Options}, "", "  ")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(data))
		return
	}

	// 初始化断点
	InitBreakPoint()
	defer BreakPointInst.BreakPointSafeFun()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	SafeExitInst.Register(cancel)

	// 开始任务
	if err := InitTask(ctx); err != nil {
		log.Errorf("task error: %s", err)
	}
}
