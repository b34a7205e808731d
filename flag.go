package main

import (
	"flag"
	"fmt"
	"os"
)

var (
	hf         bool
	df         bool
	configPath string
	logLevel   string
)

func InitFlag() {
	flag.BoolVar(&hf, "h", false, "this help")
	flag.BoolVar(&df, "d", false, "print the resolved tile layer as JSON and exit")
	flag.StringVar(&configPath, "c", "./conf/conf.toml", "set config `file`")
	flag.StringVar(&logLevel, "l", "info", "set log level (default: info)")
	flag.Usage = usage
	flag.Parse()

	if hf {
		flag.Usage()
		os.Exit(0)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `basemap version: basemap/v0.1.0
Usage: basemap [-h] [-d] [-c filename] [-l logLevel]
`)
	flag.PrintDefaults()
}
