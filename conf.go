package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/spf13/viper"
)

var conf *Conf

type Conf struct {
	App struct {
		Version string `mapstructure:"version"`
		Title   string `mapstructure:"title"`
	} `mapstructure:"app"`
	Output struct {
		Directory      string `mapstructure:"directory"`
		File           string `mapstructure:"file"`
		LogDir         string `mapstructure:"logDir"`
		OutputTerminal bool   `mapstructure:"outputTerminal"`
	} `mapstructure:"output"`
	Task struct {
		BufSize  int  `mapstructure:"bufSize"`
		Progress bool `mapstructure:"progress"`
	} `mapstructure:"task"`
	BreakPoint struct {
		SaveFilePath string `mapstructure:"saveFilePath"`
	} `mapstructure:"breakPoint"`
	Tm struct {
		Name    string `mapstructure:"name"`
		MinZoom int    `mapstructure:"minZoom"`
	} `mapstructure:"tm"`
	Basemap struct {
		MaxZoom    int            `mapstructure:"maxZoom"`
		HasMaxZoom bool           `mapstructure:"-"`
		Type       string         `mapstructure:"type"`
		Format     string         `mapstructure:"format"`
		Variant    string         `mapstructure:"variant"`
		Extra      map[string]any `mapstructure:"extra"`
	} `mapstructure:"basemap"`
	// 追加到每个瓦片地址的查询参数
	Params map[string]any `mapstructure:"params"`
	Lrs    []LayerRange   `mapstructure:"lrs"`
}

// LayerRange 区域及其级别范围
type LayerRange struct {
	Min     int    `mapstructure:"min"`
	Max     int    `mapstructure:"max"`
	Geojson string `mapstructure:"geojson"`
}

// InitConf 初始化配置
func InitConf(cfgFile string) {
	c, err := loadConf(cfgFile)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	conf = c
}

func loadConf(cfgFile string) (*Conf, error) {
	if cfgFile == "" {
		cfgFile = "conf.toml"
	}
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file(%s) not exist", cfgFile)
	}
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(cfgFile)
	v.AutomaticEnv() // read in environment variables that match
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file(%s) error, details: %w", v.ConfigFileUsed(), err)
	}
	// 设置默认值
	v.SetDefault("app.version", "v 0.1.0")
	v.SetDefault("app.title", "Basemap Tiler")
	v.SetDefault("output.directory", "output")
	v.SetDefault("output.file", "seed.db")
	v.SetDefault("output.outputTerminal", true)
	v.SetDefault("task.bufSize", 256)
	v.SetDefault("task.progress", true)
	v.SetDefault("breakPoint.saveFilePath", "breakpoint")
	v.SetDefault("tm.name", "basemap")

	var c Conf
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("配置文件解析失败: %w", err)
	}
	c.Basemap.HasMaxZoom = v.IsSet("basemap.maxZoom")

	// viper 会将键转为小写, 查询参数与附加字段需保留原始大小写
	tree, err := toml.LoadFile(v.ConfigFileUsed())
	if err != nil {
		return nil, fmt.Errorf("配置文件解析失败: %w", err)
	}
	c.Params = tomlTable(tree, "params")
	c.Basemap.Extra = tomlTable(tree, "basemap.extra")
	return &c, nil
}

func tomlTable(tree *toml.Tree, key string) map[string]any {
	t, ok := tree.Get(key).(*toml.Tree)
	if !ok {
		return nil
	}
	return t.ToMap()
}
