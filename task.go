package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"basemap/basemap"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/paulmach/orb/maptile/tilecover"
	"github.com/teris-io/shortid"
	pb "gopkg.in/cheggaaa/pb.v1"
)

func InitTask(ctx context.Context) error {
	start := time.Now()

	tl := newTileLayer(conf)
	layers, err := buildLayers(conf, tl.Options)
	if err != nil {
		return err
	}

	os.MkdirAll(conf.Output.Directory, os.ModePerm)
	store, err := OpenStore(filepath.Join(conf.Output.Directory, conf.Output.File))
	if err != nil {
		return fmt.Errorf("open manifest: %w", err)
	}
	defer store.Close()

	task := NewTask(conf.Tm.Name, layers, tl, store, BreakPointInst)
	if task == nil {
		log.Warnf("no zoom layers configured, nothing to do")
		return nil
	}
	task.Params = conf.Params
	task.bufSize = conf.Task.BufSize
	task.progress = conf.Task.Progress

	if err := task.Run(ctx); err != nil {
		return err
	}

	n, err := store.Count(-1)
	if err != nil {
		log.Errorf("count manifest tiles error ~ %s", err)
		return nil
	}
	log.Infof("%.3fs finished, %d tiles in manifest", time.Since(start).Seconds(), n)
	return nil
}

// buildLayers 按配置的区域与级别范围生成图层, 未配置区域时使用服务覆盖范围
func buildLayers(c *Conf, opts basemap.LayerOptions) ([]Layer, error) {
	bound := opts.Bound()
	var layers []Layer
	if len(c.Lrs) == 0 {
		coll := orb.Collection{bound.ToPolygon()}
		for z := c.Tm.MinZoom; z <= opts.MaxZoom; z++ {
			layers = append(layers, Layer{Zoom: z, Collection: coll})
		}
		return layers, nil
	}
	for _, lrs := range c.Lrs {
		coll, err := loadCollection(lrs.Geojson)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", lrs.Geojson, err)
		}
		coll = clipCollection(coll, bound)
		if len(coll) == 0 {
			log.Warnf("%s lies outside the provider bounds, skipped", lrs.Geojson)
			continue
		}
		for z := lrs.Min; z <= lrs.Max; z++ {
			layers = append(layers, Layer{Zoom: z, Collection: coll})
		}
	}
	return layers, nil
}

// Task 种子任务
type Task struct {
	ID        string
	Name      string
	Layers    []Layer
	TileLayer basemap.TileLayer
	Params    map[string]any
	Total     int64
	store     *Store
	bp        *BreakPoint
	bufSize   int
	progress  bool
}

// NewTask 创建种子任务
func NewTask(name string, layers []Layer, tl basemap.TileLayer, store *Store, bp *BreakPoint) *Task {
	if len(layers) == 0 {
		return nil
	}
	id, _ := shortid.Generate()

	task := Task{
		ID:        id,
		Name:      name,
		Layers:    layers,
		TileLayer: tl,
		store:     store,
		bp:        bp,
		bufSize:   1,
	}

	for i := 0; i < len(layers); i++ {
		layers[i].Count = tilecover.CollectionCount(layers[i].Collection, maptile.Zoom(layers[i].Zoom))
		log.Debugf("zoom: %d, tiles: %d", layers[i].Zoom, layers[i].Count)
		task.Total += layers[i].Count
	}
	return &task
}

func (task *Task) metadata() map[string]string {
	opts := task.TileLayer.Options
	b := opts.Bound()
	minZoom, maxZoom := task.Layers[0].Zoom, task.Layers[0].Zoom
	for _, l := range task.Layers {
		minZoom = min(minZoom, l.Zoom)
		maxZoom = max(maxZoom, l.Zoom)
	}
	return map[string]string{
		"name":        task.Name,
		"job":         task.ID,
		"attribution": opts.Attribution,
		"format":      mbtilesFormat(opts.Format),
		"bounds":      fmt.Sprintf("%g,%g,%g,%g", b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y()),
		"minzoom":     strconv.Itoa(minZoom),
		"maxzoom":     strconv.Itoa(min(maxZoom, opts.MaxZoom)),
		"template":    task.TileLayer.URL,
		"scheme":      "xyz",
	}
}

func mbtilesFormat(format string) string {
	if format == JPEG {
		return JPG
	}
	return format
}

// Run 依次处理各级别
func (task *Task) Run(ctx context.Context) error {
	if err := task.store.SetMetadata(task.metadata()); err != nil {
		return err
	}
	log.Infof("Task %s(%s) starting, %d tiles estimated", task.Name, task.ID, task.Total)
	for _, layer := range task.Layers {
		if err := ctx.Err(); err != nil {
			log.Infof("Task %s got canceled.", task.Name)
			return err
		}
		if layer.Zoom > task.TileLayer.Options.MaxZoom {
			log.Warnf("zoom %d exceeds max zoom %d, skipped", layer.Zoom, task.TileLayer.Options.MaxZoom)
			continue
		}
		// 如果已经在成功列表里
		if task.bp != nil && task.bp.IsDone(layer.Zoom) {
			log.Infof("zoom %d already seeded, skipped", layer.Zoom)
			continue
		}
		n, err := task.seedLayer(ctx, layer)
		if err != nil {
			return err
		}
		if task.bp != nil {
			if err := task.bp.SetDone(layer.Zoom); err != nil {
				log.Errorf("record break point for zoom %d error ~ %s", layer.Zoom, err)
			}
		}
		log.Infof("Task %s zoom %d finished, %d tiles ~", task.ID, layer.Zoom, n)
	}
	return nil
}

// seedLayer 写入指定层级的瓦片地址
func (task *Task) seedLayer(ctx context.Context, layer Layer) (int64, error) {
	log.Debugf("Task layer: %s starting", layer)
	bar := pb.New64(layer.Count).Prefix(fmt.Sprintf("Zoom %d : ", layer.Zoom))
	bar.SetRefreshRate(time.Second)
	if !task.progress {
		bar.Output = io.Discard
		bar.NotPrint = true
	}
	bar.Start()
	defer bar.Finish()

	opts := task.TileLayer.Options
	bound := opts.Bound()
	batch, err := task.store.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin zoom %d: %w", layer.Zoom, err)
	}
	defer batch.Rollback()

	tilelist := make(chan maptile.Tile, task.bufSize)
	go tilecover.CollectionChannel(layer.Collection, maptile.Zoom(layer.Zoom), tilelist)
	// 排空生产者
	drain := func() {
		go func() {
			for range tilelist {
			}
		}()
	}

	var n int64
	for tile := range tilelist {
		select {
		case <-ctx.Done():
			drain()
			log.Infof("Task %s got canceled.", task.Name)
			return 0, ctx.Err()
		default:
		}
		bar.Increment()
		if !tile.Bound().Intersects(bound) {
			continue
		}
		url := basemap.AppendQuery(basemap.ExpandURL(task.TileLayer.URL, opts, tile), task.Params)
		if err := batch.Put(tile, url); err != nil {
			drain()
			return 0, fmt.Errorf("save %v tile error: %w", tile, err)
		}
		n++
		log.Tracef("tile(z:%d, x:%d, y:%d) %s", tile.Z, tile.X, tile.Y, url)
	}
	if err := batch.Commit(); err != nil {
		return 0, fmt.Errorf("commit zoom %d: %w", layer.Zoom, err)
	}
	return n, nil
}
