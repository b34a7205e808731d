package main

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Layer 级别&瓦片数
type Layer struct {
	Zoom       int
	Count      int64
	Collection orb.Collection
}

func (l Layer) String() string {
	return fmt.Sprintf("zoom %d (%d tiles)", l.Zoom, l.Count)
}

// Constants representing TileFormat types
const (
	JPG  = "jpg"
	JPEG = "jpeg"
)
