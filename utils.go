package main

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func loadCollection(path string) (orb.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read file: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal feature: %w", err)
	}

	var collection orb.Collection
	for _, f := range fc.Features {
		collection = append(collection, f.Geometry)
	}

	return collection, nil
}

// clipCollection 丢弃与范围不相交的几何
func clipCollection(c orb.Collection, bound orb.Bound) orb.Collection {
	var res orb.Collection
	for _, g := range c {
		if g == nil {
			continue
		}
		if g.Bound().Intersects(bound) {
			res = append(res, g)
		}
	}
	return res
}
