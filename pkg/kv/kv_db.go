package kv

import (
	"log"
	"math"

	"github.com/cockroachdb/pebble"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"github.com/uber/h3-go/v4"

	"lintang/mapview/pkg/concurrent"
	"lintang/mapview/pkg/crs"
	"lintang/mapview/pkg/feature"
	"lintang/mapview/pkg/geo"
)

// markers are bucketed by the res-9 h3 cell of their location, one pebble
// key per cell
const cellResolution = 9

type KVDB struct {
	db *pebble.DB
}

func NewKVDB(db *pebble.DB) *KVDB {
	return &KVDB{db}
}

// SaveMarkers buckets the markers by h3 cell and bulk-writes one
// compressed value per cell. Cells already in the store are overwritten.
func (k *KVDB) SaveMarkers(markers []feature.Marker, showProgress bool) {
	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.NewOptions(len(markers),
			progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(15),
			progressbar.OptionSetDescription("[cyan][2/3][reset] building h3 index for markers..."),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	buckets := make(map[string][]feature.Marker)
	for i := range markers {
		m := markers[i]
		cell := h3.LatLngToCell(h3.NewLatLng(m.Loc.Lat, m.Loc.Lng), cellResolution)
		buckets[cell.String()] = append(buckets[cell.String()], m)
		if bar != nil {
			bar.Add(1)
		}
	}

	if showProgress {
		bar = progressbar.NewOptions(len(buckets),
			progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(15),
			progressbar.OptionSetDescription("[cyan][3/3][reset] saving h3 indexed markers to pebble db..."),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	workers := concurrent.NewWorkerPool[concurrent.SaveMarkersJobItem, interface{}](4, len(buckets))

	for keyStr, cellMarkers := range buckets {
		workers.AddJob(concurrent.SaveMarkersJobItem{KeyStr: keyStr, Markers: cellMarkers})
		if bar != nil {
			bar.Add(1)
		}
	}
	workers.Close()

	workers.Start(k.saveCell)
	workers.Wait()
}

func (k *KVDB) saveCell(item concurrent.SaveMarkersJobItem) interface{} {
	val, err := CompressMarkers(item.Markers)
	if err != nil {
		log.Fatal(err)
	}
	if err := k.db.Set([]byte(item.KeyStr), val, pebble.Sync); err != nil {
		log.Fatal(err)
	}
	return nil
}

// MarkersInBounds reads every cell of the disk covering the query
// rectangle and filters the markers down to the ones actually inside it.
// An empty result is not an error.
func (k *KVDB) MarkersInBounds(b *geo.LatLngBounds) ([]feature.Marker, error) {
	if !b.IsValid() {
		return []feature.Marker{}, nil
	}

	center := b.Center()
	radiusKm := crs.HaversineDistance(b.SouthWest(), b.NorthEast()) / 2 / 1000

	out := []feature.Marker{}
	for _, cell := range kRingIndexesArea(center.Lat, center.Lng, radiusKm) {
		cellMarkers, err := k.markersInCell(cell)
		if err != nil {
			return nil, err
		}
		for _, m := range cellMarkers {
			if b.Contains(&m.Loc) {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func (k *KVDB) markersInCell(cell h3.Cell) ([]feature.Marker, error) {
	val, closer, err := k.db.Get([]byte(cell.String()))
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	return LoadMarkers(val)
}

// AllMarkers scans the whole store, cell by cell. Used to warm the
// in-memory viewport index at boot.
func (k *KVDB) AllMarkers() ([]feature.Marker, error) {
	iter, err := k.db.NewIter(nil)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	out := []feature.Marker{}
	for iter.First(); iter.Valid(); iter.Next() {
		markers, err := LoadMarkers(iter.Value())
		if err != nil {
			return nil, err
		}
		out = append(out, markers...)
	}
	return out, nil
}

// kRingIndexesArea returns the h3 disk around lat,lon big enough to cover
// a circle of searchRadiusKm.
// https://observablehq.com/@nrabinowitz/h3-radius-lookup?collection=@nrabinowitz/h3
func kRingIndexesArea(lat, lon, searchRadiusKm float64) []h3.Cell {
	home := h3.NewLatLng(lat, lon)
	origin := h3.LatLngToCell(home, cellResolution)
	originArea := h3.CellAreaKm2(origin)
	searchArea := math.Pi * searchRadiusKm * searchRadiusKm

	radius := 0
	diskArea := originArea

	for diskArea < searchArea {
		radius++
		cellCount := float64(3*radius*(radius+1) + 1)
		diskArea = cellCount * originArea
	}

	return h3.GridDisk(origin, radius)
}

func (k *KVDB) Close() {
	k.db.Close()
}
