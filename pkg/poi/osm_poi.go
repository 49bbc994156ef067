package poi

import (
	"context"
	"os"

	"github.com/k0kubun/go-ansi"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/schollz/progressbar/v3"

	"lintang/mapview/pkg/feature"
	"lintang/mapview/pkg/geo"
)

// tag keys that make a named node worth showing as a marker
var poiTagKeys = []string{
	"amenity",
	"shop",
	"tourism",
	"leisure",
	"historic",
	"office",
	"public_transport",
}

// ExtractMarkers reads an openstreetmap pbf extract and returns every
// named POI node as a marker. Unnamed nodes and plain geometry nodes are
// skipped.
func ExtractMarkers(mapFile string) ([]feature.Marker, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, 3)
	defer scanner.Close()

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][1/3][reset] scanning openstreetmap pbf for POI nodes..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	markers := []feature.Marker{}
	for scanner.Scan() {
		bar.Add(1)

		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		name := node.Tags.Find("name")
		if name == "" {
			continue
		}

		tags := []string{}
		for _, key := range poiTagKeys {
			if val := node.Tags.Find(key); val != "" {
				tags = append(tags, key+"="+val)
			}
		}
		if len(tags) == 0 {
			continue
		}

		markers = append(markers, feature.Marker{
			ID:   int64(node.ID),
			Name: name,
			Tags: tags,
			Loc:  geo.LatLng{Lat: node.Lat, Lng: node.Lon},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return markers, nil
}
