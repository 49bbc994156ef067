package main

import (
	"flag"
	"fmt"
	"log"

	"lintang/mapview/pkg/kv"
	"lintang/mapview/pkg/poi"

	"github.com/cockroachdb/pebble"
)

var (
	mapFile = flag.String("f", "solo_jogja.osm.pbf", "openstreetmap pbf extract to pull POI markers from")
	dbPath  = flag.String("db", "mapviewDB", "pebble db directory to write the markers to")
)

func main() {
	flag.Parse()

	markers, err := poi.ExtractMarkers(*mapFile)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nfound %d POI markers in %s\n", len(markers), *mapFile)

	db, err := pebble.Open(*dbPath, &pebble.Options{})
	if err != nil {
		log.Fatal(err)
	}

	kvDB := kv.NewKVDB(db)
	defer kvDB.Close()

	kvDB.SaveMarkers(markers, true)

	fmt.Printf("\nmarker db ready at %s\n", *dbPath)
}
