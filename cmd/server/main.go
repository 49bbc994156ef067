package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"lintang/mapview/pkg/crs"
	"lintang/mapview/pkg/kv"
	"lintang/mapview/pkg/server/rest"
	"lintang/mapview/pkg/server/rest/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "net/http/pprof"

	"github.com/cockroachdb/pebble"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
	listenAddr = flag.String("listenaddr", ":5000", "server listen address")
	dbPath     = flag.String("db", "mapviewDB", "pebble db directory created by the import command")
)

func main() {
	flag.Parse()

	db, err := pebble.Open(*dbPath, &pebble.Options{})
	if err != nil {
		log.Fatal(err)
	}

	kvDB := kv.NewKVDB(db)
	defer kvDB.Close()

	svc := service.NewMapService(crs.EPSG3857, kvDB)

	markers, err := kvDB.AllMarkers()
	if err != nil {
		log.Fatal(err)
	}
	svc.IndexMarkers(markers)
	fmt.Printf("indexed %d markers for viewport queries\n", len(markers))

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Mount("/debug", middleware.Profiler())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	rest.MapRouter(r, svc, m)

	fmt.Printf("server started at %v\n", *listenAddr)
	log.Fatal(http.ListenAndServe(*listenAddr, r))
}
