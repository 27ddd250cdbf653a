// Command polygon-import stores the polygons of a shapefile layer as
// regions, so listings can be queried by e.g. neighborhood or zoning
// boundaries without drawing them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/samirrijal/listingmap/internal/adapters/filestore"
	"github.com/samirrijal/listingmap/internal/adapters/postgres"
	"github.com/samirrijal/listingmap/internal/adapters/shapefile"
	"github.com/samirrijal/listingmap/internal/core/ports"
	"github.com/samirrijal/listingmap/internal/core/usecases"
	"github.com/samirrijal/listingmap/internal/pkg/config"
	"github.com/samirrijal/listingmap/internal/pkg/logging"
)

func main() {
	file := flag.String("file", "", "path to the .shp file")
	nameField := flag.String("name-field", "NAME", "attribute used as the region name")
	flag.Parse()

	if *file == "" {
		log.Fatal("usage: polygon-import -file layer.shp [-name-field NAME]")
	}

	cfg, err := config.Load("listingmap-import")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx := context.Background()

	var store ports.PolygonRepository
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		store = postgres.NewPolygonRepo(db)
	case config.BackendFile:
		store = filestore.NewPolygonRepo(cfg.Storage.PolygonFile)
	default:
		log.Fatalf("storage backend %q does not persist regions", cfg.Storage.Backend)
	}

	regions, err := shapefile.ReadRegions(*file, *nameField)
	if err != nil {
		log.Fatalf("read layer: %v", err)
	}

	svc := usecases.NewPolygonService(store, nil, nil)

	imported := 0
	for _, r := range regions {
		p, err := svc.Import(ctx, r.Rings)
		if err != nil {
			slog.Warn("region skipped", "name", r.Name, "index", r.Index, "error", err)
			continue
		}
		imported++
		fmt.Printf("%s\t%s\n", p.ID, r.Name)
	}

	slog.Info("import finished", "file", *file, "regions", len(regions), "imported", imported)
}
