package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "lost-found-search/docs"
	"lost-found-search/internal/adapters/geolocation/devicefix"
	mem "lost-found-search/internal/adapters/storage/memory"
	pg "lost-found-search/internal/adapters/storage/postgres"
	"lost-found-search/internal/domain/animals"
	"lost-found-search/internal/domain/search"
	"lost-found-search/internal/middleware"
	"lost-found-search/internal/platform/logger"
	"lost-found-search/internal/ports/geocoding"
)

type Options struct {
	Logger logger.Logger

	// Opcional: si viene, las sesiones van a Postgres. Si no, in-memory.
	DB *sql.DB

	Catalog  animals.Catalog    // puede ser nil: listas vacías y sin matches
	Geocoder geocoding.Geocoder // puede ser nil: sin dirección ni autocompletado
	// Si es nil se usa un devicefix.Hub propio.
	Positions search.PositionSources

	Search             search.Options
	CORSAllowedOrigins []string
}

// NewRouter arma el handler HTTP y el service de búsqueda.
// El caller es dueño del service (Shutdown al apagar).
func NewRouter(opts Options) (http.Handler, *search.Service) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.TraceHeader},
			ExposedHeaders:   []string{middleware.TraceHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Use(middleware.ForwardBearer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var repo search.SessionRepository
	if opts.DB != nil {
		repo = pg.NewSessionsRepo(opts.DB)
	} else {
		repo = mem.NewSessionRepo()
	}

	positions := opts.Positions
	if positions == nil {
		positions = devicefix.NewHub()
	}

	svc := search.NewService(repo, search.ServiceDeps{
		Catalog:   opts.Catalog,
		Geocoder:  opts.Geocoder,
		Positions: positions,
		Logger:    log,
	}, opts.Search)

	search.RegisterRoutes(r, svc)

	return r, svc
}
