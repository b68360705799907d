package httpapi

import (
	"time"

	"github.com/dmitrijs2005/portfolio/internal/logging"
	"github.com/dmitrijs2005/portfolio/internal/server/services"
)

// Options configures the surface of the API that is not a service.
type Options struct {
	Environment string
	CORSOrigins []string

	// AuthLimit and ContactLimit throttle the public write endpoints; nil
	// disables throttling.
	AuthLimit    *RateLimit
	ContactLimit *RateLimit
}

type API struct {
	users   *services.UserService
	content *services.ContentService
	uploads *services.UploadService
	log     logging.Logger
	metrics *Metrics
	opts    Options
	now     func() time.Time
}

func NewAPI(us *services.UserService, cs *services.ContentService, ups *services.UploadService,
	log logging.Logger, m *Metrics, opts Options) *API {

	if m == nil {
		m = NewMetrics()
	}
	return &API{
		users:   us,
		content: cs,
		uploads: ups,
		log:     log.With("module", "http"),
		metrics: m,
		opts:    opts,
		now:     time.Now,
	}
}
