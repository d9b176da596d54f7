package deps

import (
	"time"

	"github.com/MrSnakeDoc/bio/internal/auth"
	"github.com/MrSnakeDoc/bio/internal/logger"
	"github.com/MrSnakeDoc/bio/internal/metrics"
	redisstore "github.com/MrSnakeDoc/bio/internal/store/redis"
	"github.com/MrSnakeDoc/bio/internal/version"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Build        version.Info
	TimeNow      func() time.Time // for testing, defaults to time.Now
	NewID        func() string    // entity and account ids, defaults to uuid.NewString
	AllowedHosts []string         // Host headers allowed to access the server
	AllowedCIDRS []string         // IPs allowed to access readyz and metrics
	TrustProxy   bool             // true if running behind a trusted reverse proxy
	CORSOrigins  []string         // origins allowed by CORS, "*" for any

	AuthBurst        int // register/login requests allowed in a burst per client ip
	AuthRefillPerMin int // register/login tokens refilled per minute per client ip

	Store   *redisstore.Store
	Tokens  *auth.Tokens
	Metrics *metrics.Metrics
}
