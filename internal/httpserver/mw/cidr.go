package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/bio/internal/logger"
	"github.com/MrSnakeDoc/bio/internal/utils"
)

// AllowOnlyCIDRS lets through only clients whose ip matches one of the
// allowed ips or CIDRs. An empty list disables the filter.
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !m.Allow(ip) {
				log.Debug("client ip rejected",
					logger.String("ip", ip),
					logger.String("path", r.URL.Path))
				reject(w, http.StatusForbidden, "Access denied.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
