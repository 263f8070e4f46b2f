package httpmiddleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// AllowOrigins lists origins allowed to make cross-origin requests.
	// Empty, or a single "*", allows any origin.
	AllowOrigins []string
	// AllowMethods defaults to "GET, POST, PUT, DELETE, OPTIONS" when empty.
	AllowMethods []string
	// AllowHeaders lists request headers clients may send. When empty the
	// preflight echoes back Access-Control-Request-Headers.
	AllowHeaders []string
	// AllowCredentials permits cookies on cross-origin requests. Incompatible
	// with a wildcard origin, so the middleware echoes the specific origin
	// instead when both are set.
	AllowCredentials bool
	// MaxAge is the preflight cache lifetime in seconds; zero omits the header.
	MaxAge int
}

// CORS returns a middleware that answers preflight requests and attaches
// Cross-Origin Resource Sharing headers to matching responses.
func CORS(cfg CORSConfig) Middleware {
	wildcard := len(cfg.AllowOrigins) == 0
	allowed := make(map[string]struct{}, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			wildcard = true
			continue
		}
		allowed[strings.ToLower(o)] = struct{}{}
	}
	// The fetch spec forbids "*" together with credentials.
	echoOrigin := cfg.AllowCredentials

	methods := strings.Join(cfg.AllowMethods, ", ")
	if methods == "" {
		methods = "GET, POST, PUT, DELETE, OPTIONS"
	}
	headers := strings.Join(cfg.AllowHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")

			allowOrigin := ""
			if _, ok := allowed[strings.ToLower(origin)]; ok || wildcard {
				allowOrigin = "*"
				if !wildcard || echoOrigin {
					allowOrigin = origin
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Add("Vary", "Access-Control-Request-Method")
				w.Header().Add("Vary", "Access-Control-Request-Headers")
				if allowOrigin != "" {
					w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
					w.Header().Set("Access-Control-Allow-Methods", methods)
					if headers != "" {
						w.Header().Set("Access-Control-Allow-Headers", headers)
					} else if rh := r.Header.Get("Access-Control-Request-Headers"); rh != "" {
						w.Header().Set("Access-Control-Allow-Headers", rh)
					}
					if cfg.AllowCredentials {
						w.Header().Set("Access-Control-Allow-Credentials", "true")
					}
					if cfg.MaxAge > 0 {
						w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
					}
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if allowOrigin != "" {
				w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
				if cfg.AllowCredentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
