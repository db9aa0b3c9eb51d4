// Package requestlogger logs one line per handled HTTP request.
package requestlogger

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/mileusna/useragent"
	"github.com/rs/zerolog"
)

// Middleware logs every request whose path is not filtered out. A filter
// ending in "/" matches every path below it.
func Middleware(logger zerolog.Logger, pathFilters ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if filtered(r.URL.Path, pathFilters) {
				next.ServeHTTP(w, r)
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			t1 := time.Now()
			defer func() {
				t2 := time.Now()

				bytesIn, err := strconv.Atoi(r.Header.Get("Content-Length"))
				if err != nil {
					bytesIn = 0
				}

				requestID := middleware.GetReqID(r.Context())
				if requestID == "" {
					requestID = "n/a"
				}

				logger.Info().Timestamp().
					Str("request_id", requestID).
					Str("request", fmt.Sprintf("%s %s (response_code: %d)", r.Method, r.URL.Path, ww.Status())).
					Str("browser", browser(r.UserAgent())).
					Str("remote_ip", r.RemoteAddr).
					Float64("latency_ms", float64(t2.Sub(t1).Nanoseconds())/1000000.0).
					Int("bytes_in", bytesIn).
					Int("bytes_out", ww.BytesWritten()).
					Msg("incoming_request")
			}()

			next.ServeHTTP(ww, r)
		}

		return http.HandlerFunc(fn)
	}
}

func filtered(path string, filters []string) bool {
	for _, filter := range filters {
		if filter == path {
			return true
		}

		if strings.HasSuffix(filter, "/") && strings.HasPrefix(path, filter) {
			return true
		}
	}

	return false
}

func browser(userAgent string) string {
	if userAgent == "" {
		return "unknown"
	}

	ua := useragent.Parse(userAgent)

	name := ua.Name
	if name == "" {
		name = "unknown"
	}

	if ua.OS == "" {
		return name
	}

	return fmt.Sprintf("%s (%s)", name, ua.OS)
}
