package main

import (
	"net"
	"net/http"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/octofit/octofit-web/pkg/tracker/emulator"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
)

var (
	data     = flag.String("data", "", "Path to a JSON file with the records to serve, defaults to the built-in fixtures")
	port     = flag.String("port", "8000", "Port to run the HTTP server on")
	paginate = flag.Bool("paginate", false, "Wrap lists in a page envelope")
	debug    = flag.Bool("debug", false, "Log every incoming request")
)

func main() {
	flag.Parse()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	d := emulator.Seed(time.Now())

	if *data != "" {
		raw, err := os.ReadFile(*data)
		if err != nil {
			log.Fatal().Err(err).Msg("opening file")
		}

		d = &emulator.Data{}

		err = json.Unmarshal(raw, d)
		if err != nil {
			log.Fatal().Err(err).Msg("parsing JSON")
		}
	}

	em := emulator.New(d, log)
	em.Paginate(*paginate)
	em.DebugRequests(*debug)

	addr := net.JoinHostPort("", *port)

	log.Info().Msgf("Server starting on %s...", addr)

	err := http.ListenAndServe(addr, em.Handler())
	if err != nil {
		log.Fatal().Err(err).Msg("starting server")
	}
}
