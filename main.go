package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/peermap/peermap/geocache"
	"github.com/peermap/peermap/peerlog"
	"github.com/peermap/peermap/termmap"
)

var (
	app = kingpin.New(
		"peermap",
		"Plots the peers from a discovery log on a map of the world.")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("PEERMAP_DEBUG").
		Bool()
	enableAPI = app.Flag("api", "Resolve unknown addresses through the remote provider.").
			Short('a').
			Envar("PEERMAP_API").
			Bool()
	cachePath = app.Flag("cache", "Path to the location cache file.").
			Short('c').
			Default("peermap.json").
			Envar("PEERMAP_CACHE").
			String()
	configPath = app.Flag("config", "Path to the optional config file.").
			Envar("PEERMAP_CONFIG").
			String()
	noPlot = app.Flag("no-plot", "Skip the coordinate plot, print the table only.").
		Bool()
	logFile = app.Arg("log-path", "Path to the peer discovery log.").
		Required().
		File()
)

func init() {
	app.Version("0.1.0")
	godotenv.Load() // nolint: errcheck
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	mainLog := zerolog.New(os.Stderr).With().Timestamp().Logger()

	conf := &config{}

	if *configPath != "" {
		parsed, err := parseConfig(*configPath)
		if err != nil {
			mainLog.Fatal().Err(err).Msg("cannot read config")
		}

		conf = parsed
	}

	httpClient := geocache.NewHTTPClient(
		&http.Client{Timeout: conf.GetHTTPTimeout()},
		conf.GetUserAgent())

	cache, err := geocache.New(geocache.Options{
		Path:           *cachePath,
		EnableAPI:      *enableAPI,
		Endpoint:       conf.GetProviderURL(),
		HTTPClient:     httpClient,
		Logger:         newLogger(),
		WorkerPoolSize: conf.GetWorkerPoolSize(),
	})
	if err != nil {
		mainLog.Fatal().Err(err).Msg("cannot load the location cache")
	}

	if cache.HasErr() {
		mainLog.Fatal().Err(cache.Err()).Msg("cannot enable remote lookups")
	}

	defer cache.Close()

	ips, err := peerlog.NewReader(*logFile).ReadAll()
	if err != nil {
		mainLog.Fatal().Err(err).Msg("cannot read the peer log")
	}

	known := cache.MergeAndLookup(context.Background(), ips)

	mainLog.Debug().
		Int("peers", len(ips)).
		Int("known", len(known)).
		Msg("merge has finished")

	termmap.Table(os.Stdout, cache.Entries())

	if !*noPlot {
		locations := make([]geocache.Location, 0, cache.Size())

		for _, loc := range cache.Entries() {
			locations = append(locations, loc)
		}

		termmap.Plot(os.Stdout, locations,
			termmap.DefaultPlotWidth, termmap.DefaultPlotHeight)
	}

	if err := cache.Save(); err != nil {
		mainLog.Warn().Err(err).Msg("cache was not flushed")
	}
}
