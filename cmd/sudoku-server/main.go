package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"
)

var (
	log = logrus.New()

	configPath string
	config     = &Config{}

	db sessionStore
)

func init() {
	const (
		defaultConfigPath = "config.json"
		usage             = "config file path"
	)
	flag.StringVar(&configPath, "config", defaultConfigPath, usage)
	flag.StringVar(&configPath, "c", defaultConfigPath, usage+" (shorthand)")
}

func setupLogging() {
	logLevel := logrus.InfoLevel
	if config.Development() {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if config.LogFile.Filename != "" {
		rotateFileHook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   config.LogFile.Filename,
			MaxSize:    config.LogFile.MaxSizeMb,
			MaxBackups: config.LogFile.MaxBackups,
			MaxAge:     config.LogFile.MaxAgeDays,
			Level:      logLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			log.Fatal("unable to create rotate file hook: ", err)
		}
		log.AddHook(rotateFileHook)
	}
}

func setupSessionStore(ctx context.Context) {
	if config.Postgres.Enabled() {
		pg, err := newPostgres(ctx, config.Postgres.DbUrl())
		if err != nil {
			log.Fatal("unable to create connection pool: ", err)
		}
		if err := pg.Ping(ctx); err != nil {
			log.Fatal("unable to ping database: ", err)
		}
		db = pg
		return
	}
	kv, err := openKvSessions(config.StorePath)
	if err != nil {
		log.Fatal("unable to open session store: ", err)
	}
	db = kv
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	if err := ReadConfig(configPath, config); err != nil {
		log.Fatalf("unable to read config %s: %s", configPath, err)
	}

	setupLogging()

	log.Info("starting up, mode = ", config.Mode)
	log.WithFields(config.Fields()).Debug("config")

	setupSessionStore(mainCtx)
	defer db.Close()

	server := &http.Server{
		Addr:    config.Addr,
		Handler: buildHandler(),
		BaseContext: func(l net.Listener) context.Context {
			return mainCtx
		},
	}

	log.Infof("ready to serve @ %s", config.Addr)

	g, gCtx := errgroup.WithContext(mainCtx)
	g.Go(func() error {
		return server.ListenAndServe()
	})
	g.Go(func() error {
		<-gCtx.Done()
		return server.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		log.Printf("exit reason: %s\n", err)
	}
}
