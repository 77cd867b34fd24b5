// aurad runs the aura inference daemon: it fuses posted modality signals
// into emotional states, evaluates alert patterns and keeps the time
// capsule, serving everything over HTTP and websockets.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/auralab/go-aura/internal/config"
	"github.com/auralab/go-aura/internal/log"
	"github.com/auralab/go-aura/pkg/alerts"
	"github.com/auralab/go-aura/pkg/capsule"
	"github.com/auralab/go-aura/pkg/classify"
	"github.com/auralab/go-aura/pkg/fusion"
	"github.com/auralab/go-aura/pkg/web"
)

func main() {
	port := flag.String("port", config.Port(), "HTTP port")
	dataPath := flag.String("data", config.DataPath(), "Capsule snapshot file (empty disables persistence)")
	classifyPath := flag.String("classify-config", config.ClassifyConfigPath(), "Classifier table YAML (empty uses built-in defaults)")
	sensitive := flag.Bool("sensitive", false, "Use the sensitive alert thresholds")
	flag.Parse()

	log.Init(config.LogLevel())

	classifyCfg := classify.DefaultConfig()
	if *classifyPath != "" {
		var err error
		classifyCfg, err = classify.LoadFile(*classifyPath)
		if err != nil {
			log.Error("load classifier config", "path", *classifyPath, "error", err)
			os.Exit(1)
		}
		log.Info("loaded classifier config", "path", *classifyPath)
	}

	classifier, err := classify.New(classifyCfg)
	if err != nil {
		log.Error("build classifier", "error", err)
		os.Exit(1)
	}

	alertCfg := alerts.DefaultConfig()
	if *sensitive {
		alertCfg = alerts.SensitiveConfig()
	}
	alertEngine, err := alerts.New(alertCfg)
	if err != nil {
		log.Error("build alert engine", "error", err)
		os.Exit(1)
	}

	caps, err := capsule.New(capsule.DefaultConfig())
	if err != nil {
		log.Error("build capsule", "error", err)
		os.Exit(1)
	}

	var store capsule.Store
	if *dataPath != "" {
		store = capsule.NewJSONStore(*dataPath)
		if err := caps.LoadFrom(store); err != nil {
			log.Error("load capsule snapshot", "path", *dataPath, "error", err)
			os.Exit(1)
		}
		log.Info("capsule loaded", "path", *dataPath,
			"entries", caps.EntryCount(), "states", caps.StateCount())
	}

	webCfg := web.DefaultConfig()
	webCfg.Port = *port
	server := web.New(webCfg, fusion.New(classifier), alertEngine, caps, store)

	// Graceful shutdown flushes the capsule
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		if err := server.Shutdown(); err != nil {
			log.Error("shutdown", "error", err)
			os.Exit(1)
		}
	}()

	if err := server.Start(); err != nil {
		log.Error("server", "error", err)
		os.Exit(1)
	}
}
