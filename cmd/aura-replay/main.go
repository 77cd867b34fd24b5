// aura-replay replays a capsule snapshot through a fresh alert engine,
// printing every alert the recorded history would have fired plus the
// therapist summary. Useful for tuning thresholds against real history.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/auralab/go-aura/internal/config"
	"github.com/auralab/go-aura/internal/log"
	"github.com/auralab/go-aura/pkg/alerts"
	"github.com/auralab/go-aura/pkg/capsule"
)

func main() {
	dataPath := flag.String("data", config.DataPath(), "Capsule snapshot file to replay")
	sensitive := flag.Bool("sensitive", false, "Use the sensitive alert thresholds")
	audience := flag.String("audience", string(capsule.AudienceClinician), "Summary audience: clinician, caregiver or self")
	flag.Parse()

	log.Init(config.LogLevel())

	if *dataPath == "" {
		fmt.Fprintln(os.Stderr, "usage: aura-replay -data snapshot.json")
		os.Exit(2)
	}

	data, err := os.ReadFile(*dataPath)
	if err != nil {
		log.Error("read snapshot", "path", *dataPath, "error", err)
		os.Exit(1)
	}
	var snap capsule.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Error("decode snapshot", "path", *dataPath, "error", err)
		os.Exit(1)
	}

	fired := replay(snap, *sensitive)
	fmt.Printf("Replayed %d states, %d entries: %d alerts\n\n",
		len(snap.States), len(snap.Entries), len(fired))
	for _, a := range fired {
		fmt.Printf("%s  %-20s %-12s %-8s %s\n",
			time.UnixMilli(a.TriggeredAt).UTC().Format("2006-01-02 15:04"),
			a.Type, a.Emotion, a.Severity, a.Suggestion)
	}

	caps, err := capsule.New(capsule.DefaultConfig())
	if err != nil {
		log.Error("build capsule", "error", err)
		os.Exit(1)
	}
	caps.Import(snap)

	opts := capsule.DefaultSummaryOptions()
	opts.Audience = capsule.Audience(*audience)
	fmt.Printf("\n%s\n", caps.TherapistSummary(nil, opts))
}

// replay feeds the recorded states through a fresh engine, with the clock
// pinned to each state's own timestamp so cooldowns and windows behave as
// they did live.
func replay(snap capsule.Snapshot, sensitive bool) []alerts.Alert {
	now := int64(0)

	cfg := alerts.DefaultConfig()
	if sensitive {
		cfg = alerts.SensitiveConfig()
	}
	cfg.Clock = func() time.Time { return time.UnixMilli(now) }

	engine, err := alerts.New(cfg)
	if err != nil {
		log.Error("build alert engine", "error", err)
		os.Exit(1)
	}

	var fired []alerts.Alert
	for _, s := range snap.States {
		now = s.Timestamp
		if !engine.AddState(s) {
			continue
		}
		fired = append(fired, engine.Check(nil)...)
	}
	return fired
}
