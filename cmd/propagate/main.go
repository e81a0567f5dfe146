package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"

	"github.com/ChristopherRabotin/retrograde"
	"github.com/ChristopherRabotin/retrograde/render"
	kitlog "github.com/go-kit/kit/log"
	"github.com/guptarohit/asciigraph"
	"github.com/soniakeys/meeus/v3/julian"
)

// This code propagates a scenario without a window and plots the apparent longitude of the target.

const (
	defaultScenario = "~~unset~~"
	dateFormat      = "2006-01-02"
)

var (
	scenario string
	ticks    uint64
	every    uint64
	plot     bool
	nbody    bool
	verbose  bool
)

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", defaultScenario, "simulation scenario TOML file")
	flag.Uint64Var(&ticks, "ticks", 730, "number of time steps to propagate")
	flag.Uint64Var(&every, "every", 30, "log the status every so many steps (0 to disable)")
	flag.BoolVar(&plot, "plot", true, "plot the apparent longitude of the target")
	flag.BoolVar(&nbody, "nbody", false, "use the n-body scenario when no scenario is provided")
	flag.BoolVar(&verbose, "verbose", false, "really verbose (esp. for configuration)")
}

func main() {
	flag.Parse()
	conf := retrograde.DefaultConfig()
	if nbody {
		conf = retrograde.NBodyConfig(retrograde.Mercury, retrograde.Venus)
	}
	view := render.DefaultView()
	if scenario != defaultScenario {
		v, err := retrograde.ReadScenario(scenario)
		if err != nil {
			log.Fatal(err)
		}
		if conf, err = retrograde.LoadConfig(v); err != nil {
			log.Fatalf("%s: %s", scenario, err)
		}
		if view, err = render.LoadView(v); err != nil {
			log.Fatalf("%s: %s", scenario, err)
		}
	}

	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "sim", "propagate")
	if verbose {
		klog.Log("level", "debug", "subsys", "conf", "interaction", conf.Interaction, "step", conf.Step, "bodies", len(conf.Bodies), "start(JDE)", julian.TimeToJD(conf.Epoch))
	}
	sim, err := retrograde.NewSimulation(conf, klog)
	if err != nil {
		log.Fatalf("could not create simulation: %s", err)
	}
	tracker := retrograde.NewRetrogradeTracker(view.Observer, view.Target)
	proj := view.Projection()
	vp := view.Viewport(sim.AU)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	longitudes := make([]float64, 0, ticks)
	missed := 0
	for sim.Tick() < ticks {
		if err := sim.Propagate(ctx, 1); err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			klog.Log("level", "critical", "status", "halted", "tick", sim.Tick(), "err", err)
			os.Exit(1)
		}
		if _, err := tracker.Update(sim); err != nil {
			log.Fatal(err)
		}
		longitudes = append(longitudes, tracker.Longitude()/math.Pi*180)
		if _, err := proj.Point(sim, vp); err != nil {
			if !errors.Is(err, retrograde.ErrNoIntersection) {
				klog.Log("level", "critical", "status", "halted", "tick", sim.Tick(), "err", err)
				os.Exit(1)
			}
			missed++
		}
		if every > 0 && sim.Tick()%every == 0 {
			sim.LogStatus()
			klog.Log("level", "info", "subsys", "projection", "tick", sim.Tick(), "longitude(deg)", retrograde.Rad2deg(math.Mod(tracker.Longitude(), 2*math.Pi)), "retrograde", tracker.Retrograde())
		}
	}

	dt := sim.CurrentDT()
	klog.Log("level", "notice", "status", "finished", "ticks", sim.Tick(), "date", dt.Format(dateFormat), "JDE", julian.TimeToJD(dt), "retrograde-loops", tracker.Episodes(), "missed-projections", missed)
	if plot && len(longitudes) > 1 {
		fmt.Println(asciigraph.Plot(longitudes, asciigraph.Height(15), asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("apparent longitude of %s from %s (deg, unwrapped)", view.Target, view.Observer))))
	}
}
