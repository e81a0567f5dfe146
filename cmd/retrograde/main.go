package main

import (
	"flag"
	"log"
	"os"

	"github.com/ChristopherRabotin/retrograde"
	"github.com/ChristopherRabotin/retrograde/render"
	kitlog "github.com/go-kit/kit/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// This code reads the scenario (if any) and displays the simulation until the window is closed.

const (
	defaultScenario = "~~unset~~"
	dateFormat      = "2006-01-02"
)

var (
	scenario string
	nbody    bool
	verbose  bool
)

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", defaultScenario, "simulation scenario TOML file")
	flag.BoolVar(&nbody, "nbody", false, "use the n-body scenario when no scenario is provided")
	flag.BoolVar(&verbose, "verbose", false, "really verbose (esp. for configuration)")
}

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		scenario = os.Getenv("RETROGRADE_SCENARIO")
	}

	conf := retrograde.DefaultConfig()
	if nbody {
		conf = retrograde.NBodyConfig()
	}
	view := render.DefaultView()
	if scenario != "" && scenario != defaultScenario {
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
	klog = kitlog.With(klog, "sim", view.Title)
	if verbose {
		klog.Log("level", "debug", "subsys", "conf", "interaction", conf.Interaction, "step", conf.Step, "bodies", len(conf.Bodies), "observer", view.Observer, "target", view.Target)
	}

	sim, err := retrograde.NewSimulation(conf, klog)
	if err != nil {
		log.Fatalf("could not create simulation: %s", err)
	}
	for _, name := range []string{view.Observer, view.Target} {
		if _, err := sim.Body(name); err != nil {
			log.Fatalf("cannot project the sight-line: %s", err)
		}
	}
	game := &Game{
		sim:     sim,
		view:    view,
		tracker: retrograde.NewRetrogradeTracker(view.Observer, view.Target),
		logger:  klog,
	}
	ebiten.SetWindowSize(view.Width, view.Height)
	ebiten.SetWindowTitle(view.Title)
	ebiten.SetTPS(view.FPS)
	if err := ebiten.RunGame(game); err != nil {
		klog.Log("level", "critical", "status", "halted", "tick", sim.Tick(), "err", err)
		os.Exit(1)
	}
}
