package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/msgfall/common"
	"github.com/milk9111/msgfall/config"
	"golang.design/x/clipboard"
)

func main() {
	configPath := flag.String("config", "msgfall.yaml", "path to the YAML config file (optional)")
	apiURL := flag.String("api", "", "message store base URL, overrides api_url")
	debug := flag.Bool("debug", false, "draw physics constraints and contact points")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}

	watcher, err := config.NewWatcher(*configPath)
	if err != nil {
		log.Printf("Config: hot reload disabled: %v", err)
		watcher = nil
	}

	paste := true
	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard: paste disabled: %v", err)
		paste = false
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("msgfall")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(cfg, GameOptions{
		Width:   w,
		Height:  h,
		Debug:   *debug,
		Paste:   paste,
		Watcher: watcher,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
