package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/ldtkloader/config"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	envFile := flag.String("env", ".env", "optional .env file")
	project := flag.String("project", "", "LDtk project path, relative to the asset root")
	level := flag.String("level", "", "identifier of the level to open")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		log.Fatal(err)
	}
	if *project != "" {
		cfg.Project = *project
	}
	if *level != "" {
		cfg.Level = *level
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	viewer, cleanup, err := initializeViewer(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	if err := ebiten.RunGame(viewer); err != nil {
		viewer.Logger().Error(err.Error())
	}
}
