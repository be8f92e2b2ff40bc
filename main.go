package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flag.Parse()
	g := newGame()
	if *recordDefaultPGO {
		stop, err := startDefaultPGORecording("default.pgo")
		if err != nil {
			log.Fatalf("starting PGO capture: %v", err)
		}
		defer stop()
		g.boat.enableAutoPilot(pgoRecordDuration)
		go func() {
			time.Sleep(pgoRecordDuration)
			stop()
			log.Printf("default.pgo capture finished")
		}()
	}
	ebiten.SetWindowSize(screenSize*windowScale, screenSize*windowScale)
	ebiten.SetWindowTitle("Dynamic Water Wake Cascade")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
