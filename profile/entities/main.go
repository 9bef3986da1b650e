// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"github.com/edwinsyarief/bento"
	"github.com/pkg/profile"
)

func main() {
	count := 50
	iters := 1000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(count, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for r := 0; r < rounds; r++ {
		bento.ResetGlobalRegistry()
		pos := bento.NewComponentType("Position",
			bento.FieldSpec{Name: "x", Type: bento.Number},
			bento.FieldSpec{Name: "y", Type: bento.Number})
		vel := bento.NewComponentType("Velocity",
			bento.FieldSpec{Name: "dx", Type: bento.Number},
			bento.FieldSpec{Name: "dy", Type: bento.Number})
		w := bento.NewWorld(numEntities)
		if err := w.RegisterComponents(pos, vel); err != nil {
			panic(err)
		}
		q := w.Query([]*bento.ComponentType{pos, vel})

		for it := 0; it < iters; it++ {
			for i := 0; i < numEntities; i++ {
				e := w.CreateEntity()
				e.AddComponent(pos, nil)
				e.AddComponent(vel, nil)
			}
			for _, e := range q.Entities() {
				p := e.GetComponent(pos)
				v := e.GetComponent(vel)
				p.Set("x", p.Float("x")+v.Float("dx"))
				p.Set("y", p.Float("y")+v.Float("dy"))
			}
			for _, e := range w.Entities() {
				e.Dispose(false)
			}
			w.Execute(1.0/60, 0)
		}
	}
}
