// Profiling:
// go build ./profile/query
// go tool pprof -http=":8000" -nodefraction=0.001 ./query mem.prof

package main

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/edwinsyarief/bento"
)

func main() {
	// CPU Profiling
	f, _ := os.Create("cpu.prof")
	_ = pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	count := 50
	iters := 10000
	entities := 100000
	run(count, iters, entities)

	// Memory Profiling
	memFile, _ := os.Create("mem.prof")
	defer memFile.Close()
	runtime.GC() // Trigger garbage collection
	_ = pprof.WriteHeapProfile(memFile)
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
		frozen := bento.NewComponentType("Frozen")
		w := bento.NewWorld(numEntities)
		if err := w.RegisterComponents(pos, vel, frozen); err != nil {
			panic(err)
		}
		for i := 0; i < numEntities; i++ {
			e := w.CreateEntity()
			e.AddComponent(pos, nil)
			e.AddComponent(vel, map[string]any{"dx": 1.0, "dy": 1.0})
			if i%10 == 0 {
				e.AddComponent(frozen, nil)
			}
		}
		q := w.Query([]*bento.ComponentType{pos, vel}, frozen)

		for it := 0; it < iters; it++ {
			for _, e := range q.Entities() {
				p := e.GetComponent(pos)
				v := e.GetComponent(vel)
				p.Set("x", p.Float("x")+v.Float("dx"))
				p.Set("y", p.Float("y")+v.Float("dy"))
			}
		}
	}
}
