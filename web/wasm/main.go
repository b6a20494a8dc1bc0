//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-zplane/internal/log"
	"github.com/cwbudde/algo-zplane/internal/webdemo"
)

var (
	session *webdemo.Session
	funcs   []js.Func
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		sr := 48000.0
		if len(args) > 0 {
			sr = args[0].Float()
		}
		s, err := webdemo.NewSession(sr, log.GetLogger())
		if err != nil {
			return err.Error()
		}
		session = s
		return js.Null()
	}))

	api.Set("setMode", export(func(args []js.Value) any {
		if session == nil || len(args) < 1 {
			return js.Null()
		}
		if err := session.SetMode(args[0].String()); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("setReflect", export(func(args []js.Value) any {
		if session == nil || len(args) < 1 {
			return js.Null()
		}
		session.SetReflect(args[0].Bool())
		return js.Null()
	}))

	api.Set("click", export(func(args []js.Value) any {
		if session == nil || len(args) < 2 {
			return -1
		}
		return session.Click(args[0].Float(), args[1].Float())
	}))

	api.Set("drag", export(func(args []js.Value) any {
		if session == nil || len(args) < 3 {
			return js.Null()
		}
		if err := session.Drag(args[0].Int(), args[1].Float(), args[2].Float()); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("clear", export(func(args []js.Value) any {
		if session == nil || len(args) < 1 {
			return js.Null()
		}
		if err := session.Clear(args[0].String()); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("zeros", export(func(args []js.Value) any {
		if session == nil {
			return float64Array(nil)
		}
		return float64Array(session.Zeros())
	}))

	api.Set("poles", export(func(args []js.Value) any {
		if session == nil {
			return float64Array(nil)
		}
		return float64Array(session.Poles())
	}))

	api.Set("setAllPass", export(func(args []js.Value) any {
		if session == nil || len(args) < 2 {
			return js.Null()
		}
		if err := session.SetAllPass(floats(args[0]), floats(args[1])); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("presets", export(func(args []js.Value) any {
		re, im := webdemo.PresetSections()
		obj := js.Global().Get("Object").New()
		obj.Set("re", float64Array(re))
		obj.Set("im", float64Array(im))
		return obj
	}))

	api.Set("selectPresets", export(func(args []js.Value) any {
		if session == nil || len(args) < 1 {
			return js.Null()
		}
		picked := floats(args[0])
		indices := make([]int, len(picked))
		for i, v := range picked {
			indices[i] = int(v)
		}
		if err := session.SelectPresets(indices); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("loadSignal", export(func(args []js.Value) any {
		if session == nil || len(args) < 1 {
			return js.Null()
		}
		session.LoadSignal(floats(args[0]))
		return js.Null()
	}))

	api.Set("tick", export(func(args []js.Value) any {
		if session == nil {
			return js.Null()
		}
		in, out, ok := session.Tick()
		if !ok {
			return js.Null()
		}
		return js.ValueOf([]any{in, out})
	}))

	api.Set("padMove", export(func(args []js.Value) any {
		if session == nil || len(args) < 3 {
			return js.Null()
		}
		in, out, err := session.PadMove(args[0].Float(), args[1].Float(), args[2].Float())
		if err != nil {
			return err.Error()
		}
		return js.ValueOf([]any{in, out})
	}))

	api.Set("reset", export(func(args []js.Value) any {
		if session != nil {
			session.Reset()
		}
		return js.Null()
	}))

	api.Set("response", export(func(args []js.Value) any {
		if session == nil || len(args) < 1 {
			return js.Null()
		}
		hz, db, phase, err := session.Response(args[0].Int())
		if err != nil {
			return err.Error()
		}
		obj := js.Global().Get("Object").New()
		obj.Set("freq", float64Array(hz))
		obj.Set("magnitude", float64Array(db))
		obj.Set("phase", float64Array(phase))
		return obj
	}))

	api.Set("correctedPhase", export(func(args []js.Value) any {
		if session == nil || len(args) < 1 {
			return float64Array(nil)
		}
		p, err := session.CorrectedPhase(args[0].Int())
		if err != nil {
			return err.Error()
		}
		return float64Array(p)
	}))

	api.Set("allPassPhase", export(func(args []js.Value) any {
		if session == nil || len(args) < 1 {
			return float64Array(nil)
		}
		p, err := session.AllPassPhase(args[0].Int())
		if err != nil {
			return err.Error()
		}
		return float64Array(p)
	}))

	api.Set("spectrum", export(func(args []js.Value) any {
		if session == nil || len(args) < 1 {
			return float64Array(nil)
		}
		db, err := session.OutputSpectrum(args[0].Int())
		if err != nil {
			return err.Error()
		}
		return float64Array(db)
	}))

	api.Set("state", export(func(args []js.Value) any {
		if session == nil {
			return "idle"
		}
		return session.State()
	}))

	js.Global().Set("ZPlaneDemo", api)
	select {}
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}

func floats(v js.Value) []float64 {
	out := make([]float64, v.Length())
	for i := range out {
		out[i] = v.Index(i).Float()
	}
	return out
}

func float64Array(data []float64) js.Value {
	arr := js.Global().Get("Float64Array").New(len(data))
	for i, v := range data {
		arr.SetIndex(i, v)
	}
	return arr
}
