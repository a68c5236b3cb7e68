package probe

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"castlink/internal/cast"
	"castlink/internal/manifest"
	"castlink/internal/observ"
	"castlink/internal/trace"
	"castlink/internal/types"
	"castlink/internal/value"
)

// Result is the outcome of one case.
type Result struct {
	Case   Case
	Got    string
	Detail string // cast error text, if any
	Err    error  // malformed case (unknown class, bad value syntax)
}

// Passed reports whether the case ran and matched its expectation.
func (r Result) Passed() bool {
	return r.Err == nil && r.Got == r.Case.Expect
}

// Report collects the results of one probe file.
type Report struct {
	Path    string
	Results []Result
}

// Failed counts results that did not pass.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed() {
			n++
		}
	}
	return n
}

type env struct {
	engine *cast.Engine
	alien  *value.Marker
}

type opFunc func(e *env, v value.Value, target types.TypeID) (string, string)

func checked(fn func(en *cast.Engine, v value.Value, target types.TypeID) (value.Value, *cast.CastError)) opFunc {
	return func(e *env, v value.Value, target types.TypeID) (string, string) {
		if _, err := fn(e.engine, v, target); err != nil {
			return "fail", err.Error()
		}
		return "ok", ""
	}
}

func test(fn func(en *cast.Engine, v value.Value, target types.TypeID) bool) opFunc {
	return func(e *env, v value.Value, target types.TypeID) (string, string) {
		return strconv.FormatBool(fn(e.engine, v, target)), ""
	}
}

var ops = map[string]opFunc{
	"cast":           checked((*cast.Engine).DynamicCast),
	"cast_allow_jso": checked((*cast.Engine).DynamicCastAllowJso),
	"cast_jso": checked(func(en *cast.Engine, v value.Value, _ types.TypeID) (value.Value, *cast.CastError) {
		return en.DynamicCastJso(v)
	}),
	"cast_unless_null": checked(func(en *cast.Engine, v value.Value, _ types.TypeID) (value.Value, *cast.CastError) {
		return en.ThrowClassCastExceptionUnlessNull(v)
	}),
	"can_cast":          test((*cast.Engine).CanCast),
	"instanceof":        test((*cast.Engine).InstanceOf),
	"instanceof_or_jso": test((*cast.Engine).InstanceOfOrJso),
	"instanceof_jso": test(func(en *cast.Engine, v value.Value, _ types.TypeID) bool {
		return en.InstanceOfJso(v)
	}),
	"is_java_object": test(func(en *cast.Engine, v value.Value, _ types.TypeID) bool {
		return en.IsJavaObject(v)
	}),
	"is_jso": test(func(en *cast.Engine, v value.Value, _ types.TypeID) bool {
		return en.IsJavaScriptObject(v)
	}),
	"is_jso_or_string": test(func(en *cast.Engine, v value.Value, _ types.TypeID) bool {
		return en.IsJavaScriptObjectOrString(v)
	}),
	"can_cast_class": func(e *env, v value.Value, target types.TypeID) (string, string) {
		if v.Kind != value.KindObject {
			return "false", "can_cast_class expects a class:<name> value"
		}
		return strconv.FormatBool(e.engine.CanCastClass(v.Obj.Class().ID, target)), ""
	},
}

// Run evaluates every case of f against engine.
func Run(ctx context.Context, engine *cast.Engine, f *File) *Report {
	_, span := trace.Start(ctx, trace.ScopeLink, "probe")
	defer span.End(f.Path)

	e := &env{engine: engine, alien: value.NewMarker("alien")}
	rep := &Report{Path: f.Path, Results: make([]Result, len(f.Cases))}
	for i, c := range f.Cases {
		rep.Results[i] = e.run(c)
	}
	span.WithExtra("failed", strconv.Itoa(rep.Failed()))
	return rep
}

func (e *env) run(c Case) Result {
	res := Result{Case: c}
	v, err := e.parseValue(c.Value)
	if err != nil {
		res.Err = err
		return res
	}
	var target types.TypeID
	if c.Target != "" {
		class, ok := e.engine.Registry().ClassByName(c.Target)
		if !ok {
			res.Err = fmt.Errorf("unknown target class %q", c.Target)
			return res
		}
		target = class.ID
	}
	res.Got, res.Detail = ops[c.Op](e, v, target)
	return res
}

func (e *env) parseValue(s string) (value.Value, error) {
	kind, arg, _ := strings.Cut(s, ":")
	reg := e.engine.Registry()
	lookup := func() (*types.Class, error) {
		class, ok := reg.ClassByName(arg)
		if !ok {
			return nil, fmt.Errorf("unknown class %q in value %q", arg, s)
		}
		return class, nil
	}
	switch kind {
	case "null":
		return value.Null, nil
	case "undefined":
		return value.Undefined, nil
	case "string":
		return value.String(arg), nil
	case "foreign":
		return value.Foreign(arg), nil
	case "array":
		if arg == "" {
			return value.FromArray(value.NewArray(nil)), nil
		}
		class, err := lookup()
		if err != nil {
			return value.Value{}, err
		}
		return value.FromArray(value.NewArray(class)), nil
	case "new", "alien", "class":
		class, err := lookup()
		if err != nil {
			return value.Value{}, err
		}
		switch kind {
		case "alien":
			return value.FromObject(e.alien.New(class)), nil
		case "class":
			proto, _ := reg.Prototype(class.ID)
			return value.FromObject(proto), nil
		default:
			return value.FromObject(reg.Unit().New(class)), nil
		}
	default:
		return value.Value{}, fmt.Errorf("bad value %q", s)
	}
}

// CheckFiles loads and runs every probe file concurrently. Each file links its
// own manifest. Results keep the order of paths. When timer is not nil, the
// link and evaluation of each file are recorded as phases.
func CheckFiles(ctx context.Context, paths []string, jobs int, timer *observ.Timer) ([]*Report, error) {
	reports := make([]*Report, len(paths))
	if len(paths) == 0 {
		return reports, nil
	}
	if jobs <= 0 {
		jobs = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			f, err := LoadFile(path)
			if err != nil {
				return err
			}
			name := filepath.Base(path)
			phase := timer.Begin("link " + name)
			reg, err := manifest.Open(gctx, f.Manifest)
			timer.End(phase, filepath.Base(f.Manifest))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			engine := cast.New(reg).WithTracer(trace.FromContext(gctx))
			phase = timer.Begin("eval " + name)
			rep := Run(gctx, engine, f)
			timer.End(phase, fmt.Sprintf("%d cases", len(rep.Results)))
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
