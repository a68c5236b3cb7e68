// Package trace is castlink's structured log.
//
// Commands open a driver span; manifest linking, snapshot restore and probe
// runs open link spans beneath it; every registered class is a class point
// and every failed checked cast is a cast point. The level decides the finest
// scope that is recorded:
//
//	phase   driver, link
//	detail  + class
//	debug   + cast
//
// Tracers travel in a context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	ctx, span := trace.Start(ctx, trace.ScopeLink, "link")
//	defer span.End(unit)
package trace
