// Package app wires the digest packages together from a loaded
// configuration. It owns the process resources (database pool, optional
// Redis client) and releases them through Close.
//
// Commands build an App, ask it for a pipeline or a store, and defer Close:
//
//	a, err := app.New(ctx, cfg, log)
//	if err != nil {
//	    return err
//	}
//	defer a.Close(context.Background())
//
//	p, err := a.Pipeline()
//	if err != nil {
//	    return err
//	}
//	report, err := p.Run(ctx)
package app
