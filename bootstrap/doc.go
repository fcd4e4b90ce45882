// Package bootstrap runs a seqshare binary through a uniform lifecycle:
// start components, run hooks, execute a task, then shut down gracefully.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	app.RegisterComponent(sequenceComponent)
//	return app.RunTask(ctx, func(ctx context.Context) error {
//	    return drain(ctx)
//	})
package bootstrap
