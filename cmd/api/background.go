package main

func (app *application) startBackgroundJobs() error {
	if app.scheduler == nil {
		return nil
	}
	return app.scheduler.Start(app.config.reset.schedule)
}

func (app *application) stopBackgroundJobs() {
	if app.scheduler == nil {
		return
	}
	app.scheduler.Stop()
}
