package events

import "github.com/qlsh/quick-launcher/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) DirectRun(alias string) {
	logging.Trace("app.direct-run", map[string]interface{}{"alias": alias})
}
