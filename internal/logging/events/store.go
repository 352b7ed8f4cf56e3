package events

import "github.com/qlsh/quick-launcher/internal/logging"

type StoreTracer struct{}

var Store = StoreTracer{}

func (StoreTracer) Loaded(entries int, warnings int) {
	logging.Trace("store.loaded", map[string]interface{}{"entries": entries, "warnings": warnings})
}

func (StoreTracer) Saved(alias string) {
	logging.Trace("store.saved", map[string]interface{}{"alias": alias})
}

func (StoreTracer) Removed(alias string) {
	logging.Trace("store.removed", map[string]interface{}{"alias": alias})
}

func (StoreTracer) Seeded(templates int) {
	logging.Trace("store.seeded", map[string]interface{}{"templates": templates})
}

func (StoreTracer) Corrupt(key string, err error) {
	logging.Trace("store.corrupt", map[string]interface{}{"key": key, "error": err.Error()})
}
