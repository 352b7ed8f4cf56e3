package events

import "github.com/qlsh/quick-launcher/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
)

func (UITracer) ModeSwitch(mode string, entries int) {
	logging.Trace("ui.mode-switch", map[string]interface{}{"mode": mode, "entries": entries})
}

func (UITracer) Cursor(mode string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"mode": mode, "cursor": cursor})
}

func (UITracer) Confirm(mode, alias, query string) {
	logging.Trace("ui.confirm", map[string]interface{}{
		"mode":   mode,
		"alias":  alias,
		"query":  query,
	})
}

func (UITracer) PreviewToggle(visible bool) {
	logging.Trace("ui.preview-toggle", map[string]interface{}{"visible": visible})
}

func (UITracer) ClipboardCopy(alias string, err error) {
	payload := map[string]interface{}{"alias": alias}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("ui.clipboard-copy", payload)
}

func (FilterTracer) Append(mode, query string) {
	logging.Trace("filter.append", map[string]interface{}{"mode": mode, "query": query})
}

func (FilterTracer) Backspace(mode, query string) {
	logging.Trace("filter.backspace", map[string]interface{}{"mode": mode, "query": query})
}

func (FilterTracer) WordBackspace(mode, query string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"mode": mode, "query": query})
}

func (FilterTracer) Cleared(mode string) {
	logging.Trace("filter.clear", map[string]interface{}{"mode": mode})
}

func (FilterTracer) Cursor(mode string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"mode": mode, "cursor": pos})
}
