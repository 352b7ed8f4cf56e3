package events

import "github.com/qlsh/quick-launcher/internal/logging"

type TemplateTracer struct{}

var Template = TemplateTracer{}

func (TemplateTracer) Prompt(alias, placeholder string) {
	logging.Trace("template.prompt", map[string]interface{}{"alias": alias, "placeholder": placeholder})
}

func (TemplateTracer) Resolved(alias string, placeholders int) {
	logging.Trace("template.resolved", map[string]interface{}{"alias": alias, "placeholders": placeholders})
}

func (TemplateTracer) Cancelled(alias string) {
	logging.Trace("template.cancelled", map[string]interface{}{"alias": alias})
}
