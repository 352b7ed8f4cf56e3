package events

import "github.com/qlsh/quick-launcher/internal/logging"

type ExecTracer struct{}

var Exec = ExecTracer{}

func (ExecTracer) Start(command string, segments int, warnings []string) {
	logging.Trace("exec.start", map[string]interface{}{
		"command":  command,
		"segments": segments,
		"warnings": warnings,
	})
}

func (ExecTracer) DryRun(command string, segments int) {
	logging.Trace("exec.dry-run", map[string]interface{}{"command": command, "segments": segments})
}

func (ExecTracer) Segment(index int, command string, exitCode int) {
	logging.Trace("exec.segment", map[string]interface{}{
		"index":    index,
		"command":  command,
		"exitCode": exitCode,
	})
}

func (ExecTracer) Halted(index, exitCode int) {
	logging.Trace("exec.halted", map[string]interface{}{"index": index, "exitCode": exitCode})
}

func (ExecTracer) SpawnFailure(command string, err error) {
	logging.Trace("exec.spawn-failure", map[string]interface{}{"command": command, "error": err.Error()})
}

func (ExecTracer) Done(command string) {
	logging.Trace("exec.done", map[string]interface{}{"command": command})
}
