package executor

import (
	"errors"
	"reflect"
	"testing"
)

// fakeLauncher records segments and returns scripted exit codes.
type fakeLauncher struct {
	ran   []string
	codes map[string]int
	fail  map[string]error
}

func newFakeLauncher() *fakeLauncher {
	return &fakeLauncher{codes: map[string]int{}, fail: map[string]error{}}
}

func (f *fakeLauncher) Run(segment string) (int, error) {
	if err, ok := f.fail[segment]; ok {
		return -1, err
	}
	f.ran = append(f.ran, segment)
	return f.codes[segment], nil
}

func TestSplitChain(t *testing.T) {
	segments := SplitChain("git pull && make build &&  make deploy ")
	want := []string{"git pull", "make build", "make deploy"}
	if !reflect.DeepEqual(segments, want) {
		t.Fatalf("unexpected segments: %#v", segments)
	}
}

func TestSplitChainDropsEmptySegments(t *testing.T) {
	segments := SplitChain("a && && b")
	if !reflect.DeepEqual(segments, []string{"a", "b"}) {
		t.Fatalf("unexpected segments: %#v", segments)
	}
}

func TestExecuteRunsSegmentsInOrder(t *testing.T) {
	launcher := newFakeLauncher()
	x := New(launcher, nil)
	result := x.Execute("first && second && third", true, false)
	if result.Failed() {
		t.Fatalf("unexpected failure: %+v", result)
	}
	if !reflect.DeepEqual(launcher.ran, []string{"first", "second", "third"}) {
		t.Fatalf("segments ran out of order: %#v", launcher.ran)
	}
	if result.FirstFailed != -1 {
		t.Fatalf("expected no failed segment, got %d", result.FirstFailed)
	}
	if len(result.SegmentsRun) != 3 {
		t.Fatalf("expected 3 segment results, got %d", len(result.SegmentsRun))
	}
}

func TestExecuteShortCircuitsOnFailure(t *testing.T) {
	launcher := newFakeLauncher()
	launcher.codes["second"] = 2
	x := New(launcher, nil)
	result := x.Execute("first && second && third", true, false)
	if !result.Failed() {
		t.Fatal("expected failure")
	}
	if !reflect.DeepEqual(launcher.ran, []string{"first", "second"}) {
		t.Fatalf("third segment must not run, ran: %#v", launcher.ran)
	}
	if result.FirstFailed != 1 {
		t.Fatalf("expected first failed index 1, got %d", result.FirstFailed)
	}
	if result.ExitCode != 2 {
		t.Fatalf("expected exit code 2, got %d", result.ExitCode)
	}
	if len(result.SegmentsRun) != 2 {
		t.Fatalf("expected 2 segment results, got %d", len(result.SegmentsRun))
	}
}

func TestExecuteSpawnFailure(t *testing.T) {
	launcher := newFakeLauncher()
	spawnErr := errors.New("no such binary")
	launcher.fail["missing"] = spawnErr
	x := New(launcher, nil)
	result := x.Execute("first && missing && third", true, false)
	if result.Err == nil {
		t.Fatal("expected spawn error")
	}
	var spawn *SpawnError
	if !errors.As(result.Err, &spawn) {
		t.Fatalf("expected SpawnError, got %T", result.Err)
	}
	if spawn.Segment != "missing" {
		t.Fatalf("unexpected failing segment %q", spawn.Segment)
	}
	if !errors.Is(result.Err, spawnErr) {
		t.Fatal("SpawnError should wrap the launcher error")
	}
	if result.FirstFailed != 1 || result.ExitCode != -1 {
		t.Fatalf("unexpected failure bookkeeping: %+v", result)
	}
	if !reflect.DeepEqual(launcher.ran, []string{"first"}) {
		t.Fatalf("later segments must not run, ran: %#v", launcher.ran)
	}
}

func TestExecuteDryRunNeverSpawns(t *testing.T) {
	launcher := newFakeLauncher()
	launcher.fail["rm -rf /"] = errors.New("must never happen")
	x := New(launcher, nil)
	result := x.Execute("rm -rf / && echo done", true, true)
	if !result.DryRun {
		t.Fatal("expected dry run result")
	}
	if len(launcher.ran) != 0 {
		t.Fatalf("dry run spawned segments: %#v", launcher.ran)
	}
	if result.Failed() {
		t.Fatalf("dry run must not fail: %+v", result)
	}
	if !reflect.DeepEqual(result.Segments, []string{"rm -rf /", "echo done"}) {
		t.Fatalf("unexpected segments: %#v", result.Segments)
	}
}

func TestExecuteUnchainedIgnoresOperator(t *testing.T) {
	launcher := newFakeLauncher()
	x := New(launcher, nil)
	result := x.Execute("echo a && echo b", false, false)
	if len(result.Segments) != 1 {
		t.Fatalf("unchained command must stay one segment, got %#v", result.Segments)
	}
	if !reflect.DeepEqual(launcher.ran, []string{"echo a && echo b"}) {
		t.Fatalf("unexpected run: %#v", launcher.ran)
	}
}

func TestWarningsFlagDangerousCommands(t *testing.T) {
	x := New(newFakeLauncher(), nil)
	dangerous := []string{
		"rm -rf /",
		"sudo rm -r /etc",
		"dd if=/dev/zero of=/dev/sda",
		"mkfs.ext4 /dev/sdb1",
		"echo boom > /dev/sda",
		"shutdown -h now",
	}
	for _, command := range dangerous {
		if len(x.Warnings(command)) == 0 {
			t.Errorf("expected warning for %q", command)
		}
	}
	if len(x.Warnings("ls -la")) != 0 {
		t.Error("unexpected warning for harmless command")
	}
}

func TestWarningsAreAdvisoryOnly(t *testing.T) {
	launcher := newFakeLauncher()
	x := New(launcher, nil)
	result := x.Execute("rm -rf /tmp/scratch", false, false)
	if result.Failed() {
		t.Fatalf("dangerous command must still execute: %+v", result)
	}
	if len(launcher.ran) != 1 {
		t.Fatalf("expected execution despite warning, ran: %#v", launcher.ran)
	}
}

func TestExtraPatterns(t *testing.T) {
	x := New(newFakeLauncher(), []string{`\bdrop\s+table\b`})
	if len(x.Warnings("psql -c 'drop table users'")) == 0 {
		t.Fatal("expected warning from extra pattern")
	}
}

func TestInvalidExtraPatternIsSkipped(t *testing.T) {
	x := New(newFakeLauncher(), []string{"("})
	if len(x.Warnings("ls")) != 0 {
		t.Fatal("invalid pattern should be dropped, not match everything")
	}
}
