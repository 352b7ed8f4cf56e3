package entry

import (
	"reflect"
	"testing"
)

func TestValidateAlias(t *testing.T) {
	valid := []string{"deploy", "git-setup", "backup_2", "A1"}
	for _, alias := range valid {
		if err := ValidateAlias(alias); err != nil {
			t.Errorf("%q should be valid: %v", alias, err)
		}
	}
	invalid := []string{"", "has space", "dot.alias", "sla/sh", "uni¢ode"}
	for _, alias := range invalid {
		if err := ValidateAlias(alias); err == nil {
			t.Errorf("%q should be rejected", alias)
		}
	}
}

func TestValidateRequiresKindAndCommand(t *testing.T) {
	e := &Entry{Alias: "ok", Kind: Link, Command: "ls"}
	if err := e.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (&Entry{Alias: "ok", Kind: "weird", Command: "ls"}).Validate(); err == nil {
		t.Fatal("unknown kind should be rejected")
	}
	if err := (&Entry{Alias: "ok", Kind: Link}).Validate(); err == nil {
		t.Fatal("empty command should be rejected")
	}
}

func TestSearchFieldsOrder(t *testing.T) {
	e := &Entry{
		Alias:       "deploy",
		Kind:        Chain,
		Command:     "git pull && make deploy",
		Description: "ship it",
		Tags:        []string{"release", "ops"},
	}
	want := []string{"deploy", "ship it", "release", "ops", "git pull && make deploy"}
	if got := e.SearchFields(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected search fields: %#v", got)
	}
}

func TestMatchesMode(t *testing.T) {
	link := &Entry{Kind: Link}
	chain := &Entry{Kind: Chain}
	tpl := &Entry{Kind: Template}
	if !link.MatchesMode(false) || !chain.MatchesMode(false) {
		t.Fatal("links and chains belong to command mode")
	}
	if link.MatchesMode(true) || chain.MatchesMode(true) {
		t.Fatal("links and chains must not appear in template mode")
	}
	if !tpl.MatchesMode(true) || tpl.MatchesMode(false) {
		t.Fatal("templates belong to template mode only")
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := &Entry{
		Alias:        "clone",
		Kind:         Template,
		Command:      "git clone {repo}",
		Tags:         []string{"git"},
		Placeholders: []Placeholder{{Name: "repo", Default: "upstream"}},
	}
	copied := original.Clone()
	copied.Tags[0] = "changed"
	copied.Placeholders[0].Default = "changed"
	if original.Tags[0] != "git" || original.Placeholders[0].Default != "upstream" {
		t.Fatal("clone shares backing arrays with the original")
	}
}

func TestDefaultFor(t *testing.T) {
	e := &Entry{
		Alias:   "run",
		Kind:    Template,
		Command: "docker run {image} {port}",
		Placeholders: []Placeholder{
			{Name: "image", Default: "web"},
			{Name: "port"},
		},
	}
	if def, ok := e.DefaultFor("image"); !ok || def != "web" {
		t.Fatalf("unexpected default: %q/%v", def, ok)
	}
	if def, ok := e.DefaultFor("port"); !ok || def != "" {
		t.Fatalf("declared placeholder without default: %q/%v", def, ok)
	}
	if _, ok := e.DefaultFor("missing"); ok {
		t.Fatal("undeclared placeholder should not resolve")
	}
}
