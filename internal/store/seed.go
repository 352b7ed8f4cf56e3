package store

import (
	"time"

	"github.com/qlsh/quick-launcher/internal/entry"
	"github.com/qlsh/quick-launcher/internal/logging/events"
)

// defaultTemplates are written on first run so template mode is not empty
// before the user has saved anything.
func defaultTemplates(now time.Time) []*entry.Entry {
	return []*entry.Entry{
		{
			Alias:       "git-setup",
			Kind:        entry.Template,
			Command:     "git clone {repo} && cd {project} && npm install",
			Description: "Clone repo and set up a Node.js project",
			Tags:        []string{"git", "setup"},
			Created:     now,
		},
		{
			Alias:       "backup",
			Kind:        entry.Template,
			Command:     "tar -czf backup-$(date +%Y%m%d).tar.gz {directory}",
			Description: "Create a timestamped backup of a directory",
			Tags:        []string{"backup"},
			Created:     now,
		},
		{
			Alias:       "deploy",
			Kind:        entry.Template,
			Command:     "git pull && {build_command} && {deploy_command}",
			Description: "Pull, build and deploy sequence",
			Tags:        []string{"deploy"},
			Created:     now,
		},
		{
			Alias:       "docker-build",
			Kind:        entry.Template,
			Command:     "docker build -t {image_name} . && docker run -p {port}:{port} {image_name}",
			Description: "Build and run a Docker container",
			Tags:        []string{"docker"},
			Created:     now,
		},
	}
}

// SeedDefaults writes the default templates when the store holds no template
// entries at all. Returns how many were written.
func (s *Store) SeedDefaults() (int, error) {
	existing, _ := s.LoadAll()
	for _, e := range existing {
		if e.Kind == entry.Template {
			return 0, nil
		}
	}
	seeded := 0
	now := time.Now().UTC()
	for _, e := range defaultTemplates(now) {
		if _, taken := existing[e.Alias]; taken {
			continue
		}
		if err := s.Put(e); err != nil {
			return seeded, err
		}
		seeded++
	}
	events.Store.Seeded(seeded)
	return seeded, nil
}
