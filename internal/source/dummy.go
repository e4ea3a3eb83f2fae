// SPDX-License-Identifier: MPL-2.0

package source

import (
	"quiver-cli/internal/catalog"
	"quiver-cli/internal/config"
)

// dummySource is an inert placeholder: it starts cleanly and is immediately
// exhausted. Unknown source names degrade to it so a stale configuration
// still launches.
type dummySource struct {
	name string
}

func newDummySource(name string) *dummySource {
	if name == "" {
		name = "Dummy"
	}
	return &dummySource{name: name}
}

func (s *dummySource) Name() string                { return s.name }
func (s *dummySource) Start(_ *config.Config)      {}
func (s *dummySource) Next() (catalog.Entry, bool) { return catalog.Entry{}, false }
