package snapshot

import "github.com/google/uuid"

// ProjectGUID returns the stable identifier for this build's project. An
// engine-supplied ProjectGuid property wins when it parses; otherwise the
// identifier is derived by name-based UUID hashing of the normalized project
// path, so identical paths yield identical GUIDs across runs and platforms.
func (s *Snapshot) ProjectGUID() uuid.UUID {
	if raw := s.Property("ProjectGuid"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			return id
		}
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(s.projectPath))
}
