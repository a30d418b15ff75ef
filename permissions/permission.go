package permissions

import (
	_ "embed"
	"slices"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed permissions.yaml
var permissionsData []byte

// Permission describes one route pattern. Skip marks it public.
type Permission struct {
	Path   string `yaml:"path"`
	Method string `yaml:"method"`
	Skip   bool   `yaml:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `yaml:"endpoints"`
}

// FindPermissions matches a chi route pattern, not a concrete URL.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && rp.Method == method
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}

func Parse(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := yaml.Unmarshal(data, &permissions); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &permissions, nil
}
