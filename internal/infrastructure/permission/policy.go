package permission

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// PolicyFile is the on-disk role definition, e.g.
//
//	roles:
//	  technician:
//	    inherits: [viewer]
//	    permissions: ["tickets:update", "declines:read"]
type PolicyFile struct {
	Roles map[string]RoleDefinition `yaml:"roles"`
}

type RoleDefinition struct {
	Inherits    []string `yaml:"inherits"`
	Permissions []string `yaml:"permissions"`
}

func LoadPolicyFile(path string) (*PolicyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return ParsePolicyFile(data)
}

func ParsePolicyFile(data []byte) (*PolicyFile, error) {
	var pf PolicyFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse policy file: %w", err)
	}

	for role, def := range pf.Roles {
		for _, perm := range def.Permissions {
			if _, _, err := splitPermission(perm); err != nil {
				return nil, fmt.Errorf("role %s: %w", role, err)
			}
		}
		for _, parent := range def.Inherits {
			if _, ok := pf.Roles[parent]; !ok {
				return nil, fmt.Errorf("role %s inherits unknown role %s", role, parent)
			}
		}
	}
	return &pf, nil
}

func splitPermission(perm string) (resource, action string, err error) {
	resource, action, ok := strings.Cut(perm, ":")
	if !ok || resource == "" || action == "" {
		return "", "", fmt.Errorf("invalid permission %q, want resource:action", perm)
	}
	return resource, action, nil
}

// Sync makes casbin_rule match pf for every role pf names. Roles absent from pf are untouched.
func (e *Enforcer) Sync(pf *PolicyFile) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	added, removed := 0, 0
	for _, role := range sortedRoles(pf) {
		def := pf.Roles[role]

		want := make([][]string, 0, len(def.Permissions))
		for _, perm := range def.Permissions {
			resource, action, _ := splitPermission(perm)
			want = append(want, []string{role, resource, action})
		}

		have, err := e.enforcer.GetFilteredPolicy(0, role)
		if err != nil {
			return fmt.Errorf("failed to read policies for %s: %w", role, err)
		}
		for _, rule := range have {
			if !containsRule(want, rule) {
				if _, err := e.enforcer.RemovePolicy(rule); err != nil {
					return fmt.Errorf("failed to remove policy %v: %w", rule, err)
				}
				removed++
			}
		}
		for _, rule := range want {
			if !containsRule(have, rule) {
				if _, err := e.enforcer.AddPolicy(rule); err != nil {
					return fmt.Errorf("failed to add policy %v: %w", rule, err)
				}
				added++
			}
		}

		parents, err := e.enforcer.GetRolesForUser(role)
		if err != nil {
			return fmt.Errorf("failed to read parents of %s: %w", role, err)
		}
		for _, parent := range parents {
			if !slices.Contains(def.Inherits, parent) {
				if _, err := e.enforcer.DeleteRoleForUser(role, parent); err != nil {
					return fmt.Errorf("failed to drop inheritance %s -> %s: %w", role, parent, err)
				}
				removed++
			}
		}
		for _, parent := range def.Inherits {
			if !slices.Contains(parents, parent) {
				if _, err := e.enforcer.AddRoleForUser(role, parent); err != nil {
					return fmt.Errorf("failed to add inheritance %s -> %s: %w", role, parent, err)
				}
				added++
			}
		}
	}

	e.logger.Infow("policy synced", "added", added, "removed", removed, "roles", len(pf.Roles))
	return nil
}

func sortedRoles(pf *PolicyFile) []string {
	roles := make([]string, 0, len(pf.Roles))
	for role := range pf.Roles {
		roles = append(roles, role)
	}
	slices.Sort(roles)
	return roles
}

func containsRule(rules [][]string, rule []string) bool {
	for _, r := range rules {
		if slices.Equal(r, rule) {
			return true
		}
	}
	return false
}
