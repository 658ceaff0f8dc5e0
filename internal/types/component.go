package types

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ComponentID identifies one node of a resolution pass. It is a comparable
// value so it can be used directly as a map or set key.
//
// Projects use Name as the project path (":lib", ":app:core"); modules use
// "group:module" as Name and carry a Version.
type ComponentID struct {
	Kind    ComponentKind
	Name    string
	Version string
}

func ProjectID(path string) ComponentID {
	return ComponentID{Kind: ComponentKindProject, Name: path}
}

func ModuleID(group string, module string, version string) ComponentID {
	return ComponentID{Kind: ComponentKindModule, Name: group + ":" + module, Version: version}
}

func (id ComponentID) IsZero() bool {
	return id == ComponentID{}
}

// Group returns the module group, or an empty string for projects.
func (id ComponentID) Group() string {
	if id.Kind != ComponentKindModule {
		return ""
	}
	group, _, _ := strings.Cut(id.Name, ":")
	return group
}

func (id ComponentID) String() string {
	switch id.Kind {
	case ComponentKindProject:
		return "project:" + id.Name
	case ComponentKindModule:
		if id.Version == "" {
			return "module:" + id.Name
		}
		return "module:" + id.Name + ":" + id.Version
	default:
		return id.Name
	}
}

// ParseComponentID reads the notation produced by String:
//
//	project::lib
//	module:org.acme:core:1.2.0
func ParseComponentID(value string) (ComponentID, error) {
	trimmed := strings.TrimSpace(value)
	kind, rest, ok := strings.Cut(trimmed, ":")
	if !ok || strings.TrimSpace(rest) == "" {
		return ComponentID{}, invalidComponentID(value)
	}
	switch ComponentKind(strings.ToLower(kind)) {
	case ComponentKindProject:
		if !strings.HasPrefix(rest, ":") {
			return ComponentID{}, invalidComponentID(value)
		}
		return ProjectID(rest), nil
	case ComponentKindModule:
		parts := strings.Split(rest, ":")
		for _, part := range parts {
			if strings.TrimSpace(part) == "" {
				return ComponentID{}, invalidComponentID(value)
			}
		}
		switch len(parts) {
		case 2:
			return ModuleID(parts[0], parts[1], ""), nil
		case 3:
			return ModuleID(parts[0], parts[1], parts[2]), nil
		}
	}
	return ComponentID{}, invalidComponentID(value)
}

func invalidComponentID(value string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid component identifier: %q", value))
}
