package types

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseComponentIDRoundTrip(t *testing.T) {
	cases := map[string]ComponentID{
		"project::lib":               ProjectID(":lib"),
		"project::app:core":          ProjectID(":app:core"),
		"module:org.acme:core:1.2.0": ModuleID("org.acme", "core", "1.2.0"),
		"module:org.acme:core":       ModuleID("org.acme", "core", ""),
	}
	for notation, want := range cases {
		t.Run(notation, func(t *testing.T) {
			got, err := ParseComponentID(notation)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("unexpected component (-want +got):\n%s", diff)
			}
			assert.Equal(t, notation, got.String())
		})
	}
}

func TestParseComponentIDRejectsMalformed(t *testing.T) {
	for _, notation := range []string{"", "lib", "project:", "project:lib", "module:org.acme", "module:org.acme::1.0", "module:a:b:c:d", "task::lib"} {
		t.Run(notation, func(t *testing.T) {
			_, err := ParseComponentID(notation)
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}

func TestComponentIDGroup(t *testing.T) {
	assert.Equal(t, "org.acme", ModuleID("org.acme", "core", "1.0.0").Group())
	assert.Empty(t, ProjectID(":lib").Group())
	assert.True(t, ComponentID{}.IsZero())
	assert.False(t, ProjectID(":lib").IsZero())
}

func TestResolutionPassFind(t *testing.T) {
	lib := &ComponentResult{ID: ProjectID(":lib")}
	duplicate := &ComponentResult{ID: ProjectID(":lib")}
	pass := &ResolutionPass{Kind: PassKindGraph, Components: []*ComponentResult{nil, lib, duplicate}}

	found, ok := pass.Find(ProjectID(":lib"))
	require.True(t, ok)
	assert.Same(t, lib, found)

	_, ok = pass.Find(ProjectID(":app"))
	assert.False(t, ok)

	var missing *ResolutionPass
	_, ok = missing.Find(ProjectID(":lib"))
	assert.False(t, ok)
}

func TestTraversalPolicyString(t *testing.T) {
	assert.Equal(t, "strict", TraversalStrict.String())
	assert.Equal(t, "lenient", TraversalLenient.String())
	assert.Equal(t, "unknown", TraversalPolicy(7).String())
}
