package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transform-deps/internal/ports"
	"transform-deps/internal/types"
)

func newTestResolver(t *testing.T, results *fakeResults) (*UpstreamResolver, *countingProvider, *countingProvider) {
	t.Helper()
	graph := &countingProvider{pass: cyclicGraphPass()}
	artifacts := &countingProvider{pass: partialArtifactPass()}
	return NewUpstreamResolver(t.Context(), projectA, graph, artifacts, nil, results), graph, artifacts
}

func jarStep() types.TransformStep {
	return types.TransformStep{
		Name:                 "minify",
		FromAttributes:       types.NewAttributes(map[string]string{"artifactType": "jar"}),
		RequiresDependencies: true,
	}
}

func TestDependenciesForStepWithoutDependencies(t *testing.T) {
	resolver, graph, artifacts := newTestResolver(t, &fakeResults{})
	step := jarStep()
	step.RequiresDependencies = false

	deps := resolver.DependenciesFor(step)

	assert.False(t, deps.HasDependencies())
	_, err := deps.SelectedArtifacts(t.Context())
	require.ErrorIs(t, err, ErrNoArtifactDependencies)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))

	computed, err := deps.ComputeArtifacts(t.Context()).Get()
	require.NoError(t, err)
	_, err = computed.Files()
	require.ErrorIs(t, err, ErrNoArtifactDependencies)
	fingerprint, err := computed.Fingerprint(t.Context(), fakeFingerprinter{})
	require.NoError(t, err)
	assert.Equal(t, "empty", fingerprint.Hash)

	taskCtx := &recordingContext{}
	require.NoError(t, deps.VisitDependencies(t.Context(), taskCtx))
	assert.Empty(t, taskCtx.added)
	assert.Empty(t, taskCtx.tasks)

	deps.FinalizeIfNotAlready(t.Context())
	assert.Equal(t, int32(0), graph.calls.Load())
	assert.Equal(t, int32(0), artifacts.calls.Load())
}

func TestDependenciesForComputesArtifactsOnce(t *testing.T) {
	results := &fakeResults{files: map[types.ComponentID][]string{
		projectB: {"b/build/libs/b.jar"},
		projectC: {"c/build/libs/c.jar"},
	}}
	resolver, _, artifacts := newTestResolver(t, results)
	deps := resolver.DependenciesFor(jarStep())
	require.True(t, deps.HasDependencies())

	first := deps.ComputeArtifacts(t.Context())
	second := deps.ComputeArtifacts(t.Context())

	require.NoError(t, first.Err())
	assert.Equal(t, first, second)
	assert.Equal(t, 1, results.callCount())
	assert.Equal(t, int32(1), artifacts.calls.Load())

	computed, err := first.Get()
	require.NoError(t, err)
	files, err := computed.Files()
	require.NoError(t, err)
	paths, err := files.Files(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"b/build/libs/b.jar"}, paths)

	fingerprint, err := computed.Fingerprint(t.Context(), fakeFingerprinter{})
	require.NoError(t, err)
	assert.Equal(t, 1, fingerprint.FileCount)
}

func TestDependenciesForComputesArtifactsOnceConcurrently(t *testing.T) {
	results := &fakeResults{files: map[types.ComponentID][]string{projectB: {"b.jar"}}}
	resolver, graph, artifacts := newTestResolver(t, results)
	deps := resolver.DependenciesFor(jarStep())

	const workers = 32
	outcomes := make([]Try[ArtifactTransformDependencies], workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := range workers {
		go func() {
			defer wg.Done()
			if i%3 == 0 {
				deps.FinalizeIfNotAlready(context.Background())
			}
			outcomes[i] = deps.ComputeArtifacts(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, results.callCount(), "calculator must run once")
	assert.Equal(t, int32(1), artifacts.calls.Load())
	assert.Equal(t, int32(0), graph.calls.Load())
	for _, outcome := range outcomes {
		require.NoError(t, outcome.Err())
		assert.Equal(t, outcomes[0], outcome)
	}
}

func TestDependenciesForCapturesResolutionFailure(t *testing.T) {
	failure := errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("could not resolve b.jar")
	results := &fakeResults{
		files: map[types.ComponentID][]string{projectB: {"b.jar"}},
		err:   failure,
	}
	resolver, _, _ := newTestResolver(t, results)
	deps := resolver.DependenciesFor(jarStep())

	first := deps.ComputeArtifacts(t.Context())
	second := deps.ComputeArtifacts(t.Context())

	require.Error(t, first.Err())
	assert.True(t, errors.Is(first.Err(), failure))
	assert.Equal(t, first.Err(), second.Err())
	assert.Equal(t, 1, results.callCount())
}

func TestDependenciesForSelectedArtifactsDoesNotForce(t *testing.T) {
	results := &fakeResults{files: map[types.ComponentID][]string{projectB: {"b.jar"}}}
	resolver, _, _ := newTestResolver(t, results)
	deps := resolver.DependenciesFor(jarStep())

	files, err := deps.SelectedArtifacts(t.Context())
	require.NoError(t, err)
	collection, ok := files.(*fakeCollection)
	require.True(t, ok)
	assert.Equal(t, int32(0), collection.resolved.Load())

	_, err = deps.SelectedArtifacts(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, results.callCount(), "selected artifacts are rebuilt on each call")
}

func TestDependenciesForVisitRegistersDeferredValue(t *testing.T) {
	results := &fakeResults{
		files: map[types.ComponentID][]string{projectB: {"b.jar"}},
		tasks: map[types.ComponentID]string{projectB: ":b:jar", projectC: ":c:jar"},
	}
	resolver, graph, artifacts := newTestResolver(t, results)
	deps := resolver.DependenciesFor(jarStep())

	taskCtx := &recordingContext{}
	require.NoError(t, deps.VisitDependencies(t.Context(), taskCtx))
	require.Len(t, taskCtx.added, 1)
	_, isValue := taskCtx.added[0].(*CalculatedValue[ArtifactTransformDependencies])
	assert.True(t, isValue, "the deferred value is registered, not the files")
	assert.Equal(t, int32(0), graph.calls.Load())
	assert.Equal(t, int32(0), artifacts.calls.Load())

	valueDeps := &recordingContext{}
	require.NoError(t, taskCtx.added[0].VisitDependencies(t.Context(), valueDeps))
	require.Len(t, valueDeps.added, 1)
	producers := &recordingContext{}
	require.NoError(t, valueDeps.added[0].VisitDependencies(t.Context(), producers))
	assert.Equal(t, []string{":b:jar", ":c:jar"}, producers.tasks)
	assert.Equal(t, int32(1), graph.calls.Load())
	assert.Equal(t, int32(0), artifacts.calls.Load())
}

func TestDependenciesForFinalizeIfNotAlready(t *testing.T) {
	results := &fakeResults{files: map[types.ComponentID][]string{projectB: {"b.jar"}}}
	resolver, _, artifacts := newTestResolver(t, results)
	deps := resolver.DependenciesFor(jarStep())

	deps.FinalizeIfNotAlready(t.Context())
	assert.Equal(t, int32(1), artifacts.calls.Load())
	assert.Equal(t, 1, results.callCount())

	require.NoError(t, deps.ComputeArtifacts(t.Context()).Err())
	assert.Equal(t, 1, results.callCount())
}

func TestDependenciesForStepsShareResolverCaches(t *testing.T) {
	results := &fakeResults{files: map[types.ComponentID][]string{projectB: {"b.jar"}}}
	resolver, _, artifacts := newTestResolver(t, results)

	jar := resolver.DependenciesFor(jarStep())
	classesStep := jarStep()
	classesStep.FromAttributes = types.NewAttributes(map[string]string{"artifactType": "classes"})
	classes := resolver.DependenciesFor(classesStep)

	require.NoError(t, jar.ComputeArtifacts(t.Context()).Err())
	require.NoError(t, classes.ComputeArtifacts(t.Context()).Err())

	assert.Equal(t, int32(1), artifacts.calls.Load())
	assert.Equal(t, 2, results.callCount())
}

func TestDependenciesForDeclaresOwningProject(t *testing.T) {
	cases := []struct {
		name  string
		owner *types.ComponentID
		want  types.ComponentID
		owned bool
	}{
		{name: "project owner", owner: &projectD, want: projectD, owned: true},
		{name: "module owner", owner: &moduleX},
		{name: "no owner"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resolver, _, _ := newTestResolver(t, &fakeResults{})
			resolver.Owner = tc.owner
			deps := resolver.DependenciesFor(jarStep())

			taskCtx := &recordingContext{}
			require.NoError(t, deps.VisitDependencies(t.Context(), taskCtx))
			require.Len(t, taskCtx.added, 1)
			user, ok := taskCtx.added[0].(ports.ProjectStateUser)
			require.True(t, ok)

			project, owned := user.OwningProject()
			assert.Equal(t, tc.owned, owned)
			assert.Equal(t, tc.want, project)
		})
	}
}
