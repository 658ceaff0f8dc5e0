package adapters

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"transform-deps/internal/ports"
	"transform-deps/internal/types"
)

// GraphFileAdapter reads a YAML graph file holding both resolution passes and
// the artifact catalog. The file is read once and shared by every caller.
type GraphFileAdapter struct {
	Path string

	mu        sync.Mutex
	loaded    bool
	graph     types.GraphFile
	passes    map[types.PassKind]*types.ResolutionPass
	artifacts []types.Artifact
}

func NewGraphFileAdapter(path string) *GraphFileAdapter {
	return &GraphFileAdapter{Path: path}
}

func (a *GraphFileAdapter) Load() (types.GraphFile, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.loadLocked(); err != nil {
		return types.GraphFile{}, err
	}
	return a.graph, nil
}

func (a *GraphFileAdapter) Pass(kind types.PassKind) (*types.ResolutionPass, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.loadLocked(); err != nil {
		return nil, err
	}
	pass, ok := a.passes[kind]
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown resolution pass: %s", kind))
	}
	return pass, nil
}

func (a *GraphFileAdapter) PassProvider(kind types.PassKind) ports.ResolutionPassProvider {
	return ports.ResolutionPassFunc(func(ctx context.Context) (*types.ResolutionPass, error) {
		pass, err := a.Pass(kind)
		if err != nil {
			return nil, err
		}
		log.Ctx(ctx).Debug().
			Str("pass", string(kind)).
			Int("components", len(pass.Components)).
			Msg("resolution pass loaded")
		return pass, nil
	})
}

func (a *GraphFileAdapter) Artifacts() ([]types.Artifact, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.loadLocked(); err != nil {
		return nil, err
	}
	return a.artifacts, nil
}

func (a *GraphFileAdapter) loadLocked() error {
	if a.loaded {
		return nil
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("graph file not found").
			WithCause(err)
	}
	var graph types.GraphFile
	if err := yaml.Unmarshal(data, &graph); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid graph file format").
			WithCause(err)
	}
	graphPass, err := BuildResolutionPass(types.PassKindGraph, graph.Passes.Graph)
	if err != nil {
		return err
	}
	artifactPass, err := BuildResolutionPass(types.PassKindArtifacts, graph.Passes.Artifacts)
	if err != nil {
		return err
	}
	artifacts, err := ParseArtifacts(graph.Artifacts)
	if err != nil {
		return err
	}
	a.graph = graph
	a.passes = map[types.PassKind]*types.ResolutionPass{
		types.PassKindGraph:     graphPass,
		types.PassKindArtifacts: artifactPass,
	}
	a.artifacts = artifacts
	a.loaded = true
	return nil
}

// BuildResolutionPass links the components of one pass. Every selected
// dependency must name a component declared in the same pass.
func BuildResolutionPass(kind types.PassKind, components []types.GraphFileComponent) (*types.ResolutionPass, error) {
	pass := &types.ResolutionPass{Kind: kind}
	byID := map[types.ComponentID]*types.ComponentResult{}
	for _, entry := range components {
		id, err := types.ParseComponentID(entry.ID)
		if err != nil {
			return nil, err
		}
		if _, exists := byID[id]; exists {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("duplicate component %s in %s pass", id, kind))
		}
		node := &types.ComponentResult{ID: id}
		byID[id] = node
		pass.Components = append(pass.Components, node)
	}
	for i, entry := range components {
		node := pass.Components[i]
		for _, dep := range entry.Dependencies {
			if dep.Selected == "" {
				if dep.Failure == "" {
					return nil, errbuilder.New().
						WithCode(errbuilder.CodeInvalidArgument).
						WithMsg(fmt.Sprintf("dependency of %s needs either selected or failure", node.ID))
				}
				node.Dependencies = append(node.Dependencies, types.DependencyResult{
					Requested: dep.Requested,
					Failure:   dep.Failure,
				})
				continue
			}
			selectedID, err := types.ParseComponentID(dep.Selected)
			if err != nil {
				return nil, err
			}
			selected, ok := byID[selectedID]
			if !ok {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("%s depends on %s which is not part of the %s pass", node.ID, selectedID, kind))
			}
			requested := dep.Requested
			if requested == "" {
				requested = dep.Selected
			}
			node.Dependencies = append(node.Dependencies, types.DependencyResult{
				Requested: requested,
				Selected:  selected,
			})
		}
	}
	return pass, nil
}

func ParseArtifacts(items []types.ArtifactCatalogItem) ([]types.Artifact, error) {
	artifacts := make([]types.Artifact, 0, len(items))
	for _, item := range items {
		id, err := types.ParseComponentID(item.Component)
		if err != nil {
			return nil, err
		}
		if item.File == "" && item.Failure == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("artifact of %s needs a file or a failure", id))
		}
		artifacts = append(artifacts, types.Artifact{
			Component:  id,
			Attributes: types.NewAttributes(item.Attributes),
			File:       item.File,
			Producer:   item.Producer,
			Failure:    item.Failure,
		})
	}
	return artifacts, nil
}

var _ ports.GraphSourcePort = (*GraphFileAdapter)(nil)
