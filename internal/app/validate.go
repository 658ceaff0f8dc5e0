package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"transform-deps/internal/shared"
	"transform-deps/internal/types"
)

// Validate loads the graph file and checks that every listed component is
// part of the graph pass, which strict traversal relies on.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	graphFile := strings.TrimSpace(req.GraphFile)
	if graphFile == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("graph file is required")
	}
	source := s.GraphSource(graphFile)
	graphPass, err := source.PassProvider(types.PassKindGraph).ResolutionPass(ctx)
	if err != nil {
		return ValidateResult{}, err
	}
	artifactPass, err := source.PassProvider(types.PassKindArtifacts).ResolutionPass(ctx)
	if err != nil {
		return ValidateResult{}, err
	}
	artifacts, err := source.Artifacts()
	if err != nil {
		return ValidateResult{}, err
	}
	var missing []string
	for _, value := range shared.NonEmpty(req.Components) {
		id, err := types.ParseComponentID(value)
		if err != nil {
			return ValidateResult{}, err
		}
		if _, ok := graphPass.Find(id); !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("components missing from graph pass: %s", strings.Join(missing, ", ")))
	}
	return ValidateResult{
		GraphComponents:    len(graphPass.Components),
		ArtifactComponents: len(artifactPass.Components),
		Artifacts:          len(artifacts),
		BrokenEdges:        countBrokenEdges(graphPass) + countBrokenEdges(artifactPass),
	}, nil
}

func countBrokenEdges(pass *types.ResolutionPass) int {
	count := 0
	for _, component := range pass.Components {
		for _, dep := range component.Dependencies {
			if !dep.IsResolved() {
				count++
			}
		}
	}
	return count
}
