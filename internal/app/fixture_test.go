package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// app -> lib -> {core, util}; tool -> lib. The artifact pass omits util and
// tool, and app carries one broken edge.
const fixtureGraph = `
passes:
  graph:
    - id: "project::app"
      dependencies:
        - selected: "project::lib"
        - requested: "module:org.acme:missing:1.0.0"
          failure: "could not find org.acme:missing:1.0.0"
    - id: "project::lib"
      dependencies:
        - selected: "module:org.acme:core:1.2.0"
        - selected: "project::util"
    - id: "project::util"
    - id: "module:org.acme:core:1.2.0"
    - id: "project::tool"
      dependencies:
        - selected: "project::lib"
  artifacts:
    - id: "project::app"
      dependencies:
        - selected: "project::lib"
    - id: "project::lib"
      dependencies:
        - selected: "module:org.acme:core:1.2.0"
    - id: "module:org.acme:core:1.2.0"
artifacts:
  - component: "project::lib"
    attributes: {artifactType: jar}
    file: lib/build/libs/lib.jar
    producer: ":lib:jar"
  - component: "project::lib"
    attributes: {artifactType: classes}
    file: lib/build/classes/java/main
    producer: ":lib:compileJava"
  - component: "project::util"
    attributes: {artifactType: jar}
    file: util/build/libs/util.jar
    producer: ":util:jar"
  - component: "module:org.acme:core:1.2.0"
    attributes: {artifactType: jar}
    file: caches/org.acme/core-1.2.0.jar
`

var fixedClock = func() time.Time {
	return time.Date(2026, 1, 27, 12, 0, 0, 0, time.UTC)
}

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testService() Service {
	service := NewService()
	service.Clock = fixedClock
	return service
}
