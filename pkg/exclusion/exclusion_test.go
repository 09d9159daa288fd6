package exclusion

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMatchesAncestors(t *testing.T) {
	match := Build([]string{"**/node_modules"}, "/proj")

	assert.True(t, match("/proj/node_modules/x.js"))
	assert.True(t, match("/proj/packages/a/node_modules/lib/deep/y.js"))
	assert.True(t, match("/proj/node_modules"))
	assert.False(t, match("/proj/src/main.go"))
	assert.False(t, match("/proj"), "root never matches itself")
}

func TestRootIsNeverAMatchTarget(t *testing.T) {
	match := Build([]string{"**/node_modules"}, "/work/node_modules")
	assert.False(t, match("/work/node_modules"))
	assert.False(t, match("/work/node_modules/a.js"))
}

func TestPathsOutsideRootNeverMatch(t *testing.T) {
	match := Build([]string{"**/node_modules", "/other/**"}, "/proj")
	assert.False(t, match("/other/node_modules/x.js"))
	assert.False(t, match("/project/node_modules/x.js"))
	assert.False(t, match("../sibling/node_modules/x.js"))
	assert.True(t, match("/proj/node_modules/x.js"))
}

func TestFilePatterns(t *testing.T) {
	match := Build([]string{"**/*.min.js", "docs/generated/**"}, "/proj")

	assert.True(t, match("/proj/lib/jquery.min.js"))
	assert.True(t, match("/proj/docs/generated/api/index.md"))
	assert.False(t, match("/proj/lib/jquery.js"))
	assert.False(t, match("/proj/docs/guide.md"))
}

func TestRelativePaths(t *testing.T) {
	match := Build([]string{"**/.git"}, "/proj")
	assert.True(t, match(".git/config"))
	assert.False(t, match("src/config"))
}

func TestAbsoluteGlob(t *testing.T) {
	match := Build([]string{"/proj/vendor"}, "/proj")
	assert.True(t, match("/proj/vendor/pkg/a.go"))
	assert.False(t, match("/proj/src/vendor.go"))
}

func TestInvalidAndEmptyGlobs(t *testing.T) {
	match := Build([]string{"", "  ", "[unclosed"}, "/proj")
	assert.False(t, match("/proj/[unclosed"))
	assert.False(t, match("/proj/anything"))
}

func TestConcurrentUse(t *testing.T) {
	match := Build([]string{"**/node_modules"}, "/proj")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, match("/proj/node_modules/x.js"))
			assert.False(t, match("/proj/src/x.js"))
		}()
	}
	wg.Wait()
}
