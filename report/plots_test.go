package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderImportanceRejectsNonPositiveFeatureCounts(t *testing.T) {
	importance := map[string]float64{"g1": 0.2, "g2": 0.1}
	for _, k := range []int{0, -1} {
		err := RenderImportance("importance.png", importance, k)
		assert.Error(t, err)
	}
}
