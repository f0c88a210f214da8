package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/vfrplanner-go/pkg/utils"
)

func TestAngles(t *testing.T) {
	assert.InDelta(t, 350.0, utils.NormalizeDegrees(-10), 1e-9)
	assert.InDelta(t, 0.0, utils.NormalizeDegrees(360), 1e-9)
	assert.InDelta(t, 20.0, utils.SignedAngleDiff(350, 10), 1e-9)
	assert.InDelta(t, -20.0, utils.SignedAngleDiff(10, 350), 1e-9)
	assert.InDelta(t, 20.0, utils.AbsAngleDiff(10, 350), 1e-9)
	assert.InDelta(t, 180.0, utils.SignedAngleDiff(0, 180), 1e-9)
}

func TestRoundUpToThousand(t *testing.T) {
	assert.Equal(t, 0, utils.RoundUpToThousand(0))
	assert.Equal(t, 1000, utils.RoundUpToThousand(1))
	assert.Equal(t, 1000, utils.RoundUpToThousand(1000))
	assert.Equal(t, 3000, utils.RoundUpToThousand(2000.5))
}

func TestRankBy_StableDescending(t *testing.T) {
	type item struct {
		name  string
		score int
	}
	items := []item{{"a", 1}, {"b", 3}, {"c", 3}, {"d", 2}}

	ranked := utils.RankBy(items, func(i item) int { return i.score })

	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.name
	}
	assert.Equal(t, []string{"b", "c", "d", "a"}, names)
	assert.Equal(t, "a", items[0].name)
}
