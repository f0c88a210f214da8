package navigation_test

import (
	"testing"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func candidate(name string, distNM, bearing float64) navigation.Candidate {
	return navigation.Candidate{
		Waypoint: shared.Waypoint{Name: name},
		Course:   navigation.Course{DistanceNM: distNM, BearingDeg: bearing},
	}
}

func TestPriority(t *testing.T) {
	tests := []struct {
		name string
		c    navigation.Candidate
		want int
	}{
		{"airport on course at ideal distance", candidate("KBDR", 20, 90), 8 + 5 + 3 + 2 + 2},
		{"town 6 degrees off", candidate("Milford", 10, 96), 3 + 2},
		{"town 9 degrees off at 17 nm", candidate("Guilford", 17, 81), 2 + 2},
		{"town 12 degrees off", candidate("Norwalk", 25, 102), 0},
		{"mixed case is not an airport", candidate("Kbdr", 40, 150), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, navigation.Priority(tt.c, 90, 20))
		})
	}
}

func TestRankCandidates_StableDescending(t *testing.T) {
	input := []navigation.Candidate{
		candidate("Alpha", 40, 150),
		candidate("Bravo", 20, 90),
		candidate("Charlie", 40, 150),
		candidate("KDDD", 20, 90),
	}

	ranked := navigation.RankCandidates(input, 90, 20)

	names := make([]string, len(ranked))
	for i, w := range ranked {
		names[i] = w.Name
	}
	assert.Equal(t, []string{"KDDD", "Bravo", "Alpha", "Charlie"}, names)
	assert.Equal(t, 20, ranked[0].Priority)
	assert.Equal(t, 20.0, ranked[0].DistanceNM)

	// Input is untouched
	assert.Equal(t, "Alpha", input[0].Waypoint.Name)
	assert.Zero(t, input[1].Waypoint.Priority)
}
