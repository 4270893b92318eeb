package sat

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

const maxDiversificationAttempts = 10

// CompressedKey run-length encodes the assignment ("1x2,0x3,..."). Assignments sharing the
// same run structure share a key.
func CompressedKey(assignment Assignment) string {
	var builder strings.Builder
	for i := 0; i < len(assignment); {
		run := 1
		for i+run < len(assignment) && assignment[i+run] == assignment[i] {
			run++
		}
		if builder.Len() > 0 {
			builder.WriteByte(',')
		}
		if assignment[i] {
			builder.WriteByte('1')
		} else {
			builder.WriteByte('0')
		}
		builder.WriteByte('x')
		builder.WriteString(strconv.Itoa(run))
		i += run
	}
	return builder.String()
}

// Diversifier draws initial assignments, biased against run structures that were already tried.
type Diversifier struct {
	rng   *rand.Rand
	tried map[string]int
}

func NewDiversifier(rng *rand.Rand) *Diversifier {
	return &Diversifier{rng: rng, tried: make(map[string]int)}
}

// TimesTried returns how often an assignment with the given key has been drawn.
func (d *Diversifier) TimesTried(key string) int {
	return d.tried[key]
}

// RandomInitialAssignment draws uniform assignments until one is accepted with probability
// 1/times_tried(key). After maxDiversificationAttempts draws the last one is kept.
func (d *Diversifier) RandomInitialAssignment(numVars int) Assignment {
	for attempt := 1; ; attempt++ {
		assignment := make(Assignment, numVars)
		for i := range assignment {
			assignment[i] = d.rng.IntN(2) == 1
		}

		key := CompressedKey(assignment)
		d.tried[key]++
		if attempt >= maxDiversificationAttempts || 1/float64(d.tried[key]) >= d.rng.Float64() {
			return assignment
		}
	}
}
