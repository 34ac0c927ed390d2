package bench

import (
	"fmt"
	"math/rand"
	"time"

	"projects-service/internal/domain"
)

// Generator produces synthetic activity logs. Two generators with the same
// seed and clock produce identical datasets.
type Generator struct {
	rnd *rand.Rand
	now func() time.Time
}

func NewGenerator(seed int64, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed)), now: now}
}

// Generate returns n records with project ids in [1,49] and user ids in [1,99].
// A negative n yields no records.
func (g *Generator) Generate(n int) []domain.ActivityLog {
	if n < 0 {
		n = 0
	}
	out := make([]domain.ActivityLog, n)
	for i := range out {
		out[i] = domain.ActivityLog{
			ProjectID:      1 + g.rnd.Intn(49),
			UserID:         1 + g.rnd.Intn(99),
			ActionType:     domain.ActivityActions[g.rnd.Intn(len(domain.ActivityActions))],
			Timestamp:      g.now().UTC(),
			DetailsPayload: fmt.Sprintf(`{"description":"Log entry #%d","meta_code":%d}`, i, g.rnd.Intn(9999)),
		}
	}
	return out
}

// CountForProject reports how many generated records belong to projectID.
func CountForProject(logs []domain.ActivityLog, projectID int) int {
	n := 0
	for _, l := range logs {
		if l.ProjectID == projectID {
			n++
		}
	}
	return n
}
