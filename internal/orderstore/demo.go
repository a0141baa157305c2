package orderstore

import (
	"fmt"
	"math/rand"
	"time"
)

var demoCustomers = []string{
	"Ayesha Khan", "Bilal Ahmed", "Sara Malik", "Usman Tariq", "Hina Raza", "Omar Farooq",
}

var demoMethods = []string{PaymentCOD, "advance_10", "full_100", "gateway"}

// SeedDemo adds n synthetic orders spread over the last week. It is only used
// when the demo feed is switched on.
func SeedDemo(s *Store, n int, rnd *rand.Rand) {
	now := s.now()
	for i := 0; i < n; i++ {
		placed := now.Add(-time.Duration(rnd.Intn(7*24)) * time.Hour)
		s.Add(Entry{
			OrderNumber:   fmt.Sprintf("DEMO-%04d", i+1),
			CustomerName:  demoCustomers[rnd.Intn(len(demoCustomers))],
			Total:         int64(20000 + rnd.Intn(40)*1000),
			PaymentMethod: demoMethods[rnd.Intn(len(demoMethods))],
			Status:        "pending",
			PlacedAt:      placed,
		})
	}
}
