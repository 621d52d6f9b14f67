package deck

import (
	"fmt"

	mapset "github.com/deckarep/golang-set"
)

// Audit verifies that the groups hold exactly `expected` distinct cards between them
func Audit(expected int, groups ...*Group) error {
	seen := mapset.NewSet()
	total := 0
	for _, g := range groups {
		if g.Len() > g.Cap() {
			return fmt.Errorf("group %s holds %d cards, max is %d", g.Name(), g.Len(), g.Cap())
		}

		for _, c := range g.cards {
			total++
			if !seen.Add(c.Name()) {
				return fmt.Errorf("card %s found twice (second time in %s)", c.Name(), g.Name())
			}
		}
	}

	if total != expected {
		return fmt.Errorf("expected %d cards, found %d", expected, total)
	}

	return nil
}
