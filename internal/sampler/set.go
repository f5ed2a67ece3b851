package sampler

import (
	"fmt"
	"math/rand/v2"
)

// EnsembleSet keeps the ensembles of a run in catalog order.
type EnsembleSet struct {
	ensembles []Ensemble
	index     map[string]int
}

// SampleAll draws count samples for each distribution in order, all from
// the same source. Names must be unique.
func SampleAll(dists []Distribution, count int, src rand.Source) (EnsembleSet, error) {
	set := EnsembleSet{index: make(map[string]int, len(dists))}

	for _, d := range dists {
		if _, dup := set.index[d.Name]; dup {
			return EnsembleSet{}, fmt.Errorf("%w: parameter %q listed twice", ErrInvalidParameter, d.Name)
		}
		e, err := SampleNormal(d, count, src)
		if err != nil {
			return EnsembleSet{}, err
		}
		set.index[d.Name] = len(set.ensembles)
		set.ensembles = append(set.ensembles, e)
	}

	return set, nil
}

// Get looks an ensemble up by parameter name.
func (s EnsembleSet) Get(name string) (Ensemble, bool) {
	i, ok := s.index[name]
	if !ok {
		return Ensemble{}, false
	}
	return s.ensembles[i], true
}

// All returns the ensembles in catalog order.
func (s EnsembleSet) All() []Ensemble {
	out := make([]Ensemble, len(s.ensembles))
	copy(out, s.ensembles)
	return out
}

// Len returns the number of parameters in the set.
func (s EnsembleSet) Len() int { return len(s.ensembles) }
