package model

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/hmworsham/dynatopmodel/forcing"
	"github.com/hmworsham/dynatopmodel/hru"
)

// Domain holds all run-constant data and is the parent to a model run:
// the unit table, the downslope weighting graphs, the channel routing
// table and the forcing record. Immutable once checked.
type Domain struct {
	Units            []hru.Params
	Wsub, Wsrf, Wovf [][]float64  // subsurface, surface and overflow weighting matrices
	Rtab             []RouteClass // channel travel-distance distribution
	Frc              *forcing.Forcing
	Obs              []float64 // observed outlet discharge [m³/h], diagnostics only
}

// RouteClass is one (distance [m], fraction) pair of the channel
// network travel-distance distribution.
type RouteClass struct {
	Dist, Frac float64
}

// Nunit returns the number of response units.
func (dom *Domain) Nunit() int { return len(dom.Units) }

// Carea returns the catchment area [m²].
func (dom *Domain) Carea() float64 {
	s := 0.
	for _, u := range dom.Units {
		s += u.Area
	}
	return s
}

// Chans returns the indices of the channel units, in unit order.
func (dom *Domain) Chans() []int {
	var c []int
	for i, u := range dom.Units {
		if u.Chan {
			c = append(c, i)
		}
	}
	return c
}

// Check validates the domain before any stepping begins. Degenerate
// but workable inputs (routing fractions not quite summing to one)
// are tolerated downstream with a printed diagnostic; everything here
// is fatal to the run.
func (dom *Domain) Check() error {
	nu := len(dom.Units)
	if nu == 0 {
		return fmt.Errorf("domain.Check: no response units")
	}
	for i, u := range dom.Units {
		if u.Area <= 0. {
			return fmt.Errorf("domain.Check: unit %d area = %v", i, u.Area)
		}
		if !u.Chan && (u.M <= 0. || u.Td < 0. || u.Srzmax < 0.) {
			return fmt.Errorf("domain.Check: unit %d carries invalid subsurface parameters (m=%v td=%v srzmax=%v)", i, u.M, u.Td, u.Srzmax)
		}
	}
	if len(dom.Chans()) == 0 {
		return fmt.Errorf("domain.Check: no unit flagged as channel")
	}
	for _, w := range [][][]float64{dom.Wsub, dom.Wsrf, dom.Wovf} {
		if w == nil {
			continue // surface/overflow graphs are optional
		}
		if err := checkWeights(w, nu); err != nil {
			return fmt.Errorf("domain.Check: %v", err)
		}
	}
	if dom.Wsub == nil {
		return fmt.Errorf("domain.Check: no subsurface weighting matrix")
	}
	if len(dom.Rtab) == 0 {
		return fmt.Errorf("domain.Check: empty routing table")
	}
	for _, rc := range dom.Rtab {
		if rc.Dist < 0. || rc.Frac < 0. {
			return fmt.Errorf("domain.Check: routing table entry (%v, %v)", rc.Dist, rc.Frac)
		}
	}
	if dom.Frc == nil {
		return fmt.Errorf("domain.Check: no forcing record")
	}
	return dom.Frc.Check()
}

func checkWeights(w [][]float64, nu int) error {
	if len(w) != nu {
		return fmt.Errorf("weighting matrix order %d does not match %d units", len(w), nu)
	}
	for i, row := range w {
		if len(row) != nu {
			return fmt.Errorf("weighting matrix row %d length %d, expected %d", i, len(row), nu)
		}
		for j, v := range row {
			if v < 0. {
				return fmt.Errorf("negative weight w[%d][%d] = %v", i, j, v)
			}
		}
	}
	return nil
}

// SaveGob Domain to gob
func (dom *Domain) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" Domain.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(dom); err != nil {
		return fmt.Errorf(" Domain.SaveGob %v", err)
	}
	f.Close()
	return nil
}

// LoadGobDomain loads
func LoadGobDomain(fp string) (*Domain, error) {
	var dom Domain
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&dom); err != nil {
		return nil, err
	}
	f.Close()
	return &dom, nil
}
