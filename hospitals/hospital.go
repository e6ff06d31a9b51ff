package hospitals

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/epimodel/hospitals/schema"
)

var (
	// ErrNotHospitalised signals a caller bug: the person's outcome
	// tag does not warrant admission into a hospital.
	ErrNotHospitalised = fmt.Errorf("this person shouldn't be trying to get to a hospital")

	ErrPersonNotAdmitted = fmt.Errorf("person is not in this hospital")
	ErrNoArea            = fmt.Errorf("hospital has no area assigned")
	ErrUnknownSubgroup   = fmt.Errorf("unknown hospital subgroup")
)

// SubgroupType names the three disjoint sub-populations of a hospital.
type SubgroupType int

const (
	Workers SubgroupType = iota
	Patients
	ICUPatients
)

func (s SubgroupType) String() string {
	switch s {
	case Workers:
		return "workers"
	case Patients:
		return "patients"
	case ICUPatients:
		return "icu_patients"
	}
	return fmt.Sprintf("subgroup(%d)", int(s))
}

var hospitalIDCounter uint64

// Hospital is a single facility: static capacity and location, plus
// the people currently inside it split into workers, regular patients
// and ICU patients. The bed counts are advisory thresholds consulted
// by the allocator, not hard limits; see Hospitals.Allocate for the
// overflow rule.
//
// Subgroup mutation is guarded by a per-hospital lock so concurrent
// admissions into the same facility never race on the occupancy
// counters.
type Hospital struct {
	ID          uint64
	NBeds       int
	NICUBeds    int
	Coordinates *schema.Location
	Area        *schema.Area
	TrustCode   string

	mu        sync.Mutex
	subgroups map[SubgroupType]map[string]*schema.Person
}

// NewHospital creates a hospital with the given regular and ICU bed
// capacity. Coordinates and area may be nil in box mode.
func NewHospital(nBeds, nICUBeds int, coordinates *schema.Location, area *schema.Area, trustCode string) *Hospital {
	if nBeds < 0 {
		nBeds = 0
	}
	if nICUBeds < 0 {
		nICUBeds = 0
	}
	return &Hospital{
		ID:          atomic.AddUint64(&hospitalIDCounter, 1),
		NBeds:       nBeds,
		NICUBeds:    nICUBeds,
		Coordinates: coordinates,
		Area:        area,
		TrustCode:   trustCode,
		subgroups: map[SubgroupType]map[string]*schema.Person{
			Workers:     {},
			Patients:    {},
			ICUPatients: {},
		},
	}
}

// Add puts a person into the named subgroup. Callers keep the
// single-assignment discipline; nothing here checks the person is not
// already somewhere else in the hospital.
func (h *Hospital) Add(person *schema.Person, subgroup SubgroupType) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch subgroup {
	case Workers, Patients, ICUPatients:
		h.subgroups[subgroup][person.ID] = person
		return nil
	default:
		return ErrUnknownSubgroup
	}
}

// AddAsPatient admits a person into the medical subgroup matching
// their outcome tag: intensive care or a regular bed. Any other tag is
// a precondition violation and leaves the hospital untouched.
func (h *Hospital) AddAsPatient(person *schema.Person) error {
	if person.Infection == nil {
		return ErrNotHospitalised
	}

	switch person.Infection.Tag {
	case schema.IntensiveCare:
		return h.Add(person, ICUPatients)
	case schema.Hospitalised:
		return h.Add(person, Patients)
	default:
		return ErrNotHospitalised
	}
}

// Discharge removes a person from whichever subgroup holds them.
func (h *Hospital) Discharge(person *schema.Person) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, members := range h.subgroups {
		if _, ok := members[person.ID]; ok {
			delete(members, person.ID)
			return nil
		}
	}
	return ErrPersonNotAdmitted
}

// Occupancy - number of people currently in the subgroup
func (h *Hospital) Occupancy(subgroup SubgroupType) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subgroups[subgroup])
}

// Holds reports whether the person is in the given subgroup.
func (h *Hospital) Holds(person *schema.Person, subgroup SubgroupType) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.subgroups[subgroup][person.ID]
	return ok
}

// Full - whether all regular beds are being used
func (h *Hospital) Full() bool {
	return h.Occupancy(Patients) >= h.NBeds
}

// FullICU - whether all ICU beds are being used
func (h *Hospital) FullICU() bool {
	return h.Occupancy(ICUPatients) >= h.NICUBeds
}

// SuperArea - the super area containing the hospital's area
func (h *Hospital) SuperArea() (*schema.SuperArea, error) {
	if h.Area == nil {
		return nil, ErrNoArea
	}
	return h.Area.SuperArea, nil
}

// Region - the region containing the hospital's super area
func (h *Hospital) Region() (*schema.Region, error) {
	superArea, err := h.SuperArea()
	if err != nil {
		return nil, err
	}
	if superArea == nil {
		return nil, ErrNoArea
	}
	return superArea.Region, nil
}

// RegionName - the name of the hospital's region
func (h *Hospital) RegionName() (string, error) {
	region, err := h.Region()
	if err != nil {
		return "", err
	}
	if region == nil {
		return "", ErrNoArea
	}
	return region.Name, nil
}
