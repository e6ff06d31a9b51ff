package hospitals

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/epimodel/hospitals/geo"
	"github.com/epimodel/hospitals/schema"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "hospitals")
}

var (
	ErrNoSpatialIndex = fmt.Errorf("no spatial index built over hospitals")
	ErrNoCoordinates  = fmt.Errorf("hospital has no coordinates")
)

// DefaultNeighbourHospitals is how many nearby candidates an admission
// decision considers when the caller does not configure it.
const DefaultNeighbourHospitals = 5

// Hospitals owns the hospital set and locates patients in a nearby
// one. An admission checks the closest NeighbourHospitals in order and
// takes the first with a free bed of the right kind; when all of them
// are full it picks one of them at random and that hospital overflows.
type Hospitals struct {
	Members            []*Hospital
	NeighbourHospitals int
	BoxMode            bool

	tree *geo.BallTree
	rng  *rand.Rand
}

// New groups hospitals and, unless disabled, builds the spatial index
// over their coordinates. The index positions match the member order.
func New(members []*Hospital, neighbourHospitals int, boxMode bool, buildTree bool) (*Hospitals, error) {
	h := &Hospitals{
		Members:            members,
		NeighbourHospitals: neighbourHospitals,
		BoxMode:            boxMode,
		rng:                rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if buildTree && len(members) > 0 {
		locations := make([]schema.Location, len(members))
		for i, hospital := range members {
			if hospital.Coordinates == nil {
				return nil, ErrNoCoordinates
			}
			locations[i] = *hospital.Coordinates
		}

		tree, err := geo.NewBallTree(locations)
		if err != nil {
			return nil, err
		}
		h.tree = tree
	}

	return h, nil
}

// FromRecords builds one hospital per dataset record and indexes their
// coordinates.
func FromRecords(records []schema.HospitalRecord, neighbourHospitals int) (*Hospitals, error) {
	members := make([]*Hospital, 0, len(records))
	for _, record := range records {
		members = append(members, hospitalFromRecord(record, nil))
	}

	log.Info("there are ", len(members), " hospitals in the world")

	return New(members, neighbourHospitals, false, true)
}

// ForGeography builds hospitals only for records whose area belongs to
// the given geography, attaching the matching area to each hospital.
func ForGeography(geography schema.Geography, records []schema.HospitalRecord, neighbourHospitals int) (*Hospitals, error) {
	areas := geography.AreasByName()

	members := make([]*Hospital, 0, len(records))
	for _, record := range records {
		area, ok := areas[record.AreaName]
		if !ok {
			continue
		}
		members = append(members, hospitalFromRecord(record, area))
	}

	log.Info("there are ", len(members), " hospitals in this geography")

	return New(members, neighbourHospitals, false, true)
}

// ForBoxMode is the degenerate two-hospital world used by simulations
// that do not model geography: a small facility and a second one large
// enough to never run out of beds. No spatial index is built.
func ForBoxMode() *Hospitals {
	members := []*Hospital{
		NewHospital(10, 2, nil, nil, ""),
		NewHospital(5000, 5000, nil, nil, ""),
	}

	// neighbour count is inapplicable without geography
	h, _ := New(members, 0, true, false)
	return h
}

func hospitalFromRecord(record schema.HospitalRecord, area *schema.Area) *Hospital {
	location := record.Location()
	return NewHospital(record.Beds, record.ICUBeds, &location, area, record.TrustCode)
}

// SetRand replaces the random source used for overflow selection.
// Admissions are reproducible when the source is seeded.
func (h *Hospitals) SetRand(rng *rand.Rand) {
	h.rng = rng
}

// GetClosestHospitalsIdx returns the member positions of the k
// hospitals closest to the given coordinates, ascending by
// great-circle distance. k is clamped to the collection size.
func (h *Hospitals) GetClosestHospitalsIdx(location schema.Location, k int) ([]int, error) {
	if h.tree == nil {
		return nil, ErrNoSpatialIndex
	}
	indices, _ := h.tree.Query(location, k)
	return indices, nil
}

// GetClosestHospitals returns the k hospitals closest to the given
// coordinates, ascending by great-circle distance.
func (h *Hospitals) GetClosestHospitals(location schema.Location, k int) ([]*Hospital, error) {
	indices, err := h.GetClosestHospitalsIdx(location, k)
	if err != nil {
		return nil, err
	}

	members := make([]*Hospital, len(indices))
	for i, index := range indices {
		members[i] = h.Members[index]
	}
	return members, nil
}

// Allocate places a severely ill person in a hospital. The closest
// NeighbourHospitals candidates are checked in order and the person is
// admitted into the first one whose relevant capacity threshold is not
// yet reached. When every candidate is full, one of them is chosen
// uniformly at random and admitted anyway: placing the patient takes
// priority over the stated bed count.
//
// In box mode there is no geography and the members are checked in
// collection order instead.
func (h *Hospitals) Allocate(person *schema.Person) (*Hospital, error) {
	if person.Infection == nil {
		return nil, ErrNotHospitalised
	}

	needsICU := false
	switch person.Infection.Tag {
	case schema.IntensiveCare:
		needsICU = true
	case schema.Hospitalised:
	default:
		return nil, ErrNotHospitalised
	}

	candidates, err := h.candidates(person.Location)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoSpatialIndex
	}

	for _, hospital := range candidates {
		if needsICU && !hospital.FullICU() {
			return hospital, hospital.AddAsPatient(person)
		}
		if !needsICU && !hospital.Full() {
			return hospital, hospital.AddAsPatient(person)
		}
	}

	// all nearby hospitals are full, overflow a random one
	hospital := candidates[h.rng.Intn(len(candidates))]
	log.WithFields(logrus.Fields{
		"hospital": hospital.ID,
		"icu":      needsICU,
	}).Warn("all nearby hospitals full, overflowing")

	return hospital, hospital.AddAsPatient(person)
}

func (h *Hospitals) candidates(location schema.Location) ([]*Hospital, error) {
	if h.BoxMode {
		return h.Members, nil
	}

	k := h.NeighbourHospitals
	if k <= 0 {
		k = DefaultNeighbourHospitals
	}
	return h.GetClosestHospitals(location, k)
}
