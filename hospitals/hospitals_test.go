package hospitals

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/epimodel/hospitals/schema"
)

// fixture records: a small ward near the test point, a bigger one an
// hour south, and a large one far away
var testRecords = []schema.HospitalRecord{
	{AreaName: "london", Latitude: 51.5074, Longitude: -0.1278, Beds: 2, ICUBeds: 1, TrustCode: "RJ1"},
	{AreaName: "brighton", Latitude: 50.8225, Longitude: -0.1372, Beds: 3, ICUBeds: 2, TrustCode: "RXH"},
	{AreaName: "manchester", Latitude: 53.4808, Longitude: -2.2426, Beds: 10, ICUBeds: 5, TrustCode: "R0A"},
}

var nearLondon = schema.Location{Latitude: 51.5, Longitude: -0.12}

type AllocatorTestSuite struct {
	suite.Suite
	hospitals *Hospitals
}

func (s *AllocatorTestSuite) SetupTest() {
	hospitals, err := FromRecords(testRecords, 2)
	if err != nil {
		s.T().Fatalf("build hospitals with error: %s", err)
	}
	hospitals.SetRand(rand.New(rand.NewSource(1)))
	s.hospitals = hospitals
}

func (s *AllocatorTestSuite) memberIndex(hospital *Hospital) int {
	for i, member := range s.hospitals.Members {
		if member == hospital {
			return i
		}
	}
	return -1
}

func (s *AllocatorTestSuite) fillWard(index int) {
	hospital := s.hospitals.Members[index]
	for !hospital.Full() {
		s.Require().NoError(hospital.AddAsPatient(
			schema.NewInfectedPerson(nearLondon, schema.Hospitalised)))
	}
}

func (s *AllocatorTestSuite) TestFromRecords() {
	s.Equal(3, len(s.hospitals.Members))
	s.Equal(2, s.hospitals.NeighbourHospitals)
	s.False(s.hospitals.BoxMode)

	london := s.hospitals.Members[0]
	s.Equal(2, london.NBeds)
	s.Equal(1, london.NICUBeds)
	s.Equal("RJ1", london.TrustCode)
	s.NotNil(london.Coordinates)
	s.Nil(london.Area)
}

func (s *AllocatorTestSuite) TestGetClosestHospitalsOrdered() {
	closest, err := s.hospitals.GetClosestHospitals(nearLondon, 3)
	s.NoError(err)
	s.Equal(3, len(closest))
	s.Equal(0, s.memberIndex(closest[0])) // london
	s.Equal(1, s.memberIndex(closest[1])) // brighton
	s.Equal(2, s.memberIndex(closest[2])) // manchester
}

func (s *AllocatorTestSuite) TestGetClosestHospitalsIdx() {
	indices, err := s.hospitals.GetClosestHospitalsIdx(nearLondon, 2)
	s.NoError(err)
	s.Equal([]int{0, 1}, indices)
}

func (s *AllocatorTestSuite) TestGetClosestHospitalsClampsK() {
	closest, err := s.hospitals.GetClosestHospitals(nearLondon, 100)
	s.NoError(err)
	s.Equal(len(s.hospitals.Members), len(closest))
}

func (s *AllocatorTestSuite) TestAllocateNearestWithCapacity() {
	person := schema.NewInfectedPerson(nearLondon, schema.Hospitalised)
	hospital, err := s.hospitals.Allocate(person)
	s.NoError(err)
	s.Equal(0, s.memberIndex(hospital))
	s.True(hospital.Holds(person, Patients))
}

func (s *AllocatorTestSuite) TestAllocateICU() {
	person := schema.NewInfectedPerson(nearLondon, schema.IntensiveCare)
	hospital, err := s.hospitals.Allocate(person)
	s.NoError(err)
	s.Equal(0, s.memberIndex(hospital))
	s.True(hospital.Holds(person, ICUPatients))
	s.False(hospital.Holds(person, Patients))
}

func (s *AllocatorTestSuite) TestAllocateSkipsFullHospital() {
	s.fillWard(0)

	person := schema.NewInfectedPerson(nearLondon, schema.Hospitalised)
	hospital, err := s.hospitals.Allocate(person)
	s.NoError(err)
	s.Equal(1, s.memberIndex(hospital))
	s.True(hospital.Holds(person, Patients))
}

func (s *AllocatorTestSuite) TestAllocateOverflowStaysInCandidates() {
	s.fillWard(0)
	s.fillWard(1)

	for i := 0; i < 20; i++ {
		person := schema.NewInfectedPerson(nearLondon, schema.Hospitalised)
		hospital, err := s.hospitals.Allocate(person)
		s.NoError(err)
		// only the two nearest are candidates, never manchester
		s.Contains([]int{0, 1}, s.memberIndex(hospital))
		s.True(hospital.Holds(person, Patients))
	}

	s.Equal(0, s.hospitals.Members[2].Occupancy(Patients))
	total := s.hospitals.Members[0].Occupancy(Patients) + s.hospitals.Members[1].Occupancy(Patients)
	s.Equal(2+3+20, total)
}

func (s *AllocatorTestSuite) TestAllocateOverflowReproducible() {
	other, err := FromRecords(testRecords, 2)
	s.Require().NoError(err)

	s.fillWard(0)
	s.fillWard(1)
	for _, hospital := range other.Members[:2] {
		for !hospital.Full() {
			s.Require().NoError(hospital.AddAsPatient(
				schema.NewInfectedPerson(nearLondon, schema.Hospitalised)))
		}
	}

	s.hospitals.SetRand(rand.New(rand.NewSource(42)))
	other.SetRand(rand.New(rand.NewSource(42)))

	for i := 0; i < 10; i++ {
		got, err := s.hospitals.Allocate(schema.NewInfectedPerson(nearLondon, schema.Hospitalised))
		s.NoError(err)
		want, err := other.Allocate(schema.NewInfectedPerson(nearLondon, schema.Hospitalised))
		s.NoError(err)

		gotIndex := s.memberIndex(got)
		wantIndex := -1
		for j, member := range other.Members {
			if member == want {
				wantIndex = j
			}
		}
		s.Equal(wantIndex, gotIndex)
	}
}

func (s *AllocatorTestSuite) TestAllocatePrecondition() {
	person := schema.NewInfectedPerson(nearLondon, schema.Severe)
	_, err := s.hospitals.Allocate(person)
	s.Equal(ErrNotHospitalised, err)

	for _, hospital := range s.hospitals.Members {
		s.Equal(0, hospital.Occupancy(Patients))
		s.Equal(0, hospital.Occupancy(ICUPatients))
	}
}

func TestAllocatorTestSuite(t *testing.T) {
	suite.Run(t, new(AllocatorTestSuite))
}

func TestForBoxMode(t *testing.T) {
	hospitals := ForBoxMode()

	if len(hospitals.Members) != 2 {
		t.Fatalf("box mode should have exactly two hospitals, got %d", len(hospitals.Members))
	}
	if !hospitals.BoxMode {
		t.Fatal("box mode flag not set")
	}

	small, large := hospitals.Members[0], hospitals.Members[1]
	if small.NBeds != 10 || small.NICUBeds != 2 {
		t.Fatalf("unexpected small hospital capacity: %d/%d", small.NBeds, small.NICUBeds)
	}
	if large.NBeds != 5000 || large.NICUBeds != 5000 {
		t.Fatalf("unexpected large hospital capacity: %d/%d", large.NBeds, large.NICUBeds)
	}

	if _, err := hospitals.GetClosestHospitals(nearLondon, 1); err != ErrNoSpatialIndex {
		t.Fatalf("geographic query in box mode should fail, got %v", err)
	}
}

func TestBoxModeAllocateInOrder(t *testing.T) {
	hospitals := ForBoxMode()
	hospitals.SetRand(rand.New(rand.NewSource(1)))

	for i := 0; i < 10; i++ {
		hospital, err := hospitals.Allocate(schema.NewInfectedPerson(schema.Location{}, schema.Hospitalised))
		if err != nil {
			t.Fatal(err)
		}
		if hospital != hospitals.Members[0] {
			t.Fatal("expected the first box hospital while it has beds")
		}
	}

	hospital, err := hospitals.Allocate(schema.NewInfectedPerson(schema.Location{}, schema.Hospitalised))
	if err != nil {
		t.Fatal(err)
	}
	if hospital != hospitals.Members[1] {
		t.Fatal("expected the large box hospital once the small one is full")
	}
}

func TestForGeography(t *testing.T) {
	region := &schema.Region{Name: "South East"}
	geography := schema.Geography{
		Areas: []*schema.Area{
			{Name: "london", SuperArea: &schema.SuperArea{Name: "greater-london", Region: region}},
			{Name: "brighton", SuperArea: &schema.SuperArea{Name: "sussex", Region: region}},
		},
	}

	hospitals, err := ForGeography(geography, testRecords, 2)
	if err != nil {
		t.Fatal(err)
	}

	if len(hospitals.Members) != 2 {
		t.Fatalf("expected 2 hospitals inside the geography, got %d", len(hospitals.Members))
	}
	for _, hospital := range hospitals.Members {
		if hospital.Area == nil {
			t.Fatal("hospital should carry its area")
		}
		name, err := hospital.RegionName()
		if err != nil {
			t.Fatal(err)
		}
		if name != "South East" {
			t.Fatalf("unexpected region name %s", name)
		}
	}
}

func TestNoSpatialIndex(t *testing.T) {
	hospitals, err := New(nil, 2, false, true)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := hospitals.GetClosestHospitals(nearLondon, 1); err != ErrNoSpatialIndex {
		t.Fatalf("expected ErrNoSpatialIndex, got %v", err)
	}
	if _, err := hospitals.GetClosestHospitalsIdx(nearLondon, 1); err != ErrNoSpatialIndex {
		t.Fatalf("expected ErrNoSpatialIndex, got %v", err)
	}
}
