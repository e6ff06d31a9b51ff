package hospitals

import (
	"context"

	"github.com/epimodel/hospitals/schema"
)

// ExternalHospitalSpec tags an external reference as a hospital.
const ExternalHospitalSpec = "hospital"

// ExternalHospital is a non-owning handle to a hospital that lives in
// another domain of a distributed simulation. It carries just enough
// identity to route a request there; it never holds or mutates
// capacity state. Any admission against it must go through the
// DomainRouter of the owning domain.
type ExternalHospital struct {
	ID         uint64 `json:"id"`
	Spec       string `json:"spec"`
	DomainID   int    `json:"domain_id"`
	RegionName string `json:"region_name"`
}

// NewExternalHospital - a routing handle for a hospital owned by
// another domain
func NewExternalHospital(id uint64, domainID int, regionName string) *ExternalHospital {
	return &ExternalHospital{
		ID:         id,
		Spec:       ExternalHospitalSpec,
		DomainID:   domainID,
		RegionName: regionName,
	}
}

//go:generate mockgen -destination=mocks/domainrouter.go -package=mocks github.com/epimodel/hospitals/hospitals DomainRouter

// DomainRouter delivers capacity-affecting requests to the simulation
// domain that owns a hospital. The surrounding distributed simulation
// implements it; this subsystem only issues requests through it.
type DomainRouter interface {
	RequestAdmission(ctx context.Context, hospital *ExternalHospital, person *schema.Person) error
}
