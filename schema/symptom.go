package schema

import "fmt"

// SymptomTag is the final outcome classification of an infection. It is
// produced by the health-index generator and consumed here to decide
// whether a person needs a regular bed or intensive care.
type SymptomTag int

const (
	Asymptomatic SymptomTag = iota
	Mild
	Severe
	Hospitalised
	IntensiveCare
	DeadHome
	DeadHospital
	DeadICU
)

var symptomTagNames = map[SymptomTag]string{
	Asymptomatic:  "asymptomatic",
	Mild:          "mild",
	Severe:        "severe",
	Hospitalised:  "hospitalised",
	IntensiveCare: "intensive_care",
	DeadHome:      "dead_home",
	DeadHospital:  "dead_hospital",
	DeadICU:       "dead_icu",
}

func (t SymptomTag) String() string {
	if name, ok := symptomTagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("symptom_tag(%d)", int(t))
}

// ParseSymptomTag - convert a tag name into a SymptomTag
func ParseSymptomTag(name string) (SymptomTag, error) {
	for tag, n := range symptomTagNames {
		if n == name {
			return tag, nil
		}
	}
	return 0, fmt.Errorf("%s is not a symptom tag", name)
}
