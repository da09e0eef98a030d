package profile

import "fmt"

// Collection names a repeated sub-entity of the profile. The value is the
// path segment the API uses for it.
type Collection string

const (
	CollectionEducation        Collection = "education"
	CollectionSkills           Collection = "skills"
	CollectionExperience       Collection = "experience"
	CollectionProjects         Collection = "projects"
	CollectionCertifications   Collection = "certifications"
	CollectionAchievements     Collection = "achievements"
	CollectionExternalProfiles Collection = "external-profiles"
)

// Collections lists every collection in display order.
var Collections = []Collection{
	CollectionEducation,
	CollectionSkills,
	CollectionExperience,
	CollectionProjects,
	CollectionCertifications,
	CollectionAchievements,
	CollectionExternalProfiles,
}

func ParseCollection(s string) (Collection, error) {
	for _, c := range Collections {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCollection, s)
}

// Len returns the size of collection c in p.
func (p *Profile) Len(c Collection) int {
	switch c {
	case CollectionEducation:
		return len(p.Education)
	case CollectionSkills:
		return len(p.Skills)
	case CollectionExperience:
		return len(p.Experience)
	case CollectionProjects:
		return len(p.Projects)
	case CollectionCertifications:
		return len(p.Certifications)
	case CollectionAchievements:
		return len(p.Achievements)
	case CollectionExternalProfiles:
		return len(p.ExternalProfiles)
	}
	return 0
}
