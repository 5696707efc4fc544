package dataset

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/pkg/errors"
	"github.com/sportsfield-microservice/internal/pkg/validator"
)

// Build проверяет сырые записи и переводит их в строгую форму FieldRecord.
// Первая же ошибка возвращается как errors.ErrInvalidDataset.
func Build(raw []RawField) ([]domain.FieldRecord, error) {
	doc := Document{Fields: raw}
	if err := validator.Validate(doc); err != nil {
		return nil, errors.ErrInvalidDataset.WithDetails(map[string]interface{}{
			"violations": validator.Violations(err),
		})
	}

	records := make([]domain.FieldRecord, 0, len(raw))
	for _, f := range raw {
		records = append(records, toDomain(f))
	}
	return records, nil
}

func toDomain(f RawField) domain.FieldRecord {
	p := f.Properties

	rings := make([]domain.Ring, 0, len(f.Geometry.Coordinates))
	for _, coords := range f.Geometry.Coordinates {
		ring := make(domain.Ring, 0, len(coords))
		for _, c := range coords {
			ring = append(ring, domain.Point{Lat: c[0], Lon: c[1]})
		}
		rings = append(rings, ring)
	}

	coverage := make([]domain.AgeCoverage, 0, len(p.Coverage))
	for _, row := range p.Coverage {
		coverage = append(coverage, domain.AgeCoverage{AgeBracket: row.AgeBracket, Count: row.Count})
	}

	instructors := make([]domain.Instructor, 0, len(p.Instructors))
	for _, in := range p.Instructors {
		presence := domain.Presence(in.Presence)
		if presence == "" {
			presence = domain.PresenceNone
		}
		initials := in.Initials
		if initials == "" {
			initials = Initials(in.Name)
		}
		instructors = append(instructors, domain.Instructor{
			Name:         in.Name,
			Role:         in.Role,
			Availability: in.Availability,
			Presence:     presence,
			Status:       in.Status,
			ImageURL:     in.ImageURL,
			Initials:     initials,
		})
	}

	return domain.FieldRecord{
		ID:          string(p.ParkID),
		Name:        p.Name,
		Description: nonNil(p.Description),
		Geometry:    rings,
		Images:      nonNil(p.Images),
		Clubs:       nonNil(p.Clubs),
		AgeCoverage: coverage,
		Instructors: instructors,
	}
}

// Initials - первые буквы первых двух слов имени: "James Perez" -> "JP"
func Initials(name string) string {
	out := make([]rune, 0, 2)
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
