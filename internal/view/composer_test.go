package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/view"
)

func triangle() []domain.Ring {
	return []domain.Ring{{
		{Lat: 7.0725, Lon: -73.8310},
		{Lat: 7.0730, Lon: -73.8305},
		{Lat: 7.0720, Lon: -73.8300},
	}}
}

func fieldF1() domain.FieldRecord {
	return domain.FieldRecord{
		ID:          "F1",
		Name:        "Cancha Norte",
		Description: []string{"Césped sintético", "Iluminación nocturna y graderías"},
		Geometry:    triangle(),
		Images:      []string{"a.jpg", "b.jpg"},
		Clubs:       []string{"Club A", "Club B"},
		AgeCoverage: []domain.AgeCoverage{{AgeBracket: "6-10", Count: 12}, {AgeBracket: "11-15", Count: 30}},
		Instructors: []domain.Instructor{
			{Name: "Ana Pérez", Role: "Entrenadora", Availability: "Lun-Vie", Presence: domain.PresenceOnline},
		},
	}
}

func fieldF2() domain.FieldRecord {
	return domain.FieldRecord{
		ID:          "F2",
		Name:        "Cancha Sur",
		Description: []string{"Tierra"},
		Geometry:    triangle(),
		Images:      []string{},
		Clubs:       []string{},
		AgeCoverage: []domain.AgeCoverage{},
		Instructors: []domain.Instructor{},
	}
}

func TestSummary(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		r := fieldF1()
		s := view.Summary(r)

		assert.Equal(t, "F1", s.FieldID)
		assert.Equal(t, r.Name, s.Title)
		assert.Equal(t, "Césped sintético", s.Lead)
		assert.Equal(t, "Iluminación nocturna y graderías", s.SecondaryText)
		require.NotNil(t, s.HeroImage)
		assert.Equal(t, "a.jpg", *s.HeroImage)
		assert.Equal(t, view.DetailsLabel, s.DetailsLabel)
		assert.Equal(t, r.Instructors, s.Instructors)
	})

	t.Run("details menu", func(t *testing.T) {
		s := view.Summary(fieldF2())

		require.Len(t, s.DetailsMenu, 2)
		assert.Equal(t, domain.MenuAction{Key: view.EmailActionKey, Label: "Enviar email", Icon: "Mail"}, s.DetailsMenu[0])
		assert.Equal(t, domain.MenuAction{Key: view.CalendarActionKey, Label: "Agendar cita", Icon: "Calendar"}, s.DetailsMenu[1])

		// each summary owns its menu
		s.DetailsMenu[0].Label = "changed"
		assert.Equal(t, "Enviar email", view.Summary(fieldF2()).DetailsMenu[0].Label)
	})

	t.Run("no images and short description", func(t *testing.T) {
		s := view.Summary(fieldF2())

		assert.Nil(t, s.HeroImage)
		assert.Equal(t, "Tierra", s.Lead)
		assert.Equal(t, "", s.SecondaryText)
		assert.NotNil(t, s.Instructors)
		assert.Empty(t, s.Instructors)
	})

	t.Run("empty description", func(t *testing.T) {
		r := fieldF2()
		r.Description = nil

		s := view.Summary(r)
		assert.Equal(t, "", s.Lead)
		assert.Equal(t, "", s.SecondaryText)
	})
}

func TestExtended(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		r := fieldF1()
		e := view.Extended(r)

		assert.Equal(t, r.Name, e.Title)
		assert.Equal(t, []string{"Césped sintético", "Iluminación nocturna y graderías"}, e.Sections)
		assert.Equal(t, domain.Table{
			Columns: []string{"CLUBES"},
			Rows:    [][]string{{"Club A"}, {"Club B"}},
		}, e.ClubTable)
		assert.Equal(t, domain.Table{
			Columns: []string{"EDAD", "CANTIDAD"},
			Rows:    [][]string{{"6-10", "12"}, {"11-15", "30"}},
		}, e.CoverageTable)
		assert.Equal(t, []string{"a.jpg", "b.jpg"}, e.Gallery)
	})

	t.Run("missing second description segment", func(t *testing.T) {
		e := view.Extended(fieldF2())

		assert.Equal(t, []string{"Tierra", ""}, e.Sections)
		assert.Empty(t, e.Gallery)
		assert.NotNil(t, e.Gallery)
		assert.Empty(t, e.ClubTable.Rows)
		assert.Equal(t, []string{"EDAD", "CANTIDAD"}, e.CoverageTable.Columns)
	})

	t.Run("single image", func(t *testing.T) {
		r := fieldF1()
		r.Images = []string{"only.jpg"}

		assert.Equal(t, []string{"only.jpg"}, view.Extended(r).Gallery)
	})

	t.Run("deterministic", func(t *testing.T) {
		r := fieldF1()
		assert.Equal(t, view.Extended(r), view.Extended(r))
		assert.Equal(t, view.Summary(r), view.Summary(r))
	})

	t.Run("result does not alias record", func(t *testing.T) {
		r := fieldF1()
		e := view.Extended(r)
		e.Gallery[0] = "changed.jpg"

		assert.Equal(t, "a.jpg", r.Images[0])
	})
}
