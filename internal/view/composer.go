// Package view собирает содержимое popup и модального окна для записи поля.
// Все функции чистые: одинаковый вход даёт структурно равный результат.
package view

import (
	"strconv"

	"github.com/sportsfield-microservice/internal/domain"
)

// DetailsLabel - подпись кнопки, открывающей модальное окно
const DetailsLabel = "Más información"

// Пункты меню кнопки подробностей
const (
	EmailActionKey    = "emailMessage"
	CalendarActionKey = "calendarEvent"
)

// Заголовки подтаблиц модального окна
const (
	ClubColumn       = "CLUBES"
	AgeBracketColumn = "EDAD"
	CountColumn      = "CANTIDAD"
)

// Summary - содержимое popup над полигоном. Никогда не падает.
func Summary(r domain.FieldRecord) domain.SummaryView {
	v := domain.SummaryView{
		FieldID:       r.ID,
		Title:         r.Name,
		Lead:          r.DescriptionAt(0),
		SecondaryText: r.DescriptionAt(1),
		DetailsLabel:  DetailsLabel,
		DetailsMenu:   detailsMenu(),
		Instructors:   make([]domain.Instructor, len(r.Instructors)),
	}
	copy(v.Instructors, r.Instructors)

	if hero, ok := r.ImageAt(0); ok {
		v.HeroImage = &hero
	}
	return v
}

func detailsMenu() []domain.MenuAction {
	return []domain.MenuAction{
		{Key: EmailActionKey, Label: "Enviar email", Icon: "Mail"},
		{Key: CalendarActionKey, Label: "Agendar cita", Icon: "Calendar"},
	}
}

// Extended - содержимое модального окна
func Extended(r domain.FieldRecord) domain.ExtendedView {
	v := domain.ExtendedView{
		FieldID:       r.ID,
		Title:         r.Name,
		Sections:      []string{r.DescriptionAt(0), r.DescriptionAt(1)},
		ClubTable:     ClubTable(r.Clubs),
		CoverageTable: CoverageTable(r.AgeCoverage),
		Gallery:       make([]string, len(r.Images)),
	}
	copy(v.Gallery, r.Images)
	return v
}

// ClubTable - таблица из одной колонки, строка на клуб
func ClubTable(clubs []string) domain.Table {
	t := domain.Table{
		Columns: []string{ClubColumn},
		Rows:    make([][]string, 0, len(clubs)),
	}
	for _, club := range clubs {
		t.Rows = append(t.Rows, []string{club})
	}
	return t
}

// CoverageTable - возрастная группа и количество
func CoverageTable(rows []domain.AgeCoverage) domain.Table {
	t := domain.Table{
		Columns: []string{AgeBracketColumn, CountColumn},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		t.Rows = append(t.Rows, []string{row.AgeBracket, strconv.Itoa(row.Count)})
	}
	return t
}
