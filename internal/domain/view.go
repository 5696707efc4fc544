package domain

// Table - табличная проекция для подтаблиц карточки поля
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// SummaryView - содержимое всплывающей подсказки (popup) над полигоном
type SummaryView struct {
	FieldID       string       `json:"field_id"`
	Title         string       `json:"title"`
	Lead          string       `json:"lead"`
	SecondaryText string       `json:"secondary_text"`
	HeroImage     *string      `json:"hero_image"`
	DetailsLabel  string       `json:"details_label"`
	DetailsMenu   []MenuAction `json:"details_menu"`
	Instructors   []Instructor `json:"instructors"`
}

// MenuAction - пункт выпадающего меню кнопки подробностей
type MenuAction struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// ExtendedView - содержимое модального окна с подробностями
type ExtendedView struct {
	FieldID       string   `json:"field_id"`
	Title         string   `json:"title"`
	Sections      []string `json:"sections"`
	ClubTable     Table    `json:"club_table"`
	CoverageTable Table    `json:"coverage_table"`
	Gallery       []string `json:"gallery"`
}
