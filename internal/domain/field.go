package domain

// Presence - статус присутствия инструктора (как в карточках персон)
type Presence string

const (
	PresenceNone    Presence = "none"
	PresenceOnline  Presence = "online"
	PresenceAway    Presence = "away"
	PresenceBusy    Presence = "busy"
	PresenceDND     Presence = "dnd"
	PresenceOffline Presence = "offline"
)

// Instructor - карточка инструктора, только для отображения
type Instructor struct {
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Availability string   `json:"availability"`
	Presence     Presence `json:"presence"`
	Status       string   `json:"status,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
	Initials     string   `json:"initials,omitempty"`
}

// AgeCoverage - строка таблицы охвата по возрастам
type AgeCoverage struct {
	AgeBracket string `json:"age_bracket"`
	Count      int    `json:"count"`
}

// FieldRecord - одно спортивное поле. Неизменяемо в течение жизни процесса.
type FieldRecord struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description []string      `json:"description"`
	Geometry    []Ring        `json:"geometry"`
	Images      []string      `json:"images"`
	Clubs       []string      `json:"clubs"`
	AgeCoverage []AgeCoverage `json:"age_coverage"`
	Instructors []Instructor  `json:"instructors"`
}

// DescriptionAt возвращает сегмент описания или пустую строку
func (f FieldRecord) DescriptionAt(i int) string {
	if i < 0 || i >= len(f.Description) {
		return ""
	}
	return f.Description[i]
}

// ImageAt возвращает ссылку на изображение, если она есть
func (f FieldRecord) ImageAt(i int) (string, bool) {
	if i < 0 || i >= len(f.Images) {
		return "", false
	}
	return f.Images[i], true
}

// OuterRing - внешний контур (первый)
func (f FieldRecord) OuterRing() Ring {
	if len(f.Geometry) == 0 {
		return nil
	}
	return f.Geometry[0]
}

// Clone делает глубокую копию, чтобы вызывающий код не мог изменить хранилище
func (f FieldRecord) Clone() FieldRecord {
	cp := f
	cp.Description = cloneSlice(f.Description)
	cp.Images = cloneSlice(f.Images)
	cp.Clubs = cloneSlice(f.Clubs)
	cp.AgeCoverage = cloneSlice(f.AgeCoverage)
	cp.Instructors = cloneSlice(f.Instructors)

	if f.Geometry != nil {
		cp.Geometry = make([]Ring, len(f.Geometry))
		for i, ring := range f.Geometry {
			cp.Geometry[i] = cloneSlice(ring)
		}
	}
	return cp
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
