// Package models содержит доменные структуры календаря и трекера подписок.
package models

// UserAssets пользовательские справочники и глобальный хаб ресурсов.
// Списки открытые: событие может ссылаться на отдел или тип,
// которых в справочнике уже нет.
type UserAssets struct {
	Departments        []string       `json:"departments"`
	EventTypes         []string       `json:"eventTypes"`
	ResourceCategories []string       `json:"resourceCategories"`
	Resources          []ResourceItem `json:"resources"`
}

// DummyUserAssets частичное обновление справочников: nil-срез означает
// "не трогать", пустой — "очистить".
type DummyUserAssets struct {
	Departments        []string       `json:"departments,omitempty"`
	EventTypes         []string       `json:"eventTypes,omitempty"`
	ResourceCategories []string       `json:"resourceCategories,omitempty"`
	Resources          []ResourceItem `json:"resources,omitempty"`
}

// DepartmentGeneral отдел по умолчанию для событий без отдела.
const DepartmentGeneral = "General"

// DefaultUserAssets возвращает справочники, заводимые новому пользователю
// при регистрации.
func DefaultUserAssets() UserAssets {
	return UserAssets{
		Departments:        []string{"Design", "Engineering", "Product", "Marketing", DepartmentGeneral},
		EventTypes:         []string{"meeting", "task", "birthday", "reminder"},
		ResourceCategories: []string{"Document", "Spreadsheet", "Youtube", "Google Drive", "Dropbox", "Notion", "Design", "Link"},
		Resources:          []ResourceItem{},
	}
}
