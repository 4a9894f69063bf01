// Package history реализует линейную историю undo/redo над полными
// снимками списка событий.
//
// Снимок — неизменяемая копия всего списка на момент перед мутацией.
// Запись новой мутации очищает redo-стек: ветвящаяся история не
// поддерживается. На малых списках полные снимки дешевле командных
// диффов; это известный предел масштабирования.
package history

import (
	"sync"

	"github.com/realaashishly/korixen-cal/internal/models"
)

// Manager хранит undo- и redo-стеки снимков одной сессии.
// Redo-стек логически является очередью: первым возвращается шаг,
// непосредственно следующий за точкой отмены.
type Manager struct {
	mu   sync.Mutex
	undo [][]models.Event
	redo [][]models.Event
}

// NewManager создает пустую историю.
func NewManager() *Manager {
	return &Manager{}
}

// Record фиксирует снимок состояния перед пользовательской мутацией
// и очищает redo-стек. Фоновые подтверждения идентификаторов и
// сохранение порядка после drag-and-drop сюда не попадают: это не
// видимые пользователю правки.
func (m *Manager) Record(snapshot []models.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undo = append(m.undo, models.CloneEvents(snapshot))
	m.redo = nil
}

// Undo возвращает предыдущий снимок, перекладывая текущее состояние
// в начало redo-очереди. Если отменять нечего, возвращает ok=false
// и ничего не меняет.
func (m *Manager) Undo(current []models.Event) ([]models.Event, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.undo) == 0 {
		return nil, false
	}
	previous := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append([][]models.Event{models.CloneEvents(current)}, m.redo...)
	return previous, true
}

// Redo возвращает первый снимок redo-очереди, перекладывая текущее
// состояние обратно в undo-стек. Если возвращать нечего — ok=false.
func (m *Manager) Redo(current []models.Event) ([]models.Event, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.redo) == 0 {
		return nil, false
	}
	next := m.redo[0]
	m.redo = m.redo[1:]
	m.undo = append(m.undo, models.CloneEvents(current))
	return next, true
}

// CanUndo сообщает, есть ли что отменять.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo) > 0
}

// CanRedo сообщает, есть ли что возвращать.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo) > 0
}
