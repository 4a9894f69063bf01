package undoredo

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/realaashishly/korixen-cal/internal/http/middlewarectx"
	"github.com/realaashishly/korixen-cal/internal/models"
)

// MockService реализует интерфейс undoredo.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Undo(ctx context.Context, userUID string) ([]models.Event, bool, error) {
	args := m.Called(ctx, userUID)
	events, _ := args.Get(0).([]models.Event)
	return events, args.Bool(1), args.Error(2)
}

func (m *MockService) Redo(ctx context.Context, userUID string) ([]models.Event, bool, error) {
	args := m.Called(ctx, userUID)
	events, _ := args.Get(0).([]models.Event)
	return events, args.Bool(1), args.Error(2)
}

func TestUndoRedoHandlers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name         string
		redo         bool
		setupMock    func(*MockService)
		expectedBody string
	}{
		{
			name: "отмена применена",
			redo: false,
			setupMock: func(m *MockService) {
				m.On("Undo", mock.Anything, "uid-1").
					Return([]models.Event{{ID: "e1", Title: "Созвон"}}, true, nil)
			},
			expectedBody: `"applied":true`,
		},
		{
			name: "пустая история не ошибка",
			redo: false,
			setupMock: func(m *MockService) {
				m.On("Undo", mock.Anything, "uid-1").Return([]models.Event(nil), false, nil)
			},
			expectedBody: `"applied":false`,
		},
		{
			name: "повтор применен",
			redo: true,
			setupMock: func(m *MockService) {
				m.On("Redo", mock.Anything, "uid-1").
					Return([]models.Event{{ID: "e1", Title: "Созвон"}}, true, nil)
			},
			expectedBody: `"applied":true`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			var handler *Handler
			if tt.redo {
				handler = NewRedo(logger, mockService)
			} else {
				handler = NewUndo(logger, mockService)
			}

			req := httptest.NewRequest(http.MethodPost, "/events/undo", nil)
			ctx := context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
