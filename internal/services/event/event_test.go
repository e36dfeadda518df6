package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/event-hub/internal/lib/errs"
	"github.com/magabrotheeeer/event-hub/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateEvent(ctx context.Context, event models.Event) (int, error) {
	args := m.Called(ctx, event)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ReadEvent(ctx context.Context, id int) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}
func (m *RepoMock) ListEvents(ctx context.Context, filter models.EventFilter, limit, offset int) ([]*models.Event, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}
func (m *RepoMock) ListEventsByOrganizer(ctx context.Context, organizerID int) ([]*models.Event, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}
func (m *RepoMock) UpdateEvent(ctx context.Context, event models.Event, id int) (int, error) {
	args := m.Called(ctx, event, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) DeleteEvent(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func validDummyEvent() models.DummyEvent {
	return models.DummyEvent{
		Title:     "Annual Tech Conference",
		StartTime: "2030-05-02T09:00",
		EndTime:   "2030-05-02T18:00",
		Location:  "Main Hall",
		EventType: "conference",
	}
}

func TestEventService_Create(t *testing.T) {
	tests := []struct {
		name       string
		actorRole  models.Role
		mutate     func(req *models.DummyEvent)
		setupMocks func(r *RepoMock)
		wantID     int
		wantErr    error
		wantField  string
	}{
		{
			name:      "success create",
			actorRole: models.RoleOrganizer,
			mutate:    func(_ *models.DummyEvent) {},
			setupMocks: func(r *RepoMock) {
				r.On("CreateEvent", mock.Anything, mock.MatchedBy(func(e models.Event) bool {
					return e.Title == "Annual Tech Conference" &&
						e.OrganizerID == 1 &&
						e.IsActive &&
						e.Type == models.TypeConference
				})).Return(42, nil).Once()
			},
			wantID: 42,
		},
		{
			name:       "attendee cannot create",
			actorRole:  models.RoleAttendee,
			mutate:     func(_ *models.DummyEvent) {},
			setupMocks: func(_ *RepoMock) {},
			wantErr:    errs.ErrForbidden,
		},
		{
			name:      "bad start date format",
			actorRole: models.RoleOrganizer,
			mutate: func(req *models.DummyEvent) {
				req.StartTime = "02-05-2030 09:00"
			},
			setupMocks: func(_ *RepoMock) {},
			wantField:  "start_time",
		},
		{
			name:      "end before start",
			actorRole: models.RoleOrganizer,
			mutate: func(req *models.DummyEvent) {
				req.EndTime = "2030-05-02T08:00"
			},
			setupMocks: func(_ *RepoMock) {},
			wantField:  "end_time",
		},
		{
			name:      "deadline after start",
			actorRole: models.RoleOrganizer,
			mutate: func(req *models.DummyEvent) {
				req.RegistrationDeadline = "2030-05-02T10:00"
			},
			setupMocks: func(_ *RepoMock) {},
			wantField:  "registration_deadline",
		},
		{
			name:      "unknown event type",
			actorRole: models.RoleOrganizer,
			mutate: func(req *models.DummyEvent) {
				req.EventType = "concert"
			},
			setupMocks: func(_ *RepoMock) {},
			wantField:  "event_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := NewEventService(repo, cache, newNoopLogger())

			tt.setupMocks(repo)

			req := validDummyEvent()
			tt.mutate(&req)

			got, err := svc.Create(context.Background(), 1, tt.actorRole, req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantField != "":
				ve, ok := errs.AsValidation(err)
				assert.True(t, ok)
				assert.Equal(t, tt.wantField, ve.Field)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, got)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestEventService_Read(t *testing.T) {
	event := &models.Event{ID: 5, Title: "Cached Event", OrganizerID: 1}

	t.Run("cache hit skips repository", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewEventService(repo, cache, newNoopLogger())

		cache.On("Get", "event:5", mock.Anything).Return(true, nil).Once().
			Run(func(args mock.Arguments) {
				ptr := args.Get(1).(**models.Event)
				*ptr = event
			})

		got, err := svc.Read(context.Background(), 5)
		assert.NoError(t, err)
		assert.Equal(t, event, got)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache miss reads repository and caches", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewEventService(repo, cache, newNoopLogger())

		cache.On("Get", "event:5", mock.Anything).Return(false, nil).Once()
		repo.On("ReadEvent", mock.Anything, 5).Return(event, nil).Once()
		cache.On("Set", "event:5", event, time.Hour).Return(nil).Once()

		got, err := svc.Read(context.Background(), 5)
		assert.NoError(t, err)
		assert.Equal(t, event, got)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache error falls back to repository", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewEventService(repo, cache, newNoopLogger())

		cache.On("Get", "event:5", mock.Anything).Return(false, errors.New("redis down")).Once()
		repo.On("ReadEvent", mock.Anything, 5).Return(event, nil).Once()
		cache.On("Set", "event:5", event, time.Hour).Return(nil).Once()

		got, err := svc.Read(context.Background(), 5)
		assert.NoError(t, err)
		assert.Equal(t, event, got)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewEventService(repo, cache, newNoopLogger())

		cache.On("Get", "event:9", mock.Anything).Return(false, nil).Once()
		repo.On("ReadEvent", mock.Anything, 9).Return(nil, errs.ErrNotFound).Once()

		_, err := svc.Read(context.Background(), 9)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestEventService_List(t *testing.T) {
	events := []*models.Event{{ID: 1}, {ID: 2}}

	t.Run("first page by default", func(t *testing.T) {
		repo := new(RepoMock)
		svc := NewEventService(repo, new(CacheMock), newNoopLogger())

		repo.On("ListEvents", mock.Anything, models.EventFilter{}, PageSize, 0).
			Return(events, nil).Once()

		got, err := svc.List(context.Background(), models.EventFilter{}, 0)
		assert.NoError(t, err)
		assert.Equal(t, events, got)
		repo.AssertExpectations(t)
	})

	t.Run("offset from page number", func(t *testing.T) {
		repo := new(RepoMock)
		svc := NewEventService(repo, new(CacheMock), newNoopLogger())

		repo.On("ListEvents", mock.Anything, models.EventFilter{Search: "go"}, PageSize, 2*PageSize).
			Return(events, nil).Once()

		_, err := svc.List(context.Background(), models.EventFilter{Search: "go"}, 3)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("unknown type filter", func(t *testing.T) {
		repo := new(RepoMock)
		svc := NewEventService(repo, new(CacheMock), newNoopLogger())

		_, err := svc.List(context.Background(), models.EventFilter{Type: "concert"}, 1)
		ve, ok := errs.AsValidation(err)
		assert.True(t, ok)
		assert.Equal(t, "type", ve.Field)
	})
}

func TestEventService_Update(t *testing.T) {
	existing := &models.Event{ID: 5, OrganizerID: 1}

	t.Run("success update invalidates cache", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewEventService(repo, cache, newNoopLogger())

		repo.On("ReadEvent", mock.Anything, 5).Return(existing, nil).Once()
		repo.On("UpdateEvent", mock.Anything, mock.Anything, 5).Return(1, nil).Once()
		cache.On("Invalidate", "event:5").Return(nil).Once()

		count, err := svc.Update(context.Background(), 1, 5, validDummyEvent())
		assert.NoError(t, err)
		assert.Equal(t, 1, count)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("foreign event is forbidden", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewEventService(repo, cache, newNoopLogger())

		repo.On("ReadEvent", mock.Anything, 5).Return(existing, nil).Once()

		_, err := svc.Update(context.Background(), 2, 5, validDummyEvent())
		assert.ErrorIs(t, err, errs.ErrForbidden)
		cache.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(RepoMock)
		svc := NewEventService(repo, new(CacheMock), newNoopLogger())

		repo.On("ReadEvent", mock.Anything, 9).Return(nil, errs.ErrNotFound).Once()

		_, err := svc.Update(context.Background(), 1, 9, validDummyEvent())
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestEventService_Delete(t *testing.T) {
	existing := &models.Event{ID: 5, OrganizerID: 1}

	t.Run("success delete invalidates cache", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewEventService(repo, cache, newNoopLogger())

		repo.On("ReadEvent", mock.Anything, 5).Return(existing, nil).Once()
		repo.On("DeleteEvent", mock.Anything, 5).Return(nil).Once()
		cache.On("Invalidate", "event:5").Return(nil).Once()

		err := svc.Delete(context.Background(), 1, 5)
		assert.NoError(t, err)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("foreign event is forbidden", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewEventService(repo, cache, newNoopLogger())

		repo.On("ReadEvent", mock.Anything, 5).Return(existing, nil).Once()

		err := svc.Delete(context.Background(), 2, 5)
		assert.ErrorIs(t, err, errs.ErrForbidden)
		cache.AssertExpectations(t)
	})
}

func TestEventService_ListMine(t *testing.T) {
	repo := new(RepoMock)
	svc := NewEventService(repo, new(CacheMock), newNoopLogger())

	events := []*models.Event{{ID: 1, OrganizerID: 7}}
	repo.On("ListEventsByOrganizer", mock.Anything, 7).Return(events, nil).Once()

	got, err := svc.ListMine(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, events, got)
	repo.AssertExpectations(t)
}
