package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestEvent_AvailableSpots(t *testing.T) {
	tests := []struct {
		name            string
		maxAttendees    *int
		registeredCount int
		want            *int
	}{
		{
			name:            "unlimited capacity",
			maxAttendees:    nil,
			registeredCount: 100,
			want:            nil,
		},
		{
			name:            "empty event",
			maxAttendees:    intPtr(50),
			registeredCount: 0,
			want:            intPtr(50),
		},
		{
			name:            "partially filled",
			maxAttendees:    intPtr(50),
			registeredCount: 30,
			want:            intPtr(20),
		},
		{
			name:            "full event",
			maxAttendees:    intPtr(50),
			registeredCount: 50,
			want:            intPtr(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Event{MaxAttendees: tt.maxAttendees, RegisteredCount: tt.registeredCount}
			got := e.AvailableSpots()

			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestEvent_IsFull(t *testing.T) {
	tests := []struct {
		name            string
		maxAttendees    *int
		registeredCount int
		want            bool
	}{
		{
			name:            "unlimited capacity is never full",
			maxAttendees:    nil,
			registeredCount: 1000,
			want:            false,
		},
		{
			name:            "below capacity",
			maxAttendees:    intPtr(10),
			registeredCount: 9,
			want:            false,
		},
		{
			name:            "at capacity",
			maxAttendees:    intPtr(10),
			registeredCount: 10,
			want:            true,
		},
		{
			name:            "over capacity",
			maxAttendees:    intPtr(10),
			registeredCount: 11,
			want:            true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Event{MaxAttendees: tt.maxAttendees, RegisteredCount: tt.registeredCount}
			assert.Equal(t, tt.want, e.IsFull())
		})
	}
}

func TestEvent_RegistrationOpen(t *testing.T) {
	now := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)
	futureDeadline := now.Add(24 * time.Hour)
	pastDeadline := now.Add(-time.Minute)

	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{
			name:  "active event without restrictions",
			event: Event{IsActive: true},
			want:  true,
		},
		{
			name:  "inactive event",
			event: Event{IsActive: false},
			want:  false,
		},
		{
			name:  "deadline in the future",
			event: Event{IsActive: true, RegistrationDeadline: &futureDeadline},
			want:  true,
		},
		{
			name:  "deadline passed",
			event: Event{IsActive: true, RegistrationDeadline: &pastDeadline},
			want:  false,
		},
		{
			name:  "full event",
			event: Event{IsActive: true, MaxAttendees: intPtr(5), RegisteredCount: 5},
			want:  false,
		},
		{
			name:  "seats left and deadline ahead",
			event: Event{IsActive: true, MaxAttendees: intPtr(5), RegisteredCount: 4, RegistrationDeadline: &futureDeadline},
			want:  true,
		},
		{
			name:  "inactive even with free seats",
			event: Event{IsActive: false, MaxAttendees: intPtr(5), RegisteredCount: 0},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.RegistrationOpen(now))
		})
	}
}

func TestEventType_Valid(t *testing.T) {
	for _, valid := range []EventType{TypeConference, TypeNetworking, TypeWorkshop, TypeSeminar, TypeMeeting, TypeOther} {
		assert.True(t, valid.Valid(), "type %q should be valid", valid)
	}
	assert.False(t, EventType("concert").Valid())
	assert.False(t, EventType("").Valid())
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAttendee.Valid())
	assert.True(t, RoleOrganizer.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())

	assert.True(t, RoleOrganizer.IsOrganizer())
	assert.False(t, RoleAttendee.IsOrganizer())
}
