package services

import (
	"testing"
	"time"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/models"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/testutil"
)

func TestCreateEvent(t *testing.T) {
	start := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)

		event, err := svc.CreateEvent("Summer Retreat", "Annual gathering", start, end, "Sierra de Gredos", 24)
		testutil.AssertNoError(t, err)

		if event.ID == "" {
			t.Fatal("expected non-empty event ID")
		}
		if event.State != models.EventStatePlanning {
			t.Errorf("expected initial state planning, got %s", event.State)
		}
		if event.Participants != 24 {
			t.Errorf("expected 24 participants, got %d", event.Participants)
		}
	})

	t.Run("create_then_get_roundtrip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)

		created, err := svc.CreateEvent("Winter Retreat", "", start, end, "Pirineos", 12)
		testutil.AssertNoError(t, err)

		got, err := svc.GetEventByID(created.ID)
		testutil.AssertNoError(t, err)

		if got.Name != created.Name || got.Location != created.Location || got.Participants != created.Participants {
			t.Errorf("roundtrip mismatch: created %+v, got %+v", created, got)
		}
		if !got.StartDate.Equal(created.StartDate) || !got.EndDate.Equal(created.EndDate) {
			t.Errorf("date mismatch: created %v-%v, got %v-%v", created.StartDate, created.EndDate, got.StartDate, got.EndDate)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)

		_, err := svc.CreateEvent("", "", start, end, "Somewhere", 10)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("end_before_start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)

		_, err := svc.CreateEvent("Backwards", "", end, start, "Somewhere", 10)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("participants_below_one", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)

		_, err := svc.CreateEvent("Ghost Retreat", "", start, end, "Somewhere", 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetEvents(t *testing.T) {
	t.Run("ordered_by_start_date_desc", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)

		older := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		newer := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

		_, err := svc.CreateEvent("Spring Retreat", "", older, older.AddDate(0, 0, 2), "A", 5)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateEvent("Summer Retreat", "", newer, newer.AddDate(0, 0, 2), "B", 5)
		testutil.AssertNoError(t, err)

		events, err := svc.GetEvents()
		testutil.AssertNoError(t, err)

		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].Name != "Summer Retreat" || events[1].Name != "Spring Retreat" {
			t.Errorf("expected newest first, got %s then %s", events[0].Name, events[1].Name)
		}
	})
}

func TestGetEventsByState(t *testing.T) {
	t.Run("filters_by_state", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)

		a := testutil.CreateTestEvent(t, db)
		testutil.CreateTestEvent(t, db)

		_, err := svc.SetEventState(a.ID, models.EventStateActive)
		testutil.AssertNoError(t, err)

		active, err := svc.GetEventsByState(models.EventStateActive)
		testutil.AssertNoError(t, err)
		if len(active) != 1 || active[0].ID != a.ID {
			t.Errorf("expected only event %s active, got %d events", a.ID, len(active))
		}

		planning, err := svc.GetEventsByState(models.EventStatePlanning)
		testutil.AssertNoError(t, err)
		if len(planning) != 1 {
			t.Errorf("expected 1 planning event, got %d", len(planning))
		}
	})

	t.Run("invalid_state", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)

		_, err := svc.GetEventsByState(models.EventState("cancelled"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestSearchEventsByName(t *testing.T) {
	t.Run("case_insensitive_substring", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)

		start := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
		_, err := svc.CreateEvent("Silent Retreat", "", start, start.AddDate(0, 0, 2), "A", 5)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateEvent("Yoga Weekend", "", start, start.AddDate(0, 0, 2), "B", 5)
		testutil.AssertNoError(t, err)

		found, err := svc.SearchEventsByName("RETREAT")
		testutil.AssertNoError(t, err)
		if len(found) != 1 || found[0].Name != "Silent Retreat" {
			t.Errorf("expected Silent Retreat, got %d results", len(found))
		}

		none, err := svc.SearchEventsByName("pilgrimage")
		testutil.AssertNoError(t, err)
		if len(none) != 0 {
			t.Errorf("expected no results, got %d", len(none))
		}
	})
}

func TestUpdateEvent(t *testing.T) {
	t.Run("valid_leaves_state_untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)

		event := testutil.CreateTestEvent(t, db)
		_, err := svc.SetEventState(event.ID, models.EventStateActive)
		testutil.AssertNoError(t, err)

		start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		updated, err := svc.UpdateEvent(event.ID, "Renamed Retreat", "New plan", start, start.AddDate(0, 0, 5), "New place", 30)
		testutil.AssertNoError(t, err)

		if updated.Name != "Renamed Retreat" || updated.Participants != 30 {
			t.Errorf("update not applied: %+v", updated)
		}
		if updated.State != models.EventStateActive {
			t.Errorf("expected state to stay active, got %s", updated.State)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)

		start := time.Now()
		_, err := svc.UpdateEvent("019521a7-0000-7000-8000-000000000000", "Name", "", start, start.AddDate(0, 0, 1), "Place", 5)
		testutil.AssertAppError(t, err, "EVENT_NOT_FOUND")
	})
}

func TestSetEventState(t *testing.T) {
	t.Run("any_valid_transition_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)

		event := testutil.CreateTestEvent(t, db)

		// No lifecycle restrictions: finished back to planning is fine.
		for _, state := range []models.EventState{
			models.EventStateFinished,
			models.EventStatePlanning,
			models.EventStateActive,
		} {
			updated, err := svc.SetEventState(event.ID, state)
			testutil.AssertNoError(t, err)
			if updated.State != state {
				t.Errorf("expected state %s, got %s", state, updated.State)
			}
		}
	})

	t.Run("invalid_state", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)

		event := testutil.CreateTestEvent(t, db)

		_, err := svc.SetEventState(event.ID, models.EventState("archived"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)

		_, err := svc.SetEventState("019521a7-0000-7000-8000-000000000000", models.EventStateActive)
		testutil.AssertAppError(t, err, "EVENT_NOT_FOUND")
	})
}

func TestDeleteEvent(t *testing.T) {
	t.Run("cascades_to_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)

		event := testutil.CreateTestEvent(t, db)
		other := testutil.CreateTestEvent(t, db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)

		testutil.CreateTestTransaction(t, db, event.ID, cat.ID, models.TransactionKindExpense, "10.00")
		testutil.CreateTestTransaction(t, db, event.ID, cat.ID, models.TransactionKindExpense, "20.00")
		testutil.CreateTestTransaction(t, db, event.ID, cat.ID, models.TransactionKindExpense, "30.00")
		kept := testutil.CreateTestTransaction(t, db, other.ID, cat.ID, models.TransactionKindExpense, "5.00")

		err := svc.DeleteEvent(event.ID)
		testutil.AssertNoError(t, err)

		var orphaned int64
		if err := db.Model(&models.Transaction{}).Where("event_id = ?", event.ID).Count(&orphaned).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if orphaned != 0 {
			t.Errorf("expected 0 transactions for deleted event, got %d", orphaned)
		}

		var remaining models.Transaction
		if err := db.Where("id = ?", kept.ID).First(&remaining).Error; err != nil {
			t.Errorf("transaction of another event must survive: %v", err)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEventService(db)

		err := svc.DeleteEvent("019521a7-0000-7000-8000-000000000000")
		testutil.AssertAppError(t, err, "EVENT_NOT_FOUND")
	})
}
