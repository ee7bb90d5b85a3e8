package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/johnquangdev/meeting-companion/internal/domain/entities"
)

// schema mirrors the postgres migration with sqlite-friendly types. IDs
// are always assigned in Go, so no column defaults are needed.
const testSchema = `
CREATE TABLE meetings (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    title TEXT NOT NULL,
    date DATETIME NOT NULL,
    transcript TEXT NOT NULL,
    source_file_url TEXT,
    summary TEXT NOT NULL,
    sentiment TEXT NOT NULL,
    action_plan TEXT,
    created_at DATETIME,
    updated_at DATETIME
);
CREATE TABLE action_items (
    id TEXT PRIMARY KEY,
    meeting_id TEXT NOT NULL,
    description TEXT NOT NULL,
    assignee TEXT,
    due_date DATETIME,
    priority TEXT NOT NULL DEFAULT 'Medium',
    created_at DATETIME
);
CREATE TABLE decisions (
    id TEXT PRIMARY KEY,
    meeting_id TEXT NOT NULL,
    description TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME
);
CREATE TABLE topics (
    id TEXT PRIMARY KEY,
    meeting_id TEXT NOT NULL,
    name TEXT NOT NULL,
    content TEXT,
    created_at DATETIME
);
`

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec(testSchema).Error)
	return db
}

func seedMeeting(t *testing.T, repo *MeetingRepository, userID uuid.UUID) *entities.Meeting {
	t.Helper()

	m := entities.NewMeeting(userID, "Weekly Sync", time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC))
	m.Transcript = "Alice: hello. Bob: hi."
	m.Summary = datatypes.JSON(`{"short":"s","long":"l"}`)
	m.Sentiment = datatypes.JSON(`{"sentiment":"Neutral","tone":"Casual","highlights":[]}`)
	require.NoError(t, repo.Create(context.Background(), m))
	return m
}

func TestCreate_PersistsChildren(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db).(*MeetingRepository)
	userID := uuid.New()

	m := entities.NewMeeting(userID, "Planning", time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC))
	m.Transcript = "transcript"
	m.Summary = datatypes.JSON(`{"short":"s","long":"l"}`)
	m.Sentiment = datatypes.JSON(`{"sentiment":"Positive","tone":"Focused","highlights":[]}`)

	assignee := "Bob"
	m.ActionItems = []entities.ActionItem{
		{ID: uuid.New(), MeetingID: m.ID, Description: "Draft budget", Assignee: &assignee, Priority: entities.PriorityHigh},
		{ID: uuid.New(), MeetingID: m.ID, Description: "Book venue", Priority: entities.PriorityMedium},
	}
	m.Decisions = []entities.Decision{
		*entities.NewDecision(m.ID, "Launch in October", 0),
		*entities.NewDecision(m.ID, "Hire two engineers", 1),
	}

	require.NoError(t, repo.Create(context.Background(), m))

	found, err := repo.FindByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Planning", found.Title)
	assert.Len(t, found.ActionItems, 2)
	require.Len(t, found.Decisions, 2)
	assert.Equal(t, "Launch in October", found.Decisions[0].Description)

	var summary map[string]string
	require.NoError(t, json.Unmarshal(found.Summary, &summary))
	assert.Equal(t, "s", summary["short"])
}

func TestFindByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db).(*MeetingRepository)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entities.ErrMeetingNotFound)
}

func TestFindByID_DecisionsKeepPositionOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db).(*MeetingRepository)
	m := seedMeeting(t, repo, uuid.New())

	// insert out of order
	require.NoError(t, db.Create(&[]entities.Decision{
		*entities.NewDecision(m.ID, "third", 2),
		*entities.NewDecision(m.ID, "first", 0),
		*entities.NewDecision(m.ID, "second", 1),
	}).Error)

	found, err := repo.FindByID(context.Background(), m.ID)
	require.NoError(t, err)
	require.Len(t, found.Decisions, 3)
	assert.Equal(t, "first", found.Decisions[0].Description)
	assert.Equal(t, "second", found.Decisions[1].Description)
	assert.Equal(t, "third", found.Decisions[2].Description)
}

func TestListByUser_NewestFirstAndScoped(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db).(*MeetingRepository)
	userID := uuid.New()

	older := entities.NewMeeting(userID, "Older", time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	older.Transcript = "t"
	older.Summary = datatypes.JSON(`{}`)
	older.Sentiment = datatypes.JSON(`{}`)
	require.NoError(t, repo.Create(context.Background(), older))

	newer := entities.NewMeeting(userID, "Newer", time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC))
	newer.Transcript = "t"
	newer.Summary = datatypes.JSON(`{}`)
	newer.Sentiment = datatypes.JSON(`{}`)
	require.NoError(t, repo.Create(context.Background(), newer))

	seedMeeting(t, repo, uuid.New()) // someone else's meeting

	meetings, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	assert.Equal(t, "Newer", meetings[0].Title)
	assert.Equal(t, "Older", meetings[1].Title)
}

func TestUpdateSummary(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db).(*MeetingRepository)
	m := seedMeeting(t, repo, uuid.New())

	updated := datatypes.JSON(`{"short":"new","long":"new long"}`)
	require.NoError(t, repo.UpdateSummary(context.Background(), m.ID, updated))

	found, err := repo.FindByID(context.Background(), m.ID)
	require.NoError(t, err)

	var summary map[string]string
	require.NoError(t, json.Unmarshal(found.Summary, &summary))
	assert.Equal(t, "new", summary["short"])
}

func TestUpdateSummary_MissingMeeting(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db).(*MeetingRepository)

	err := repo.UpdateSummary(context.Background(), uuid.New(), datatypes.JSON(`{}`))
	assert.ErrorIs(t, err, entities.ErrMeetingNotFound)
}

func TestUpdateActionPlan(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db).(*MeetingRepository)
	m := seedMeeting(t, repo, uuid.New())

	plan := datatypes.JSON(`{"goals":["ship"],"tasks":[],"timeline":[]}`)
	require.NoError(t, repo.UpdateActionPlan(context.Background(), m.ID, plan))

	found, err := repo.FindByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, found.ActionPlan)
}

func TestReplaceTopics_FullEviction(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db).(*MeetingRepository)
	m := seedMeeting(t, repo, uuid.New())

	first := []entities.Topic{
		*entities.NewTopic(m.ID, "Budget", "about money"),
		*entities.NewTopic(m.ID, "Hiring", "about people"),
	}
	require.NoError(t, repo.ReplaceTopics(context.Background(), m.ID, first))

	second := []entities.Topic{
		*entities.NewTopic(m.ID, "Launch", "about timing"),
	}
	require.NoError(t, repo.ReplaceTopics(context.Background(), m.ID, second))

	found, err := repo.FindByID(context.Background(), m.ID)
	require.NoError(t, err)
	require.Len(t, found.Topics, 1)
	assert.Equal(t, "Launch", found.Topics[0].Name)
}

func TestReplaceTopics_EmptySetClears(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db).(*MeetingRepository)
	m := seedMeeting(t, repo, uuid.New())

	require.NoError(t, repo.ReplaceTopics(context.Background(), m.ID, []entities.Topic{
		*entities.NewTopic(m.ID, "Budget", ""),
	}))
	require.NoError(t, repo.ReplaceTopics(context.Background(), m.ID, nil))

	found, err := repo.FindByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Topics)
}
