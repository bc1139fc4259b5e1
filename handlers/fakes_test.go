package handlers_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"attendance-tracker/models"
	"attendance-tracker/repository"
)

type fakeUsers struct {
	users map[string]models.User
	err   error
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{users: make(map[string]models.User)}
	for _, u := range users {
		f.users[u.UserID] = u
	}
	return f
}

func (f *fakeUsers) summary(userID string) *models.UserSummary {
	u, ok := f.users[userID]
	if !ok {
		return nil
	}
	return u.Summary()
}

func (f *fakeUsers) FindAll(context.Context) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.User
	for _, u := range f.users {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b models.User) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return out, nil
}

func (f *fakeUsers) FindByUserID(_ context.Context, userID string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUsers) Upsert(_ context.Context, u *models.User) error {
	f.users[u.UserID] = *u
	return nil
}

type fakeAttendance struct {
	mu      sync.Mutex
	rows    map[string]*models.Attendance
	users   *fakeUsers
	err     error
	updates int
}

func newFakeAttendance(users *fakeUsers) *fakeAttendance {
	return &fakeAttendance{rows: make(map[string]*models.Attendance), users: users}
}

func (f *fakeAttendance) find(userID, date string) *models.Attendance {
	for _, r := range f.rows {
		if r.UserID == userID && r.Date == date {
			return r
		}
	}
	return nil
}

func (f *fakeAttendance) MarkEnter(_ context.Context, userID, date string, timeIn time.Time, confidence *float64) (*models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.find(userID, date) != nil {
		return nil, repository.ErrAlreadyEntered
	}
	row := &models.Attendance{
		ID:              uuid.NewString(),
		UserID:          userID,
		Date:            date,
		Status:          models.StatusEntered,
		TimeIn:          timeIn,
		ConfidenceScore: confidence,
		CreatedAt:       timeIn,
		UpdatedAt:       timeIn,
	}
	f.rows[row.ID] = row
	out := *row
	return &out, nil
}

func (f *fakeAttendance) MarkExit(_ context.Context, userID, date string, timeOut time.Time) (*models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	row := f.find(userID, date)
	if row == nil {
		return nil, repository.ErrRecordNotFound
	}
	if row.TimeOut != nil {
		return nil, repository.ErrAlreadyExited
	}
	row.Status = models.StatusExited
	row.TimeOut = &timeOut
	row.UpdatedAt = timeOut
	out := *row
	return &out, nil
}

func (f *fakeAttendance) FindByDateWithUsers(_ context.Context, date string) ([]models.AttendanceWithUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.AttendanceWithUser
	for _, r := range f.rows {
		if r.Date == date {
			out = append(out, models.AttendanceWithUser{Attendance: *r, Users: f.users.summary(r.UserID)})
		}
	}
	slices.SortFunc(out, func(a, b models.AttendanceWithUser) int {
		return b.TimeIn.Compare(a.TimeIn)
	})
	return out, nil
}

func (f *fakeAttendance) Update(_ context.Context, id string, patch models.AttendancePatch, updatedAt time.Time) (*models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.err != nil {
		return nil, f.err
	}
	row, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	if patch.Status.Set {
		row.Status = patch.Status.Value
	}
	if patch.TimeIn.Set {
		row.TimeIn = patch.TimeIn.Value
	}
	if patch.TimeOut.Set {
		row.TimeOut = patch.TimeOut.Value
	}
	if patch.ConfidenceScore.Set {
		v := patch.ConfidenceScore.Value
		row.ConfidenceScore = &v
	}
	row.UpdatedAt = updatedAt
	out := *row
	return &out, nil
}

func (f *fakeAttendance) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeAttendance) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeLogs struct {
	mu      sync.Mutex
	logs    []models.AttendanceLog
	users   *fakeUsers
	err     error
	updates int
}

func newFakeLogs(users *fakeUsers, logs ...models.AttendanceLog) *fakeLogs {
	f := &fakeLogs{users: users}
	for _, l := range logs {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		f.logs = append(f.logs, l)
	}
	return f
}

func (f *fakeLogs) Append(_ context.Context, l *models.AttendanceLog) (*models.AttendanceLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	stored := *l
	stored.ID = uuid.NewString()
	f.logs = append(f.logs, stored)
	return &stored, nil
}

func (f *fakeLogs) inRange(start, end time.Time) []models.AttendanceLog {
	var out []models.AttendanceLog
	for _, l := range f.logs {
		if !l.Timestamp.Before(start) && !l.Timestamp.After(end) {
			out = append(out, l)
		}
	}
	slices.SortStableFunc(out, func(a, b models.AttendanceLog) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}

func (f *fakeLogs) FindByRangeWithUsers(_ context.Context, start, end time.Time) ([]models.AttendanceLogWithUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.AttendanceLogWithUser
	for _, l := range f.inRange(start, end) {
		out = append(out, models.AttendanceLogWithUser{AttendanceLog: l, Users: f.users.summary(l.UserID)})
	}
	return out, nil
}

func (f *fakeLogs) FindByUserAndRange(_ context.Context, userID string, start, end time.Time) ([]models.AttendanceLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.AttendanceLog
	for _, l := range f.inRange(start, end) {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLogs) Update(_ context.Context, id string, patch models.AttendanceLogPatch) (*models.AttendanceLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.logs {
		l := &f.logs[i]
		if l.ID != id {
			continue
		}
		if patch.Action.Set {
			l.Action = patch.Action.Value
		}
		if patch.ConfidenceScore.Set {
			v := patch.ConfidenceScore.Value
			l.ConfidenceScore = &v
		}
		if patch.Timestamp.Set {
			l.Timestamp = patch.Timestamp.Value
		}
		out := *l
		return &out, nil
	}
	return nil, repository.ErrRecordNotFound
}

func (f *fakeLogs) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.logs = slices.DeleteFunc(f.logs, func(l models.AttendanceLog) bool { return l.ID == id })
	return nil
}
