package deletion

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/AchrafReyani/job-matching-platform/internal/model"
	"github.com/AchrafReyani/job-matching-platform/internal/repository"
)

// memState is one consistent version of every table.
type memState struct {
	users         map[string]model.User
	seekers       map[int64]model.JobSeeker
	companies     map[int64]model.Company
	vacancies     map[int64]model.Vacancy
	applications  map[int64]model.Application
	messages      map[int64]model.Message
	notifications map[int64]model.Notification

	archivedUsers        []model.ArchivedUser
	archivedVacancies    []model.ArchivedVacancy
	archivedApplications []model.ArchivedApplication
}

func newMemState() *memState {
	return &memState{
		users:         map[string]model.User{},
		seekers:       map[int64]model.JobSeeker{},
		companies:     map[int64]model.Company{},
		vacancies:     map[int64]model.Vacancy{},
		applications:  map[int64]model.Application{},
		messages:      map[int64]model.Message{},
		notifications: map[int64]model.Notification{},
	}
}

func (s *memState) clone() *memState {
	return &memState{
		users:                maps.Clone(s.users),
		seekers:              maps.Clone(s.seekers),
		companies:            maps.Clone(s.companies),
		vacancies:            maps.Clone(s.vacancies),
		applications:         maps.Clone(s.applications),
		messages:             maps.Clone(s.messages),
		notifications:        maps.Clone(s.notifications),
		archivedUsers:        slices.Clone(s.archivedUsers),
		archivedVacancies:    slices.Clone(s.archivedVacancies),
		archivedApplications: slices.Clone(s.archivedApplications),
	}
}

// rowCounts summarises a state for before/after comparisons.
type rowCounts struct {
	Users, Seekers, Companies, Vacancies, Applications, Messages, Notifications int
	ArchivedUsers, ArchivedVacancies, ArchivedApplications                     int
}

func (s *memState) counts() rowCounts {
	return rowCounts{
		Users:                len(s.users),
		Seekers:              len(s.seekers),
		Companies:            len(s.companies),
		Vacancies:            len(s.vacancies),
		Applications:         len(s.applications),
		Messages:             len(s.messages),
		Notifications:        len(s.notifications),
		ArchivedUsers:        len(s.archivedUsers),
		ArchivedVacancies:    len(s.archivedVacancies),
		ArchivedApplications: len(s.archivedApplications),
	}
}

type injectedFailure struct {
	after int
	err   error
}

// memStore is an in-memory transactional store. A transaction works on a copy
// of the state that replaces it only on commit, so a failed transaction leaves
// no trace. Deletes enforce the same foreign keys as the real schema.
type memStore struct {
	mu       sync.Mutex
	state    *memState
	failures map[string]injectedFailure
	calls    map[string]int
	commits  int
}

func newMemStore() *memStore {
	return &memStore{
		state:    newMemState(),
		failures: map[string]injectedFailure{},
		calls:    map[string]int{},
	}
}

// injectFailure makes op fail with err once it has succeeded `after` times.
func (m *memStore) injectFailure(op string, after int, err error) {
	m.failures[op] = injectedFailure{after: after, err: err}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.TxStore) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.state.clone()
	if err := fn(ctx, &memTx{store: m, s: work}); err != nil {
		return err
	}
	m.state = work
	m.commits++
	return nil
}

func (m *memStore) snapshot() rowCounts {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.counts()
}

func (m *memStore) ListIDsByRole(ctx context.Context, role model.Role) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, id := range slices.Sorted(maps.Keys(m.state.users)) {
		if m.state.users[id].Role == role {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *memStore) ListIDs(ctx context.Context) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.state.vacancies)), nil
}

// --- seeding ---

func (m *memStore) addUser(id string, role model.Role) {
	m.state.users[id] = model.User{ID: id, Email: id + "@example.com", Role: role, CreatedAt: time.Now()}
}

func (m *memStore) addJobSeeker(id int64, userID, name string) {
	m.state.seekers[id] = model.JobSeeker{
		ID: id, UserID: userID, FullName: name,
		PortfolioURL: "https://portfolio.example.com/" + userID, ExperienceSummary: "5 years of Go",
	}
}

func (m *memStore) addCompany(id int64, userID, name string) {
	m.state.companies[id] = model.Company{
		ID: id, UserID: userID, CompanyName: name,
		WebsiteURL: "https://" + userID + ".example.com", Description: "We build things",
	}
}

func (m *memStore) addVacancy(id, companyID int64, title string) {
	m.state.vacancies[id] = model.Vacancy{
		ID: id, CompanyID: companyID, Title: title,
		SalaryRange: "50k-70k", Role: "Engineering", JobDescription: "Write code", CreatedAt: time.Now(),
	}
}

func (m *memStore) addApplication(id, seekerID, vacancyID int64, status model.ApplicationStatus) {
	m.state.applications[id] = model.Application{
		ID: id, JobSeekerID: seekerID, VacancyID: vacancyID, Status: status,
		AppliedAt: time.Now(), UpdatedAt: time.Now(),
	}
}

func (m *memStore) addMessage(id, applicationID int64, senderID string) {
	m.state.messages[id] = model.Message{ID: id, ApplicationID: applicationID, SenderID: senderID, Text: "hello", SentAt: time.Now()}
}

func (m *memStore) addNotification(id int64, userID string) {
	m.state.notifications[id] = model.Notification{ID: id, UserID: userID, Type: model.NotificationApplicationAccepted}
}

// --- transaction view ---

type memTx struct {
	store *memStore
	s     *memState
}

func (t *memTx) fail(op string) error {
	t.store.calls[op]++
	if f, ok := t.store.failures[op]; ok && t.store.calls[op] > f.after {
		return f.err
	}
	return nil
}

func fkViolation(table, ref string, id any) error {
	return fmt.Errorf("foreign key violation: %s still referenced by %s (%v)", table, ref, id)
}

func (t *memTx) ReadUserGraph(ctx context.Context, userID string) (*model.UserGraph, error) {
	if err := t.fail("ReadUserGraph"); err != nil {
		return nil, err
	}
	u, ok := t.s.users[userID]
	if !ok {
		return nil, nil
	}
	g := &model.UserGraph{User: u}

	for _, id := range slices.Sorted(maps.Keys(t.s.seekers)) {
		js := t.s.seekers[id]
		if js.UserID != userID {
			continue
		}
		g.JobSeeker = &js
		g.Applications = t.applicationNodes(func(a model.Application) bool { return a.JobSeekerID == js.ID })
	}
	for _, id := range slices.Sorted(maps.Keys(t.s.companies)) {
		c := t.s.companies[id]
		if c.UserID != userID {
			continue
		}
		g.Company = &c
		for _, vid := range slices.Sorted(maps.Keys(t.s.vacancies)) {
			v := t.s.vacancies[vid]
			if v.CompanyID != c.ID {
				continue
			}
			g.Vacancies = append(g.Vacancies, model.VacancyNode{
				Vacancy:      v,
				Applications: t.applicationNodes(func(a model.Application) bool { return a.VacancyID == v.ID }),
			})
		}
	}
	for _, id := range slices.Sorted(maps.Keys(t.s.messages)) {
		if t.s.messages[id].SenderID == userID {
			g.SentMessageIDs = append(g.SentMessageIDs, id)
		}
	}
	return g, nil
}

func (t *memTx) ReadVacancyGraph(ctx context.Context, vacancyID int64) (*model.VacancyGraph, error) {
	if err := t.fail("ReadVacancyGraph"); err != nil {
		return nil, err
	}
	v, ok := t.s.vacancies[vacancyID]
	if !ok {
		return nil, nil
	}
	return &model.VacancyGraph{
		Vacancy:      v,
		CompanyName:  t.s.companies[v.CompanyID].CompanyName,
		Applications: t.applicationNodes(func(a model.Application) bool { return a.VacancyID == vacancyID }),
	}, nil
}

func (t *memTx) ReadApplicationGraph(ctx context.Context, applicationID int64) (*model.ApplicationGraph, error) {
	if err := t.fail("ReadApplicationGraph"); err != nil {
		return nil, err
	}
	if _, ok := t.s.applications[applicationID]; !ok {
		return nil, nil
	}
	node := t.applicationNodes(func(a model.Application) bool { return a.ID == applicationID })[0]
	v := t.s.vacancies[node.VacancyID]
	return &model.ApplicationGraph{
		Application: node,
		Vacancy:     v,
		Company:     t.s.companies[v.CompanyID],
		JobSeeker:   t.s.seekers[node.JobSeekerID],
	}, nil
}

func (t *memTx) applicationNodes(match func(model.Application) bool) []model.ApplicationNode {
	var nodes []model.ApplicationNode
	for _, id := range slices.Sorted(maps.Keys(t.s.applications)) {
		a := t.s.applications[id]
		if !match(a) {
			continue
		}
		v := t.s.vacancies[a.VacancyID]
		n := model.ApplicationNode{
			Application:  a,
			VacancyTitle: v.Title,
			CompanyName:  t.s.companies[v.CompanyID].CompanyName,
			SeekerName:   t.s.seekers[a.JobSeekerID].FullName,
		}
		for _, mid := range slices.Sorted(maps.Keys(t.s.messages)) {
			if t.s.messages[mid].ApplicationID == a.ID {
				n.MessageIDs = append(n.MessageIDs, mid)
			}
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func (t *memTx) InsertArchivedUser(ctx context.Context, a *model.ArchivedUser) error {
	if err := t.fail("InsertArchivedUser"); err != nil {
		return err
	}
	a.ID = int64(len(t.s.archivedUsers) + 1)
	t.s.archivedUsers = append(t.s.archivedUsers, *a)
	return nil
}

func (t *memTx) InsertArchivedVacancy(ctx context.Context, a *model.ArchivedVacancy) error {
	if err := t.fail("InsertArchivedVacancy"); err != nil {
		return err
	}
	a.ID = int64(len(t.s.archivedVacancies) + 1)
	t.s.archivedVacancies = append(t.s.archivedVacancies, *a)
	return nil
}

func (t *memTx) InsertArchivedApplication(ctx context.Context, a *model.ArchivedApplication) error {
	if err := t.fail("InsertArchivedApplication"); err != nil {
		return err
	}
	a.ID = int64(len(t.s.archivedApplications) + 1)
	t.s.archivedApplications = append(t.s.archivedApplications, *a)
	return nil
}

func (t *memTx) DeleteMessages(ctx context.Context, ids []int64) (int64, error) {
	if err := t.fail("DeleteMessages"); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		if _, ok := t.s.messages[id]; ok {
			delete(t.s.messages, id)
			n++
		}
	}
	return n, nil
}

func (t *memTx) DeleteApplications(ctx context.Context, ids []int64) (int64, error) {
	if err := t.fail("DeleteApplications"); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		if _, ok := t.s.applications[id]; !ok {
			continue
		}
		for _, m := range t.s.messages {
			if m.ApplicationID == id {
				return n, fkViolation("applications", "messages", id)
			}
		}
		delete(t.s.applications, id)
		n++
	}
	return n, nil
}

func (t *memTx) DeleteVacancies(ctx context.Context, ids []int64) (int64, error) {
	if err := t.fail("DeleteVacancies"); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		if _, ok := t.s.vacancies[id]; !ok {
			continue
		}
		for _, a := range t.s.applications {
			if a.VacancyID == id {
				return n, fkViolation("vacancies", "applications", id)
			}
		}
		delete(t.s.vacancies, id)
		n++
	}
	return n, nil
}

func (t *memTx) DeleteJobSeekerProfile(ctx context.Context, userID string) (int64, error) {
	if err := t.fail("DeleteJobSeekerProfile"); err != nil {
		return 0, err
	}
	var n int64
	for id, js := range t.s.seekers {
		if js.UserID != userID {
			continue
		}
		for _, a := range t.s.applications {
			if a.JobSeekerID == id {
				return n, fkViolation("job_seekers", "applications", id)
			}
		}
		delete(t.s.seekers, id)
		n++
	}
	return n, nil
}

func (t *memTx) DeleteCompanyProfile(ctx context.Context, userID string) (int64, error) {
	if err := t.fail("DeleteCompanyProfile"); err != nil {
		return 0, err
	}
	var n int64
	for id, c := range t.s.companies {
		if c.UserID != userID {
			continue
		}
		for _, v := range t.s.vacancies {
			if v.CompanyID == id {
				return n, fkViolation("companies", "vacancies", id)
			}
		}
		delete(t.s.companies, id)
		n++
	}
	return n, nil
}

func (t *memTx) DeleteNotificationsByUser(ctx context.Context, userID string) (int64, error) {
	if err := t.fail("DeleteNotificationsByUser"); err != nil {
		return 0, err
	}
	var n int64
	for id, nt := range t.s.notifications {
		if nt.UserID == userID {
			delete(t.s.notifications, id)
			n++
		}
	}
	return n, nil
}

func (t *memTx) DeleteUser(ctx context.Context, userID string) (int64, error) {
	if err := t.fail("DeleteUser"); err != nil {
		return 0, err
	}
	if _, ok := t.s.users[userID]; !ok {
		return 0, nil
	}
	for _, js := range t.s.seekers {
		if js.UserID == userID {
			return 0, fkViolation("users", "job_seekers", userID)
		}
	}
	for _, c := range t.s.companies {
		if c.UserID == userID {
			return 0, fkViolation("users", "companies", userID)
		}
	}
	for _, m := range t.s.messages {
		if m.SenderID == userID {
			return 0, fkViolation("users", "messages", userID)
		}
	}
	for _, nt := range t.s.notifications {
		if nt.UserID == userID {
			return 0, fkViolation("users", "notifications", userID)
		}
	}
	delete(t.s.users, userID)
	return 1, nil
}

// --- collaborators ---

type fakeNotifier struct {
	mu      sync.Mutex
	created []model.NewNotification
	err     error
}

func (f *fakeNotifier) Create(ctx context.Context, n model.NewNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, n)
	return nil
}

type fakeRecorder struct {
	mu                   sync.Mutex
	outcomes             []string
	archived             map[string]int
	notificationFailures int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{archived: map[string]int{}}
}

func (r *fakeRecorder) RecordDeletion(kind, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, kind+"/"+outcome)
}

func (r *fakeRecorder) RecordDeletionLatency(string, time.Duration) {}

func (r *fakeRecorder) RecordArchivedRows(table string, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.archived[table] += count
}

func (r *fakeRecorder) RecordNotificationFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notificationFailures++
}

var errBoom = errors.New("boom")

// compile-time interface checks
var (
	_ repository.Transactor        = (*memStore)(nil)
	_ repository.UserRepository    = (*memStore)(nil)
	_ repository.VacancyRepository = (*memStore)(nil)
	_ repository.TxStore           = (*memTx)(nil)
	_ Notifier                     = (*fakeNotifier)(nil)
	_ Recorder                     = (*fakeRecorder)(nil)
)
