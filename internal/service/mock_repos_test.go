package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"museum-backend/internal/model"
	"museum-backend/internal/repository"
)

var (
	errMockDB = errors.New("mock: 数据库不可用")
	// errMockBadUUID 模拟 PostgreSQL 对非法 uuid 字面量的报错 (22P02)
	errMockBadUUID = errors.New("mock: invalid input syntax for type uuid")
)

func checkUUID(id string) error {
	if uuid.Validate(id) != nil {
		return errMockBadUUID
	}
	return nil
}

// ── Mock TimePeriodRepository ──

type mockTimePeriodRepo struct {
	periods   map[string]*model.TimePeriod
	createErr error
}

func newMockTimePeriodRepo() *mockTimePeriodRepo {
	return &mockTimePeriodRepo{periods: make(map[string]*model.TimePeriod)}
}

func (m *mockTimePeriodRepo) Create(_ context.Context, tp *model.TimePeriod) error {
	if m.createErr != nil {
		return m.createErr
	}
	if tp.TimePeriodID == "" {
		tp.TimePeriodID = uuid.NewString()
	}
	cp := *tp
	m.periods[tp.TimePeriodID] = &cp
	return nil
}

func (m *mockTimePeriodRepo) GetByID(_ context.Context, id string) (*model.TimePeriod, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	if tp, ok := m.periods[id]; ok {
		cp := *tp
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimePeriodRepo) Update(_ context.Context, tp *model.TimePeriod) error {
	cp := *tp
	m.periods[tp.TimePeriodID] = &cp
	return nil
}

func (m *mockTimePeriodRepo) DeleteByID(_ context.Context, id string) error {
	if err := checkUUID(id); err != nil {
		return err
	}
	delete(m.periods, id)
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules map[string]*model.Schedule
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.Schedule)}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	if schedule.ScheduleID == "" {
		schedule.ScheduleID = uuid.NewString()
	}
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	if s, ok := m.schedules[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	delete(m.schedules, id)
	return nil
}

// ── Mock ScheduleOfTimePeriodRepository ──
// 按插入顺序保存关联行，ListBySchedule 从 periods 预加载 TimePeriod

type mockScheduleOfTimePeriodRepo struct {
	links   []model.ScheduleOfTimePeriod
	periods *mockTimePeriodRepo
	listErr error
}

func newMockScheduleOfTimePeriodRepo(periods *mockTimePeriodRepo) *mockScheduleOfTimePeriodRepo {
	return &mockScheduleOfTimePeriodRepo{periods: periods}
}

func (m *mockScheduleOfTimePeriodRepo) Create(_ context.Context, link *model.ScheduleOfTimePeriod) error {
	if link.ScheduleOfTimePeriodID == "" {
		link.ScheduleOfTimePeriodID = uuid.NewString()
	}
	m.links = append(m.links, *link)
	return nil
}

func (m *mockScheduleOfTimePeriodRepo) ListBySchedule(_ context.Context, scheduleID string) ([]model.ScheduleOfTimePeriod, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.ScheduleOfTimePeriod
	for _, l := range m.links {
		if l.ScheduleID != scheduleID {
			continue
		}
		if tp, ok := m.periods.periods[l.TimePeriodID]; ok {
			cp := *tp
			l.TimePeriod = &cp
		}
		result = append(result, l)
	}
	return result, nil
}

func (m *mockScheduleOfTimePeriodRepo) Exists(_ context.Context, scheduleID, timePeriodID string) (bool, error) {
	for _, l := range m.links {
		if l.ScheduleID == scheduleID && l.TimePeriodID == timePeriodID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockScheduleOfTimePeriodRepo) removeWhere(match func(model.ScheduleOfTimePeriod) bool) {
	kept := m.links[:0]
	for _, l := range m.links {
		if !match(l) {
			kept = append(kept, l)
		}
	}
	m.links = kept
}

func (m *mockScheduleOfTimePeriodRepo) Delete(_ context.Context, scheduleID, timePeriodID string) error {
	m.removeWhere(func(l model.ScheduleOfTimePeriod) bool {
		return l.ScheduleID == scheduleID && l.TimePeriodID == timePeriodID
	})
	return nil
}

func (m *mockScheduleOfTimePeriodRepo) DeleteBySchedule(_ context.Context, scheduleID string) error {
	m.removeWhere(func(l model.ScheduleOfTimePeriod) bool { return l.ScheduleID == scheduleID })
	return nil
}

func (m *mockScheduleOfTimePeriodRepo) DeleteByTimePeriod(_ context.Context, timePeriodID string) error {
	m.removeWhere(func(l model.ScheduleOfTimePeriod) bool { return l.TimePeriodID == timePeriodID })
	return nil
}

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[string]*model.Employee
	schedules *mockScheduleRepo
}

func newMockEmployeeRepo(schedules *mockScheduleRepo) *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]*model.Employee), schedules: schedules}
}

// withSchedule 模拟 Preload("Schedule")
func (m *mockEmployeeRepo) withSchedule(e *model.Employee) *model.Employee {
	cp := *e
	cp.Schedule = nil
	if cp.ScheduleID != nil {
		if s, ok := m.schedules.schedules[*cp.ScheduleID]; ok {
			cp.Schedule = s
		}
	}
	return &cp
}

func (m *mockEmployeeRepo) Create(_ context.Context, e *model.Employee) error {
	if e.MuseumUserID == "" {
		e.MuseumUserID = uuid.NewString()
	}
	cp := *e
	m.employees[e.MuseumUserID] = &cp
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	if e, ok := m.employees[id]; ok {
		return m.withSchedule(e), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByEmail(_ context.Context, email string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.Email == email {
			return m.withSchedule(e), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context, offset, limit int) ([]model.Employee, int64, error) {
	all := make([]model.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		all = append(all, *m.withSchedule(e))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Employee{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, e *model.Employee) error {
	cp := *e
	m.employees[e.MuseumUserID] = &cp
	return nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id string) error {
	delete(m.employees, id)
	return nil
}

func (m *mockEmployeeRepo) ExistsBySchedule(_ context.Context, scheduleID string) (bool, error) {
	for _, e := range m.employees {
		if e.ScheduleID != nil && *e.ScheduleID == scheduleID {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock VisitorRepository ──

type mockVisitorRepo struct {
	visitors map[string]*model.Visitor
}

func newMockVisitorRepo() *mockVisitorRepo {
	return &mockVisitorRepo{visitors: make(map[string]*model.Visitor)}
}

func (m *mockVisitorRepo) Create(_ context.Context, v *model.Visitor) error {
	if v.MuseumUserID == "" {
		v.MuseumUserID = uuid.NewString()
	}
	cp := *v
	m.visitors[v.MuseumUserID] = &cp
	return nil
}

func (m *mockVisitorRepo) GetByID(_ context.Context, id string) (*model.Visitor, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	if v, ok := m.visitors[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVisitorRepo) GetByEmail(_ context.Context, email string) (*model.Visitor, error) {
	for _, v := range m.visitors {
		if v.Email == email {
			cp := *v
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVisitorRepo) List(_ context.Context, offset, limit int) ([]model.Visitor, int64, error) {
	all := make([]model.Visitor, 0, len(m.visitors))
	for _, v := range m.visitors {
		all = append(all, *v)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Visitor{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockVisitorRepo) Update(_ context.Context, v *model.Visitor) error {
	cp := *v
	m.visitors[v.MuseumUserID] = &cp
	return nil
}

func (m *mockVisitorRepo) Delete(_ context.Context, id string) error {
	delete(m.visitors, id)
	return nil
}

// ── Mock 聚合 ──

type mockRepos struct {
	timePeriod *mockTimePeriodRepo
	schedule   *mockScheduleRepo
	links      *mockScheduleOfTimePeriodRepo
	employee   *mockEmployeeRepo
	visitor    *mockVisitorRepo
}

// newMockRepository 组装不绑定数据库的 Repository；Transaction 直接执行回调
func newMockRepository() (*repository.Repository, *mockRepos) {
	tp := newMockTimePeriodRepo()
	sch := newMockScheduleRepo()
	m := &mockRepos{
		timePeriod: tp,
		schedule:   sch,
		links:      newMockScheduleOfTimePeriodRepo(tp),
		employee:   newMockEmployeeRepo(sch),
		visitor:    newMockVisitorRepo(),
	}
	repo := &repository.Repository{
		TimePeriod:           m.timePeriod,
		ScheduleOfTimePeriod: m.links,
		Schedule:             m.schedule,
		Employee:             m.employee,
		Visitor:              m.visitor,
	}
	return repo, m
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	entries map[string]bool
	err     error
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{entries: make(map[string]bool)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	if ttl > 0 {
		m.entries[jti] = true
	}
	return nil
}
