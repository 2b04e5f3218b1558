package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"timecard/backend/internal/model"
	"timecard/backend/internal/repository"
	pkgerrors "timecard/backend/pkg/errors"
)

// inRange 判断日期是否落在 [start, end] 闭区间内
func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == 0 {
		user.UserID = m.nextID
		m.nextID++
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var ids []uint
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var result []model.User
	for i, id := range ids {
		if i < offset || len(result) >= limit {
			continue
		}
		result = append(result, *m.users[id])
	}
	return result, int64(len(m.users)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uint, _ uint) error {
	delete(m.users, id)
	return nil
}

// ── Mock DepartmentRepository ──

type mockDepartmentRepo struct {
	depts  map[uint]*model.Department
	nextID uint
}

func newMockDepartmentRepo() *mockDepartmentRepo {
	return &mockDepartmentRepo{depts: make(map[uint]*model.Department), nextID: 1}
}

func (m *mockDepartmentRepo) Create(_ context.Context, dept *model.Department) error {
	if dept.DepartmentID == 0 {
		dept.DepartmentID = m.nextID
		m.nextID++
	}
	m.depts[dept.DepartmentID] = dept
	return nil
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id uint) (*model.Department, error) {
	if d, ok := m.depts[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) List(_ context.Context) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.depts {
		result = append(result, *d)
	}
	return result, nil
}

func (m *mockDepartmentRepo) Update(_ context.Context, dept *model.Department) error {
	m.depts[dept.DepartmentID] = dept
	return nil
}

func (m *mockDepartmentRepo) Delete(_ context.Context, id uint, _ uint) error {
	delete(m.depts, id)
	return nil
}

// ── Mock JobTitleRepository ──

type mockJobTitleRepo struct {
	titles map[uint]*model.JobTitle
	nextID uint
}

func newMockJobTitleRepo() *mockJobTitleRepo {
	return &mockJobTitleRepo{titles: make(map[uint]*model.JobTitle), nextID: 1}
}

func (m *mockJobTitleRepo) Create(_ context.Context, jt *model.JobTitle) error {
	if jt.JobTitleID == 0 {
		jt.JobTitleID = m.nextID
		m.nextID++
	}
	m.titles[jt.JobTitleID] = jt
	return nil
}

func (m *mockJobTitleRepo) GetByID(_ context.Context, id uint) (*model.JobTitle, error) {
	if t, ok := m.titles[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockJobTitleRepo) List(_ context.Context, departmentID *uint) ([]model.JobTitle, error) {
	var result []model.JobTitle
	for _, t := range m.titles {
		if departmentID != nil && t.DepartmentID != *departmentID {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockJobTitleRepo) Update(_ context.Context, jt *model.JobTitle) error {
	m.titles[jt.JobTitleID] = jt
	return nil
}

func (m *mockJobTitleRepo) Delete(_ context.Context, id uint, _ uint) error {
	delete(m.titles, id)
	return nil
}

// ── Mock CutoffRepository ──

type mockCutoffRepo struct {
	cutoffs map[uint]*model.Cutoff
	nextID  uint
}

func newMockCutoffRepo() *mockCutoffRepo {
	return &mockCutoffRepo{cutoffs: make(map[uint]*model.Cutoff), nextID: 1}
}

func (m *mockCutoffRepo) Create(_ context.Context, cutoff *model.Cutoff) error {
	if cutoff.CutoffID == 0 {
		cutoff.CutoffID = m.nextID
		m.nextID++
	}
	if cutoff.Version == 0 {
		cutoff.Version = 1
	}
	m.cutoffs[cutoff.CutoffID] = cutoff
	return nil
}

func (m *mockCutoffRepo) GetByID(_ context.Context, id uint) (*model.Cutoff, error) {
	if c, ok := m.cutoffs[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCutoffRepo) GetActive(_ context.Context) (*model.Cutoff, error) {
	for _, c := range m.cutoffs {
		if c.IsActive {
			copied := *c
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCutoffRepo) List(_ context.Context) ([]model.Cutoff, error) {
	var result []model.Cutoff
	for _, c := range m.cutoffs {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCutoffRepo) Update(_ context.Context, cutoff *model.Cutoff) error {
	stored, ok := m.cutoffs[cutoff.CutoffID]
	if !ok || stored.Version != cutoff.Version {
		return pkgerrors.ErrOptimisticLock
	}
	cutoff.Version++
	copied := *cutoff
	m.cutoffs[cutoff.CutoffID] = &copied
	return nil
}

func (m *mockCutoffRepo) Delete(_ context.Context, id uint, _ uint) error {
	delete(m.cutoffs, id)
	return nil
}

func (m *mockCutoffRepo) ClearActive(_ context.Context) error {
	for _, c := range m.cutoffs {
		c.IsActive = false
	}
	return nil
}

// ── Mock ScheduleTemplateRepository ──

type mockScheduleTemplateRepo struct {
	templates map[uint]*model.ScheduleTemplate
	nextID    uint
}

func newMockScheduleTemplateRepo() *mockScheduleTemplateRepo {
	return &mockScheduleTemplateRepo{templates: make(map[uint]*model.ScheduleTemplate), nextID: 1}
}

func (m *mockScheduleTemplateRepo) Create(_ context.Context, tmpl *model.ScheduleTemplate) error {
	if tmpl.ScheduleTemplateID == 0 {
		tmpl.ScheduleTemplateID = m.nextID
		m.nextID++
	}
	m.templates[tmpl.ScheduleTemplateID] = tmpl
	return nil
}

func (m *mockScheduleTemplateRepo) GetByID(_ context.Context, id uint) (*model.ScheduleTemplate, error) {
	if t, ok := m.templates[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleTemplateRepo) List(_ context.Context, includeInactive bool) ([]model.ScheduleTemplate, error) {
	var result []model.ScheduleTemplate
	for _, t := range m.templates {
		if !includeInactive && !t.IsActive {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockScheduleTemplateRepo) Update(_ context.Context, tmpl *model.ScheduleTemplate) error {
	m.templates[tmpl.ScheduleTemplateID] = tmpl
	return nil
}

func (m *mockScheduleTemplateRepo) Delete(_ context.Context, id uint, _ uint) error {
	delete(m.templates, id)
	return nil
}

// ── Mock ScheduleAssignmentRepository ──

type mockScheduleAssignmentRepo struct {
	assignments []model.UserScheduleAssignment
	nextID      uint
}

func newMockScheduleAssignmentRepo() *mockScheduleAssignmentRepo {
	return &mockScheduleAssignmentRepo{nextID: 1}
}

func (m *mockScheduleAssignmentRepo) Create(_ context.Context, asg *model.UserScheduleAssignment) error {
	if asg.AssignmentID == 0 {
		asg.AssignmentID = m.nextID
		m.nextID++
	}
	m.assignments = append(m.assignments, *asg)
	return nil
}

func (m *mockScheduleAssignmentRepo) GetByID(_ context.Context, id uint) (*model.UserScheduleAssignment, error) {
	for i := range m.assignments {
		if m.assignments[i].AssignmentID == id {
			return &m.assignments[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleAssignmentRepo) ListByUser(_ context.Context, userID uint) ([]model.UserScheduleAssignment, error) {
	var result []model.UserScheduleAssignment
	for _, asg := range m.assignments {
		if asg.UserID == userID {
			result = append(result, asg)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].EffectivityDate.Equal(result[j].EffectivityDate) {
			return result[i].EffectivityDate.Before(result[j].EffectivityDate)
		}
		return result[i].AssignmentID < result[j].AssignmentID
	})
	return result, nil
}

func (m *mockScheduleAssignmentRepo) Delete(_ context.Context, id uint) error {
	for i := range m.assignments {
		if m.assignments[i].AssignmentID == id {
			m.assignments = append(m.assignments[:i], m.assignments[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock ScheduleAdjustmentRepository ──

type mockScheduleAdjustmentRepo struct {
	adjustments map[uint]*model.ScheduleAdjustment
	nextID      uint
}

func newMockScheduleAdjustmentRepo() *mockScheduleAdjustmentRepo {
	return &mockScheduleAdjustmentRepo{adjustments: make(map[uint]*model.ScheduleAdjustment), nextID: 1}
}

func (m *mockScheduleAdjustmentRepo) Create(_ context.Context, adj *model.ScheduleAdjustment) error {
	if adj.ScheduleAdjustmentID == 0 {
		adj.ScheduleAdjustmentID = m.nextID
		m.nextID++
	}
	m.adjustments[adj.ScheduleAdjustmentID] = adj
	return nil
}

func (m *mockScheduleAdjustmentRepo) GetByID(_ context.Context, id uint) (*model.ScheduleAdjustment, error) {
	if a, ok := m.adjustments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleAdjustmentRepo) ListByUser(_ context.Context, userID uint, status string) ([]model.ScheduleAdjustment, error) {
	var result []model.ScheduleAdjustment
	for _, a := range m.adjustments {
		if a.UserID != userID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockScheduleAdjustmentRepo) ListApprovedByUserAndRange(_ context.Context, userID uint, start, end time.Time) ([]model.ScheduleAdjustment, error) {
	var result []model.ScheduleAdjustment
	for _, a := range m.adjustments {
		if a.UserID == userID && a.Status == model.StatusApproved && inRange(a.Date, start, end) {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockScheduleAdjustmentRepo) Update(_ context.Context, adj *model.ScheduleAdjustment) error {
	m.adjustments[adj.ScheduleAdjustmentID] = adj
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	punches map[uint]*model.AttendancePunch
	nextID  uint
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{punches: make(map[uint]*model.AttendancePunch), nextID: 1}
}

func (m *mockAttendanceRepo) Create(_ context.Context, punch *model.AttendancePunch) error {
	if punch.AttendanceID == 0 {
		punch.AttendanceID = m.nextID
		m.nextID++
	}
	m.punches[punch.AttendanceID] = punch
	return nil
}

func (m *mockAttendanceRepo) GetByID(_ context.Context, id uint) (*model.AttendancePunch, error) {
	if p, ok := m.punches[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) GetOpenByUser(_ context.Context, userID uint) (*model.AttendancePunch, error) {
	for _, p := range m.punches {
		if p.UserID == userID && p.TimeOut == nil {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) ListByUserAndRange(_ context.Context, userID uint, start, end time.Time) ([]model.AttendancePunch, error) {
	var result []model.AttendancePunch
	for _, p := range m.punches {
		if p.UserID == userID && inRange(p.Date, start, end) {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) Update(_ context.Context, punch *model.AttendancePunch) error {
	m.punches[punch.AttendanceID] = punch
	return nil
}

// ── Mock TimeAdjustmentRepository ──

type mockTimeAdjustmentRepo struct {
	adjustments map[uint]*model.TimeAdjustment
	nextID      uint
}

func newMockTimeAdjustmentRepo() *mockTimeAdjustmentRepo {
	return &mockTimeAdjustmentRepo{adjustments: make(map[uint]*model.TimeAdjustment), nextID: 1}
}

func (m *mockTimeAdjustmentRepo) Create(_ context.Context, adj *model.TimeAdjustment) error {
	if adj.TimeAdjustmentID == 0 {
		adj.TimeAdjustmentID = m.nextID
		m.nextID++
	}
	m.adjustments[adj.TimeAdjustmentID] = adj
	return nil
}

func (m *mockTimeAdjustmentRepo) GetByID(_ context.Context, id uint) (*model.TimeAdjustment, error) {
	if a, ok := m.adjustments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeAdjustmentRepo) ListByUserAndRange(_ context.Context, userID uint, start, end time.Time) ([]model.TimeAdjustment, error) {
	var result []model.TimeAdjustment
	for _, a := range m.adjustments {
		if a.UserID == userID && inRange(a.Date, start, end) {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockTimeAdjustmentRepo) Update(_ context.Context, adj *model.TimeAdjustment) error {
	m.adjustments[adj.TimeAdjustmentID] = adj
	return nil
}

func (m *mockTimeAdjustmentRepo) Delete(_ context.Context, id uint) error {
	delete(m.adjustments, id)
	return nil
}

// ── Mock LeaveRepository ──

type mockLeaveRepo struct {
	leaves map[uint]*model.LeaveRequest
	nextID uint
}

func newMockLeaveRepo() *mockLeaveRepo {
	return &mockLeaveRepo{leaves: make(map[uint]*model.LeaveRequest), nextID: 1}
}

func (m *mockLeaveRepo) Create(_ context.Context, req *model.LeaveRequest) error {
	if req.LeaveRequestID == 0 {
		req.LeaveRequestID = m.nextID
		m.nextID++
	}
	m.leaves[req.LeaveRequestID] = req
	return nil
}

func (m *mockLeaveRepo) GetByID(_ context.Context, id uint) (*model.LeaveRequest, error) {
	if l, ok := m.leaves[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeaveRepo) ListByUser(_ context.Context, userID uint, status string) ([]model.LeaveRequest, error) {
	var result []model.LeaveRequest
	for _, l := range m.leaves {
		if l.UserID != userID {
			continue
		}
		if status != "" && l.Status != status {
			continue
		}
		result = append(result, *l)
	}
	return result, nil
}

func (m *mockLeaveRepo) ListApprovedOverlapping(_ context.Context, userID uint, start, end time.Time) ([]model.LeaveRequest, error) {
	var result []model.LeaveRequest
	for _, l := range m.leaves {
		if l.UserID == userID && l.Status == model.StatusApproved &&
			!l.StartDate.After(end) && !l.EndDate.Before(start) {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockLeaveRepo) Update(_ context.Context, req *model.LeaveRequest) error {
	m.leaves[req.LeaveRequestID] = req
	return nil
}

// ── Mock OvertimeRepository ──

type mockOvertimeRepo struct {
	overtimes map[uint]*model.OvertimeRequest
	nextID    uint
}

func newMockOvertimeRepo() *mockOvertimeRepo {
	return &mockOvertimeRepo{overtimes: make(map[uint]*model.OvertimeRequest), nextID: 1}
}

func (m *mockOvertimeRepo) Create(_ context.Context, req *model.OvertimeRequest) error {
	if req.OvertimeRequestID == 0 {
		req.OvertimeRequestID = m.nextID
		m.nextID++
	}
	m.overtimes[req.OvertimeRequestID] = req
	return nil
}

func (m *mockOvertimeRepo) GetByID(_ context.Context, id uint) (*model.OvertimeRequest, error) {
	if o, ok := m.overtimes[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOvertimeRepo) ListByUser(_ context.Context, userID uint, status string) ([]model.OvertimeRequest, error) {
	var result []model.OvertimeRequest
	for _, o := range m.overtimes {
		if o.UserID != userID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		result = append(result, *o)
	}
	return result, nil
}

func (m *mockOvertimeRepo) ListApprovedByUserAndRange(_ context.Context, userID uint, start, end time.Time) ([]model.OvertimeRequest, error) {
	var result []model.OvertimeRequest
	for _, o := range m.overtimes {
		if o.UserID == userID && o.Status == model.StatusApproved && inRange(o.Date, start, end) {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *mockOvertimeRepo) Update(_ context.Context, req *model.OvertimeRequest) error {
	m.overtimes[req.OvertimeRequestID] = req
	return nil
}

// ── Mock DTRRepository ──

type mockDTRRepo struct {
	records map[string][]model.DTRRecord // "userID:cutoffID" → records
	nextID  uint
}

func newMockDTRRepo() *mockDTRRepo {
	return &mockDTRRepo{records: make(map[string][]model.DTRRecord), nextID: 1}
}

func dtrKey(userID, cutoffID uint) string {
	return fmt.Sprintf("%d:%d", userID, cutoffID)
}

func (m *mockDTRRepo) ListByUserAndCutoff(_ context.Context, userID, cutoffID uint) ([]model.DTRRecord, error) {
	records := append([]model.DTRRecord(nil), m.records[dtrKey(userID, cutoffID)]...)
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records, nil
}

func (m *mockDTRRepo) ReplaceForCutoff(_ context.Context, userID, cutoffID uint, records []model.DTRRecord) error {
	stored := make([]model.DTRRecord, len(records))
	for i, rec := range records {
		rec.DTRRecordID = m.nextID
		m.nextID++
		stored[i] = rec
	}
	m.records[dtrKey(userID, cutoffID)] = stored
	return nil
}

// ── 聚合辅助 ──

// testRepos 聚合所有 mock repo 便于 seed 数据
type testRepos struct {
	user           *mockUserRepo
	department     *mockDepartmentRepo
	jobTitle       *mockJobTitleRepo
	cutoff         *mockCutoffRepo
	template       *mockScheduleTemplateRepo
	assignment     *mockScheduleAssignmentRepo
	adjustment     *mockScheduleAdjustmentRepo
	attendance     *mockAttendanceRepo
	timeAdjustment *mockTimeAdjustmentRepo
	leave          *mockLeaveRepo
	overtime       *mockOvertimeRepo
	dtr            *mockDTRRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		user:           newMockUserRepo(),
		department:     newMockDepartmentRepo(),
		jobTitle:       newMockJobTitleRepo(),
		cutoff:         newMockCutoffRepo(),
		template:       newMockScheduleTemplateRepo(),
		assignment:     newMockScheduleAssignmentRepo(),
		adjustment:     newMockScheduleAdjustmentRepo(),
		attendance:     newMockAttendanceRepo(),
		timeAdjustment: newMockTimeAdjustmentRepo(),
		leave:          newMockLeaveRepo(),
		overtime:       newMockOvertimeRepo(),
		dtr:            newMockDTRRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:               r.user,
		Department:         r.department,
		JobTitle:           r.jobTitle,
		Cutoff:             r.cutoff,
		ScheduleTemplate:   r.template,
		ScheduleAssignment: r.assignment,
		ScheduleAdjustment: r.adjustment,
		Attendance:         r.attendance,
		TimeAdjustment:     r.timeAdjustment,
		Leave:              r.leave,
		Overtime:           r.overtime,
		DTR:                r.dtr,
	}
}
