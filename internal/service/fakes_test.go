package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"clinic-management-backend/internal/apperrors"
	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/repository"
)

// errInjected simulates a store failure mid-operation.
var errInjected = errors.New("injected store failure")

// fakeAppointmentStore is an in-memory AppointmentStore. InTx snapshots
// the maps and commits them only when the function succeeds, mirroring
// the rollback semantics of the real transactional store. Setting failOn
// to a method name makes that method fail, for atomicity tests.
type fakeAppointmentStore struct {
	appointments map[uint]*models.Appointment
	treatments   map[uint]*models.Treatment // keyed by appointment id
	payments     map[uint]*models.Payment   // keyed by payment id
	nextID       uint
	failOn       string
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{
		appointments: make(map[uint]*models.Appointment),
		treatments:   make(map[uint]*models.Treatment),
		payments:     make(map[uint]*models.Payment),
		nextID:       1,
	}
}

var _ repository.AppointmentStore = (*fakeAppointmentStore)(nil)

func (f *fakeAppointmentStore) allocID() uint {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeAppointmentStore) InTx(fn func(repository.AppointmentStore) error) error {
	txn := &fakeAppointmentStore{
		appointments: cloneMap(f.appointments),
		treatments:   cloneMap(f.treatments),
		payments:     cloneMap(f.payments),
		nextID:       f.nextID,
		failOn:       f.failOn,
	}
	if err := fn(txn); err != nil {
		return err
	}
	f.appointments = txn.appointments
	f.treatments = txn.treatments
	f.payments = txn.payments
	f.nextID = txn.nextID
	return nil
}

func cloneMap[T any](src map[uint]*T) map[uint]*T {
	dst := make(map[uint]*T, len(src))
	for k, v := range src {
		c := *v
		dst[k] = &c
	}
	return dst
}

func (f *fakeAppointmentStore) GetAppointment(id uint) (*models.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, apperrors.NewNotFound("appointment", id)
	}
	c := *appt
	return &c, nil
}

func (f *fakeAppointmentStore) CreateAppointment(appt *models.Appointment) error {
	if f.failOn == "CreateAppointment" {
		return errInjected
	}
	appt.ID = f.allocID()
	c := *appt
	f.appointments[appt.ID] = &c
	return nil
}

func (f *fakeAppointmentStore) UpdateAppointmentStatus(id uint, status models.AppointmentStatus) error {
	if f.failOn == "UpdateAppointmentStatus" {
		return errInjected
	}
	appt, ok := f.appointments[id]
	if !ok {
		return apperrors.NewNotFound("appointment", id)
	}
	appt.Status = status
	return nil
}

func (f *fakeAppointmentStore) UpdateAppointmentDate(id uint, date time.Time) error {
	appt, ok := f.appointments[id]
	if !ok {
		return apperrors.NewNotFound("appointment", id)
	}
	appt.AppointmentDate = date
	return nil
}

func (f *fakeAppointmentStore) CountActiveAtSlot(doctorID uint, at time.Time) (int64, error) {
	var count int64
	for _, appt := range f.appointments {
		if appt.DoctorID == doctorID && appt.AppointmentDate.Equal(at) &&
			appt.Status != models.StatusCancelled {
			count++
		}
	}
	return count, nil
}

func (f *fakeAppointmentStore) ListAppointments() ([]models.Appointment, error) {
	var out []models.Appointment
	for _, appt := range f.appointments {
		out = append(out, *appt)
	}
	return out, nil
}

func (f *fakeAppointmentStore) ListAppointmentsByDoctor(doctorID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, appt := range f.appointments {
		if appt.DoctorID == doctorID {
			out = append(out, *appt)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) ListAppointmentsByPatient(patientID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, appt := range f.appointments {
		if appt.PatientID == patientID {
			out = append(out, *appt)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) GetTreatmentByAppointment(appointmentID uint) (*models.Treatment, error) {
	t, ok := f.treatments[appointmentID]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (f *fakeAppointmentStore) SaveTreatment(t *models.Treatment) error {
	if f.failOn == "SaveTreatment" {
		return errInjected
	}
	if t.ID == 0 {
		t.ID = f.allocID()
	}
	c := *t
	f.treatments[t.AppointmentID] = &c
	return nil
}

func (f *fakeAppointmentStore) GetPaymentByAppointment(appointmentID uint) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.AppointmentID == appointmentID {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentStore) CreatePayment(p *models.Payment) error {
	p.ID = f.allocID()
	c := *p
	f.payments[p.ID] = &c
	return nil
}

func (f *fakeAppointmentStore) UpdatePaymentStatus(id uint, status models.PaymentStatus) error {
	if f.failOn == "UpdatePaymentStatus" {
		return errInjected
	}
	p, ok := f.payments[id]
	if !ok {
		return apperrors.NewNotFound("payment", id)
	}
	p.Status = status
	return nil
}

// fakeDoctorStore is an in-memory DoctorStore.
type fakeDoctorStore struct {
	doctors map[uint]*models.Doctor
}

func newFakeDoctorStore(doctors ...*models.Doctor) *fakeDoctorStore {
	f := &fakeDoctorStore{doctors: make(map[uint]*models.Doctor)}
	for _, d := range doctors {
		c := *d
		f.doctors[d.ID] = &c
	}
	return f
}

var _ repository.DoctorStore = (*fakeDoctorStore)(nil)

func (f *fakeDoctorStore) GetAllDoctors() ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range f.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDoctorStore) GetDoctorByID(id uint) (*models.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, apperrors.NewNotFound("doctor", id)
	}
	c := *d
	return &c, nil
}

func (f *fakeDoctorStore) GetDoctorByUserID(userID uint) (*models.Doctor, error) {
	for _, d := range f.doctors {
		if d.UserID == userID {
			c := *d
			return &c, nil
		}
	}
	return nil, apperrors.NewNotFound("doctor profile for user", userID)
}

func (f *fakeDoctorStore) SearchDoctors(query string) ([]models.Doctor, error) {
	if strings.TrimSpace(query) == "" {
		return f.GetAllDoctors()
	}
	needle := strings.ToLower(query)
	var out []models.Doctor
	for _, d := range f.doctors {
		name := ""
		if d.User != nil {
			name = strings.ToLower(d.User.Name)
		}
		if strings.Contains(name, needle) ||
			strings.Contains(strings.ToLower(d.Specialization), needle) {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDoctorStore) UpdateAvailability(id uint, availability string) error {
	d, ok := f.doctors[id]
	if !ok {
		return apperrors.NewNotFound("doctor", id)
	}
	d.Availability = availability
	return nil
}

// fakePatientStore is an in-memory PatientStore.
type fakePatientStore struct {
	patients map[uint]*models.Patient
}

func newFakePatientStore(patients ...*models.Patient) *fakePatientStore {
	f := &fakePatientStore{patients: make(map[uint]*models.Patient)}
	for _, p := range patients {
		c := *p
		f.patients[p.ID] = &c
	}
	return f
}

var _ repository.PatientStore = (*fakePatientStore)(nil)

func (f *fakePatientStore) GetAllPatients() ([]models.Patient, error) {
	var out []models.Patient
	for _, p := range f.patients {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePatientStore) GetPatientByID(id uint) (*models.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, apperrors.NewNotFound("patient", id)
	}
	c := *p
	return &c, nil
}

func (f *fakePatientStore) GetPatientByUserID(userID uint) (*models.Patient, error) {
	for _, p := range f.patients {
		if p.UserID == userID {
			c := *p
			return &c, nil
		}
	}
	return nil, apperrors.NewNotFound("patient profile for user", userID)
}

func (f *fakePatientStore) SearchPatients(query string) ([]models.Patient, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return f.GetAllPatients()
	}
	needle := strings.ToLower(trimmed)
	exactID, idErr := strconv.ParseUint(trimmed, 10, 32)
	// One pass with OR predicates, so a patient matching several
	// predicates still appears once.
	var out []models.Patient
	for _, p := range f.patients {
		name := ""
		if p.User != nil {
			name = strings.ToLower(p.User.Name)
		}
		if strings.Contains(name, needle) || strings.Contains(p.Phone, trimmed) ||
			(idErr == nil && p.ID == uint(exactID)) {
			out = append(out, *p)
		}
	}
	return out, nil
}

// fakeUserStore is an in-memory UserStore for auth tests.
type fakeUserStore struct {
	users         map[uint]*models.User
	doctors       map[uint]*models.Doctor
	patients      map[uint]*models.Patient
	refreshTokens map[string]*models.RefreshToken
	nextID        uint
	failOnProfile bool // fail the profile insert inside registration
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:         make(map[uint]*models.User),
		doctors:       make(map[uint]*models.Doctor),
		patients:      make(map[uint]*models.Patient),
		refreshTokens: make(map[string]*models.RefreshToken),
		nextID:        1,
	}
}

var _ repository.UserStore = (*fakeUserStore)(nil)

func (f *fakeUserStore) allocID() uint {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeUserStore) FindUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, errors.New("user not found")
}

func (f *fakeUserStore) GetUserByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.NewNotFound("user", id)
	}
	c := *u
	return &c, nil
}

func (f *fakeUserStore) CreateUser(user *models.User) error {
	user.ID = f.allocID()
	c := *user
	f.users[user.ID] = &c
	return nil
}

func (f *fakeUserStore) CreateUserWithDoctor(user *models.User, doctor *models.Doctor) error {
	if f.failOnProfile {
		return errInjected // nothing persisted, like a rolled-back transaction
	}
	if err := f.CreateUser(user); err != nil {
		return err
	}
	doctor.ID = f.allocID()
	doctor.UserID = user.ID
	c := *doctor
	f.doctors[doctor.ID] = &c
	return nil
}

func (f *fakeUserStore) CreateUserWithPatient(user *models.User, patient *models.Patient) error {
	if f.failOnProfile {
		return errInjected
	}
	if err := f.CreateUser(user); err != nil {
		return err
	}
	patient.ID = f.allocID()
	patient.UserID = user.ID
	c := *patient
	f.patients[patient.ID] = &c
	return nil
}

func (f *fakeUserStore) DeleteUser(id uint) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.NewNotFound("user", id)
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) CreateRefreshToken(token *models.RefreshToken) error {
	token.ID = f.allocID()
	c := *token
	f.refreshTokens[token.TokenHash] = &c
	return nil
}

func (f *fakeUserStore) FindRefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	t, ok := f.refreshTokens[hash]
	if !ok || t.Revoked {
		return nil, errors.New("refresh token not found or revoked")
	}
	c := *t
	if u, ok := f.users[t.UserID]; ok {
		c.User = *u
	}
	return &c, nil
}

func (f *fakeUserStore) RevokeRefreshTokenByHash(hash string) error {
	if t, ok := f.refreshTokens[hash]; ok {
		t.Revoked = true
	}
	return nil
}

// fakeAuditStore records audit actions in memory.
type fakeAuditStore struct {
	actions []string
}

var _ repository.AuditStore = (*fakeAuditStore)(nil)

func (f *fakeAuditStore) CreateAuditLog(userID *uint, action string, details string) error {
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeAuditStore) ListRecentAuditLogs(limit int) ([]models.AuditLog, error) {
	var out []models.AuditLog
	for i := len(f.actions) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, models.AuditLog{Action: f.actions[i]})
	}
	return out, nil
}
