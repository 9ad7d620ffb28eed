package service

import (
	"context"
	"database/sql"

	"stationhub/internal/domain"
	"stationhub/internal/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes shared by the service tests.

type fakeCompaniesRepo struct {
	companies map[string]*domain.Company
	created   int
}

func newFakeCompaniesRepo(companies ...*domain.Company) *fakeCompaniesRepo {
	r := &fakeCompaniesRepo{companies: map[string]*domain.Company{}}
	for _, c := range companies {
		r.companies[c.CompanyID] = c
	}
	return r
}

func (r *fakeCompaniesRepo) GetCompany(_ context.Context, companyID string) (*domain.Company, error) {
	c, ok := r.companies[companyID]
	if !ok {
		return nil, domain.NotFound("company")
	}
	return c, nil
}

func (r *fakeCompaniesRepo) ListActiveCompanies(context.Context) ([]*domain.Company, error) {
	out := make([]*domain.Company, 0, len(r.companies))
	for _, c := range r.companies {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCompaniesRepo) CreateCompany(_ context.Context, name, licenseType string, maxStations int) (*domain.Company, error) {
	c := &domain.Company{
		CompanyID:   uuid.NewString(),
		CompanyName: name,
		LicenseType: licenseType,
		MaxStations: maxStations,
		IsActive:    true,
	}
	r.companies[c.CompanyID] = c
	r.created++
	return c, nil
}

type fakeUsersRepo struct {
	users   map[string]*domain.User
	byEmail map[string]*domain.User
	created int
}

func newFakeUsersRepo(users ...*domain.User) *fakeUsersRepo {
	r := &fakeUsersRepo{users: map[string]*domain.User{}, byEmail: map[string]*domain.User{}}
	for _, u := range users {
		r.users[u.UserID] = u
		r.byEmail[u.Email] = u
	}
	return r
}

func (r *fakeUsersRepo) GetUser(_ context.Context, userID string) (*domain.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.NotFound("user")
	}
	return u, nil
}

func (r *fakeUsersRepo) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.NotFound("user")
	}
	return u, nil
}

func (r *fakeUsersRepo) CreateUser(_ context.Context, user *domain.User) (string, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return "", domain.Conflict("user with this email already exists")
	}
	user.UserID = uuid.NewString()
	r.users[user.UserID] = user
	r.byEmail[user.Email] = user
	r.created++
	return user.UserID, nil
}

func (r *fakeUsersRepo) ListUsersByCompany(_ context.Context, companyID string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.CompanyID.Valid && u.CompanyID.String == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUsersRepo) UpdateUser(_ context.Context, companyID, userID string, upd repository.UserUpdate) (*domain.User, error) {
	u, ok := r.users[userID]
	if !ok || !u.CompanyID.Valid || u.CompanyID.String != companyID {
		return nil, domain.NotFound("user")
	}
	if upd.FirstName != nil {
		u.FirstName = sql.NullString{String: *upd.FirstName, Valid: true}
	}
	if upd.LastName != nil {
		u.LastName = sql.NullString{String: *upd.LastName, Valid: true}
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	return u, nil
}

func (r *fakeUsersRepo) DeactivateUser(_ context.Context, companyID, userID string) error {
	u, ok := r.users[userID]
	if !ok || !u.CompanyID.Valid || u.CompanyID.String != companyID {
		return domain.NotFound("user")
	}
	u.IsActive = false
	return nil
}

func (r *fakeUsersRepo) CompleteRegistration(_ context.Context, userID, companyID string, role domain.Role) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.NotFound("user")
	}
	if u.CompanyID.Valid {
		return domain.Conflict("registration already completed")
	}
	u.CompanyID = sql.NullString{String: companyID, Valid: true}
	u.Role = role
	return nil
}

type fakeStationsRepo struct {
	stations map[string]*domain.Station // by station id
	byUUID   map[string]*domain.Station
}

func newFakeStationsRepo(stations ...*domain.Station) *fakeStationsRepo {
	r := &fakeStationsRepo{stations: map[string]*domain.Station{}, byUUID: map[string]*domain.Station{}}
	for _, s := range stations {
		r.stations[s.StationID] = s
		r.byUUID[s.UUID] = s
	}
	return r
}

func (r *fakeStationsRepo) ListStations(_ context.Context, companyID string) ([]*domain.Station, error) {
	var out []*domain.Station
	for _, s := range r.stations {
		if s.CompanyID.Valid && s.CompanyID.String == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStationsRepo) GetStation(_ context.Context, companyID, stationID string) (*domain.Station, error) {
	s, ok := r.stations[stationID]
	if !ok || !s.CompanyID.Valid || s.CompanyID.String != companyID {
		return nil, domain.NotFound("station")
	}
	return s, nil
}

func (r *fakeStationsRepo) GetStationByUUID(_ context.Context, hwUUID string) (*domain.Station, error) {
	s, ok := r.byUUID[hwUUID]
	if !ok {
		return nil, domain.NotFound("station")
	}
	return s, nil
}

func (r *fakeStationsRepo) CreateStation(_ context.Context, st *domain.Station) (string, error) {
	st.StationID = uuid.NewString()
	r.stations[st.StationID] = st
	r.byUUID[st.UUID] = st
	return st.StationID, nil
}

func (r *fakeStationsRepo) UpdateStation(_ context.Context, companyID, stationID string, upd repository.StationUpdate) (*domain.Station, error) {
	s, err := r.GetStation(context.Background(), companyID, stationID)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		s.Name = *upd.Name
	}
	if upd.Location != nil {
		s.Location = sql.NullString{String: *upd.Location, Valid: true}
	}
	if upd.Metadata != nil {
		s.Metadata = *upd.Metadata
	}
	return s, nil
}

func (r *fakeStationsRepo) DeleteStation(_ context.Context, companyID, stationID string) error {
	s, ok := r.stations[stationID]
	if !ok || !s.CompanyID.Valid || s.CompanyID.String != companyID {
		return domain.NotFound("station")
	}
	delete(r.stations, stationID)
	delete(r.byUUID, s.UUID)
	return nil
}

func (r *fakeStationsRepo) ClaimStation(_ context.Context, hwUUID, companyID string) (bool, error) {
	s, ok := r.byUUID[hwUUID]
	if !ok || s.CompanyID.Valid {
		return false, nil
	}
	s.CompanyID = sql.NullString{String: companyID, Valid: true}
	s.Status = domain.StationActive
	return true, nil
}

type fakeDevicesRepo struct {
	devices  map[string]*domain.Device
	stations *fakeStationsRepo
}

func newFakeDevicesRepo(stations *fakeStationsRepo, devices ...*domain.Device) *fakeDevicesRepo {
	r := &fakeDevicesRepo{devices: map[string]*domain.Device{}, stations: stations}
	for _, d := range devices {
		r.devices[d.DeviceID] = d
	}
	return r
}

func (r *fakeDevicesRepo) CreateDevice(_ context.Context, d *domain.Device) (string, error) {
	d.DeviceID = uuid.NewString()
	r.devices[d.DeviceID] = d
	return d.DeviceID, nil
}

func (r *fakeDevicesRepo) GetDevice(ctx context.Context, companyID, deviceID string) (*domain.Device, error) {
	d, ok := r.devices[deviceID]
	if !ok {
		return nil, domain.NotFound("device")
	}
	if _, err := r.stations.GetStation(ctx, companyID, d.StationID); err != nil {
		return nil, domain.NotFound("device")
	}
	return d, nil
}

func (r *fakeDevicesRepo) ListDevicesByStation(_ context.Context, stationID string) ([]*domain.Device, error) {
	var out []*domain.Device
	for _, d := range r.devices {
		if d.StationID == stationID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDevicesRepo) ListCompanyDevices(ctx context.Context, companyID string) ([]*domain.Device, error) {
	var out []*domain.Device
	for _, d := range r.devices {
		if _, err := r.stations.GetStation(ctx, companyID, d.StationID); err == nil {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDevicesRepo) UpdateDevice(ctx context.Context, companyID, deviceID string, upd repository.DeviceUpdate) (*domain.Device, error) {
	d, err := r.GetDevice(ctx, companyID, deviceID)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		d.Name = *upd.Name
	}
	if upd.Status != nil {
		d.Status = *upd.Status
	}
	return d, nil
}

type fakeSensorDataRepo struct {
	readings []*domain.SensorReading
}

func (r *fakeSensorDataRepo) InsertReading(_ context.Context, reading *domain.SensorReading) (string, error) {
	reading.ReadingID = uuid.NewString()
	r.readings = append(r.readings, reading)
	return reading.ReadingID, nil
}

func (r *fakeSensorDataRepo) ListReadings(_ context.Context, deviceID string, f repository.ReadingFilter) ([]*domain.SensorReading, error) {
	var out []*domain.SensorReading
	for _, reading := range r.readings {
		if reading.DeviceID != deviceID {
			continue
		}
		if f.Parameter != "" && reading.Parameter != f.Parameter {
			continue
		}
		out = append(out, reading)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}
