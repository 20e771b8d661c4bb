package service_test

import (
	"context"
	"sort"

	"github.com/diagnosis/hbnb-listings/internal/domain"
	"github.com/diagnosis/hbnb-listings/internal/service"
)

// ---------- Mocks ----------

type mockEventBus struct {
	published  []string
	publishErr error
}

func (m *mockEventBus) Publish(_ context.Context, subject string, _ interface{}) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, subject)
	return nil
}

func (m *mockEventBus) Close() error { return nil }

type mockMailer struct {
	lastTo   string
	lastName string
	sendErr  error
}

func (m *mockMailer) SendWelcome(toEmail, toName string) error {
	m.lastTo = toEmail
	m.lastName = toName
	return m.sendErr
}

type mockUserRepo struct {
	users map[string]*domain.User
	err   error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, u *domain.User) error {
	if m.err != nil {
		return m.err
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) List(_ context.Context, limit, offset int) ([]domain.User, error) {
	out := []domain.User{}
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return []domain.User{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockUserRepo) Update(_ context.Context, u *domain.User) error {
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.users[id]; !ok {
		return false, nil
	}
	delete(m.users, id)
	return true, nil
}

func (m *mockUserRepo) CountAdmins(_ context.Context) (int, error) {
	n := 0
	for _, u := range m.users {
		if u.IsAdmin {
			n++
		}
	}
	return n, nil
}

type mockAmenityRepo struct {
	amenities map[string]*domain.Amenity
}

func newMockAmenityRepo() *mockAmenityRepo {
	return &mockAmenityRepo{amenities: make(map[string]*domain.Amenity)}
}

func (m *mockAmenityRepo) Create(_ context.Context, a *domain.Amenity) error {
	cp := *a
	m.amenities[a.ID] = &cp
	return nil
}

func (m *mockAmenityRepo) FindByID(_ context.Context, id string) (*domain.Amenity, error) {
	a, ok := m.amenities[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *mockAmenityRepo) FindByName(_ context.Context, name string) (*domain.Amenity, error) {
	for _, a := range m.amenities {
		if a.Name == name {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockAmenityRepo) List(_ context.Context) ([]domain.Amenity, error) {
	out := []domain.Amenity{}
	for _, a := range m.amenities {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockAmenityRepo) Update(_ context.Context, a *domain.Amenity) error {
	cp := *a
	m.amenities[a.ID] = &cp
	return nil
}

func (m *mockAmenityRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.amenities[id]; !ok {
		return false, nil
	}
	delete(m.amenities, id)
	return true, nil
}

type mockPlaceRepo struct {
	places    map[string]*domain.Place
	links     map[string][]string
	amenities *mockAmenityRepo
}

func newMockPlaceRepo(amenities *mockAmenityRepo) *mockPlaceRepo {
	return &mockPlaceRepo{
		places:    make(map[string]*domain.Place),
		links:     make(map[string][]string),
		amenities: amenities,
	}
}

func (m *mockPlaceRepo) Create(_ context.Context, p *domain.Place, amenityIDs []string) error {
	cp := *p
	m.places[p.ID] = &cp
	m.links[p.ID] = append([]string{}, amenityIDs...)
	return nil
}

func (m *mockPlaceRepo) materialize(p *domain.Place) *domain.Place {
	cp := *p
	cp.Amenities = []domain.Amenity{}
	for _, aid := range m.links[p.ID] {
		if a, ok := m.amenities.amenities[aid]; ok {
			cp.Amenities = append(cp.Amenities, *a)
		}
	}
	return &cp
}

func (m *mockPlaceRepo) FindByID(_ context.Context, id string) (*domain.Place, error) {
	p, ok := m.places[id]
	if !ok {
		return nil, nil
	}
	return m.materialize(p), nil
}

func (m *mockPlaceRepo) List(_ context.Context, limit, offset int) ([]domain.Place, error) {
	out := []domain.Place{}
	for _, p := range m.places {
		out = append(out, *m.materialize(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return []domain.Place{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockPlaceRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Place, error) {
	out := []domain.Place{}
	for _, p := range m.places {
		if p.OwnerID == ownerID {
			out = append(out, *m.materialize(p))
		}
	}
	return out, nil
}

func (m *mockPlaceRepo) ListByPriceRange(_ context.Context, minPrice, maxPrice float64) ([]domain.Place, error) {
	out := []domain.Place{}
	for _, p := range m.places {
		if p.Price >= minPrice && p.Price <= maxPrice {
			out = append(out, *m.materialize(p))
		}
	}
	return out, nil
}

func (m *mockPlaceRepo) Update(_ context.Context, p *domain.Place) error {
	cp := *p
	m.places[p.ID] = &cp
	return nil
}

func (m *mockPlaceRepo) ReplaceAmenities(_ context.Context, placeID string, amenityIDs []string) error {
	m.links[placeID] = append([]string{}, amenityIDs...)
	return nil
}

func (m *mockPlaceRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.places[id]; !ok {
		return false, nil
	}
	delete(m.places, id)
	delete(m.links, id)
	return true, nil
}

func (m *mockPlaceRepo) CountByOwner(_ context.Context, ownerID string) (int, error) {
	n := 0
	for _, p := range m.places {
		if p.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

type mockReviewRepo struct {
	reviews map[string]*domain.Review
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{reviews: make(map[string]*domain.Review)}
}

func (m *mockReviewRepo) Create(_ context.Context, rv *domain.Review) error {
	cp := *rv
	m.reviews[rv.ID] = &cp
	return nil
}

func (m *mockReviewRepo) FindByID(_ context.Context, id string) (*domain.Review, error) {
	rv, ok := m.reviews[id]
	if !ok {
		return nil, nil
	}
	cp := *rv
	return &cp, nil
}

func (m *mockReviewRepo) FindByUserAndPlace(_ context.Context, userID, placeID string) (*domain.Review, error) {
	for _, rv := range m.reviews {
		if rv.UserID == userID && rv.PlaceID == placeID {
			cp := *rv
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockReviewRepo) List(_ context.Context, limit, offset int) ([]domain.Review, error) {
	out := []domain.Review{}
	for _, rv := range m.reviews {
		out = append(out, *rv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return []domain.Review{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockReviewRepo) ListByPlace(_ context.Context, placeID string) ([]domain.Review, error) {
	out := []domain.Review{}
	for _, rv := range m.reviews {
		if rv.PlaceID == placeID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (m *mockReviewRepo) Update(_ context.Context, rv *domain.Review) error {
	cp := *rv
	m.reviews[rv.ID] = &cp
	return nil
}

func (m *mockReviewRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.reviews[id]; !ok {
		return false, nil
	}
	delete(m.reviews, id)
	return true, nil
}

func (m *mockReviewRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, rv := range m.reviews {
		if rv.UserID == userID {
			delete(m.reviews, id)
			n++
		}
	}
	return n, nil
}

// ---------- Test fixture ----------

type testEnv struct {
	facade    *service.Facade
	users     *mockUserRepo
	places    *mockPlaceRepo
	reviews   *mockReviewRepo
	amenities *mockAmenityRepo
	bus       *mockEventBus
	mail      *mockMailer
}

func newTestEnv() *testEnv {
	users := newMockUserRepo()
	amenities := newMockAmenityRepo()
	places := newMockPlaceRepo(amenities)
	reviews := newMockReviewRepo()
	bus := &mockEventBus{}
	mail := &mockMailer{}

	f := service.NewFacade(users, places, reviews, amenities, bus, mail)
	return &testEnv{
		facade:    f,
		users:     users,
		places:    places,
		reviews:   reviews,
		amenities: amenities,
		bus:       bus,
		mail:      mail,
	}
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
