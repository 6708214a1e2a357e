package wizard_test

import (
	"errors"
	"sort"

	"samadhan/backend/internal/models"
	"samadhan/backend/internal/storage"

	"github.com/google/uuid"
)

// fakeStorage is an in-memory stand-in for the real gorm/redis service,
// with switches for injecting boundary failures.
type fakeStorage struct {
	users      map[string]*models.User
	grievances []models.Grievance
	drafts     map[string]models.Draft

	failInsert    bool
	failSaveDraft bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		users:  make(map[string]*models.User),
		drafts: make(map[string]models.Draft),
	}
}

func (f *fakeStorage) SaveUser(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeStorage) GetUserByID(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func (f *fakeStorage) GetUserByPhone(phone string) (*models.User, error) {
	for _, u := range f.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStorage) InsertGrievance(g *models.Grievance) error {
	if f.failInsert {
		return errors.New("store unreachable")
	}
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	f.grievances = append(f.grievances, *g)
	return nil
}

func (f *fakeStorage) GetGrievanceByID(id string) (*models.Grievance, error) {
	for i := range f.grievances {
		if f.grievances[i].ID == id {
			g := f.grievances[i]
			return &g, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStorage) UpdateGrievanceStatus(id string, status models.Status) error {
	for i := range f.grievances {
		if f.grievances[i].ID == id {
			f.grievances[i].Status = status
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStorage) ListAllGrievances() ([]models.Grievance, error) {
	out := make([]models.Grievance, len(f.grievances))
	copy(out, f.grievances)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeStorage) ListGrievancesByUser(userID string) ([]models.Grievance, error) {
	var out []models.Grievance
	for _, g := range f.grievances {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStorage) SaveDraft(draft *models.Draft) error {
	if f.failSaveDraft {
		return errors.New("redis unreachable")
	}
	f.drafts[draft.UserID] = *draft
	return nil
}

func (f *fakeStorage) GetDraft(userID string) (*models.Draft, error) {
	d, ok := f.drafts[userID]
	if !ok {
		return nil, nil
	}
	copied := d
	return &copied, nil
}

func (f *fakeStorage) DeleteDraft(userID string) error {
	delete(f.drafts, userID)
	return nil
}
