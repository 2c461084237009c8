// AngelaMos | 2026
// fakes_test.go

package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/carterperez-dev/gerenciador/internal/account"
	"github.com/carterperez-dev/gerenciador/internal/core"
	"github.com/carterperez-dev/gerenciador/internal/performance"
	"github.com/carterperez-dev/gerenciador/internal/profile"
	"github.com/carterperez-dev/gerenciador/internal/provision"
)

type memAccounts struct {
	byID map[string]*account.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byID: map[string]*account.Account{}}
}

func (m *memAccounts) Create(_ context.Context, acct *account.Account) error {
	for _, existing := range m.byID {
		if existing.Email == acct.Email {
			return fmt.Errorf("create account: %w", core.ErrDuplicateKey)
		}
	}
	copied := *acct
	m.byID[acct.ID] = &copied
	return nil
}

func (m *memAccounts) GetByID(_ context.Context, id string) (*account.Account, error) {
	acct, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("get account: %w", core.ErrNotFound)
	}
	copied := *acct
	return &copied, nil
}

func (m *memAccounts) GetByEmail(_ context.Context, email string) (*account.Account, error) {
	for _, acct := range m.byID {
		if acct.Email == email {
			copied := *acct
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get account by email: %w", core.ErrNotFound)
}

func (m *memAccounts) UpdatePassword(_ context.Context, id, passwordHash string) error {
	acct, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	acct.PasswordHash = passwordHash
	return nil
}

func (m *memAccounts) Confirm(_ context.Context, id string) error {
	acct, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("confirm account: %w", core.ErrNotFound)
	}
	acct.Confirmed = true
	return nil
}

func (m *memAccounts) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return fmt.Errorf("delete account: %w", core.ErrNotFound)
	}
	delete(m.byID, id)
	return nil
}

type memProfiles struct {
	byID map[string]*profile.Profile
}

func newMemProfiles() *memProfiles {
	return &memProfiles{byID: map[string]*profile.Profile{}}
}

func (m *memProfiles) Insert(_ context.Context, prof *profile.Profile) error {
	for _, existing := range m.byID {
		if existing.EnrollmentNumber == prof.EnrollmentNumber {
			return fmt.Errorf("insert profile: %w", core.ErrDuplicateKey)
		}
	}
	copied := *prof
	m.byID[prof.ID] = &copied
	return nil
}

func (m *memProfiles) GetByID(_ context.Context, id string) (*profile.Profile, error) {
	prof, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("get profile: %w", core.ErrNotFound)
	}
	copied := *prof
	return &copied, nil
}

func (m *memProfiles) GetByEnrollment(
	_ context.Context,
	enrollmentNumber string,
) (*profile.Profile, error) {
	for _, prof := range m.byID {
		if prof.EnrollmentNumber == enrollmentNumber {
			copied := *prof
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get profile by enrollment: %w", core.ErrNotFound)
}

func (m *memProfiles) Update(_ context.Context, prof *profile.Profile) error {
	if _, ok := m.byID[prof.ID]; !ok {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	copied := *prof
	m.byID[prof.ID] = &copied
	return nil
}

func (m *memProfiles) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return fmt.Errorf("delete profile: %w", core.ErrNotFound)
	}
	delete(m.byID, id)
	return nil
}

func (m *memProfiles) List(_ context.Context) ([]profile.Profile, error) {
	out := []profile.Profile{}
	for _, prof := range m.byID {
		out = append(out, *prof)
	}
	return out, nil
}

func (m *memProfiles) ListIDsByScope(_ context.Context, scope, scopeID string) ([]string, error) {
	ids := []string{}
	for id := range m.byID {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memProfiles) Count(_ context.Context) (int, error) {
	return len(m.byID), nil
}

type memRoles struct {
	byUser     map[string]string
	replaceErr error
}

func newMemRoles() *memRoles {
	return &memRoles{byUser: map[string]string{}}
}

func (m *memRoles) Replace(_ context.Context, userID, r string) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.byUser[userID] = r
	return nil
}

func (m *memRoles) GetForUser(_ context.Context, userID string) (string, error) {
	r, ok := m.byUser[userID]
	if !ok {
		return "", fmt.Errorf("get role: %w", core.ErrNotFound)
	}
	return r, nil
}

func (m *memRoles) ListUserIDsWithRoles(_ context.Context, roles []string) ([]string, error) {
	ids := []string{}
	for userID, held := range m.byUser {
		for _, want := range roles {
			if held == want {
				ids = append(ids, userID)
			}
		}
	}
	return ids, nil
}

func (m *memRoles) DeleteForUser(_ context.Context, userID string) error {
	delete(m.byUser, userID)
	return nil
}

// memRecords keys records by user and date, mirroring the upsert
// constraint.
type memRecords struct {
	byKey     map[string]*performance.Record
	next      int
	upsertErr error
}

func newMemRecords() *memRecords {
	return &memRecords{byKey: map[string]*performance.Record{}}
}

func (m *memRecords) key(userID string, record *performance.Record) string {
	return userID + "|" + record.RecordDate.Format("2006-01-02")
}

func (m *memRecords) Upsert(_ context.Context, record *performance.Record) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	k := m.key(record.UserID, record)
	if existing, ok := m.byKey[k]; ok {
		record.ID = existing.ID
	} else {
		m.next++
		record.ID = fmt.Sprintf("rec-%d", m.next)
	}
	copied := *record
	m.byKey[k] = &copied
	return nil
}

func (m *memRecords) GetByID(_ context.Context, id string) (*performance.Record, error) {
	for _, record := range m.byKey {
		if record.ID == id {
			copied := *record
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get record: %w", core.ErrNotFound)
}

func (m *memRecords) GetLatestForUser(_ context.Context, userID string) (*performance.Record, error) {
	var latest *performance.Record
	for _, record := range m.byKey {
		if record.UserID != userID {
			continue
		}
		if latest == nil || record.RecordDate.After(latest.RecordDate) {
			latest = record
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("latest record: %w", core.ErrNotFound)
	}
	copied := *latest
	return &copied, nil
}

func (m *memRecords) ListForUser(_ context.Context, userID string) ([]performance.Record, error) {
	out := []performance.Record{}
	for _, record := range m.byKey {
		if record.UserID == userID {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (m *memRecords) Update(_ context.Context, record *performance.Record) error {
	for k, existing := range m.byKey {
		if existing.ID == record.ID {
			copied := *record
			m.byKey[k] = &copied
			return nil
		}
	}
	return fmt.Errorf("update record: %w", core.ErrNotFound)
}

func (m *memRecords) Delete(_ context.Context, id string) error {
	for k, existing := range m.byKey {
		if existing.ID == id {
			delete(m.byKey, k)
			return nil
		}
	}
	return fmt.Errorf("delete record: %w", core.ErrNotFound)
}

func (m *memRecords) DeleteForUser(_ context.Context, userID string) error {
	for k, existing := range m.byKey {
		if existing.UserID == userID {
			delete(m.byKey, k)
		}
	}
	return nil
}

type memCreator struct {
	repo *memAccounts
	next int
}

func (c *memCreator) CreateAccount(
	ctx context.Context,
	email, password, fullName string,
) (*account.Account, error) {
	c.next++
	acct := &account.Account{
		ID:           fmt.Sprintf("acct-%d", c.next),
		Email:        email,
		PasswordHash: "hashed:" + password,
		FullName:     fullName,
		Confirmed:    true,
	}
	if err := c.repo.Create(ctx, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

type ingestFixture struct {
	accounts *memAccounts
	profiles *memProfiles
	roles    *memRoles
	records  *memRecords
	logger   *slog.Logger
}

func newIngestFixture() *ingestFixture {
	return &ingestFixture{
		accounts: newMemAccounts(),
		profiles: newMemProfiles(),
		roles:    newMemRoles(),
		records:  newMemRecords(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (f *ingestFixture) provisioner() *provision.Service {
	return provision.NewService(
		f.accounts,
		f.profiles,
		f.roles,
		f.records,
		&memCreator{repo: f.accounts},
		f.logger,
	)
}

func (f *ingestFixture) userIngestor() *UserIngestor {
	return NewUserIngestor(f.provisioner(), NewSlogNotifier(f.logger), f.logger)
}

func (f *ingestFixture) performanceIngestor() *PerformanceIngestor {
	return NewPerformanceIngestor(
		f.accounts,
		f.profiles,
		f.records,
		NewSlogNotifier(f.logger),
		f.logger,
	)
}
