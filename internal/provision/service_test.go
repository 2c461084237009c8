// AngelaMos | 2026
// service_test.go

package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/carterperez-dev/gerenciador/internal/account"
	"github.com/carterperez-dev/gerenciador/internal/core"
	"github.com/carterperez-dev/gerenciador/internal/profile"
	"github.com/carterperez-dev/gerenciador/internal/role"
)

type fakeAccounts struct {
	byID map[string]*account.Account
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byID: map[string]*account.Account{}}
}

func (f *fakeAccounts) Create(_ context.Context, acct *account.Account) error {
	for _, existing := range f.byID {
		if existing.Email == acct.Email {
			return fmt.Errorf("create account: %w", core.ErrDuplicateKey)
		}
	}
	copied := *acct
	f.byID[acct.ID] = &copied
	return nil
}

func (f *fakeAccounts) GetByID(_ context.Context, id string) (*account.Account, error) {
	acct, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("get account: %w", core.ErrNotFound)
	}
	copied := *acct
	return &copied, nil
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*account.Account, error) {
	for _, acct := range f.byID {
		if acct.Email == email {
			copied := *acct
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get account by email: %w", core.ErrNotFound)
}

func (f *fakeAccounts) UpdatePassword(_ context.Context, id, passwordHash string) error {
	acct, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	acct.PasswordHash = passwordHash
	return nil
}

func (f *fakeAccounts) Confirm(_ context.Context, id string) error {
	acct, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("confirm account: %w", core.ErrNotFound)
	}
	acct.Confirmed = true
	return nil
}

func (f *fakeAccounts) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return fmt.Errorf("delete account: %w", core.ErrNotFound)
	}
	delete(f.byID, id)
	return nil
}

type fakeProfiles struct {
	byID map[string]*profile.Profile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byID: map[string]*profile.Profile{}}
}

func (f *fakeProfiles) Insert(_ context.Context, prof *profile.Profile) error {
	for _, existing := range f.byID {
		if existing.EnrollmentNumber == prof.EnrollmentNumber {
			return fmt.Errorf("insert profile: %w", core.ErrDuplicateKey)
		}
	}
	copied := *prof
	f.byID[prof.ID] = &copied
	return nil
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*profile.Profile, error) {
	prof, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("get profile: %w", core.ErrNotFound)
	}
	copied := *prof
	return &copied, nil
}

func (f *fakeProfiles) GetByEnrollment(
	_ context.Context,
	enrollmentNumber string,
) (*profile.Profile, error) {
	for _, prof := range f.byID {
		if prof.EnrollmentNumber == enrollmentNumber {
			copied := *prof
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get profile by enrollment: %w", core.ErrNotFound)
}

func (f *fakeProfiles) Update(_ context.Context, prof *profile.Profile) error {
	if _, ok := f.byID[prof.ID]; !ok {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	copied := *prof
	f.byID[prof.ID] = &copied
	return nil
}

func (f *fakeProfiles) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return fmt.Errorf("delete profile: %w", core.ErrNotFound)
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeProfiles) List(_ context.Context) ([]profile.Profile, error) {
	out := []profile.Profile{}
	for _, prof := range f.byID {
		out = append(out, *prof)
	}
	return out, nil
}

func (f *fakeProfiles) ListIDsByScope(_ context.Context, scope, scopeID string) ([]string, error) {
	ids := []string{}
	for id := range f.byID {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeProfiles) Count(_ context.Context) (int, error) {
	return len(f.byID), nil
}

type fakeRoles struct {
	byUser      map[string]string
	failReplace bool
}

func newFakeRoles() *fakeRoles {
	return &fakeRoles{byUser: map[string]string{}}
}

func (f *fakeRoles) Replace(_ context.Context, userID, r string) error {
	if f.failReplace {
		return errors.New("replace role: connection reset")
	}
	f.byUser[userID] = r
	return nil
}

func (f *fakeRoles) GetForUser(_ context.Context, userID string) (string, error) {
	r, ok := f.byUser[userID]
	if !ok {
		return "", fmt.Errorf("get role: %w", core.ErrNotFound)
	}
	return r, nil
}

func (f *fakeRoles) ListUserIDsWithRoles(_ context.Context, roles []string) ([]string, error) {
	ids := []string{}
	for userID, held := range f.byUser {
		for _, want := range roles {
			if held == want {
				ids = append(ids, userID)
			}
		}
	}
	return ids, nil
}

func (f *fakeRoles) DeleteForUser(_ context.Context, userID string) error {
	delete(f.byUser, userID)
	return nil
}

type fakePerformance struct {
	deletedFor []string
}

func (f *fakePerformance) DeleteForUser(_ context.Context, userID string) error {
	f.deletedFor = append(f.deletedFor, userID)
	return nil
}

type fakeCreator struct {
	repo *fakeAccounts
	next int
}

func (c *fakeCreator) CreateAccount(
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

type fixture struct {
	accounts *fakeAccounts
	profiles *fakeProfiles
	roles    *fakeRoles
	perf     *fakePerformance
	service  *Service
}

func newFixture() *fixture {
	accounts := newFakeAccounts()
	profiles := newFakeProfiles()
	roles := newFakeRoles()
	perf := &fakePerformance{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		accounts: accounts,
		profiles: profiles,
		roles:    roles,
		perf:     perf,
		service: NewService(
			accounts,
			profiles,
			roles,
			perf,
			&fakeCreator{repo: accounts},
			logger,
		),
	}
}

func anaInput() Input {
	return Input{
		Email:            "ana@empresa.com",
		FullName:         "Ana Silva",
		EnrollmentNumber: "1001",
		Role:             role.User,
	}
}

func TestCreateProvisionsNewUser(t *testing.T) {
	fx := newFixture()

	result, err := fx.service.Create(context.Background(), anaInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if result.Reused {
		t.Error("result.Reused = true, want false for a fresh account")
	}

	acct, err := fx.accounts.GetByID(context.Background(), result.UserID)
	if err != nil {
		t.Fatalf("account missing after provisioning: %v", err)
	}
	if acct.PasswordHash != "hashed:001001" {
		t.Errorf("password hash = %q, want derived from enrollment", acct.PasswordHash)
	}

	prof, err := fx.profiles.GetByID(context.Background(), result.UserID)
	if err != nil {
		t.Fatalf("profile missing after provisioning: %v", err)
	}
	if prof.AvatarInitials != "AS" {
		t.Errorf("avatar initials = %q, want %q", prof.AvatarInitials, "AS")
	}

	got, err := fx.roles.GetForUser(context.Background(), result.UserID)
	if err != nil || got != role.User {
		t.Errorf("role = %q (err %v), want %q", got, err, role.User)
	}
}

func TestCreateRejectsDuplicateEnrollment(t *testing.T) {
	fx := newFixture()

	if _, err := fx.service.Create(context.Background(), anaInput()); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	second := anaInput()
	second.Email = "outra@empresa.com"

	_, err := fx.service.Create(context.Background(), second)
	if !errors.Is(err, ErrDuplicateEnrollment) {
		t.Fatalf("Create error = %v, want ErrDuplicateEnrollment", err)
	}
}

func TestCreateRejectsFullyRegisteredUser(t *testing.T) {
	fx := newFixture()

	if _, err := fx.service.Create(context.Background(), anaInput()); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	second := anaInput()
	second.EnrollmentNumber = "2002"

	_, err := fx.service.Create(context.Background(), second)
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("Create error = %v, want ErrAlreadyRegistered", err)
	}
}

func TestCreateReusesAccountWithoutProfile(t *testing.T) {
	fx := newFixture()

	orphan := &account.Account{
		ID:           "acct-orphan",
		Email:        "ana@empresa.com",
		PasswordHash: "hashed:old",
		FullName:     "Ana Silva",
		Confirmed:    true,
	}
	if err := fx.accounts.Create(context.Background(), orphan); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	result, err := fx.service.Create(context.Background(), anaInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !result.Reused {
		t.Error("result.Reused = false, want true for an orphaned account")
	}
	if result.UserID != "acct-orphan" {
		t.Errorf("UserID = %q, want the existing account id", result.UserID)
	}
}

func TestCreateRollsBackOnRoleFailure(t *testing.T) {
	fx := newFixture()
	fx.roles.failReplace = true

	_, err := fx.service.Create(context.Background(), anaInput())
	if err == nil {
		t.Fatal("Create succeeded, want role failure")
	}

	if len(fx.accounts.byID) != 0 {
		t.Errorf("accounts left behind after rollback: %d", len(fx.accounts.byID))
	}
	if len(fx.profiles.byID) != 0 {
		t.Errorf("profiles left behind after rollback: %d", len(fx.profiles.byID))
	}
}

func TestResetPasswordDerivesFromEnrollment(t *testing.T) {
	fx := newFixture()

	result, err := fx.service.Create(context.Background(), anaInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := fx.service.ResetPassword(context.Background(), result.UserID); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	acct, err := fx.accounts.GetByID(context.Background(), result.UserID)
	if err != nil {
		t.Fatalf("account lookup: %v", err)
	}

	ok, err := core.VerifyPassword("001001", acct.PasswordHash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Error("reset password does not verify against derived enrollment password")
	}
}

func TestSyncPasswordsResetsEveryUser(t *testing.T) {
	fx := newFixture()

	result, err := fx.service.Create(context.Background(), anaInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ghost := &profile.Profile{
		ID:               "ghost",
		FullName:         "Bruno Costa",
		EnrollmentNumber: "2002",
	}
	if err := fx.profiles.Insert(context.Background(), ghost); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	report, err := fx.service.SyncPasswords(context.Background())
	if err != nil {
		t.Fatalf("SyncPasswords: %v", err)
	}

	if report.Total != 2 {
		t.Errorf("Total = %d, want 2", report.Total)
	}
	if report.Success != 1 {
		t.Errorf("Success = %d, want 1", report.Success)
	}
	if len(report.Errors) != 1 ||
		!strings.Contains(report.Errors[0], "Bruno Costa (matrícula 2002)") {
		t.Errorf("Errors = %v, want one entry for the accountless profile", report.Errors)
	}

	acct, err := fx.accounts.GetByID(context.Background(), result.UserID)
	if err != nil {
		t.Fatalf("account lookup: %v", err)
	}
	ok, err := core.VerifyPassword("001001", acct.PasswordHash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Error("synchronized password does not verify against derived credential")
	}
}

func TestDeleteRemovesEverything(t *testing.T) {
	fx := newFixture()

	result, err := fx.service.Create(context.Background(), anaInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := fx.service.Delete(context.Background(), result.UserID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if len(fx.accounts.byID) != 0 || len(fx.profiles.byID) != 0 || len(fx.roles.byUser) != 0 {
		t.Error("user state left behind after delete")
	}
	if len(fx.perf.deletedFor) != 1 || fx.perf.deletedFor[0] != result.UserID {
		t.Errorf("performance cleanup = %v, want [%s]", fx.perf.deletedFor, result.UserID)
	}
}
