package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/data/entity"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/data/repository"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/provider"
)

// ---------------- user repository fake ----------------

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*entity.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User), nextID: 1}
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	userID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email != nil && *u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByGoogleID(ctx context.Context, googleID string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByFacebookID(ctx context.Context, facebookID string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.FacebookID != nil && *u.FacebookID == facebookID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.User
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &entity.User{
		ID:           f.nextID,
		Email:        &email,
		AuthProvider: entity.ProviderEmail,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	f.users[u.ID] = u
	f.nextID++
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) CreateWithGoogle(ctx context.Context, signup *entity.SocialSignup) (*entity.User, error) {
	return f.createSocial(signup, entity.ProviderGoogle)
}

func (f *fakeUserRepo) CreateWithFacebook(ctx context.Context, signup *entity.SocialSignup) (*entity.User, error) {
	return f.createSocial(signup, entity.ProviderFacebook)
}

func (f *fakeUserRepo) createSocial(signup *entity.SocialSignup, prov entity.AuthProvider) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	providerID := signup.ProviderID
	u := &entity.User{
		ID:            f.nextID,
		Email:         signup.Email,
		Name:          signup.Name,
		FirstName:     signup.FirstName,
		LastName:      signup.LastName,
		EmailVerified: signup.Email != nil,
		AuthProvider:  prov,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}
	if prov == entity.ProviderGoogle {
		u.GoogleID = &providerID
	} else {
		u.FacebookID = &providerID
	}
	f.users[u.ID] = u
	f.nextID++
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, userID int64, googleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user %d not found", userID)
	}
	u.GoogleID = &googleID
	u.AuthProvider = entity.ProviderGoogle
	u.EmailVerified = true
	return nil
}

func (f *fakeUserRepo) LinkFacebookAccount(ctx context.Context, userID int64, facebookID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user %d not found", userID)
	}
	u.FacebookID = &facebookID
	u.AuthProvider = entity.ProviderFacebook
	u.EmailVerified = u.Email != nil
	return nil
}

func (f *fakeUserRepo) applyPatch(userID int64, patch *entity.ProfilePatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user %d not found", userID)
	}
	if patch.Name != nil {
		u.Name = patch.Name
	}
	if patch.FirstName != nil {
		u.FirstName = patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = patch.LastName
	}
	if patch.ProfilePhoto != nil {
		u.ProfilePhoto = patch.ProfilePhoto
	}
	if patch.Email != nil {
		u.Email = patch.Email
	}
	return nil
}

func (f *fakeUserRepo) UpdateFromGoogle(ctx context.Context, userID int64, patch *entity.ProfilePatch) error {
	return f.applyPatch(userID, patch)
}

func (f *fakeUserRepo) UpdateFromFacebook(ctx context.Context, userID int64, patch *entity.ProfilePatch) error {
	return f.applyPatch(userID, patch)
}

func (f *fakeUserRepo) MarkEmailVerified(ctx context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		u.EmailVerified = true
	}
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		now := time.Now()
		u.LastLogin = &now
	}
	return nil
}

func (f *fakeUserRepo) UpdateActiveStatus(ctx context.Context, userID int64, isActive bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		u.IsActive = isActive
	}
	return nil
}

func (f *fakeUserRepo) UpdateName(ctx context.Context, userID int64, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user %d not found", userID)
	}
	u.Name = &name
	u.OnboardingCompleted = true
	return nil
}

func (f *fakeUserRepo) VerifyOnboardingStatus(ctx context.Context, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return false, fmt.Errorf("user %d not found", userID)
	}
	u.OnboardingCompleted = u.Name != nil && *u.Name != ""
	return u.OnboardingCompleted, nil
}

func (f *fakeUserRepo) get(id int64) *entity.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id]
}

func (f *fakeUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

// ---------------- otp repository fake ----------------

type fakeOTPRepo struct {
	mu     sync.Mutex
	otps   []*entity.OTP
	nextID int64
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{nextID: 1}
}

func (f *fakeOTPRepo) Create(ctx context.Context, userID int64, email, code string, expiresAt time.Time) (*entity.OTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	otp := &entity.OTP{
		ID:        f.nextID,
		UserID:    userID,
		Email:     email,
		Code:      code,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	f.otps = append(f.otps, otp)
	f.nextID++
	cp := *otp
	return &cp, nil
}

func (f *fakeOTPRepo) FindByCodeAndEmail(ctx context.Context, code, email string) (*entity.OTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *entity.OTP
	for _, otp := range f.otps {
		if otp.Code == code && otp.Email == email && !otp.Used && otp.ExpiresAt.After(time.Now()) {
			if latest == nil || otp.CreatedAt.After(latest.CreatedAt) {
				latest = otp
			}
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeOTPRepo) MarkAsUsed(ctx context.Context, otpID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, otp := range f.otps {
		if otp.ID == otpID {
			otp.Used = true
		}
	}
	return nil
}

func (f *fakeOTPRepo) InvalidateUserOTPs(ctx context.Context, userID int64, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, otp := range f.otps {
		if otp.UserID == userID && otp.Email == email && !otp.Used {
			otp.Used = true
		}
	}
	return nil
}

func (f *fakeOTPRepo) CountRecent(ctx context.Context, email string, window time.Duration) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cutoff := time.Now().Add(-window)
	count := 0
	for _, otp := range f.otps {
		if otp.Email == email && otp.CreatedAt.After(cutoff) {
			count++
		}
	}
	return count, nil
}

func (f *fakeOTPRepo) unusedCount(email string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, otp := range f.otps {
		if otp.Email == email && !otp.Used {
			count++
		}
	}
	return count
}

func (f *fakeOTPRepo) latest(email string) *entity.OTP {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *entity.OTP
	for _, otp := range f.otps {
		if otp.Email == email {
			if latest == nil || otp.CreatedAt.After(latest.CreatedAt) {
				latest = otp
			}
		}
	}
	return latest
}

func (f *fakeOTPRepo) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.otps)
}

// ---------------- admin repository fake ----------------

type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[int64]*entity.Admin
	nextID int64
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[int64]*entity.Admin), nextID: 1}
}

func (f *fakeAdminRepo) FindByID(ctx context.Context, id int64) (*entity.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.admins[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAdminRepo) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminRepo) FindAll(ctx context.Context) ([]*entity.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Admin
	for _, a := range f.admins {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeAdminRepo) CountSuperAdmins(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, a := range f.admins {
		if a.Type == entity.AdminTypeSuper {
			count++
		}
	}
	return count, nil
}

func (f *fakeAdminRepo) Create(ctx context.Context, email, passwordHash string, adminType entity.AdminType) (*entity.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := &entity.Admin{
		ID:           f.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		Type:         adminType,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	f.admins[a.ID] = a
	f.nextID++
	cp := *a
	return &cp, nil
}

func (f *fakeAdminRepo) UpdateEmail(ctx context.Context, id int64, email string) error {
	return f.mutate(id, func(a *entity.Admin) { a.Email = email })
}

func (f *fakeAdminRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return f.mutate(id, func(a *entity.Admin) { a.PasswordHash = passwordHash })
}

func (f *fakeAdminRepo) UpdateType(ctx context.Context, id int64, adminType entity.AdminType) error {
	return f.mutate(id, func(a *entity.Admin) { a.Type = adminType })
}

func (f *fakeAdminRepo) UpdateActiveStatus(ctx context.Context, id int64, isActive bool) error {
	return f.mutate(id, func(a *entity.Admin) { a.IsActive = isActive })
}

func (f *fakeAdminRepo) UpdateLastLogin(ctx context.Context, id int64) error {
	return f.mutate(id, func(a *entity.Admin) {
		now := time.Now()
		a.LastLogin = &now
	})
}

func (f *fakeAdminRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.admins[id]; !ok {
		return fmt.Errorf("admin %d not found", id)
	}
	delete(f.admins, id)
	return nil
}

func (f *fakeAdminRepo) mutate(id int64, fn func(*entity.Admin)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.admins[id]
	if !ok {
		return fmt.Errorf("admin %d not found", id)
	}
	fn(a)
	return nil
}

func (f *fakeAdminRepo) get(id int64) *entity.Admin {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.admins[id]
}

// ---------------- mailer fake ----------------

type fakeMailer struct {
	mu    sync.Mutex
	sent  []string // recipient addresses
	codes []string
	fail  bool
}

func (f *fakeMailer) SendOTP(to, code string, validFor time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("smtp unavailable")
	}
	f.sent = append(f.sent, to)
	f.codes = append(f.codes, code)
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// ---------------- oauth provider fake ----------------

type fakeProvider struct {
	profile    *provider.Profile
	fetchErr   error
	configured bool
}

func (f *fakeProvider) Configured() bool { return f.configured }

func (f *fakeProvider) AuthCodeURL(state string) string {
	return "https://provider.test/consent?state=" + state
}

func (f *fakeProvider) FetchProfile(ctx context.Context, code string) (*provider.Profile, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	cp := *f.profile
	return &cp, nil
}

// ---------------- photo store fake ----------------

type fakePhotoStore struct {
	mu       sync.Mutex
	mirrored []string
	deleted  []string
	failNext bool
}

func (f *fakePhotoStore) Mirror(ctx context.Context, srcURL string, userID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		return "", fmt.Errorf("storage unavailable")
	}
	stored := fmt.Sprintf("https://cdn.test/profile-photos/users/%d/%s", userID, srcURL)
	f.mirrored = append(f.mirrored, stored)
	return stored, nil
}

func (f *fakePhotoStore) Delete(ctx context.Context, storedURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, storedURL)
	return nil
}

// ---------------- helpers ----------------

func newTestRepos() (*repository.Repository, *fakeUserRepo, *fakeOTPRepo, *fakeAdminRepo) {
	users := newFakeUserRepo()
	otps := newFakeOTPRepo()
	admins := newFakeAdminRepo()
	return &repository.Repository{User: users, OTP: otps, Admin: admins}, users, otps, admins
}

func strPtr(s string) *string { return &s }
