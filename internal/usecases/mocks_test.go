package usecases

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/infrastructure/notifications"
)

// In-memory fakes implementing the domain repository interfaces.

type memUserRepo struct {
	users  map[uint]*entities.User
	nextID uint
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uint]*entities.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *entities.User) error {
	normalized := entities.NormalizeEmail(user.Email)
	for _, u := range r.users {
		if u.Email == normalized {
			return domainerrors.ErrAlreadyExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.Email = normalized
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uint) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	normalized := entities.NormalizeEmail(email)
	for _, u := range r.users {
		if u.Email == normalized {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (r *memUserRepo) Update(_ context.Context, user *entities.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	stored.FullName = user.FullName
	stored.Role = user.Role
	stored.IsActive = user.IsActive
	stored.IsVerified = user.IsVerified
	stored.LastLogin = user.LastLogin
	return nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id uint, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	u.PasswordHash = hash
	u.FailedLoginAttempts = 0
	return nil
}

func (r *memUserRepo) SetActive(_ context.Context, id uint, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	u.IsActive = active
	return nil
}

func (r *memUserRepo) RecordLoginAttempt(_ context.Context, id uint, failed bool) error {
	u, ok := r.users[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if failed {
		u.FailedLoginAttempts++
	} else {
		u.FailedLoginAttempts = 0
	}
	return nil
}

func (r *memUserRepo) List(_ context.Context, search string, offset, limit int) ([]*entities.User, int64, error) {
	var matched []*entities.User
	for _, u := range r.users {
		if search == "" || strings.Contains(strings.ToLower(u.FullName), strings.ToLower(search)) ||
			strings.Contains(u.Email, strings.ToLower(search)) {
			cp := *u
			matched = append(matched, &cp)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *memUserRepo) ListByRole(_ context.Context, role entities.UserRole) ([]*entities.User, error) {
	var out []*entities.User
	for _, u := range r.users {
		if u.Role == role && u.IsActive {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memTokenRepo struct {
	tokens map[string]*entities.RefreshToken
	nextID uint
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[string]*entities.RefreshToken{}}
}

func (r *memTokenRepo) Create(_ context.Context, token *entities.RefreshToken) error {
	r.nextID++
	token.ID = r.nextID
	cp := *token
	r.tokens[token.Token] = &cp
	return nil
}

func (r *memTokenRepo) GetByToken(_ context.Context, token string) (*entities.RefreshToken, error) {
	t, ok := r.tokens[token]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTokenRepo) Revoke(_ context.Context, token string) error {
	t, ok := r.tokens[token]
	if !ok || t.Revoked {
		return domainerrors.ErrNotFound
	}
	t.Revoked = true
	return nil
}

func (r *memTokenRepo) RevokeAllForUser(_ context.Context, userID uint) (int64, error) {
	var n int64
	for _, t := range r.tokens {
		if t.UserID == userID && !t.Revoked {
			t.Revoked = true
			n++
		}
	}
	return n, nil
}

type memClientRepo struct {
	clients map[uint]*entities.Client
	nextID  uint
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{clients: map[uint]*entities.Client{}}
}

func (r *memClientRepo) Create(_ context.Context, client *entities.Client) error {
	for _, c := range r.clients {
		if c.UserID == client.UserID {
			return domainerrors.ErrAlreadyExists
		}
	}
	r.nextID++
	client.ID = r.nextID
	cp := *client
	r.clients[client.ID] = &cp
	return nil
}

func (r *memClientRepo) GetByID(_ context.Context, id uint) (*entities.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memClientRepo) GetByUserID(_ context.Context, userID uint) (*entities.Client, error) {
	for _, c := range r.clients {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (r *memClientRepo) Update(_ context.Context, client *entities.Client) error {
	stored, ok := r.clients[client.ID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	status := stored.OnboardingStatus
	cp := *client
	// Update never writes the status column; UpdateStatusIf owns it here so
	// the fakes surface a usecase that forgets the conditional update.
	cp.OnboardingStatus = status
	r.clients[client.ID] = &cp
	return nil
}

func (r *memClientRepo) UpdateStatusIf(_ context.Context, id uint, from, to entities.OnboardingStatus) (bool, error) {
	c, ok := r.clients[id]
	if !ok || c.OnboardingStatus != from {
		return false, nil
	}
	c.OnboardingStatus = to
	return true, nil
}

func (r *memClientRepo) ListByStatus(_ context.Context, status entities.OnboardingStatus) ([]*entities.Client, error) {
	var out []*entities.Client
	for _, c := range r.clients {
		if status == "" || c.OnboardingStatus == status {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memClientRepo) CountByStatus(_ context.Context) (map[entities.OnboardingStatus]int64, error) {
	counts := map[entities.OnboardingStatus]int64{}
	for _, c := range r.clients {
		counts[c.OnboardingStatus]++
	}
	return counts, nil
}

type memKYCRepo struct {
	docs   map[uint]*entities.KYCDocument
	nextID uint
}

func newMemKYCRepo() *memKYCRepo {
	return &memKYCRepo{docs: map[uint]*entities.KYCDocument{}}
}

func (r *memKYCRepo) Create(_ context.Context, doc *entities.KYCDocument) error {
	r.nextID++
	doc.ID = r.nextID
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *memKYCRepo) GetByID(_ context.Context, id uint) (*entities.KYCDocument, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *memKYCRepo) ListByClient(_ context.Context, clientID uint) ([]*entities.KYCDocument, error) {
	var out []*entities.KYCDocument
	for _, d := range r.docs {
		if d.ClientID == clientID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memKYCRepo) ListPending(_ context.Context) ([]*entities.KYCDocument, error) {
	var out []*entities.KYCDocument
	for _, d := range r.docs {
		if d.VerificationStatus == entities.VerificationPending {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memKYCRepo) Update(_ context.Context, doc *entities.KYCDocument) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *memKYCRepo) CountBlocking(_ context.Context, clientID uint) (int64, error) {
	var n int64
	for _, d := range r.docs {
		if d.ClientID == clientID && d.VerificationStatus.BlocksApproval() {
			n++
		}
	}
	return n, nil
}

func (r *memKYCRepo) LatestByType(_ context.Context, clientID uint, docType entities.DocumentType) (*entities.KYCDocument, error) {
	var latest *entities.KYCDocument
	for _, d := range r.docs {
		if d.ClientID == clientID && d.DocumentType == docType {
			if latest == nil || d.ID > latest.ID {
				latest = d
			}
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

type memPaymentRepo struct {
	payments map[uint]*entities.Payment
	nextID   uint
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{payments: map[uint]*entities.Payment{}}
}

func (r *memPaymentRepo) Create(_ context.Context, p *entities.Payment) error {
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *memPaymentRepo) GetByID(_ context.Context, id uint) (*entities.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPaymentRepo) ListByClient(_ context.Context, clientID uint) ([]*entities.Payment, error) {
	var out []*entities.Payment
	for _, p := range r.payments {
		if p.ClientID == clientID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memPaymentRepo) ListPending(_ context.Context) ([]*entities.Payment, error) {
	var out []*entities.Payment
	for _, p := range r.payments {
		if p.VerificationStatus == entities.VerificationPending {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memPaymentRepo) Update(_ context.Context, p *entities.Payment) error {
	if _, ok := r.payments[p.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *memPaymentRepo) HasApproved(_ context.Context, clientID uint) (bool, error) {
	for _, p := range r.payments {
		if p.ClientID == clientID && p.VerificationStatus == entities.VerificationApproved {
			return true, nil
		}
	}
	return false, nil
}

type memDocumentRepo struct {
	docs   map[uint]*entities.Document
	nextID uint
}

func newMemDocumentRepo() *memDocumentRepo {
	return &memDocumentRepo{docs: map[uint]*entities.Document{}}
}

func (r *memDocumentRepo) Create(_ context.Context, doc *entities.Document) error {
	r.nextID++
	doc.ID = r.nextID
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *memDocumentRepo) GetByID(_ context.Context, id uint) (*entities.Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *memDocumentRepo) ListByClient(_ context.Context, clientID uint, filter entities.DocumentFilter) ([]*entities.Document, error) {
	var out []*entities.Document
	for _, d := range r.docs {
		if d.ClientID != clientID {
			continue
		}
		if filter.Category != "" && d.Category != filter.Category {
			continue
		}
		if filter.Year != "" && d.Year != filter.Year {
			continue
		}
		if filter.Quarter != "" && d.Quarter != filter.Quarter {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memMessageRepo struct {
	msgs   map[uint]*entities.Message
	nextID uint
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{msgs: map[uint]*entities.Message{}}
}

func (r *memMessageRepo) Create(_ context.Context, m *entities.Message) error {
	r.nextID++
	m.ID = r.nextID
	cp := *m
	r.msgs[m.ID] = &cp
	return nil
}

func (r *memMessageRepo) GetByID(_ context.Context, id uint) (*entities.Message, error) {
	m, ok := r.msgs[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *memMessageRepo) ListInbox(_ context.Context, userID uint) ([]*entities.Message, error) {
	return r.filter(func(m *entities.Message) bool { return m.ReceiverID == userID }), nil
}

func (r *memMessageRepo) ListSent(_ context.Context, userID uint) ([]*entities.Message, error) {
	return r.filter(func(m *entities.Message) bool { return m.SenderID == userID }), nil
}

func (r *memMessageRepo) ListConversation(_ context.Context, userID, otherID uint) ([]*entities.Message, error) {
	return r.filter(func(m *entities.Message) bool {
		return (m.SenderID == userID && m.ReceiverID == otherID) ||
			(m.SenderID == otherID && m.ReceiverID == userID)
	}), nil
}

func (r *memMessageRepo) MarkRead(_ context.Context, id, recipientID uint) error {
	m, ok := r.msgs[id]
	if !ok || m.ReceiverID != recipientID || m.IsRead {
		return domainerrors.ErrNotFound
	}
	m.IsRead = true
	return nil
}

func (r *memMessageRepo) filter(keep func(*entities.Message) bool) []*entities.Message {
	var out []*entities.Message
	for _, m := range r.msgs {
		if keep(m) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// fakeUoW runs the function directly; the fakes have no transactions.
type fakeUoW struct{}

func (fakeUoW) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeFiles records saved paths and can be told to fail.
type fakeFiles struct {
	saved   []string
	removed []string
	fail    bool
}

func (f *fakeFiles) save(dir, name string, src io.Reader) (string, int64, error) {
	if f.fail {
		return "", 0, fmt.Errorf("disk full")
	}
	n, err := io.Copy(io.Discard, src)
	if err != nil {
		return "", 0, err
	}
	rel := dir + "/" + name
	f.saved = append(f.saved, rel)
	return rel, n, nil
}

func (f *fakeFiles) SaveKYC(clientID uint, business, name string, _ time.Time, src io.Reader) (string, int64, error) {
	return f.save(fmt.Sprintf("client_%d_%s/kyc", clientID, business), name, src)
}

func (f *fakeFiles) SavePaymentReceipt(clientID uint, business, name string, _ time.Time, src io.Reader) (string, int64, error) {
	return f.save(fmt.Sprintf("client_%d_%s/payments", clientID, business), name, src)
}

func (f *fakeFiles) SaveDocument(clientID uint, business, category, name string, _ time.Time, src io.Reader) (string, int64, error) {
	return f.save(fmt.Sprintf("client_%d_%s/documents/%s", clientID, business, category), name, src)
}

func (f *fakeFiles) Open(relPath string) (io.ReadCloser, error) {
	for _, rel := range f.saved {
		if rel == relPath {
			return io.NopCloser(strings.NewReader("stored file contents")), nil
		}
	}
	return nil, fmt.Errorf("open %s: no such file", relPath)
}

func (f *fakeFiles) Remove(relPath string) error {
	f.removed = append(f.removed, relPath)
	return nil
}

// fakeNotifier captures emitted events
type fakeNotifier struct {
	events []notifications.Event
}

func (n *fakeNotifier) Notify(_ context.Context, event notifications.Event) {
	n.events = append(n.events, event)
}

func (n *fakeNotifier) typesSeen() []string {
	out := make([]string, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Type)
	}
	return out
}
