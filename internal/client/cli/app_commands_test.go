package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/propkeeper/internal/client/api"
	"github.com/dmitrijs2005/propkeeper/internal/client/models"
	"github.com/dmitrijs2005/propkeeper/internal/client/session"
	"github.com/dmitrijs2005/propkeeper/internal/logging"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

// memTokenStore is an in-memory session.TokenStore for handler tests.
type memTokenStore struct {
	token string
}

func (s *memTokenStore) Get(ctx context.Context) (string, error) { return s.token, nil }
func (s *memTokenStore) Set(ctx context.Context, token string) error {
	s.token = token
	return nil
}
func (s *memTokenStore) Clear(ctx context.Context) error { s.token = ""; return nil }

func signToken(t *testing.T, role string, userID int64) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": "tester",
		"role":     role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newTestApp(apiClient api.Client, r *bufio.Reader, token string) *App {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return &App{
		api:      apiClient,
		session:  session.NewManager(&memTokenStore{token: token}, logger),
		validate: validator.New(),
		reader:   r,
		log:      logger,
	}
}

type fakeAPI struct {
	// Session.
	loginUser, loginPass string
	loginErr             error
	logoutCount          int

	// Accounts.
	signupDraft   models.UserDraft
	signupCount   int
	listUsersOut  []models.User
	listUsersErr  error
	deleteUserID  int64
	deleteUserCnt int
	passwdID      int64
	passwdValue   string

	// Properties.
	listOut     []models.Property
	listErr     error
	listCount   int
	getOut      models.Property
	getErr      error
	getID       int64
	createDraft models.PropertyDraft
	createCount int
	updateID    int64
	updateDraft models.PropertyDraft
	updateCount int
	verifyID    int64
	verifyCount int
	deleteID    int64
	deleteCount int
}

func (f *fakeAPI) Close() error { return nil }

func (f *fakeAPI) Login(ctx context.Context, username, password string) error {
	f.loginUser, f.loginPass = username, password
	return f.loginErr
}
func (f *fakeAPI) Logout(ctx context.Context) error { f.logoutCount++; return nil }

func (f *fakeAPI) Signup(ctx context.Context, draft models.UserDraft) (models.User, error) {
	f.signupCount++
	f.signupDraft = draft
	return models.User{ID: 10, Username: draft.Username}, nil
}
func (f *fakeAPI) ListUsers(ctx context.Context) ([]models.User, error) {
	return f.listUsersOut, f.listUsersErr
}
func (f *fakeAPI) GetUser(ctx context.Context, id int64) (models.User, error) {
	return models.User{ID: id}, nil
}
func (f *fakeAPI) UpdateUser(ctx context.Context, id int64, update api.UserUpdate) error { return nil }
func (f *fakeAPI) DeleteUser(ctx context.Context, id int64) error {
	f.deleteUserCnt++
	f.deleteUserID = id
	return nil
}
func (f *fakeAPI) ChangePassword(ctx context.Context, id int64, newPassword string) error {
	f.passwdID = id
	f.passwdValue = newPassword
	return nil
}

func (f *fakeAPI) ListProperties(ctx context.Context) ([]models.Property, error) {
	f.listCount++
	return f.listOut, f.listErr
}
func (f *fakeAPI) GetProperty(ctx context.Context, id int64) (models.Property, error) {
	f.getID = id
	return f.getOut, f.getErr
}
func (f *fakeAPI) CreateProperty(ctx context.Context, draft models.PropertyDraft) (models.Property, error) {
	f.createCount++
	f.createDraft = draft
	return models.Property{ID: 1, Title: draft.Title}, nil
}
func (f *fakeAPI) UpdateProperty(ctx context.Context, id int64, draft models.PropertyDraft) (models.Property, error) {
	f.updateCount++
	f.updateID = id
	f.updateDraft = draft
	return models.Property{ID: id, Title: draft.Title}, nil
}
func (f *fakeAPI) VerifyProperty(ctx context.Context, id int64) (models.Property, error) {
	f.verifyCount++
	f.verifyID = id
	return models.Property{ID: id, Verified: true}, nil
}
func (f *fakeAPI) DeleteProperty(ctx context.Context, id int64) error {
	f.deleteCount++
	f.deleteID = id
	return nil
}

// ------------ tests ------------

func TestList_GuestIsRefusedLocally(t *testing.T) {
	fa := &fakeAPI{}
	app := newTestApp(fa, nil, "")

	if err := app.List(context.Background()); err != nil {
		t.Fatalf("List err: %v", err)
	}
	if fa.listCount != 0 {
		t.Fatalf("api must not be called without a session, got %d calls", fa.listCount)
	}
}

func TestList_OK(t *testing.T) {
	fa := &fakeAPI{
		listOut: []models.Property{
			{ID: 1, Title: "A", SellerID: 7, Verified: false},
			{ID: 2, Title: "B", SellerID: 9, Verified: true},
		},
	}
	app := newTestApp(fa, nil, signToken(t, "seller", 7))

	if err := app.List(context.Background()); err != nil {
		t.Fatalf("List err: %v", err)
	}
	if fa.listCount != 1 {
		t.Fatalf("ListProperties called %d times, want 1", fa.listCount)
	}
}

func TestList_ErrorPropagates(t *testing.T) {
	fa := &fakeAPI{listErr: errors.New("boom")}
	app := newTestApp(fa, nil, signToken(t, "buyer", 3))

	if err := app.List(context.Background()); err == nil {
		t.Fatal("want error from ListProperties to propagate")
	}
}

func TestAdd_BuyerIsRefusedLocally(t *testing.T) {
	fa := &fakeAPI{}
	app := newTestApp(fa, nil, signToken(t, "buyer", 3))

	if err := app.Add(context.Background()); err != nil {
		t.Fatalf("Add err: %v", err)
	}
	if fa.createCount != 0 {
		t.Fatalf("CreateProperty must not be called for a buyer")
	}
}

func TestAdd_SellerCreatesDraft(t *testing.T) {
	fa := &fakeAPI{}
	r := readerFromLines(
		"Cozy flat",     // Title
		"Two rooms",     // Description
		"120000",        // Price
		"Riga",          // Location
		"apartment",     // Type
		"2",             // Bedrooms
		"1",             // Bathrooms
		"55",            // Area
	)
	app := newTestApp(fa, r, signToken(t, "seller", 7))

	if err := app.Add(context.Background()); err != nil {
		t.Fatalf("Add err: %v", err)
	}
	require.Equal(t, 1, fa.createCount)
	require.Equal(t, "Cozy flat", fa.createDraft.Title)
	require.Equal(t, 120000.0, fa.createDraft.Price)
	require.Equal(t, "apartment", fa.createDraft.PropertyType)
	require.Equal(t, 2, fa.createDraft.Bedrooms)
}

func TestAdd_InvalidDraftIsNotSent(t *testing.T) {
	fa := &fakeAPI{}
	r := readerFromLines(
		"Cozy flat", // Title
		"",          // Description
		"0",         // Price: must be > 0
		"Riga",
		"apartment",
		"2",
		"1",
		"55",
	)
	app := newTestApp(fa, r, signToken(t, "seller", 7))

	if err := app.Add(context.Background()); err == nil {
		t.Fatal("want validation error")
	}
	if fa.createCount != 0 {
		t.Fatalf("invalid draft must not reach the API")
	}
}

func TestEdit_NonOwnerIsRefusedLocally(t *testing.T) {
	fa := &fakeAPI{getOut: models.Property{ID: 5, Title: "Other", SellerID: 9}}
	app := newTestApp(fa, readerFromLines("5"), signToken(t, "seller", 7))

	if err := app.Edit(context.Background()); err != nil {
		t.Fatalf("Edit err: %v", err)
	}
	if fa.getID != 5 {
		t.Fatalf("GetProperty called with wrong id: %d", fa.getID)
	}
	if fa.updateCount != 0 {
		t.Fatalf("UpdateProperty must not be called for foreign listings")
	}
}

func TestEdit_OwnerUpdates(t *testing.T) {
	fa := &fakeAPI{getOut: models.Property{
		ID: 5, Title: "Old title", Price: 100, SellerID: 7, PropertyType: "house",
	}}
	r := readerFromLines(
		"5",         // listing id
		"New title", // Title
		"",          // Description: keep current
		"150",       // Price
		"",          // Location: keep current
		"",          // Type: keep current
		"3",
		"2",
		"90",
	)
	app := newTestApp(fa, r, signToken(t, "seller", 7))

	if err := app.Edit(context.Background()); err != nil {
		t.Fatalf("Edit err: %v", err)
	}
	require.Equal(t, 1, fa.updateCount)
	require.Equal(t, int64(5), fa.updateID)
	require.Equal(t, "New title", fa.updateDraft.Title)
	require.Equal(t, "house", fa.updateDraft.PropertyType)
	require.Equal(t, 150.0, fa.updateDraft.Price)
}

func TestVerify_NonAdminIsRefusedLocally(t *testing.T) {
	fa := &fakeAPI{}
	app := newTestApp(fa, readerFromLines("3"), signToken(t, "seller", 7))

	if err := app.Verify(context.Background()); err != nil {
		t.Fatalf("Verify err: %v", err)
	}
	if fa.verifyCount != 0 {
		t.Fatalf("VerifyProperty must not be called for non-admins")
	}
}

func TestVerify_Admin(t *testing.T) {
	fa := &fakeAPI{}
	app := newTestApp(fa, readerFromLines("3"), signToken(t, "admin", 1))

	if err := app.Verify(context.Background()); err != nil {
		t.Fatalf("Verify err: %v", err)
	}
	require.Equal(t, 1, fa.verifyCount)
	require.Equal(t, int64(3), fa.verifyID)
}

func TestDelete_ConfirmAndCancel(t *testing.T) {
	fa := &fakeAPI{getOut: models.Property{ID: 4, Title: "Mine", SellerID: 7}}
	app := newTestApp(fa, readerFromLines("4", "y"), signToken(t, "seller", 7))

	if err := app.Delete(context.Background()); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
	require.Equal(t, 1, fa.deleteCount)
	require.Equal(t, int64(4), fa.deleteID)

	fa2 := &fakeAPI{getOut: models.Property{ID: 4, Title: "Mine", SellerID: 7}}
	app2 := newTestApp(fa2, readerFromLines("4", "n"), signToken(t, "seller", 7))

	if err := app2.Delete(context.Background()); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
	if fa2.deleteCount != 0 {
		t.Fatalf("cancelled delete must not reach the API")
	}
}

func TestUsers_NonAdminIsRefusedLocally(t *testing.T) {
	fa := &fakeAPI{listUsersOut: []models.User{{ID: 1}}}
	app := newTestApp(fa, nil, signToken(t, "buyer", 3))

	if err := app.Users(context.Background()); err != nil {
		t.Fatalf("Users err: %v", err)
	}
}

func TestRemoveUser_SelfIsRefused(t *testing.T) {
	fa := &fakeAPI{}
	app := newTestApp(fa, readerFromLines("1"), signToken(t, "admin", 1))

	if err := app.RemoveUser(context.Background()); err != nil {
		t.Fatalf("RemoveUser err: %v", err)
	}
	if fa.deleteUserCnt != 0 {
		t.Fatalf("deleting own account must be refused locally")
	}
}

func TestRemoveUser_Admin(t *testing.T) {
	fa := &fakeAPI{}
	app := newTestApp(fa, readerFromLines("2"), signToken(t, "admin", 1))

	if err := app.RemoveUser(context.Background()); err != nil {
		t.Fatalf("RemoveUser err: %v", err)
	}
	require.Equal(t, 1, fa.deleteUserCnt)
	require.Equal(t, int64(2), fa.deleteUserID)
}

func TestPasswd_ChangesOwnPassword(t *testing.T) {
	old := getPassword
	defer func() { getPassword = old }()
	getPassword = func(w io.Writer) (string, error) { return "hunter22", nil }

	fa := &fakeAPI{}
	app := newTestApp(fa, nil, signToken(t, "buyer", 3))

	if err := app.Passwd(context.Background()); err != nil {
		t.Fatalf("Passwd err: %v", err)
	}
	require.Equal(t, int64(3), fa.passwdID)
	require.Equal(t, "hunter22", fa.passwdValue)
}

func TestPasswd_AdminResetsAnotherAccount(t *testing.T) {
	old := getPassword
	defer func() { getPassword = old }()
	getPassword = func(w io.Writer) (string, error) { return "hunter22", nil }

	fa := &fakeAPI{}
	app := newTestApp(fa, readerFromLines("5"), signToken(t, "admin", 1))

	if err := app.Passwd(context.Background()); err != nil {
		t.Fatalf("Passwd err: %v", err)
	}
	require.Equal(t, int64(5), fa.passwdID)
}

func TestPasswd_TooShortIsNotSent(t *testing.T) {
	old := getPassword
	defer func() { getPassword = old }()
	getPassword = func(w io.Writer) (string, error) { return "abc", nil }

	fa := &fakeAPI{}
	app := newTestApp(fa, nil, signToken(t, "buyer", 3))

	if err := app.Passwd(context.Background()); err != nil {
		t.Fatalf("Passwd err: %v", err)
	}
	if fa.passwdValue != "" {
		t.Fatalf("short password must not reach the API")
	}
}
