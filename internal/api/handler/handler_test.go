package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ourletters/love-letters/internal/api/middleware"
	"github.com/ourletters/love-letters/internal/core/domain"
	"github.com/ourletters/love-letters/internal/core/ports"
)

type stubAppService struct {
	bootstrapFn func(ctx context.Context, c ports.Client, deepLinkID string) (*ports.View, error)
	currentFn   func(ctx context.Context, c ports.Client) (*ports.View, error)
	loginFn     func(ctx context.Context, c ports.Client, passcode string) (*ports.View, error)
	logoutFn    func(ctx context.Context, c ports.Client) (*ports.View, error)
	navigateFn  func(ctx context.Context, c ports.Client, to domain.PageKind, letterID string) (*ports.View, error)
	submitFn    func(ctx context.Context, c ports.Client, draft domain.Draft) (*ports.View, error)
	shareFn     func(ctx context.Context, c ports.Client, letterID string) (*ports.ShareResult, error)
	authorsFn   func(ctx context.Context, c ports.Client) ([]domain.User, error)
}

func (s *stubAppService) Bootstrap(ctx context.Context, c ports.Client, id string) (*ports.View, error) {
	return s.bootstrapFn(ctx, c, id)
}

func (s *stubAppService) Current(ctx context.Context, c ports.Client) (*ports.View, error) {
	return s.currentFn(ctx, c)
}

func (s *stubAppService) Login(ctx context.Context, c ports.Client, passcode string) (*ports.View, error) {
	return s.loginFn(ctx, c, passcode)
}

func (s *stubAppService) Logout(ctx context.Context, c ports.Client) (*ports.View, error) {
	return s.logoutFn(ctx, c)
}

func (s *stubAppService) Navigate(ctx context.Context, c ports.Client, to domain.PageKind, id string) (*ports.View, error) {
	return s.navigateFn(ctx, c, to, id)
}

func (s *stubAppService) Submit(ctx context.Context, c ports.Client, d domain.Draft) (*ports.View, error) {
	return s.submitFn(ctx, c, d)
}

func (s *stubAppService) Share(ctx context.Context, c ports.Client, id string) (*ports.ShareResult, error) {
	return s.shareFn(ctx, c, id)
}

func (s *stubAppService) Authors(ctx context.Context, c ports.Client) ([]domain.User, error) {
	return s.authorsFn(ctx, c)
}

type mapStorage map[string]string

func (m mapStorage) Get(k string) (string, bool) {
	v, ok := m[k]
	return v, ok
}

func (m mapStorage) Set(k, v string) error {
	m[k] = v
	return nil
}

func (m mapStorage) Remove(k string) error {
	delete(m, k)
	return nil
}

const testClientID = "0b6f2c9e-3d7a-4c55-9a51-2f1f1d0c8e11"

// newContext builds an echo context the way the ClientID and Session
// middleware leave it.
func newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextClientID, testClientID)
	c.Set(middleware.ContextStorage, ports.ClientStorage(mapStorage{}))
	c.Set(middleware.ContextOrigin, "https://letters.example.com")
	return c, rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) viewResponse {
	t.Helper()
	var v viewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return v
}

func composeOf(d domain.Draft, err error) *ports.View {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &ports.View{Kind: ports.ViewAdd, Compose: &ports.ComposeView{
		Draft:   d,
		Authors: []domain.User{{ID: "u1", Name: "Jen", Color: "#FF69B4"}},
		Error:   msg,
	}}
}

func TestViewHandler_Bootstrap_DeepLink(t *testing.T) {
	embed := domain.EmbedURL("abc12345678")
	song := "https://youtu.be/abc12345678"
	stub := &stubAppService{
		bootstrapFn: func(_ context.Context, c ports.Client, id string) (*ports.View, error) {
			if id != "l-1" || c.ID != testClientID || c.Origin != "https://letters.example.com" {
				t.Fatalf("unexpected args: %q %+v", id, c)
			}
			return &ports.View{Kind: ports.ViewLetter, Detail: &ports.DetailView{
				Status: ports.DetailFound,
				Letter: &ports.LetterDetail{
					LetterCard:      ports.LetterCard{ID: "l-1", Title: "Hi", AuthorName: "Unknown", DisplayDate: "September 7, 2025"},
					YouTubeMusicURL: &song,
					EmbedURL:        &embed,
					ShareURL:        domain.ShareURL(c.Origin, id),
				},
			}}, nil
		},
	}

	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/api/bootstrap?letterId=l-1", nil))
	if err := NewViewHandler(stub).Bootstrap(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	v := decodeView(t, rec)
	if v.Kind != "letter" || v.Letter == nil || v.Letter.Status != "found" {
		t.Fatalf("unexpected view %+v", v)
	}
	if v.Letter.Letter.ShareURL != "https://letters.example.com?letterId=l-1" || *v.Letter.Letter.EmbedURL != embed {
		t.Fatalf("unexpected links %+v", v.Letter.Letter)
	}
	if v.Feed != nil || v.Gate != nil || v.Compose != nil {
		t.Fatal("only the letter payload may be set")
	}
}

func TestViewHandler_Current_Gate(t *testing.T) {
	stub := &stubAppService{
		currentFn: func(context.Context, ports.Client) (*ports.View, error) {
			return &ports.View{Kind: ports.ViewGate, Gate: &ports.GateView{}}, nil
		},
	}
	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/api/view", nil))
	if err := NewViewHandler(stub).Current(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if v := decodeView(t, rec); rec.Code != http.StatusOK || v.Kind != "gate" || v.Gate == nil {
		t.Fatalf("unexpected %d %+v", rec.Code, v)
	}
}

func TestViewHandler_Current_StaleIsError(t *testing.T) {
	stub := &stubAppService{
		currentFn: func(context.Context, ports.Client) (*ports.View, error) {
			return nil, domain.ErrStaleView
		},
	}
	c, _ := newContext(httptest.NewRequest(http.MethodGet, "/api/view", nil))
	if err := NewViewHandler(stub).Current(c); !errors.Is(err, domain.ErrStaleView) {
		t.Fatalf("expected ErrStaleView for the error handler, got %v", err)
	}
}

func TestViewHandler_Navigate(t *testing.T) {
	stub := &stubAppService{
		navigateFn: func(_ context.Context, _ ports.Client, to domain.PageKind, id string) (*ports.View, error) {
			if to != domain.PageLetter || id != "l-9" {
				t.Fatalf("unexpected args %q %q", to, id)
			}
			return &ports.View{Kind: ports.ViewLetter, Detail: &ports.DetailView{Status: ports.DetailNotFound}}, nil
		},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/navigation", strings.NewReader(`{"to":"letter","letter_id":"l-9"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := newContext(req)

	if err := NewViewHandler(stub).Navigate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	v := decodeView(t, rec)
	if v.Letter == nil || v.Letter.Status != "not_found" || v.Letter.Letter != nil {
		t.Fatalf("unexpected view %+v", v)
	}
}

func TestViewHandler_Navigate_LetterNeedsID(t *testing.T) {
	stub := &stubAppService{
		navigateFn: func(context.Context, ports.Client, domain.PageKind, string) (*ports.View, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/navigation", strings.NewReader(`{"to":"letter"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, _ := newContext(req)

	err := NewViewHandler(stub).Navigate(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestViewHandler_Navigate_Unauthenticated(t *testing.T) {
	stub := &stubAppService{
		navigateFn: func(context.Context, ports.Client, domain.PageKind, string) (*ports.View, error) {
			return &ports.View{Kind: ports.ViewGate, Gate: &ports.GateView{}}, domain.ErrUnauthenticated
		},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/navigation", strings.NewReader(`{"to":"add"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := newContext(req)

	if err := NewViewHandler(stub).Navigate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if v := decodeView(t, rec); rec.Code != http.StatusUnauthorized || v.Kind != "gate" {
		t.Fatalf("unexpected %d %+v", rec.Code, v)
	}
}

func TestSessionHandler_Login_WrongPasscode(t *testing.T) {
	stub := &stubAppService{
		loginFn: func(_ context.Context, _ ports.Client, passcode string) (*ports.View, error) {
			if passcode != "123456" {
				t.Fatalf("unexpected passcode %q", passcode)
			}
			return &ports.View{Kind: ports.ViewGate, Gate: &ports.GateView{Error: domain.ErrWrongPasscode.Error()}}, domain.ErrWrongPasscode
		},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(`{"passcode":"123456"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := newContext(req)

	if err := NewSessionHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	v := decodeView(t, rec)
	if v.Gate == nil || v.Gate.Error != "Wrong passcode. Try again!" || v.Gate.Passcode != "" {
		t.Fatalf("unexpected gate %+v", v.Gate)
	}
}

func TestSessionHandler_Logout(t *testing.T) {
	stub := &stubAppService{
		logoutFn: func(context.Context, ports.Client) (*ports.View, error) {
			return nil, domain.ErrLogoutNotAllowed
		},
	}
	c, _ := newContext(httptest.NewRequest(http.MethodDelete, "/api/session", nil))
	if err := NewSessionHandler(stub).Logout(c); !errors.Is(err, domain.ErrLogoutNotAllowed) {
		t.Fatalf("expected ErrLogoutNotAllowed, got %v", err)
	}
}

type formFile struct {
	field, name, contentType string
	body                     []byte
}

func multipartRequest(t *testing.T, fields map[string]string, file *formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if file != nil {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.name+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		_, _ = part.Write(file.body)
	}
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/letters", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestLetterHandler_Create_UploadMode(t *testing.T) {
	stub := &stubAppService{
		submitFn: func(_ context.Context, _ ports.Client, d domain.Draft) (*ports.View, error) {
			if d.Title != "Hi" || d.Message != "Miss you" || d.AuthorID != "u1" {
				t.Fatalf("unexpected draft %+v", d)
			}
			if !d.WantsUpload() || d.Photo.Name != "beach.jpg" || d.Photo.ContentType != "image/jpeg" || string(d.Photo.Body) != "jpeg" {
				t.Fatalf("unexpected photo %+v", d.Photo)
			}
			return &ports.View{Kind: ports.ViewHome, Feed: &ports.FeedView{Status: ports.FeedReady, Letters: []ports.LetterCard{{ID: "new"}}}}, nil
		},
	}
	req := multipartRequest(t,
		map[string]string{"title": "Hi", "message": "Miss you", "author_id": "u1"},
		&formFile{field: "photo", name: "beach.jpg", contentType: "image/jpeg", body: []byte("jpeg")},
	)
	c, rec := newContext(req)

	if err := NewLetterHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	v := decodeView(t, rec)
	if rec.Code != http.StatusOK || v.Kind != "home" || v.Feed.Letters[0].ID != "new" {
		t.Fatalf("unexpected %d %+v", rec.Code, v)
	}
}

func TestLetterHandler_Create_OversizedPhotoKeepsDraft(t *testing.T) {
	stub := &stubAppService{
		submitFn: func(_ context.Context, _ ports.Client, d domain.Draft) (*ports.View, error) {
			if d.Photo == nil || d.Photo.Body != nil {
				t.Fatal("an oversized photo must arrive without its body")
			}
			err := d.Validate()
			return composeOf(d, err), err
		},
	}
	req := multipartRequest(t,
		map[string]string{"title": "Hi", "message": "Miss you"},
		&formFile{field: "photo", name: "huge.jpg", contentType: "image/jpeg", body: make([]byte, domain.MaxPhotoBytes+1)},
	)
	c, rec := newContext(req)

	if err := NewLetterHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	v := decodeView(t, rec)
	if v.Compose == nil || v.Compose.Error != "Photo must be smaller than 5MB" {
		t.Fatalf("unexpected compose %+v", v.Compose)
	}
	if v.Compose.Draft.Title != "Hi" || v.Compose.Draft.PhotoName != "huge.jpg" {
		t.Fatalf("draft fields must survive: %+v", v.Compose.Draft)
	}
}

func TestLetterHandler_Create_URLMode(t *testing.T) {
	stub := &stubAppService{
		submitFn: func(_ context.Context, _ ports.Client, d domain.Draft) (*ports.View, error) {
			if d.PhotoMode != domain.PhotoModeURL || d.Photo != nil {
				t.Fatalf("url mode must not carry a file: %+v", d)
			}
			if got := d.LinkedPhotoURL(); got == nil || *got != "https://images.example.com/a.jpg" {
				t.Fatalf("unexpected url %v", got)
			}
			err := domain.ErrSubmitFailed
			return composeOf(d, err), err
		},
	}
	req := multipartRequest(t,
		map[string]string{"title": "Hi", "message": "m", "photo_mode": "url", "photo_url": " https://images.example.com/a.jpg "},
		&formFile{field: "photo", name: "ignored.png", contentType: "image/png", body: []byte("png")},
	)
	c, rec := newContext(req)

	if err := NewLetterHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if v := decodeView(t, rec); v.Compose.Error != "Failed to create letter. Please try again." {
		t.Fatalf("unexpected error %q", v.Compose.Error)
	}
}

func TestLetterHandler_Create_BadPhotoMode(t *testing.T) {
	stub := &stubAppService{}
	req := multipartRequest(t, map[string]string{"title": "Hi", "message": "m", "photo_mode": "camera"}, nil)
	c, _ := newContext(req)

	err := NewLetterHandler(stub).Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestLetterHandler_Share(t *testing.T) {
	stub := &stubAppService{
		shareFn: func(_ context.Context, c ports.Client, id string) (*ports.ShareResult, error) {
			return &ports.ShareResult{URL: domain.ShareURL(c.Origin, id), Copied: true, TTL: 2 * time.Second}, nil
		},
	}
	c, rec := newContext(httptest.NewRequest(http.MethodPost, "/api/letters/l-1/share", nil))
	c.SetParamNames("id")
	c.SetParamValues("l-1")

	if err := NewLetterHandler(stub).Share(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp shareResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.URL != "https://letters.example.com?letterId=l-1" || !resp.Copied || resp.CopiedForMs != 2000 {
		t.Fatalf("unexpected %+v", resp)
	}
}

func TestLetterHandler_Authors(t *testing.T) {
	stub := &stubAppService{
		authorsFn: func(context.Context, ports.Client) ([]domain.User, error) {
			return []domain.User{{ID: "u1", Name: "Jen", Color: "#FF69B4"}, {ID: "u2", Name: "Kat", Color: "#9370DB"}}, nil
		},
	}
	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/api/users", nil))
	if err := NewLetterHandler(stub).Authors(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var authors []authorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &authors); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(authors) != 2 || authors[0].Name != "Jen" {
		t.Fatalf("unexpected %+v", authors)
	}
}

func TestClientFrom_MissingMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, err := clientFrom(c); err == nil {
		t.Fatal("expected an error without the client middleware")
	}
}
