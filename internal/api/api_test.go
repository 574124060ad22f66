package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/autolearn/kotoba/internal/auth"
	"github.com/autolearn/kotoba/internal/catalog"
	"github.com/autolearn/kotoba/internal/models"
	"github.com/autolearn/kotoba/internal/session"
	"github.com/autolearn/kotoba/internal/testutil"
)

const fireCard = "## 🈶 Kanji : 火 - Feu / Flamme\nLecture *onyomi* : カ (ka)\nType : #nom\n"

// testEnv wires an in-memory store, auth gate, and router for testing.
func testEnv(t *testing.T) (http.Handler, *testutil.MemStore) {
	t.Helper()
	store := testutil.NewMemStore()
	gate := auth.NewGate([]auth.Account{
		{Username: "admin", Password: "autolearn2024", Role: models.RoleAdmin},
		{Username: "guest", Password: "guest", Role: models.RoleGuest},
	}, session.NewStore())
	svc := catalog.NewService(store, gate)
	return NewRouter(svc, gate), store
}

// login performs POST /auth/login and returns the session cookie.
func login(t *testing.T, router http.Handler, username, password string) *http.Cookie {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatal("no session cookie in login response")
	return nil
}

// uploadRequest builds a multipart POST /upload with the given files.
func uploadRequest(t *testing.T, files map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := io.WriteString(fw, content); err != nil {
			t.Fatal(err)
		}
	}
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestRoot(t *testing.T) {
	router, _ := testEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var res MessageResponse
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Message != "AutoLearn JP API" {
		t.Errorf("message = %q", res.Message)
	}
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	router, _ := testEnv(t)
	c := login(t, router, "admin", "autolearn2024")
	if c.Value == "" {
		t.Error("empty session token")
	}
	if !c.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if c.Secure {
		t.Error("session cookie must not be marked secure")
	}
	if c.MaxAge != 86400 {
		t.Errorf("max-age = %d, want 86400", c.MaxAge)
	}
}

func TestLogin_NeverReturnsPassword(t *testing.T) {
	router, _ := testEnv(t)
	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "autolearn2024"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if strings.Contains(w.Body.String(), "autolearn2024") {
		t.Error("password leaked in login response")
	}
	var user models.User
	_ = json.Unmarshal(w.Body.Bytes(), &user)
	if user.Username != "admin" || user.Role != "admin" {
		t.Errorf("user = %+v", user)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	router, _ := testEnv(t)
	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var res errResponse
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Error != "Invalid credentials" {
		t.Errorf("error = %q", res.Error)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("no cookie should be set on failed login")
	}
}

func TestCheck_SessionLifecycle(t *testing.T) {
	router, _ := testEnv(t)
	c := login(t, router, "guest", "guest")

	// Valid session.
	req := httptest.NewRequest(http.MethodGet, "/auth/check", nil)
	req.AddCookie(c)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("check status = %d", w.Code)
	}
	var user models.User
	_ = json.Unmarshal(w.Body.Bytes(), &user)
	if user.Username != "guest" {
		t.Errorf("user = %+v", user)
	}

	// Logout.
	req = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(c)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}
	var out LogoutResponse
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if !out.Success {
		t.Error("logout should report success")
	}
	cleared := false
	for _, cc := range w.Result().Cookies() {
		if cc.Name == "session" && cc.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("logout must clear the session cookie")
	}

	// Token is dead now.
	req = httptest.NewRequest(http.MethodGet, "/auth/check", nil)
	req.AddCookie(c)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("check after logout = %d, want 401", w.Code)
	}
}

func TestCheck_NoCookie(t *testing.T) {
	router, _ := testEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/auth/check", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var res errResponse
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Error != "Not authenticated" {
		t.Errorf("error = %q", res.Error)
	}
}

func TestLogout_WithoutSession(t *testing.T) {
	router, _ := testEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("logout without session = %d, want 200", w.Code)
	}
}

func TestWords_Unauthenticated(t *testing.T) {
	router, _ := testEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/words", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var res errResponse
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Error != "Unauthorized" {
		t.Errorf("error = %q", res.Error)
	}
}

func TestUploadThenList(t *testing.T) {
	router, _ := testEnv(t)
	c := login(t, router, "admin", "autolearn2024")

	req := uploadRequest(t, map[string]string{
		"fire.md":   fireCard,
		"broken.md": "nothing to extract",
		"notes.txt": "skipped silently",
		"water.md":  "## 🈶 Kanji : 水 - Eau\nTags : #jlpt5 #élément\n",
	})
	req.AddCookie(c)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body = %s", w.Code, w.Body.String())
	}
	var up UploadResponse
	_ = json.Unmarshal(w.Body.Bytes(), &up)
	if up.Processed != 2 {
		t.Errorf("processed = %d, want 2", up.Processed)
	}
	if len(up.Errors) != 1 || up.Errors[0] != "Failed to parse broken.md" {
		t.Errorf("errors = %v", up.Errors)
	}

	// Guest can read the catalog.
	gc := login(t, router, "guest", "guest")
	req = httptest.NewRequest(http.MethodGet, "/words", nil)
	req.AddCookie(gc)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("words status = %d", w.Code)
	}
	var words []models.WordRecord
	if err := json.Unmarshal(w.Body.Bytes(), &words); err != nil {
		t.Fatalf("decode words: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("len(words) = %d, want 2", len(words))
	}
	for _, word := range words {
		if word.ID == "" {
			t.Error("record id missing")
		}
	}
	if strings.Contains(w.Body.String(), "_id") {
		t.Error("storage-internal identifier leaked into response")
	}
}

func TestUpload_GuestForbidden(t *testing.T) {
	router, store := testEnv(t)
	c := login(t, router, "guest", "guest")

	req := uploadRequest(t, map[string]string{"fire.md": fireCard})
	req.AddCookie(c)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	var res errResponse
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Error != "Admin access required" {
		t.Errorf("error = %q", res.Error)
	}
	if store.Len() != 0 {
		t.Error("catalog must be unchanged")
	}
}

func TestUpload_Unauthenticated(t *testing.T) {
	router, _ := testEnv(t)
	req := uploadRequest(t, map[string]string{"fire.md": fireCard})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestUpload_NoFiles(t *testing.T) {
	router, _ := testEnv(t)
	c := login(t, router, "admin", "autolearn2024")

	req := uploadRequest(t, nil)
	req.AddCookie(c)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var res errResponse
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Error != "No files provided" {
		t.Errorf("error = %q", res.Error)
	}
}

func TestOptions_AnyPath(t *testing.T) {
	router, _ := testEnv(t)
	for _, path := range []string{"/", "/words", "/upload", "/no/such/route"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("OPTIONS %s = %d, want 200", path, w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("OPTIONS %s body = %q, want empty", path, w.Body.String())
		}
	}
}

func TestCORSHeaders(t *testing.T) {
	router, _ := testEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	h := w.Header()
	if h.Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("allow-origin = %q", h.Get("Access-Control-Allow-Origin"))
	}
	if h.Get("Access-Control-Allow-Credentials") != "true" {
		t.Errorf("allow-credentials = %q", h.Get("Access-Control-Allow-Credentials"))
	}
	if !strings.Contains(h.Get("Access-Control-Allow-Methods"), "DELETE") {
		t.Errorf("allow-methods = %q", h.Get("Access-Control-Allow-Methods"))
	}
}

func TestUnknownRoute(t *testing.T) {
	router, _ := testEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var res errResponse
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Error != "Route /nope not found" {
		t.Errorf("error = %q", res.Error)
	}
}

func TestMethodNotAllowedIs404(t *testing.T) {
	router, _ := testEnv(t)
	req := httptest.NewRequest(http.MethodDelete, "/words", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("DELETE /words = %d, want 404", w.Code)
	}
}
