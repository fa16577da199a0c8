package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"undangan.link/database"
	"undangan.link/database/seeders"
	"undangan.link/di"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionKey = "707172737475767778797a7b7c7d7e7f808182838485868788898a8b8c8d8e8f"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "undangan.db"))
	t.Setenv("UPLOAD_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("MEDIA_DRIVER", "local")
	t.Setenv("SESSION_KEY", testSessionKey)
	t.Setenv("WHATSAPP_ENABLED", "false")

	container := di.NewContainer()
	t.Cleanup(func() { _ = container.Shutdown() })

	db := do.MustInvoke[*di.DatabaseHandle](container).DB
	require.NoError(t, database.RunMigrationsInOrder(db))
	require.NoError(t, database.CheckAndRunSeeders(db))

	return NewApp(AppOptions{ViewsDir: "../views"}, do.MustInvoke[*di.Handlers](container))
}

func doJSON(t *testing.T, app *fiber.App, method, url string, body interface{}, cookies ...*http.Cookie) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	out := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "auth_token" && c.Value != "" {
			return c
		}
	}
	t.Fatal("auth_token çerezi bulunamadı")
	return nil
}

func TestInvitationFlow(t *testing.T) {
	app := newTestApp(t)
	invitationURL := "/api/" + seeders.DemoSlug + "/" + seeders.DemoInviteCode

	// Davetiye
	resp, view := doJSON(t, app, http.MethodGet, invitationURL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Dilan", view["groom_name"])
	guest := view["guest"].(map[string]interface{})
	assert.Equal(t, "Budi", guest["name"])
	personalizeID := view["personalize_id"].(string)

	// RSVP
	resp, body := doJSON(t, app, http.MethodPost, "/api/rsvp", map[string]interface{}{
		"customUrlSlug": seeders.DemoSlug,
		"inviteCode":    seeders.DemoInviteCode,
		"status":        "hadir",
		"people_count":  3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "RSVP berhasil disimpan!", body["message"])

	// Ucapan
	resp, body = doJSON(t, app, http.MethodPost, "/api/ucapan", map[string]interface{}{
		"customUrlSlug": seeders.DemoSlug,
		"inviteCode":    seeders.DemoInviteCode,
		"name":          "Budi",
		"message":       "Selamat!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, body = doJSON(t, app, http.MethodGet, "/api/ucapan/"+personalizeID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	wishes := body["data"].([]interface{})
	require.Len(t, wishes, 1)
	first := wishes[0].(map[string]interface{})
	assert.Equal(t, "Budi", first["name"])
	assert.Equal(t, "Selamat!", first["message"])

	// Panel: giriş ve davetli listesi
	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    seeders.DemoEmail,
		"password": seeders.DemoPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, personalizeID, body["personalizeId"])
	cookie := sessionCookie(t, resp)

	resp, body = doJSON(t, app, http.MethodGet, "/api/guests?personalize_id="+personalizeID, nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	guests := body["guests"].([]interface{})
	require.Len(t, guests, 1)
	row := guests[0].(map[string]interface{})
	assert.Equal(t, "hadir", row["status"])
	assert.EqualValues(t, 3, row["people_count"])
}

func TestPanelRequiresSession(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/guests?personalize_id=x", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, _ = doJSON(t, app, http.MethodGet, "/api/auth/session", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionAndTenantIsolation(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "rangga@example.com",
		"password": "cinta123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "rangga@example.com",
		"password": "cinta123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	cookie := sessionCookie(t, resp)
	ownID := body["personalizeId"].(string)

	resp, body = doJSON(t, app, http.MethodGet, "/api/auth/session", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["isLoggedIn"])

	// Demo tenant'ın kaydı başka bir oturumla okunamaz
	_, view := doJSON(t, app, http.MethodGet, "/api/"+seeders.DemoSlug+"/"+seeders.DemoInviteCode, nil)
	demoID := view["personalize_id"].(string)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/personalize?id="+demoID, nil, cookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/guests?personalize_id="+demoID, nil, cookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/personalize", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, ownID, body["data"].(map[string]interface{})["id"])
}

func TestPublicErrors(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/"+seeders.DemoSlug+"/INV-00000000", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Tamu tidak ditemukan.", body["message"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/rsvp", map[string]string{
		"customUrlSlug": seeders.DemoSlug,
		"inviteCode":    seeders.DemoInviteCode,
		"status":        "mungkin",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, _ = doJSON(t, app, http.MethodGet, "/api/tidak/ada/sama/sekali", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvitationPage(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/"+seeders.DemoSlug+"/"+seeders.DemoInviteCode, nil)
	req.Header.Set("Accept", "text/html")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	html, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Budi")
	assert.Contains(t, string(html), "Dilan")

	req = httptest.NewRequest(http.MethodGet, "/"+seeders.DemoSlug+"/INV-00000000", nil)
	req.Header.Set("Accept", "text/html")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func login(t *testing.T, app *fiber.App) (*http.Cookie, string) {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    seeders.DemoEmail,
		"password": seeders.DemoPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	return sessionCookie(t, resp), body["personalizeId"].(string)
}

func upload(t *testing.T, app *fiber.App, cookie *http.Cookie, filename string, content []byte) string {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.AddCookie(cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body["url"].(string)
}

func TestUploadServeAndOrphanCleanup(t *testing.T) {
	app := newTestApp(t)
	cookie, personalizeID := login(t, app)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

	cover := upload(t, app, cookie, "sampul.png", png)
	second := upload(t, app, cookie, "sampul.png", png)
	assert.NotEqual(t, cover, second, "aynı içerik her seferinde yeni referans alır")

	req := httptest.NewRequest(http.MethodGet, cover, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), "inline"))
	assert.Contains(t, resp.Header.Get("Cache-Control"), "immutable")

	payload := map[string]interface{}{
		"personalizeId": personalizeID,
		"groomName":     "Dilan",
		"brideName":     "Milea",
		"customUrl":     seeders.DemoSlug,
		"coverImage":    cover,
		"galleryImages": []string{second},
	}
	resp, body := doJSON(t, app, http.MethodPut, "/api/personalize", payload, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	// Kapak kaldırıldı, galeri aynı: sadece kapak dosyası silinir
	payload["coverImage"] = ""
	resp, body = doJSON(t, app, http.MethodPut, "/api/personalize", payload, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, cover, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, second, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUploadSharedRefSurvivesOtherTenant(t *testing.T) {
	app := newTestApp(t)
	cookie, personalizeID := login(t, app)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

	hero := upload(t, app, cookie, "hero.png", png)
	resp, body := doJSON(t, app, http.MethodPut, "/api/personalize", map[string]interface{}{
		"personalizeId": personalizeID,
		"groomName":     "Dilan",
		"brideName":     "Milea",
		"customUrl":     seeders.DemoSlug,
		"heroImage":     hero,
	}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "rangga@example.com",
		"password": "cinta123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "rangga@example.com",
		"password": "cinta123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	otherCookie := sessionCookie(t, resp)
	otherID := body["personalizeId"].(string)

	// Diğer tenant demo'nun dosyasını kendi kaydına yazar ve sonra kaldırır
	payload := map[string]interface{}{
		"personalizeId": otherID,
		"groomName":     "Rangga",
		"brideName":     "Cinta",
		"customUrl":     "",
		"heroImage":     hero,
	}
	resp, body = doJSON(t, app, http.MethodPut, "/api/personalize", payload, otherCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	payload["heroImage"] = ""
	resp, body = doJSON(t, app, http.MethodPut, "/api/personalize", payload, otherCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, hero, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "demo hâlâ kullanıyor")
}

func TestUploadServesHTMLAsAttachment(t *testing.T) {
	app := newTestApp(t)
	cookie, _ := login(t, app)

	tests := []struct {
		filename string
		content  []byte
	}{
		{"x.html", []byte("<html><script>alert(document.cookie)</script></html>")},
		{"x.svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg" onload="alert(1)"/>`)},
		{"sahte.png", []byte("<script>alert(1)</script>")},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			ref := upload(t, app, cookie, tt.filename, tt.content)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, ref, nil), -1)
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, fiber.MIMEOctetStream, resp.Header.Get("Content-Type"))
			assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

			disposition, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
			require.NoError(t, err)
			assert.Equal(t, "attachment", disposition)
			assert.Equal(t, path.Base(ref), params["filename"])
		})
	}
}

func TestUploadRejectsTraversalAndAnonymous(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/uploads/..secret", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/api/uploads", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
