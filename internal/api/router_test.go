package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/isdelr/jokebox/internal/auth"
	"github.com/isdelr/jokebox/internal/database"
	"github.com/isdelr/jokebox/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	userService := services.NewUserService(db)
	jokeService := services.NewJokeService(db)

	codec, err := auth.NewSessionCodec([]string{"test-secret"}, false)
	require.NoError(t, err)
	guard := auth.NewGuard(codec, userService)

	return NewRouter(guard, codec, userService, jokeService)
}

func postForm(router http.Handler, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRouter_RegisterLoginSubmitFlow(t *testing.T) {
	router := newTestRouter(t)

	// Register alice; a session cookie comes back with the redirect.
	rr := postForm(router, "/login", url.Values{
		"loginType": {"register"},
		"username":  {"alice"},
		"password":  {"password1"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/jokes", rr.Header().Get("Location"))
	session := rr.Result().Cookies()
	require.Len(t, session, 1)

	// Submitting a joke without the cookie bounces to login with the path preserved.
	rr = postForm(router, "/jokes", url.Values{
		"name":    {"Frisbee"},
		"content": {"I was wondering why the frisbee was getting bigger, then it hit me."},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	loc, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/login", loc.Path)
	assert.Equal(t, "/jokes", loc.Query().Get("redirectTo"))

	// With the cookie the submission goes through.
	rr = postForm(router, "/jokes", url.Values{
		"name":    {"Frisbee"},
		"content": {"I was wondering why the frisbee was getting bigger, then it hit me."},
	}, session)
	assert.Equal(t, http.StatusCreated, rr.Code)

	// The joke is publicly listed.
	req := httptest.NewRequest(http.MethodGet, "/jokes", nil)
	list := httptest.NewRecorder()
	router.ServeHTTP(list, req)
	assert.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "Frisbee")
}

func TestRouter_LoginFailuresAreGeneric(t *testing.T) {
	router := newTestRouter(t)

	rr := postForm(router, "/login", url.Values{
		"loginType": {"register"},
		"username":  {"alice"},
		"password":  {"password1"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	login := func(username, password string) *httptest.ResponseRecorder {
		return postForm(router, "/login", url.Values{
			"loginType": {"login"},
			"username":  {username},
			"password":  {password},
		}, nil)
	}

	// Correct credentials succeed.
	ok := login("alice", "password1")
	assert.Equal(t, http.StatusSeeOther, ok.Code)

	// Wrong password and unknown user produce the same generic failure.
	wrongPassword := login("alice", "wrongpass")
	unknownUser := login("bob", "anything1")
	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, http.StatusBadRequest, unknownUser.Code)
	assert.Contains(t, wrongPassword.Body.String(), "Invalid credentials")
	assert.Contains(t, unknownUser.Body.String(), "Invalid credentials")
}

func TestRouter_LogoutClearsSession(t *testing.T) {
	router := newTestRouter(t)

	rr := postForm(router, "/login", url.Values{
		"loginType": {"register"},
		"username":  {"alice"},
		"password":  {"password1"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	session := rr.Result().Cookies()

	rr = postForm(router, "/logout", nil, session)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	cleared := rr.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
	assert.Negative(t, cleared[0].MaxAge)
}
