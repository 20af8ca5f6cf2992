package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/contentadmin/core/settings"
)

func Test_settingsApi(t *testing.T) {
	app := setup(t)
	s := createStaff(t)
	editorToken := getToken(t, s.editor)

	valid := marchallObj(t, settings.Input{
		SiteName:     "Learning Platform",
		ContactEmail: "Contact@Example.com",
		Footer: settings.Footer{
			Copyright: "© 2023 Learning Platform",
			Links:     []settings.Link{{Text: "Terms", URL: "/terms"}},
		},
	})

	reqMsg := "this field is required"
	tests := []httpTest{
		{
			name: "get before create", method: http.MethodGet, path: "/api/settings", wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "site settings not found"}),
		},
		{
			name: "viewer create", method: http.MethodPost, path: "/api/settings", token: getToken(t, s.viewer),
			body: valid, wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "invalid fields", method: http.MethodPost, path: "/api/settings", token: editorToken,
			body:     []byte(`{"siteName": "x", "contactEmail": "lol", "primaryColor": "blue", "footer": {"links": [{"text": "x"}]}}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Error: "contactEmail: contactEmail must be a valid email address; footer.copyright: " + reqMsg +
					"; footer.links[0].url: " + reqMsg + "; primaryColor: primaryColor must be a valid hex color",
				Fields: map[string]string{
					"contactEmail":        "contactEmail must be a valid email address",
					"footer.copyright":    reqMsg,
					"footer.links[0].url": reqMsg,
					"primaryColor":        "primaryColor must be a valid hex color",
				},
			}),
		},
		{name: "create", method: http.MethodPost, path: "/api/settings", token: editorToken, body: valid, wantCode: http.StatusCreated},
		{
			name: "create again", method: http.MethodPost, path: "/api/settings", token: editorToken, body: valid,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "site settings already exist"}),
		},
		{name: "delete", method: http.MethodDelete, path: "/api/settings", token: getToken(t, s.admin), wantCode: http.StatusMethodNotAllowed},
	}
	runHTTPTests(t, app, tests)

	get := func() settings.Settings {
		req, rec := newRequest(http.MethodGet, "/api/settings")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var set settings.Settings
		unmarshalBody(t, rec, &set)
		return set
	}

	created := get()
	assert.Equal(t, settings.SingletonID, created.ID)
	assert.Equal(t, "contact@example.com", created.ContactEmail)
	assert.Equal(t, settings.DefaultPrimaryColor, created.PrimaryColor)

	for _, path := range []string{"/api/settings", "/api/settings/whatever"} {
		t.Run("PUT "+path, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPut, path, editorToken, []byte(`{"siteName": "`+path+`"}`))
			app.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			set := get()
			assert.Equal(t, settings.SingletonID, set.ID)
			assert.Equal(t, path, set.SiteName)
			assert.Equal(t, created.ContactEmail, set.ContactEmail)
			assert.Equal(t, created.Footer, set.Footer)
			assert.Equal(t, created.CreatedAt, set.CreatedAt)
		})
	}
}

func Test_settingsApi_upsertCreates(t *testing.T) {
	app := setup(t)
	token := getToken(t, createStaff(t).editor)

	req, rec := newAuthRequest(http.MethodPut, "/api/settings", token, []byte(`{"siteName": "Site", "contactEmail": "a@b.cd", "footer": {"copyright": "c"}}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var set settings.Settings
	unmarshalBody(t, rec, &set)
	assert.Equal(t, settings.SingletonID, set.ID)
	assert.Equal(t, []settings.Link{}, set.Footer.Links)
}
