package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/contentadmin/apps/api/echo"
	"github.com/trezcool/contentadmin/core/notice"
)

func createNotice(t *testing.T, app Server, token string, in notice.Input) notice.Notice {
	req, rec := newAuthRequest(http.MethodPost, "/api/notices", token, marchallObj(t, in))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var n notice.Notice
	unmarshalBody(t, rec, &n)
	return n
}

func Test_noticeApi_query(t *testing.T) {
	app := setup(t)
	s := createStaff(t)
	token := getToken(t, s.editor)

	a := createNotice(t, app, token, notice.Input{Title: "A", Content: "a", Status: notice.StatusPublished})
	b := createNotice(t, app, token, notice.Input{Title: "B", Content: "b", IsSticky: true})
	c := createNotice(t, app, token, notice.Input{Title: "C", Content: "c", Type: notice.TypeWarning})

	assert.Equal(t, s.editor.ID, a.Author)
	assert.Equal(t, notice.TypeInfo, a.Type)
	assert.Equal(t, notice.PriorityMedium, a.Priority)
	assert.Equal(t, notice.StatusDraft, b.Status)
	assert.False(t, a.PublishDate.IsZero())

	list := func(query string) []string {
		req, rec := newRequest(http.MethodGet, "/api/notices"+query)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var items []notice.Notice
		unmarshalBody(t, rec, &items)
		ids := make([]string, 0, len(items))
		for _, n := range items {
			ids = append(ids, n.ID)
		}
		return ids
	}

	// sticky first, newest first
	assert.Equal(t, []string{b.ID, c.ID, a.ID}, list(""))
	assert.Equal(t, []string{a.ID}, list("?status=published"))
	assert.Equal(t, []string{c.ID}, list("?type=warning"))
}

func Test_noticeApi_retrieveCountsViews(t *testing.T) {
	app := setup(t)
	n := createNotice(t, app, getToken(t, createStaff(t).editor), notice.Input{Title: "A", Content: "a"})
	assert.Zero(t, n.ViewCount)

	for want := 1; want <= 3; want++ {
		req, rec := newRequest(http.MethodGet, "/api/notices/"+n.ID)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var got notice.Notice
		unmarshalBody(t, rec, &got)
		assert.Equal(t, want, got.ViewCount)
	}
}

func Test_noticeApi_validation(t *testing.T) {
	app := setup(t)
	s := createStaff(t)
	token := getToken(t, s.editor)
	n := createNotice(t, app, token, notice.Input{Title: "A", Content: "a"})

	publish := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	expiry := publish.Add(-time.Hour)
	expiryMsg := "expiry date cannot precede the publish date"

	tests := []httpTest{
		{
			name: "expiry before publish", method: http.MethodPost, path: "/api/notices", token: token,
			body:     marchallObj(t, notice.Input{Title: "B", Content: "b", PublishDate: publish, ExpiryDate: &expiry}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: expiryMsg, Fields: map[string]string{"expiryDate": expiryMsg}}),
		},
		{
			name: "bad priority", method: http.MethodPut, path: "/api/notices/" + n.ID, token: token,
			body:     []byte(`{"priority": "meh"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Error:  "priority: priority must be one of: low, medium, high, urgent",
				Fields: map[string]string{"priority": "priority must be one of: low, medium, high, urgent"},
			}),
		},
		{
			name: "editor delete", method: http.MethodDelete, path: "/api/notices/" + n.ID, token: token,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "admin delete", method: http.MethodDelete, path: "/api/notices/" + n.ID, token: getToken(t, s.admin),
			wantCode: http.StatusOK, wantData: marchallObj(t, deleted),
		},
	}
	runHTTPTests(t, app, tests)
}
