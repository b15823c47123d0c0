package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardIDs(cards []ProjectCard) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

func TestGetAllProjects_DefaultIsLatest(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/projects", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var collection ProjectCollection
	decode(t, rec, &collection)
	assert.Equal(t, 4, collection.Total)
	assert.Equal(t, "latest", collection.Sort)
	assert.Equal(t, []string{"1", "2", "3", "4"}, cardIDs(collection.Projects))

	first := collection.Projects[0]
	assert.Equal(t, "AI 챗봇 수업 도우미", first.Title)
	assert.Equal(t, "김선생", first.AuthorDisplayName)
	assert.InDelta(t, 28.0, first.Hotness, 1e-9)
	assert.True(t, first.IsHot)
	assert.Equal(t, "5일 전", first.CreatedLabel)
	assert.False(t, first.LikedByMe)
	require.NotNil(t, first.Category)
	assert.Equal(t, "🤖", first.Category.Icon)
}

func TestGetAllProjects_HottestOrder(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/projects?sort=hotness", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var collection ProjectCollection
	decode(t, rec, &collection)
	assert.Equal(t, []string{"3", "4", "2", "1"}, cardIDs(collection.Projects))
	assert.Equal(t, "hotness", collection.Sort)
}

func listProjects(t *testing.T, app *testApp, path, token string) ProjectCollection {
	t.Helper()
	rec := app.do(http.MethodGet, path, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var collection ProjectCollection
	decode(t, rec, &collection)
	return collection
}

func TestGetAllProjects_Filters(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		path string
		want []string
	}{
		{"/projects?category=1", []string{"1"}},
		{"/projects?event=2&category=all", []string{"3"}},
		{"/projects?event=1&sort=likes", []string{"2", "4", "1"}},
		{"/projects?sort=views", []string{"2", "4", "1", "3"}},
		{"/projects?sort=bogus", []string{"1", "2", "3", "4"}},
		{"/projects?category=5", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			collection := listProjects(t, app, tt.path, "")
			assert.Equal(t, tt.want, cardIDs(collection.Projects))
			assert.Equal(t, len(tt.want), collection.Total)
		})
	}
}

func TestGetAllProjects_LikedByMe(t *testing.T) {
	app := newTestApp(t)
	token := app.demoToken()

	rec := app.do(http.MethodPost, "/projects/2/like", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, card := range listProjects(t, app, "/projects", token).Projects {
		assert.Equal(t, card.ID == "2", card.LikedByMe, card.ID)
	}
	for _, card := range listProjects(t, app, "/projects", "").Projects {
		assert.False(t, card.LikedByMe)
	}
}

func TestGetProject(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/projects/3", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var card ProjectCard
	decode(t, rec, &card)
	assert.Equal(t, "학급 출석부 자동화", card.Title)
	assert.Nil(t, card.GithubURL)
	require.NotNil(t, card.License)
	assert.Equal(t, "CC-BY-NC", card.License.ShortName)

	rec = app.do(http.MethodGet, "/projects/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProject(t *testing.T) {
	app := newTestApp(t)
	token := app.demoToken()

	rec := app.do(http.MethodPost, "/projects", map[string]any{
		"title":       "Quiz Maker",
		"description": "수업 내용으로 퀴즈를 만듭니다.",
		"deploy_url":  "https://quiz.example.com",
		"github_url":  "  ",
		"category_id": 1,
		"event_id":    2,
		"license_id":  1,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var card ProjectCard
	decode(t, rec, &card)
	assert.NotEmpty(t, card.ID)
	assert.Equal(t, "demo-user-1", card.UserID)
	assert.Equal(t, "https://picsum.photos/seed/Quiz%20Maker/400/300", card.ThumbnailURL)
	assert.Nil(t, card.GithubURL)
	assert.Equal(t, "데모 선생님", card.AuthorDisplayName)
	assert.Zero(t, card.LikeCount)
	require.NotNil(t, card.Category)
	assert.Equal(t, "AI수업자료", card.Category.Name)

	assert.Equal(t, 5, listProjects(t, app, "/projects", "").Total)
}

func TestCreateProject_Validation(t *testing.T) {
	app := newTestApp(t)
	token := app.demoToken()

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"missing title", map[string]any{"description": "d", "deploy_url": "https://x.dev"}, "title"},
		{"blank title", map[string]any{"title": "  ", "description": "d", "deploy_url": "https://x.dev"}, "title"},
		{"missing deploy url", map[string]any{"title": "t", "description": "d"}, "deploy_url"},
		{"missing description", map[string]any{"title": "t", "deploy_url": "https://x.dev"}, "description"},
		{"bad deploy url", map[string]any{"title": "t", "description": "d", "deploy_url": "ftp://x.dev"}, "deploy_url"},
		{"bad github url", map[string]any{"title": "t", "description": "d", "deploy_url": "https://x.dev", "github_url": "github"}, "github_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(http.MethodPost, "/projects", tt.body, token)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp ErrorResponse
			decode(t, rec, &resp)
			assert.Equal(t, tt.field, resp.Field)
		})
	}
}

func TestCreateProject_RequiresLogin(t *testing.T) {
	app := newTestApp(t)
	body := map[string]any{"title": "t", "description": "d", "deploy_url": "https://x.dev"}

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodPost, "/projects", body, "").Code)
	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodPost, "/projects", body, "not-a-jwt").Code)
}

func TestUpdateProject(t *testing.T) {
	app := newTestApp(t)
	token := app.demoToken()

	rec := app.do(http.MethodPost, "/projects", map[string]any{
		"title":       "Quiz Maker",
		"description": "퀴즈",
		"deploy_url":  "https://quiz.example.com",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created ProjectCard
	decode(t, rec, &created)

	update := map[string]any{
		"title":       "AI Quiz Maker",
		"description": "AI가 퀴즈를 만듭니다",
		"deploy_url":  "https://quiz.example.com",
	}

	rec = app.do(http.MethodPut, "/projects/"+created.ID, update, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errResp ErrorResponse
	decode(t, rec, &errResp)
	assert.Equal(t, "author_name", errResp.Field)

	update["author_name"] = "한빛고 정보쌤"
	rec = app.do(http.MethodPut, "/projects/"+created.ID, update, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated ProjectCard
	decode(t, rec, &updated)
	assert.Equal(t, "AI Quiz Maker", updated.Title)
	assert.Equal(t, "한빛고 정보쌤", updated.AuthorDisplayName)
	assert.Equal(t, created.ThumbnailURL, updated.ThumbnailURL, "an empty thumbnail keeps the current one")
}

func TestUpdateProject_OwnerOnly(t *testing.T) {
	app := newTestApp(t)
	token := app.demoToken()

	rec := app.do(http.MethodPut, "/projects/1", map[string]any{
		"title":       "hijacked",
		"description": "d",
		"deploy_url":  "https://x.dev",
		"author_name": "me",
	}, token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(http.MethodPut, "/projects/1", map[string]any{
		"title":       "김선생 수정",
		"description": "d",
		"deploy_url":  "https://x.dev",
		"author_name": "김선생",
	}, app.tokenFor("kimteacher"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteProject(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, http.StatusForbidden, app.do(http.MethodDelete, "/projects/3", nil, app.demoToken()).Code)

	owner := app.tokenFor("parkteacher")
	assert.Equal(t, http.StatusOK, app.do(http.MethodDelete, "/projects/3", nil, owner).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/projects/3", nil, "").Code)
}

func TestRecordView(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/projects/1/view", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp viewResponse
	decode(t, rec, &resp)
	assert.Equal(t, int64(151), resp.ViewCount)

	assert.Equal(t, http.StatusNotFound, app.do(http.MethodPost, "/projects/missing/view", nil, "").Code)
}

func TestToggleLike(t *testing.T) {
	app := newTestApp(t)
	token := app.demoToken()

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodPost, "/projects/1/like", nil, "").Code)

	var resp likeResponse
	decode(t, app.do(http.MethodPost, "/projects/1/like", nil, token), &resp)
	assert.Equal(t, likeResponse{Liked: true, LikeCount: 43}, resp)

	decode(t, app.do(http.MethodPost, "/projects/1/like", nil, token), &resp)
	assert.Equal(t, likeResponse{Liked: false, LikeCount: 42}, resp)

	assert.Equal(t, http.StatusNotFound, app.do(http.MethodPost, "/projects/missing/like", nil, token).Code)
}

func TestIsWebURL(t *testing.T) {
	assert.True(t, isWebURL("https://ai-classroom-helper.vercel.app"))
	assert.True(t, isWebURL("http://localhost:3000/app"))
	assert.False(t, isWebURL("ftp://example.com"))
	assert.False(t, isWebURL("example.com"))
	assert.False(t, isWebURL("https://"))
}
