package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/vibe-gallery-backend/models"
)

func openChat(t *testing.T, app *testApp) ChatSessionResponse {
	t.Helper()
	rec := app.do(http.MethodPost, "/chat/sessions", nil, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var session ChatSessionResponse
	decode(t, rec, &session)
	require.NotEmpty(t, session.SessionID)
	return session
}

func sendChat(t *testing.T, app *testApp, sessionID, content string) ChatReplyResponse {
	t.Helper()
	rec := app.do(http.MethodPost, "/chat/sessions/"+sessionID+"/messages", chatMessageRequest{Content: content}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var reply ChatReplyResponse
	decode(t, rec, &reply)
	return reply
}

func TestChatConversation(t *testing.T) {
	app := newTestApp(t)

	session := openChat(t, app)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, models.RoleAssistant, session.Messages[0].Role)

	reply := sendChat(t, app, session.SessionID, "AI 챗봇 프로젝트 있어?")
	assert.Equal(t, "topic_ai", reply.Intent)
	assert.Contains(t, reply.Reply, "AI 챗봇 수업 도우미")
	assert.Contains(t, reply.ReplyHTML, "<strong>")
	require.Len(t, reply.Messages, 3)
	assert.Equal(t, models.ChatMessage{Role: models.RoleUser, Content: "AI 챗봇 프로젝트 있어?"}, reply.Messages[1])
	assert.Equal(t, reply.Reply, reply.Messages[2].Content)

	reply = sendChat(t, app, session.SessionID, "더 알려줘")
	assert.Equal(t, "follow_up", reply.Intent)
	assert.Contains(t, reply.Reply, "기술 스택")
	assert.Len(t, reply.Messages, 5)

	reply = sendChat(t, app, session.SessionID, "프로젝트 몇 개야?")
	assert.Equal(t, "statistics", reply.Intent)
	assert.Contains(t, reply.Reply, "총 프로젝트: 4개")

	rec := app.do(http.MethodGet, "/chat/sessions/"+session.SessionID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stored ChatSessionResponse
	decode(t, rec, &stored)
	assert.Len(t, stored.Messages, 7)
}

func TestChatReset(t *testing.T) {
	app := newTestApp(t)
	session := openChat(t, app)
	sendChat(t, app, session.SessionID, "정렬 알고리즘")

	rec := app.do(http.MethodPost, "/chat/sessions/"+session.SessionID+"/reset", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var reset ChatSessionResponse
	decode(t, rec, &reset)
	require.Len(t, reset.Messages, 1)
	assert.Contains(t, reset.Messages[0].Content, "초기화")

	// Topics from before the reset are forgotten.
	reply := sendChat(t, app, session.SessionID, "더 알려줘")
	assert.Equal(t, "follow_up", reply.Intent)
	assert.Contains(t, reply.Reply, "어떤 프로젝트에 대해 더 알고 싶으신가요?")
}

func TestChatDelete(t *testing.T) {
	app := newTestApp(t)
	session := openChat(t, app)

	rec := app.do(http.MethodDelete, "/chat/sessions/"+session.SessionID, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/chat/sessions/"+session.SessionID, nil, "").Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodDelete, "/chat/sessions/"+session.SessionID, nil, "").Code)
	assert.Equal(t, http.StatusNotFound,
		app.do(http.MethodPost, "/chat/sessions/"+session.SessionID+"/messages", chatMessageRequest{Content: "hi"}, "").Code)
}

func TestChatMessage_Blank(t *testing.T) {
	app := newTestApp(t)
	session := openChat(t, app)

	rec := app.do(http.MethodPost, "/chat/sessions/"+session.SessionID+"/messages", chatMessageRequest{Content: "  "}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	decode(t, rec, &resp)
	assert.Equal(t, "content", resp.Field)
}

func TestChatMessage_CancelledDuringDelay(t *testing.T) {
	cfg := testConfig()
	cfg["CHAT_REPLY_DELAY_MS"] = "60000"
	app := newTestAppWithConfig(t, cfg)
	session := openChat(t, app)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodPost, "/chat/sessions/"+session.SessionID+"/messages",
		strings.NewReader(`{"content":"AI"}`)).WithContext(ctx)
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestTimeout, rec.Code)

	// The cancelled turn is not recorded.
	var stored ChatSessionResponse
	decode(t, app.do(http.MethodGet, "/chat/sessions/"+session.SessionID, nil, ""), &stored)
	assert.Len(t, stored.Messages, 1)
}
