package services

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/rpupo63/vibe-gallery-backend/models"
)

// FollowUpHintThreshold is the length of the user's accumulated topics
// (in characters) above which the fallback reply nudges for a sharper question.
const FollowUpHintThreshold = 50

const (
	greetingMessage = "안녕하세요! 👋 바이브코딩 갤러리에서 원하는 프로젝트를 찾아드릴게요. 무엇을 찾고 계신가요?"
	resetMessage    = "대화가 초기화되었어요! 👋 무엇을 도와드릴까요?"
)

// Intent is the rule that produced a reply.
type Intent int

const (
	IntentFollowUp Intent = iota
	IntentGratitude
	IntentComparison
	IntentTopicAI
	IntentTopicAlgorithm
	IntentTopicData
	IntentTopicAutomation
	IntentStatistics
	IntentFallback
)

var intentNames = map[Intent]string{
	IntentFollowUp:        "follow_up",
	IntentGratitude:       "gratitude",
	IntentComparison:      "comparison",
	IntentTopicAI:         "topic_ai",
	IntentTopicAlgorithm:  "topic_algorithm",
	IntentTopicData:       "topic_data",
	IntentTopicAutomation: "topic_automation",
	IntentStatistics:      "statistics",
	IntentFallback:        "fallback",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

// replyContext is everything a rule may look at.
type replyContext struct {
	query        string
	priorTopics  string
	projectCount int
}

type replyRule struct {
	intent Intent
	match  func(c replyContext) bool
	reply  func(c replyContext) string
}

// NewTranscript starts a conversation with the opening greeting.
func NewTranscript() models.Transcript {
	return models.Transcript{{Role: models.RoleAssistant, Content: greetingMessage}}
}

// ResetTranscript replaces a whole conversation with a single greeting.
func ResetTranscript() models.Transcript {
	return models.Transcript{{Role: models.RoleAssistant, Content: resetMessage}}
}

// SelectReply answers utterance given the conversation so far and the live
// project collection. It returns the reply and a new transcript holding the
// user turn and the reply; transcript itself is not modified.
func SelectReply(transcript models.Transcript, utterance string, projects []models.Project) (string, models.Transcript) {
	next := make(models.Transcript, 0, len(transcript)+2)
	next = append(next, transcript...)
	next = append(next, models.ChatMessage{Role: models.RoleUser, Content: utterance})

	c := newReplyContext(next, utterance, len(projects))
	reply := ruleFor(c).reply(c)

	next = append(next, models.ChatMessage{Role: models.RoleAssistant, Content: reply})
	return reply, next
}

// Classify reports which rule SelectReply would apply.
func Classify(transcript models.Transcript, utterance string) Intent {
	withTurn := append(transcript[:len(transcript):len(transcript)], models.ChatMessage{Role: models.RoleUser, Content: utterance})
	return ruleFor(newReplyContext(withTurn, utterance, 0)).intent
}

func newReplyContext(transcript models.Transcript, utterance string, projectCount int) replyContext {
	return replyContext{
		query:        normalize(utterance),
		priorTopics:  priorTopics(transcript),
		projectCount: projectCount,
	}
}

func ruleFor(c replyContext) replyRule {
	for _, r := range replyRules {
		if r.match(c) {
			return r
		}
	}
	return fallbackRule
}

// normalize composes Hangul jamo and folds case so keyword matching does
// not depend on how the client encoded the text.
func normalize(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

func priorTopics(transcript models.Transcript) string {
	var parts []string
	for _, m := range transcript {
		if m.Role == models.RoleUser {
			parts = append(parts, normalize(m.Content))
		}
	}
	return strings.Join(parts, " ")
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func fallbackReply(c replyContext) string {
	hint := ""
	if utf8.RuneCountInString(c.priorTopics) > FollowUpHintThreshold {
		hint = fallbackHint
	}
	return fallbackMenu + hint
}

var fallbackRule = replyRule{
	intent: IntentFallback,
	match:  func(replyContext) bool { return true },
	reply:  fallbackReply,
}
