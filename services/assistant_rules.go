package services

import "fmt"

// Keyword families. Queries and topics are case folded before matching,
// so every keyword here is lower case.
var (
	followUpKeywords   = []string{"더 알려", "자세히", "어떻게"}
	gratitudeKeywords  = []string{"고마워", "감사", "좋아"}
	comparisonKeywords = []string{"비교", "차이", "뭐가 다"}
	statisticsKeywords = []string{"몇 개", "얼마나", "통계"}

	aiKeywords         = []string{"ai", "챗봇", "인공지능"}
	algorithmKeywords  = []string{"정렬", "알고리즘", "시각화"}
	dataKeywords       = []string{"데이터", "대시보드", "분석"}
	automationKeywords = []string{"자동화", "출석", "업무"}

	// Follow-ups only recognise the narrower topic words.
	aiTopicKeywords        = []string{"ai", "챗봇"}
	algorithmTopicKeywords = []string{"정렬", "알고리즘"}
	dataTopicKeywords      = []string{"데이터", "대시보드"}
)

// replyRules is evaluated in order; the first match wins and fallbackRule
// answers everything else.
var replyRules = []replyRule{
	{
		intent: IntentFollowUp,
		match:  func(c replyContext) bool { return containsAny(c.query, followUpKeywords...) },
		reply:  followUpReply,
	},
	{
		intent: IntentGratitude,
		match:  func(c replyContext) bool { return containsAny(c.query, gratitudeKeywords...) },
		reply:  constReply(gratitudeReply),
	},
	{
		intent: IntentComparison,
		match:  func(c replyContext) bool { return containsAny(c.query, comparisonKeywords...) },
		reply:  constReply(comparisonReply),
	},
	{
		intent: IntentTopicAI,
		match:  func(c replyContext) bool { return containsAny(c.query, aiKeywords...) },
		reply:  constReply(aiTopicReply),
	},
	{
		intent: IntentTopicAlgorithm,
		match:  func(c replyContext) bool { return containsAny(c.query, algorithmKeywords...) },
		reply:  constReply(algorithmTopicReply),
	},
	{
		intent: IntentTopicData,
		match:  func(c replyContext) bool { return containsAny(c.query, dataKeywords...) },
		reply:  constReply(dataTopicReply),
	},
	{
		intent: IntentTopicAutomation,
		match:  func(c replyContext) bool { return containsAny(c.query, automationKeywords...) },
		reply:  constReply(automationTopicReply),
	},
	{
		intent: IntentStatistics,
		match:  func(c replyContext) bool { return containsAny(c.query, statisticsKeywords...) },
		reply:  statisticsReply,
	},
}

func constReply(text string) func(replyContext) string {
	return func(replyContext) string { return text }
}

func followUpReply(c replyContext) string {
	switch {
	case containsAny(c.priorTopics, aiTopicKeywords...):
		return aiElaboration
	case containsAny(c.priorTopics, algorithmTopicKeywords...):
		return algorithmElaboration
	case containsAny(c.priorTopics, dataTopicKeywords...):
		return dataElaboration
	default:
		return followUpClarifier
	}
}

func statisticsReply(c replyContext) string {
	return fmt.Sprintf(statisticsTemplate, c.projectCount)
}

const (
	aiElaboration = "🤖 \"AI 챗봇 수업 도우미\"에 대해 더 자세히 알려드릴게요!\n\n" +
		"• **기술 스택**: Google Gemini API, React, Vercel\n" +
		"• **활용 방법**: 수업 중 학생 질문 답변, 개념 설명\n" +
		"• **특징**: 한국어 지원, 교육 맥락에 맞춤화\n" +
		"• **라이센스**: MIT (자유롭게 사용 가능)\n\n" +
		"갤러리에서 직접 확인해보시겠어요?"

	algorithmElaboration = "📊 \"정렬 알고리즘 시각화\" 프로젝트에 대해 더 자세히!\n\n" +
		"• **지원 알고리즘**: 버블정렬, 퀵정렬, 병합정렬, 삽입정렬\n" +
		"• **특징**: 속도 조절 가능, 스텝별 실행\n" +
		"• **교육 활용**: 알고리즘 수업 시 시각적 이해 도움\n\n" +
		"\"알고리즘수업자료\" 카테고리에서 더 많은 자료를 찾아보세요!"

	dataElaboration = "📈 \"데이터 시각화 대시보드\" 상세 정보입니다!\n\n" +
		"• **데이터 소스**: 공공데이터 포털 API\n" +
		"• **차트 종류**: 막대, 선, 파이, 히트맵\n" +
		"• **교육 활용**: 실제 데이터 분석 실습\n\n" +
		"GitHub 링크도 있어서 코드를 참고하실 수 있어요!"

	followUpClarifier = "어떤 프로젝트에 대해 더 알고 싶으신가요? 카테고리(AI수업자료, 알고리즘, 데이터, 업무자동화)를 말씀해주시면 관련 프로젝트를 추천해드릴게요! 🔍"

	gratitudeReply = "도움이 되셨다니 기뻐요! 😊 더 궁금한 점이 있으시면 언제든 물어봐주세요. 다른 카테고리의 프로젝트도 찾아드릴 수 있어요!"

	comparisonReply = "📋 프로젝트 비교해드릴게요!\n\n" +
		"**AI수업자료** vs **알고리즘수업자료**:\n" +
		"• AI수업: Gemini/GPT API 활용, 대화형 학습\n" +
		"• 알고리즘: 시각화 중심, 개념 이해 도움\n\n" +
		"수업 목표에 따라 선택하시면 됩니다! 어떤 수업에 활용하실 계획이신가요?"

	aiTopicReply = "🤖 AI 관련 프로젝트를 찾으셨네요!\n\n" +
		"추천 프로젝트: **\"AI 챗봇 수업 도우미\"**\n" +
		"• Google Gemini API 활용\n" +
		"• 수업 중 실시간 Q&A 가능\n" +
		"• 좋아요 42개로 인기 프로젝트!\n\n" +
		"더 자세히 알려드릴까요?"

	algorithmTopicReply = "📊 알고리즘 교육에 관심이 있으시군요!\n\n" +
		"추천 프로젝트: **\"정렬 알고리즘 시각화\"**\n" +
		"• 버블/퀵/병합 정렬 비교 가능\n" +
		"• 좋아요 67개 - 갤러리 내 최다!\n" +
		"• CC-BY 라이센스로 자유롭게 활용\n\n" +
		"자세한 내용이 궁금하신가요?"

	dataTopicReply = "📈 데이터 관련 프로젝트입니다!\n\n" +
		"추천: **\"데이터 시각화 대시보드\"**\n" +
		"• 공공데이터 API 활용 교육\n" +
		"• 인터랙티브 차트 제공\n" +
		"• GitHub 소스 코드 공개\n\n" +
		"더 알아보시겠어요?"

	automationTopicReply = "⚙️ 업무 자동화 도구예요!\n\n" +
		"추천: **\"학급 출석부 자동화\"**\n" +
		"• Google Sheets 연동\n" +
		"• QR코드 출석 체크 지원\n" +
		"• 정보교사 해커톤 수상작\n\n" +
		"상세 정보를 원하시나요?"

	statisticsTemplate = "📊 현재 갤러리 현황이에요!\n\n" +
		"• 총 프로젝트: %d개\n" +
		"• AI수업자료: 1개\n" +
		"• 알고리즘: 1개\n" +
		"• 데이터: 1개\n" +
		"• 업무자동화: 1개\n\n" +
		"어떤 카테고리가 궁금하세요?"

	fallbackMenu = "현재 갤러리에는 다양한 바이브코딩 프로젝트가 있어요! 🎨\n\n" +
		"• 🤖 AI수업자료\n" +
		"• 📊 알고리즘수업자료\n" +
		"• 📈 데이터수업자료\n" +
		"• ⚙️ 업무자동화\n\n" +
		"어떤 분야에 관심이 있으신가요?"

	fallbackHint = "\n\n이전에 나눈 대화를 바탕으로 더 구체적인 질문을 해주셔도 좋아요!"
)
