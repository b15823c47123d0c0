package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rpupo63/vibe-gallery-backend/models"
)

// DemoUserID is the member signed in by the demo login.
const DemoUserID = "demo-user-1"

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

var demoCategories = []models.Category{
	{ID: 1, Name: "AI수업자료", Icon: "🤖", DisplayOrder: 1},
	{ID: 2, Name: "알고리즘수업자료", Icon: "📊", DisplayOrder: 2},
	{ID: 3, Name: "데이터수업자료", Icon: "📈", DisplayOrder: 3},
	{ID: 4, Name: "업무자동화", Icon: "⚙️", DisplayOrder: 4},
	{ID: 5, Name: "기타", Icon: "📁", DisplayOrder: 99},
}

var demoEvents = []models.Event{
	{ID: 1, Name: "2026년 3월 바이브코딩 연수", IsActive: true},
	{ID: 2, Name: "2026년 정보교사 커뮤니티 해커톤", IsActive: true},
}

var demoLicenses = []models.License{
	{ID: 1, Name: "MIT License", ShortName: "MIT", Description: "가장 자유로운 오픈소스 라이센스. 상업적 사용, 수정, 배포 모두 가능.", URL: "https://opensource.org/licenses/MIT", AllowCommercial: true, RequireAttribution: true, AllowModification: true},
	{ID: 2, Name: "Apache License 2.0", ShortName: "Apache-2.0", Description: "MIT와 유사하지만 특허권 보호가 추가됨.", URL: "https://opensource.org/licenses/Apache-2.0", AllowCommercial: true, RequireAttribution: true, AllowModification: true},
	{ID: 3, Name: "GPL v3", ShortName: "GPL-3.0", Description: "파생 작업도 반드시 GPL로 공개해야 합니다.", URL: "https://www.gnu.org/licenses/gpl-3.0.html", AllowCommercial: true, RequireAttribution: true, AllowModification: true},
	{ID: 4, Name: "CC BY 4.0", ShortName: "CC-BY", Description: "크리에이티브 커먼즈. 출처 표시만 하면 자유롭게 사용 가능.", URL: "https://creativecommons.org/licenses/by/4.0/", AllowCommercial: true, RequireAttribution: true, AllowModification: true},
	{ID: 5, Name: "CC BY-NC 4.0", ShortName: "CC-BY-NC", Description: "비상업적 용도로만 사용 가능. 교육 자료에 적합.", URL: "https://creativecommons.org/licenses/by-nc/4.0/", AllowCommercial: false, RequireAttribution: true, AllowModification: true},
	{ID: 6, Name: "CC BY-NC-SA 4.0", ShortName: "CC-BY-NC-SA", Description: "비상업적 + 동일조건변경허락. 교육 커뮤니티에서 인기.", URL: "https://creativecommons.org/licenses/by-nc-sa/4.0/", AllowCommercial: false, RequireAttribution: true, AllowModification: true},
}

var demoUsers = []models.User{
	{ID: DemoUserID, Email: "demo@teacher.com", Username: "demoteacher", DisplayName: "데모 선생님"},
	{ID: "kimteacher", Email: "kimteacher@demo.teacher.com", Username: "kimteacher", DisplayName: "김선생"},
	{ID: "leeteacher", Email: "leeteacher@demo.teacher.com", Username: "leeteacher", DisplayName: "이선생"},
	{ID: "parkteacher", Email: "parkteacher@demo.teacher.com", Username: "parkteacher", DisplayName: "박선생"},
	{ID: "choiteacher", Email: "choiteacher@demo.teacher.com", Username: "choiteacher", DisplayName: "최선생"},
}

func demoProjects() []models.Project {
	return []models.Project{
		{
			ID:           "1",
			Title:        "AI 챗봇 수업 도우미",
			Description:  "Google Gemini API를 활용한 수업 질문 답변 챗봇입니다. 학생들이 수업 중 궁금한 점을 바로 질문하고 답변받을 수 있습니다.",
			DeployURL:    "https://ai-classroom-helper.vercel.app",
			GithubURL:    strPtr("https://github.com/teacher/ai-helper"),
			ThumbnailURL: "https://picsum.photos/seed/ai-helper/400/300",
			CategoryID:   uintPtr(1),
			EventID:      uintPtr(1),
			LicenseID:    uintPtr(1),
			UserID:       "kimteacher",
			ViewCount:    150,
			LikeCount:    42,
			CommentCount: 8,
			CreatedAt:    mustTime("2026-01-25T10:00:00Z"),
		},
		{
			ID:           "2",
			Title:        "정렬 알고리즘 시각화",
			Description:  "버블정렬, 퀵정렬, 병합정렬 등 다양한 정렬 알고리즘을 시각적으로 비교할 수 있는 교육용 웹앱입니다.",
			DeployURL:    "https://sorting-visualizer-edu.vercel.app",
			GithubURL:    strPtr("https://github.com/teacher/sorting-viz"),
			ThumbnailURL: "https://picsum.photos/seed/sorting/400/300",
			CategoryID:   uintPtr(2),
			EventID:      uintPtr(1),
			LicenseID:    uintPtr(4),
			UserID:       "leeteacher",
			ViewCount:    230,
			LikeCount:    67,
			CommentCount: 15,
			CreatedAt:    mustTime("2026-01-24T14:30:00Z"),
		},
		{
			ID:           "3",
			Title:        "학급 출석부 자동화",
			Description:  "Google Sheets와 연동하여 출석 관리를 자동화하는 웹앱입니다. QR코드 스캔으로 간편하게 출석 체크!",
			DeployURL:    "https://attendance-auto.vercel.app",
			ThumbnailURL: "https://picsum.photos/seed/attendance/400/300",
			CategoryID:   uintPtr(4),
			EventID:      uintPtr(2),
			LicenseID:    uintPtr(5),
			UserID:       "parkteacher",
			ViewCount:    89,
			LikeCount:    31,
			CommentCount: 5,
			CreatedAt:    mustTime("2026-01-23T09:15:00Z"),
		},
		{
			ID:           "4",
			Title:        "데이터 시각화 대시보드",
			Description:  "공공데이터 API를 활용한 인터랙티브 대시보드입니다. 학생들이 실제 데이터로 분석 실습을 할 수 있습니다.",
			DeployURL:    "https://data-dashboard-edu.vercel.app",
			GithubURL:    strPtr("https://github.com/teacher/data-dashboard"),
			ThumbnailURL: "https://picsum.photos/seed/dashboard/400/300",
			CategoryID:   uintPtr(3),
			EventID:      uintPtr(1),
			LicenseID:    uintPtr(1),
			UserID:       "choiteacher",
			ViewCount:    175,
			LikeCount:    58,
			CommentCount: 12,
			CreatedAt:    mustTime("2026-01-22T16:45:00Z"),
		},
	}
}

func demoComments() []models.Comment {
	return []models.Comment{
		{ID: "c1", ProjectID: "1", UserID: "leeteacher", Content: "정말 유용한 챗봇이네요! 수업에 바로 활용해봤습니다.", CreatedAt: mustTime("2026-01-25T12:00:00Z")},
		{ID: "c2", ProjectID: "1", UserID: "parkteacher", Content: "API 키 발급 과정도 설명해주시면 좋겠어요~", CreatedAt: mustTime("2026-01-25T14:30:00Z")},
		{ID: "c3", ProjectID: "2", UserID: "kimteacher", Content: "시각화가 정말 깔끔하네요. 학생들이 좋아할 것 같아요!", CreatedAt: mustTime("2026-01-24T16:00:00Z")},
	}
}

// SeedDemoData loads the demo gallery. Rows that already exist are kept,
// so seeding twice is harmless.
func SeedDemoData(db *gorm.DB) error {
	projects := demoProjects()
	comments := demoComments()

	err := db.Transaction(func(tx *gorm.DB) error {
		insert := tx.Clauses(clause.OnConflict{DoNothing: true}).Session(&gorm.Session{})
		steps := []struct {
			name string
			rows interface{}
		}{
			{"categories", &demoCategories},
			{"events", &demoEvents},
			{"licenses", &demoLicenses},
			{"users", &demoUsers},
			{"projects", &projects},
			{"comments", &comments},
		}
		for _, step := range steps {
			if err := insert.Omit(clause.Associations).Create(step.rows).Error; err != nil {
				return fmt.Errorf("seed %s: %w", step.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().
		Int("projects", len(projects)).
		Int("comments", len(comments)).
		Msg("Demo data seeded")
	return nil
}
