package service

import (
	"encoding/json"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"wordquiz_backend/internal/config"
	"wordquiz_backend/internal/model"
	"wordquiz_backend/internal/repository"
	"wordquiz_backend/internal/util"
)

func writeCatalog(t *testing.T, n int) *repository.CatalogRepository {
	t.Helper()

	type q struct {
		ID      int    `json:"id"`
		Country string `json:"country"`
		Answer  string `json:"answer"`
		Audio   string `json:"audio"`
	}
	file := struct {
		Title          string `json:"title"`
		BaseQuestion   string `json:"base_question"`
		DefaultOptions int    `json:"default_options"`
		Questions      []q    `json:"questions"`
	}{
		Title:          "Nationalities",
		BaseQuestion:   "Назови национальность в стране",
		DefaultOptions: 4,
		Questions:      []q{},
	}
	for i := 1; i <= n; i++ {
		file.Questions = append(file.Questions, q{
			ID:      i,
			Country: "country",
			Answer:  "answer-" + string(rune('a'+i)),
			Audio:   "audio/q1.mp3",
		})
	}

	root := t.TempDir()
	dir := filepath.Join(root, "nationalities")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(file)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "questions.json"), data, 0644); err != nil {
		t.Fatal(err)
	}

	catalogs, err := repository.NewCatalogRepository(root, []string{"nationalities"}, 4)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return catalogs
}

func newTestQuiz(t *testing.T, poolSize, defaultQuestions int) *QuizService {
	t.Helper()

	cfg := &config.Config{}
	cfg.Quiz.DefaultQuestions = defaultQuestions
	cfg.Quiz.DefaultOptions = 4

	s := NewQuizService(
		writeCatalog(t, poolSize),
		repository.NewSessionRepository(0),
		NewAudioService(&fakeStorage{existing: map[string]bool{}}),
		cfg,
	)
	s.rng = rand.New(rand.NewSource(1))
	return s
}

func generatedAt(t *testing.T, s *QuizService, sessionID string, pos int) (questionID, correctSlot int) {
	t.Helper()
	err := s.Sessions.With(sessionID, func(sess *model.QuizSession) error {
		q, ok := sess.Questions[pos]
		if !ok {
			t.Fatalf("no generated question at position %d", pos)
		}
		questionID = q.QuestionID
		correctSlot = q.CorrectOption
		return nil
	})
	if err != nil {
		t.Fatalf("read session: %v", err)
	}
	return questionID, correctSlot
}

func TestStartQuizPickCounts(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"single question", 1, 1},
		{"several questions", 3, 3},
		{"more than pool size repeats", 20, 20},
		{"zero falls back to default", 0, 5},
		{"negative falls back to default", -2, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestQuiz(t, 5, 5)

			result, err := s.StartQuiz("nationalities", "u1", tt.requested)
			if err != nil {
				t.Fatalf("StartQuiz: %v", err)
			}

			if result.Total != tt.want {
				t.Fatalf("total = %d, want %d", result.Total, tt.want)
			}

			// 每个位置都必须预先生成4个选项，题目ID来自题池
			for pos := 0; pos < tt.want; pos++ {
				view, err := s.GetQuestion("nationalities", result.SessionID, pos)
				if err != nil {
					t.Fatalf("GetQuestion(%d): %v", pos, err)
				}
				if view.QuestionID < 1 || view.QuestionID > 5 {
					t.Errorf("position %d: question id %d not in pool", pos, view.QuestionID)
				}
				if len(view.Options) != 4 {
					t.Errorf("position %d: %d options, want 4", pos, len(view.Options))
				}
			}
		})
	}
}

func TestStartQuizEmptyPool(t *testing.T) {
	s := newTestQuiz(t, 0, 5)

	_, err := s.StartQuiz("nationalities", "u1", 3)

	if !errors.Is(err, util.ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
}

func TestStartQuizUnknownCatalog(t *testing.T) {
	s := newTestQuiz(t, 5, 5)

	_, err := s.StartQuiz("colors", "u1", 3)

	if !errors.Is(err, util.ErrCatalogNotFound) {
		t.Fatalf("err = %v, want ErrCatalogNotFound", err)
	}
}

func TestQuestionViewHidesOptionText(t *testing.T) {
	s := newTestQuiz(t, 5, 5)
	result, err := s.StartQuiz("nationalities", "u1", 1)
	if err != nil {
		t.Fatal(err)
	}

	view, err := s.GetQuestion("nationalities", result.SessionID, 0)
	if err != nil {
		t.Fatal(err)
	}

	if view.PromptText == "" {
		t.Error("prompt text should be exposed")
	}
	for _, opt := range view.Options {
		if opt.AudioURL == "" {
			t.Errorf("option %d: expected a best-effort audio url", opt.Number)
		}
	}
}

func TestFullQuizWalkthrough(t *testing.T) {
	s := newTestQuiz(t, 5, 5)

	result, err := s.StartQuiz("nationalities", "u1", 3)
	if err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	if result.Total != 3 {
		t.Fatalf("total = %d, want 3", result.Total)
	}

	for pos := 0; pos < 3; pos++ {
		qid, correctSlot := generatedAt(t, s, result.SessionID, pos)

		answer, err := s.SubmitAnswer("nationalities", result.SessionID, qid, correctSlot)
		if err != nil {
			t.Fatalf("SubmitAnswer(%d): %v", pos, err)
		}
		if !answer.Correct {
			t.Fatalf("position %d: answer not accepted as correct", pos)
		}
		if answer.Score != pos+1 {
			t.Errorf("position %d: score = %d, want %d", pos, answer.Score, pos+1)
		}

		wantFinished := pos == 2
		if answer.Finished != wantFinished {
			t.Errorf("position %d: finished = %v, want %v", pos, answer.Finished, wantFinished)
		}
		wantIndex := pos + 1
		if wantIndex > 2 {
			wantIndex = 2
		}
		if answer.Index != wantIndex {
			t.Errorf("position %d: index = %d, want %d", pos, answer.Index, wantIndex)
		}
	}

	summary, err := s.Summary("nationalities", result.SessionID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Total != 3 || summary.CorrectCount != 3 {
		t.Fatalf("summary = {total:%d correct:%d}, want {total:3 correct:3}", summary.Total, summary.CorrectCount)
	}
	for i, d := range summary.Details {
		if d.Result != "correct" {
			t.Errorf("detail %d: result = %q, want correct", i, d.Result)
		}
	}
}

func TestSubmitAnswerOrderMismatch(t *testing.T) {
	s := newTestQuiz(t, 5, 5)
	result, err := s.StartQuiz("nationalities", "u1", 3)
	if err != nil {
		t.Fatal(err)
	}

	qid, _ := generatedAt(t, s, result.SessionID, 0)
	wrongID := qid%5 + 1

	_, err = s.SubmitAnswer("nationalities", result.SessionID, wrongID, 1)
	if !errors.Is(err, util.ErrOrderMismatch) {
		t.Fatalf("err = %v, want ErrOrderMismatch", err)
	}

	// 被拒绝的提交不能改动会话状态
	err = s.Sessions.With(result.SessionID, func(sess *model.QuizSession) error {
		if sess.CurrentIndex != 0 {
			t.Errorf("current index moved to %d", sess.CurrentIndex)
		}
		if sess.CorrectCount != 0 {
			t.Errorf("score moved to %d", sess.CorrectCount)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestSubmitAnswerInvalidOption(t *testing.T) {
	s := newTestQuiz(t, 5, 5)
	result, err := s.StartQuiz("nationalities", "u1", 1)
	if err != nil {
		t.Fatal(err)
	}
	qid, _ := generatedAt(t, s, result.SessionID, 0)

	tests := []struct {
		name     string
		selected int
	}{
		{"zero", 0},
		{"negative", -1},
		{"above option count", 5},
		{"way above", 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.SubmitAnswer("nationalities", result.SessionID, qid, tt.selected)
			if !errors.Is(err, util.ErrInvalidOption) {
				t.Fatalf("err = %v, want ErrInvalidOption", err)
			}
		})
	}

	err = s.Sessions.With(result.SessionID, func(sess *model.QuizSession) error {
		if sess.CurrentIndex != 0 || sess.Finished {
			t.Errorf("rejected submissions mutated session state")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestFinishedSessionRejectsFurtherCalls(t *testing.T) {
	s := newTestQuiz(t, 5, 5)
	result, err := s.StartQuiz("nationalities", "u1", 1)
	if err != nil {
		t.Fatal(err)
	}

	qid, correctSlot := generatedAt(t, s, result.SessionID, 0)
	answer, err := s.SubmitAnswer("nationalities", result.SessionID, qid, correctSlot)
	if err != nil {
		t.Fatal(err)
	}
	if !answer.Finished {
		t.Fatal("session should be finished after the last answer")
	}

	if _, err := s.GetQuestion("nationalities", result.SessionID, 0); !errors.Is(err, util.ErrSessionFinished) {
		t.Errorf("GetQuestion err = %v, want ErrSessionFinished", err)
	}
	if _, err := s.SubmitAnswer("nationalities", result.SessionID, qid, correctSlot); !errors.Is(err, util.ErrSessionFinished) {
		t.Errorf("SubmitAnswer err = %v, want ErrSessionFinished", err)
	}

	// 汇总对已结束会话仍然可用
	if _, err := s.Summary("nationalities", result.SessionID); err != nil {
		t.Errorf("Summary err = %v, want nil", err)
	}
}

func TestGetQuestionIndexOutOfRange(t *testing.T) {
	s := newTestQuiz(t, 5, 5)
	result, err := s.StartQuiz("nationalities", "u1", 2)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		index int
	}{
		{"negative", -1},
		{"past end", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.GetQuestion("nationalities", result.SessionID, tt.index)
			if !errors.Is(err, util.ErrIndexOutOfRange) {
				t.Fatalf("err = %v, want ErrIndexOutOfRange", err)
			}
		})
	}
}

func TestRepeatedPickLastWriteWins(t *testing.T) {
	// 只有一道题的题池：两次抽取必然是同一题，
	// 汇总按题目ID取最近一次记录
	s := newTestQuiz(t, 1, 5)
	result, err := s.StartQuiz("nationalities", "u1", 2)
	if err != nil {
		t.Fatal(err)
	}

	qid, correctSlot := generatedAt(t, s, result.SessionID, 0)
	if _, err := s.SubmitAnswer("nationalities", result.SessionID, qid, correctSlot); err != nil {
		t.Fatal(err)
	}

	_, correctSlot2 := generatedAt(t, s, result.SessionID, 1)
	wrongSlot := correctSlot2%4 + 1
	answer, err := s.SubmitAnswer("nationalities", result.SessionID, qid, wrongSlot)
	if err != nil {
		t.Fatal(err)
	}
	if answer.Correct {
		t.Fatal("second submission should be wrong")
	}

	summary, err := s.Summary("nationalities", result.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if summary.CorrectCount != 1 {
		t.Errorf("correct count = %d, want 1", summary.CorrectCount)
	}
	for i, d := range summary.Details {
		if d.Result != "wrong" {
			t.Errorf("detail %d: result = %q, want wrong (last write wins)", i, d.Result)
		}
	}
}

func TestSessionIsCatalogBound(t *testing.T) {
	s := newTestQuiz(t, 5, 5)
	result, err := s.StartQuiz("nationalities", "u1", 1)
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.GetQuestion("colors", result.SessionID, 0)
	if !errors.Is(err, util.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestRepeatedPicksGetIndependentOptions(t *testing.T) {
	s := newTestQuiz(t, 1, 5)
	result, err := s.StartQuiz("nationalities", "u1", 20)
	if err != nil {
		t.Fatal(err)
	}

	// 同一道题的20次生成之间至少要出现两种不同的正确槽位
	slots := make(map[int]bool)
	for pos := 0; pos < 20; pos++ {
		_, slot := generatedAt(t, s, result.SessionID, pos)
		slots[slot] = true
	}
	if len(slots) < 2 {
		t.Fatalf("all 20 generations landed the correct option in the same slot: %v", slots)
	}
}
