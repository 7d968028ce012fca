package service

import (
	"math/rand"
	"sync"
	"time"
	"wordquiz_backend/internal/config"
	"wordquiz_backend/internal/model"
	"wordquiz_backend/internal/repository"
	"wordquiz_backend/internal/util"
	"wordquiz_backend/pkg/logger"
	"wordquiz_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// QuizService 测验会话状态机：开始会话、按位置取题、严格按序判题、汇总。
// 会话状态只在 SessionRepository 的锁内修改；音频解析一律在锁外进行。
type QuizService struct {
	Catalogs *repository.CatalogRepository
	Sessions *repository.SessionRepository
	Audio    *AudioService

	mu               sync.Mutex // 保护 rng 和默认参数
	rng              *rand.Rand
	defaultQuestions int
}

func NewQuizService(catalogs *repository.CatalogRepository, sessions *repository.SessionRepository, audio *AudioService, cfg *config.Config) *QuizService {
	return &QuizService{
		Catalogs:         catalogs,
		Sessions:         sessions,
		Audio:            audio,
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())),
		defaultQuestions: cfg.Quiz.DefaultQuestions,
	}
}

// UpdateDefaults 配置热更新回调
func (s *QuizService) UpdateDefaults(cfg *config.Config) {
	s.mu.Lock()
	s.defaultQuestions = cfg.Quiz.DefaultQuestions
	s.mu.Unlock()
}

type StartQuizResult struct {
	SessionID       string `json:"session_id"`
	Total           int    `json:"total"`
	FirstQuestionID int    `json:"first_question_id"`
}

type OptionView struct {
	Number   int    `json:"number"`
	AudioURL string `json:"audio_url,omitempty"`
}

// QuestionView 取题视图：只暴露槽位号和音频，不暴露选项文字，
// 答案文字只在判题结果里回传
type QuestionView struct {
	SessionID      string       `json:"session_id"`
	Index          int          `json:"index"`
	Total          int          `json:"total"`
	QuestionID     int          `json:"question_id"`
	PromptText     string       `json:"prompt_text"`
	PromptAudioURL string       `json:"prompt_audio_url,omitempty"`
	Options        []OptionView `json:"options"`
}

type AnswerResult struct {
	Correct         bool   `json:"correct"`
	CorrectOption   int    `json:"correct_option"`
	CorrectText     string `json:"correct_text"`
	CorrectAudioURL string `json:"correct_audio_url,omitempty"`
	Country         string `json:"country,omitempty"`
	Score           int    `json:"score"`
	Index           int    `json:"index"`
	Total           int    `json:"total"`
	Finished        bool   `json:"finished"`
}

type QuestionResult struct {
	QuestionID int    `json:"question_id"`
	Result     string `json:"result"`
}

type SummaryResult struct {
	SessionID    string           `json:"session_id"`
	Total        int              `json:"total"`
	CorrectCount int              `json:"correct_count"`
	Details      []QuestionResult `json:"details"`
}

// StartQuiz 有放回地抽取 n 道题并为每个位置独立生成选项。
// n <= 0 时用配置的默认题数，最少 1 道。
func (s *QuizService) StartQuiz(slug, userID string, n int) (*StartQuizResult, error) {
	pack, err := s.Catalogs.Get(slug)
	if err != nil {
		return nil, err
	}
	if len(pack.IDs) == 0 {
		return nil, util.ErrNoQuestions
	}

	s.mu.Lock()
	if n <= 0 {
		n = s.defaultQuestions
	}
	if n < 1 {
		n = 1
	}

	picks := make([]int, n)
	for i := range picks {
		picks[i] = pack.IDs[s.rng.Intn(len(pack.IDs))]
	}

	session := model.NewQuizSession(userID, slug, picks)
	for pos, qid := range picks {
		target := pack.Questions[qid]
		options, correct := GenerateOptions(target, pack, pack.DefaultOptions, s.rng)
		session.Questions[pos] = &model.GeneratedQuestion{
			QuestionID:    qid,
			PromptText:    target.PromptText,
			PromptAudio:   target.PromptAudio,
			Country:       target.Country,
			Options:       options,
			CorrectOption: correct,
		}
	}
	s.mu.Unlock()

	s.Sessions.Save(session)
	monitoring.SessionsStarted.WithLabelValues(slug).Inc()
	logger.Log.Info("quiz session started",
		zap.String("catalog", slug),
		zap.String("session_id", session.ID),
		zap.String("user_id", userID),
		zap.Int("total", n))

	return &StartQuizResult{
		SessionID:       session.ID,
		Total:           n,
		FirstQuestionID: picks[0],
	}, nil
}

// GetQuestion 按位置取题，不改变会话状态，可对任意已生成位置重复调用
func (s *QuizService) GetQuestion(slug, sessionID string, index int) (*QuestionView, error) {
	var view QuestionView
	var promptAudio string

	err := s.Sessions.With(sessionID, func(session *model.QuizSession) error {
		if session.Catalog != slug {
			return util.ErrSessionNotFound
		}
		if session.Finished {
			return util.ErrSessionFinished
		}
		if index < 0 || index >= len(session.QuestionIDs) {
			return util.ErrIndexOutOfRange
		}
		q, ok := session.Questions[index]
		if !ok {
			return util.ErrQuestionNotPrepared
		}

		view = QuestionView{
			SessionID:  session.ID,
			Index:      index,
			Total:      len(session.QuestionIDs),
			QuestionID: q.QuestionID,
			PromptText: q.PromptText,
			Options:    make([]OptionView, len(q.Options)),
		}
		promptAudio = q.PromptAudio
		for i, opt := range q.Options {
			view.Options[i] = OptionView{Number: opt.Number, AudioURL: opt.Audio}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 音频解析在会话锁外进行
	view.PromptAudioURL = s.Audio.Resolve(promptAudio)
	for i := range view.Options {
		view.Options[i].AudioURL = s.Audio.Resolve(view.Options[i].AudioURL)
	}

	return &view, nil
}

// SubmitAnswer 只接受当前位置指向的那道题的作答：questionID 必须等于
// picks[currentIndex]，不做任何按ID搜索。接受后记录对错（同一题ID
// 重复出现时覆盖旧记录）、计分并前移位置。
func (s *QuizService) SubmitAnswer(slug, sessionID string, questionID, selected int) (*AnswerResult, error) {
	var result AnswerResult
	var correctAudio string

	err := s.Sessions.With(sessionID, func(session *model.QuizSession) error {
		if session.Catalog != slug {
			return util.ErrSessionNotFound
		}
		if session.Finished {
			return util.ErrSessionFinished
		}
		if session.CurrentIndex < 0 || session.CurrentIndex >= len(session.QuestionIDs) {
			return util.ErrInvalidSessionIndex
		}
		if session.QuestionIDs[session.CurrentIndex] != questionID {
			return util.ErrOrderMismatch
		}
		q, ok := session.Questions[session.CurrentIndex]
		if !ok {
			return util.ErrQuestionNotPrepared
		}
		if selected < 1 || selected > len(q.Options) {
			return util.ErrInvalidOption
		}

		correct := selected == q.CorrectOption
		session.Answers[questionID] = correct
		if correct {
			session.CorrectCount++
		}
		session.CurrentIndex++
		if session.CurrentIndex >= len(session.QuestionIDs) {
			session.Finished = true
		}

		correctOpt := q.Options[q.CorrectOption-1]
		total := len(session.QuestionIDs)
		index := session.CurrentIndex
		if index > total-1 {
			index = total - 1
		}
		result = AnswerResult{
			Correct:       correct,
			CorrectOption: correctOpt.Number,
			CorrectText:   correctOpt.Text,
			Country:       q.Country,
			Score:         session.CorrectCount,
			Index:         index,
			Total:         total,
			Finished:      session.Finished,
		}
		correctAudio = correctOpt.Audio
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.CorrectAudioURL = s.Audio.Resolve(correctAudio)

	outcome := "wrong"
	if result.Correct {
		outcome = "correct"
	}
	monitoring.AnswersSubmitted.WithLabelValues(slug, outcome).Inc()

	return &result, nil
}

// Summary 纯读取，已结束的会话也可以查询。
// 结果按抽题顺序逐位置给出，对错取该题ID最近一次的记录。
func (s *QuizService) Summary(slug, sessionID string) (*SummaryResult, error) {
	var summary SummaryResult

	err := s.Sessions.With(sessionID, func(session *model.QuizSession) error {
		if session.Catalog != slug {
			return util.ErrSessionNotFound
		}
		summary = SummaryResult{
			SessionID:    session.ID,
			Total:        len(session.QuestionIDs),
			CorrectCount: session.CorrectCount,
			Details:      make([]QuestionResult, len(session.QuestionIDs)),
		}
		for i, qid := range session.QuestionIDs {
			res := "wrong"
			if session.Answers[qid] {
				res = "correct"
			}
			summary.Details[i] = QuestionResult{QuestionID: qid, Result: res}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &summary, nil
}
