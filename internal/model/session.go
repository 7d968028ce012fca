package model

import (
	"time"

	"github.com/google/uuid"
)

// Option 生成题目中的一个选项，Number 为 1..K 的槽位号
type Option struct {
	Number int
	Text   string
	Audio  string
}

// GeneratedQuestion 会话内某个位置的已生成题目，生成后不再修改。
// 同一道源题在一个会话中被抽中两次会生成两个独立的 GeneratedQuestion。
type GeneratedQuestion struct {
	QuestionID    int
	PromptText    string
	PromptAudio   string
	Country       string
	Options       []Option
	CorrectOption int
}

// QuizSession 一次答题会话的全部可变状态。
// 只能由 SessionRepository 持有、由 QuizService 的状态转移操作修改。
type QuizSession struct {
	ID           string
	UserID       string
	Catalog      string
	QuestionIDs  []int
	Questions    map[int]*GeneratedQuestion // position -> 已生成题目
	CurrentIndex int
	CorrectCount int
	Finished     bool
	Answers      map[int]bool // questionID -> 最近一次是否答对
	CreatedAt    time.Time
}

func NewQuizSession(userID, catalog string, questionIDs []int) *QuizSession {
	return &QuizSession{
		ID:          uuid.New().String(),
		UserID:      userID,
		Catalog:     catalog,
		QuestionIDs: questionIDs,
		Questions:   make(map[int]*GeneratedQuestion, len(questionIDs)),
		Answers:     make(map[int]bool),
		CreatedAt:   time.Now(),
	}
}
