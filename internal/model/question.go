package model

// QuestionDefinition 题库中的一道题，加载后只读
type QuestionDefinition struct {
	ID          int    `json:"id"`
	PromptText  string `json:"promptText"`
	PromptAudio string `json:"promptAudio,omitempty"`
	Answer      string `json:"answer"`
	Country     string `json:"country,omitempty"`
}

// QuestionPack 一个题库模块：元信息 + 只读题目池
type QuestionPack struct {
	Slug           string
	Title          string
	Description    string
	DefaultOptions int
	Questions      map[int]*QuestionDefinition
	IDs            []int // 稳定排序的题目ID列表
}

// PackMeta 入口页展示的题库元信息
type PackMeta struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
