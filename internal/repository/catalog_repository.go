package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"wordquiz_backend/internal/model"
	"wordquiz_backend/internal/util"
	"wordquiz_backend/pkg/logger"

	"go.uber.org/zap"
)

// catalogFile 题库文件 questions.json 的结构
type catalogFile struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	BaseQuestion   string `json:"base_question"`
	DefaultOptions int    `json:"default_options"`
	Questions      []struct {
		ID      int    `json:"id"`
		Country string `json:"country"`
		Answer  string `json:"answer"`
		Audio   string `json:"audio"`
	} `json:"questions"`
}

// CatalogRepository 加载并索引全部题库模块，加载后只读，可并发访问
type CatalogRepository struct {
	packs map[string]*model.QuestionPack
	order []string
}

// NewCatalogRepository 从 <root>/<slug>/questions.json 加载 slugs 列出的全部题库。
// 任何一个题库缺失或格式错误都视为配置错误，启动失败。
func NewCatalogRepository(root string, slugs []string, defaultOptions int) (*CatalogRepository, error) {
	r := &CatalogRepository{
		packs: make(map[string]*model.QuestionPack, len(slugs)),
		order: slugs,
	}

	for _, slug := range slugs {
		pack, err := loadPack(filepath.Join(root, slug, "questions.json"), slug, defaultOptions)
		if err != nil {
			return nil, fmt.Errorf("catalog %q: %w", slug, err)
		}
		r.packs[slug] = pack
	}

	return r, nil
}

func loadPack(path, slug string, defaultOptions int) (*model.QuestionPack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("malformed questions file: %w", err)
	}

	if file.DefaultOptions < 1 {
		file.DefaultOptions = defaultOptions
	}
	basePrompt := file.BaseQuestion
	if basePrompt == "" {
		basePrompt = "Назови национальность в стране"
	}

	pack := &model.QuestionPack{
		Slug:           slug,
		Title:          file.Title,
		Description:    file.Description,
		DefaultOptions: file.DefaultOptions,
		Questions:      make(map[int]*model.QuestionDefinition, len(file.Questions)),
	}

	for _, it := range file.Questions {
		if it.Answer == "" {
			logger.Log.Warn("skipping question with empty answer",
				zap.String("catalog", slug), zap.Int("id", it.ID))
			continue
		}
		if _, dup := pack.Questions[it.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %d", it.ID)
		}
		prompt := basePrompt
		if it.Country != "" {
			prompt = basePrompt + ":"
		}
		pack.Questions[it.ID] = &model.QuestionDefinition{
			ID:          it.ID,
			PromptText:  prompt,
			PromptAudio: it.Audio,
			Answer:      it.Answer,
			Country:     it.Country,
		}
		pack.IDs = append(pack.IDs, it.ID)
	}
	sort.Ints(pack.IDs)

	return pack, nil
}

func (r *CatalogRepository) Get(slug string) (*model.QuestionPack, error) {
	pack, ok := r.packs[slug]
	if !ok {
		return nil, util.ErrCatalogNotFound
	}
	return pack, nil
}

// List 按配置顺序返回题库元信息
func (r *CatalogRepository) List() []model.PackMeta {
	metas := make([]model.PackMeta, 0, len(r.order))
	for _, slug := range r.order {
		pack := r.packs[slug]
		metas = append(metas, model.PackMeta{
			Slug:        slug,
			Title:       pack.Title,
			Description: pack.Description,
		})
	}
	return metas
}

// DefaultSlug 第一个配置的模块，根路由的历史别名绑定到它
func (r *CatalogRepository) DefaultSlug() string {
	if len(r.order) == 0 {
		return ""
	}
	return r.order[0]
}
