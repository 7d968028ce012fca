package service

import (
	"path"
	"strings"
)

// AudioService 把题库里的逻辑音频引用映射为可访问的URL。
// 音频文件由外部工具生成，命名可能与题库漂移，所以这里带一条
// 变体回退链；解析失败永远降级为"无音频"，不产生错误。
type AudioService struct {
	Storage StorageProvider
}

func NewAudioService(storage StorageProvider) *AudioService {
	return &AudioService{Storage: storage}
}

// 命名变体后缀，与音频生成工具的输出约定一致
var audioVariants = []string{"_country", "_answer"}

// Resolve 返回引用对应的URL，空引用返回空串。
// 文件不存在时仍返回按字面引用拼出的URL，后续404由调用方承受。
func (s *AudioService) Resolve(ref string) string {
	if ref == "" {
		return ""
	}
	if !strings.HasPrefix(ref, "audio/") {
		// 外部或绝对引用，原样透传
		return ref
	}

	rel := strings.SplitN(ref, "/", 2)[1]
	if s.Storage.Exists(rel) {
		return s.Storage.GetURL(rel)
	}

	ext := path.Ext(rel)
	stem := strings.TrimSuffix(rel, ext)
	for _, v := range audioVariants {
		candidate := stem + v + ext
		if s.Storage.Exists(candidate) {
			return s.Storage.GetURL(candidate)
		}
	}

	return s.Storage.GetURL(rel)
}
