package viewpoint

import "golang.org/x/text/language"

type localizedName struct {
	en string
	zh string
}

var names = map[string]localizedName{
	PresetFront:      {en: "front view", zh: "正面视角"},
	PresetFrontRight: {en: "right three-quarter view", zh: "右前方四分之三视角"},
	PresetRight:      {en: "right side view", zh: "右侧视角"},
	PresetBackRight:  {en: "back right three-quarter view", zh: "右后方四分之三视角"},
	PresetBack:       {en: "back view", zh: "背面视角"},
	PresetBackLeft:   {en: "back left three-quarter view", zh: "左后方四分之三视角"},
	PresetLeft:       {en: "left side view", zh: "左侧视角"},
	PresetFrontLeft:  {en: "left three-quarter view", zh: "左前方四分之三视角"},
	PresetTop:        {en: "top-down view", zh: "俯视视角"},
	PresetUpperRight: {en: "upper-right three-quarter view", zh: "右上方四分之三视角"},
	PresetUpperLeft:  {en: "upper-left three-quarter view", zh: "左上方四分之三视角"},
	PresetBottom:     {en: "bottom-up view", zh: "仰视视角"},
	PresetLowerRight: {en: "lower-right three-quarter view", zh: "右下方四分之三视角"},
	PresetLowerLeft:  {en: "lower-left three-quarter view", zh: "左下方四分之三视角"},
}

// DisplayName returns the localized phrase for a preset, used verbatim as the
// target-view phrase in prompts. Unknown identifiers fall back to the raw
// identifier so callers never render an empty phrase. Any non-Chinese tag
// uses the English vocabulary.
func DisplayName(id string, lang language.Tag) string {
	n, ok := names[id]
	if !ok {
		return id
	}
	if isChinese(lang) {
		return n.zh
	}
	return n.en
}

func isChinese(lang language.Tag) bool {
	base, _ := lang.Base()
	zh, _ := language.Chinese.Base()
	return base == zh
}
