// Package prompt turns an edit intent, free-form user text, and an optional
// viewpoint into the finished natural-language instruction a provider
// receives. Template language follows the selected engine, not the caller's
// locale: Gemini gets English, Seedream gets Chinese, because each responds
// measurably better to its native-language instructions.
package prompt

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"aura/engine"
	"aura/geometry"
	"aura/render"
	"aura/viewpoint"
)

// ShiftMode says whether a view shift rotates the camera or the subject.
type ShiftMode string

const (
	ShiftCamera  ShiftMode = "CAMERA"
	ShiftSubject ShiftMode = "SUBJECT"
)

// ViewShift describes the target viewpoint for IntentViewShift requests.
// When Rotation is set the continuous sub-mode runs; otherwise Preset names a
// catalog entry whose localized phrase is used verbatim.
type ViewShift struct {
	Mode         ShiftMode
	Rotation     *geometry.Rotation
	Preset       string
	PreservePose bool
}

// Request carries everything composition needs.
type Request struct {
	Intent     engine.EditIntent
	UserText   string
	Engine     engine.Engine
	Resolution render.Resolution
	ViewShift  ViewShift
}

// Compose builds the final provider instruction. For the three edit intents
// the user text is wrapped in a fixed template; for view shifts the viewpoint
// phrase is appended to the user text, or stands alone when the text is empty
// so no leading separator ever leaks into the prompt.
func Compose(req Request) string {
	lang := engine.Language(req.Engine)
	text := strings.TrimSpace(req.UserText)

	switch req.Intent {
	case engine.IntentBackgroundReplace:
		if isChinese(lang) {
			return fmt.Sprintf("产品摄影背景替换。将产品置于：%s。关键：不得改变产品的形状、标志或颜色，只更换背景环境。光影真实，%s。", text, req.Resolution)
		}
		return fmt.Sprintf("Product photography background replacement. Place the product in: %s. CRITICAL: Do not alter the product's shape, logo, or color. Only change the background environment. Realistic lighting, %s.", text, req.Resolution)
	case engine.IntentGeneralEnhance:
		if isChinese(lang) {
			return fmt.Sprintf("专业修图。%s。严格保持主体原有特征，高保真，%s。", text, req.Resolution)
		}
		return fmt.Sprintf("Professional image editing. %s. Maintain the original subject's identity strictly. High fidelity, %s.", text, req.Resolution)
	case engine.IntentCreativeRestyle:
		if isChinese(lang) {
			return fmt.Sprintf("创意重绘。%s。艺术风格，杰作品质，%s。", text, req.Resolution)
		}
		return fmt.Sprintf("Creative re-imagining. %s. Artistic style, masterpiece quality, %s.", text, req.Resolution)
	case engine.IntentViewShift:
		return composeViewShift(text, lang, req.ViewShift)
	default:
		if text == "" {
			return ""
		}
		if isChinese(lang) {
			return fmt.Sprintf("编辑这张图片：%s。", text)
		}
		return fmt.Sprintf("Edit this image: %s.", text)
	}
}

func composeViewShift(text string, lang language.Tag, shift ViewShift) string {
	var phrase string
	if shift.Rotation != nil {
		phrase = shiftPrefix(shift.Mode, lang) + geometry.Describe(*shift.Rotation, lang)
		phrase += consistencyClause(lang)
	} else {
		phrase = presetPhrase(shift.Preset, lang)
	}

	out := phrase
	if text != "" {
		out = text + separator(lang) + phrase
	}

	if shift.PreservePose {
		out += separator(lang) + poseClause(lang)
	}
	return out
}

// ViewpointPhrase is the standalone target-view instruction for a preset,
// also shown in the UI next to the cube.
func ViewpointPhrase(preset string, lang language.Tag) string {
	return presetPhrase(preset, lang)
}

func presetPhrase(preset string, lang language.Tag) string {
	name := viewpoint.DisplayName(preset, lang)
	if isChinese(lang) {
		return "将视角改为" + name
	}
	return "Change the viewpoint to the " + name
}

func shiftPrefix(mode ShiftMode, lang language.Tag) string {
	if isChinese(lang) {
		if mode == ShiftSubject {
			return "物体朝向: "
		}
		return "视角运镜: "
	}
	if mode == ShiftSubject {
		return "Object Pose: "
	}
	return "Camera Path: "
}

// consistencyClause asks the provider to keep subject identity stable while
// the perspective moves. Applied in the continuous sub-mode, where the raw
// angle description gives the model the least to hold on to.
func consistencyClause(lang language.Tag) string {
	if isChinese(lang) {
		return "。关键：要求画面透视合理，保持主体特征一致，背景光影融合自然"
	}
	return ". Novel View Synthesis logic: ensure subject identity features are consistent and background perspective changes accordingly"
}

func poseClause(lang language.Tag) string {
	if isChinese(lang) {
		return "保持主体姿势与动作不变"
	}
	return "Keep the subject's pose and action unchanged"
}

func separator(lang language.Tag) string {
	if isChinese(lang) {
		return "。"
	}
	return ". "
}

func isChinese(lang language.Tag) bool {
	base, _ := lang.Base()
	zh, _ := language.Chinese.Base()
	return base == zh
}
