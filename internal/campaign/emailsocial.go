package campaign

import (
	"fmt"
	"regexp"
	"strings"

	"copyhub/internal/domain"
	"copyhub/internal/llmtext"
)

type Channel string

const (
	ChannelEmail            Channel = "email"
	ChannelInstagramPost    Channel = "instagram_post"
	ChannelInstagramStories Channel = "instagram_stories"
	ChannelVK               Channel = "vk"
	ChannelTelegram         Channel = "telegram"
)

type Goal string

const (
	GoalWelcome      Goal = "welcome"
	GoalPromo        Goal = "promo"
	GoalReactivation Goal = "reactivation"
	GoalDigest       Goal = "digest"
	GoalEducational  Goal = "educational"
)

type SocialTone string

const (
	SocialToneFriendly    SocialTone = "friendly"
	SocialToneExpert      SocialTone = "expert"
	SocialToneInspiring   SocialTone = "inspiring"
	SocialToneProvocative SocialTone = "provocative"
)

var channelWording = map[Channel]string{
	ChannelEmail:            "email-рассылки",
	ChannelInstagramPost:    "поста в Instagram",
	ChannelInstagramStories: "сторис Instagram",
	ChannelVK:               "поста ВКонтакте",
	ChannelTelegram:         "поста в Telegram",
}

var goalWording = map[Goal]string{
	GoalWelcome:      "приветствия нового клиента",
	GoalPromo:        "промо-акции",
	GoalReactivation: "реактивации клиента",
	GoalDigest:       "дайджеста",
	GoalEducational:  "образовательного контента",
}

var socialToneWording = map[SocialTone]string{
	SocialToneFriendly:    "дружеской",
	SocialToneExpert:      "экспертной",
	SocialToneInspiring:   "вдохновляющей",
	SocialToneProvocative: "провокационной",
}

type EmailSocialRequest struct {
	Channel            Channel    `json:"channel"`
	Goal               Goal       `json:"goal"`
	CustomerProfile    string     `json:"customerProfile"`
	ProductDescription string     `json:"productDescription"`
	Tone               SocialTone `json:"tone"`
}

func (r EmailSocialRequest) Normalize() EmailSocialRequest {
	r.CustomerProfile = strings.TrimSpace(r.CustomerProfile)
	r.ProductDescription = strings.TrimSpace(r.ProductDescription)
	if r.Tone == "" {
		r.Tone = SocialToneFriendly
	}
	return r
}

func (r EmailSocialRequest) Validate() error {
	if _, ok := channelWording[r.Channel]; !ok {
		return fmt.Errorf("%w: unsupported channel %q", domain.ErrInvalidInput, r.Channel)
	}
	if _, ok := goalWording[r.Goal]; !ok {
		return fmt.Errorf("%w: unsupported goal %q", domain.ErrInvalidInput, r.Goal)
	}
	if _, ok := socialToneWording[r.Tone]; !ok {
		return fmt.Errorf("%w: unsupported tone %q", domain.ErrInvalidInput, r.Tone)
	}
	if strings.TrimSpace(r.CustomerProfile) == "" {
		return fmt.Errorf("%w: customerProfile is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(r.ProductDescription) == "" {
		return fmt.Errorf("%w: productDescription is required", domain.ErrInvalidInput)
	}
	return nil
}

// SocialPost is one generated post with a suggested visual.
type SocialPost struct {
	Text      string `json:"text"`
	ImageIdea string `json:"imageIdea"`
}

func BuildEmailSocialPrompt(r EmailSocialRequest) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "Ты копирайтер, который пишет тексты для email и соцсетей. Создай 2-3 варианта текста для %s.\n\n", channelWording[r.Channel])
	fmt.Fprintf(b, "Цель: %s\n", goalWording[r.Goal])
	fmt.Fprintf(b, "Портрет клиента: %s\n", r.CustomerProfile)
	fmt.Fprintf(b, "Описание продукта/оффера: %s\n", r.ProductDescription)
	fmt.Fprintf(b, "Тональность: %s\n\n", socialToneWording[r.Tone])
	b.WriteString("Требования:\n")
	b.WriteString("- Учитывай специфику канала\n")
	b.WriteString("- Текст должен вовлекать и побуждать к действию\n")
	b.WriteString("- В конце каждого варианта добавь строку \"Идея для картинки: [описание визуала]\"\n\n")
	b.WriteString("Формат ответа:\n")
	b.WriteString("ВАРИАНТ N:\n")
	b.WriteString("[текст сообщения]\n")
	b.WriteString("Идея для картинки: [описание]\n\n")
	b.WriteString("Создай 2-3 варианта.")
	return b.String()
}

var imageIdeaLine = regexp.MustCompile(`(?im)^[ \t*_]*Идея для картинки[*_]*[ \t]*:[*_]*[ \t]*(.*)$`)

// ParseEmailSocialResponse splits the reply into posts and pulls out the
// "Идея для картинки" line of each.
func ParseEmailSocialResponse(raw string) []SocialPost {
	var out []SocialPost
	for _, seg := range llmtext.SplitVariants(raw) {
		if llmtext.IsRefusal(seg) {
			continue
		}
		var idea string
		if m := imageIdeaLine.FindStringSubmatch(seg); m != nil {
			idea = llmtext.TrimWrapping(m[1])
		}
		text := strings.TrimSpace(imageIdeaLine.ReplaceAllString(seg, ""))
		if text == "" {
			continue
		}
		out = append(out, SocialPost{Text: text, ImageIdea: idea})
	}
	return out
}
