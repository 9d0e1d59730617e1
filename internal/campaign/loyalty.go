package campaign

import (
	"fmt"
	"strings"

	"copyhub/internal/domain"
	"copyhub/internal/llmtext"
)

type Scenario string

const (
	ScenarioBirthday      Scenario = "birthday"
	ScenarioPersonalOffer Scenario = "personal_offer"
	ScenarioReactivation  Scenario = "reactivation"
)

// NamePlaceholder is replaced with the customer's name when rendering a preview.
const NamePlaceholder = "{{Имя}}"

var scenarioWording = map[Scenario]string{
	ScenarioBirthday:      "поздравления с днем рождения",
	ScenarioPersonalOffer: "персонального предложения",
	ScenarioReactivation:  "реактивации клиента",
}

type LoyaltyRequest struct {
	Scenario        Scenario `json:"scenario"`
	CustomerName    string   `json:"customerName"`
	PurchaseHistory string   `json:"purchaseHistory,omitempty"`
	Offer           string   `json:"offer"`
	CampaignGoal    string   `json:"campaignGoal,omitempty"`
}

func (r LoyaltyRequest) Normalize() LoyaltyRequest {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.PurchaseHistory = strings.TrimSpace(r.PurchaseHistory)
	r.Offer = strings.TrimSpace(r.Offer)
	r.CampaignGoal = strings.TrimSpace(r.CampaignGoal)
	return r
}

func (r LoyaltyRequest) Validate() error {
	if _, ok := scenarioWording[r.Scenario]; !ok {
		return fmt.Errorf("%w: unsupported scenario %q", domain.ErrInvalidInput, r.Scenario)
	}
	if strings.TrimSpace(r.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(r.Offer) == "" {
		return fmt.Errorf("%w: offer is required", domain.ErrInvalidInput)
	}
	return nil
}

// LoyaltyMessage keeps the template with the placeholder and a rendered preview.
type LoyaltyMessage struct {
	Text    string `json:"text"`
	Preview string `json:"preview"`
}

func newLoyaltyMessage(text, name string) LoyaltyMessage {
	return LoyaltyMessage{Text: text, Preview: strings.ReplaceAll(text, NamePlaceholder, name)}
}

func BuildLoyaltyPrompt(r LoyaltyRequest) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "Ты маркетолог по CRM и программам лояльности. Создай 1-2 варианта персональных сообщений для сценария: %s.\n\n", scenarioWording[r.Scenario])
	fmt.Fprintf(b, "Имя клиента: %s\n", r.CustomerName)
	if r.PurchaseHistory != "" {
		fmt.Fprintf(b, "История покупок/интересы: %s\n", r.PurchaseHistory)
	}
	fmt.Fprintf(b, "Предложение: %s\n", r.Offer)
	if r.CampaignGoal != "" {
		fmt.Fprintf(b, "Цель кампании: %s\n", r.CampaignGoal)
	}
	b.WriteString("\nТребования:\n")
	fmt.Fprintf(b, "- Используй плейсхолдер %s для обращения к клиенту\n", NamePlaceholder)
	b.WriteString("- Текст должен быть персональным и теплым\n")
	b.WriteString("- Применяй принципы AIDA (внимание, интерес, желание, действие)\n")
	b.WriteString("- Сообщение должно подходить для email или мессенджеров\n\n")
	b.WriteString("Формат ответа:\n")
	b.WriteString("ВАРИАНТ N:\n")
	fmt.Fprintf(b, "[полный текст сообщения с плейсхолдером %s]\n\n", NamePlaceholder)
	b.WriteString("Создай 1-2 варианта.")
	return b.String()
}

// ParseLoyaltyResponse returns one message per variant. A reply without
// variant markers is a single message.
func ParseLoyaltyResponse(raw, name string) []LoyaltyMessage {
	var out []LoyaltyMessage
	for _, seg := range llmtext.SplitVariants(raw) {
		if llmtext.IsRefusal(seg) {
			continue
		}
		out = append(out, newLoyaltyMessage(seg, name))
	}
	return out
}
