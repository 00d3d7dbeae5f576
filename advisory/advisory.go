// Package advisory turns a predicted risk tier and the latest readings into
// a short plain-language note appended to the alert email.
package advisory

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/types"
)

// Generator wraps the OpenAI client. It is optional wiring; the alert goes
// out unchanged when no generator is configured.
type Generator struct {
	client *openai.Client
}

func NewGenerator(apiKey string) *Generator {
	return &Generator{client: openai.NewClient(apiKey)}
}

// Advise requests a short occupant-facing note for the predicted tier.
func (g *Generator) Advise(ctx context.Context, tier string, latest types.Reading) (string, error) {
	prompt := fmt.Sprintf(
		"The indoor infection risk predicted from air quality sensors is %q. Latest readings: temperature %.1f C, humidity %.1f%%, pressure %.1f hPa, PM2.5 %.1f ug/m3, CO2 %.0f ppm, TVOC %.2f. Suggest what occupants should do right now. Keep it to 2-3 short sentences, no preamble:",
		tier, latest.Temperature, latest.Humidity, latest.Pressure, latest.Particulate, latest.CO2, latest.TVOC,
	)

	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an assistant that writes short practical advisories for indoor air quality alerts.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   150,
			N:           1,
			Temperature: 0.4, // Lower temperature to keep the advice on-script
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
