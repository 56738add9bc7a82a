package extraction

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/copperworks/labelcheck/internal/model"
	"github.com/copperworks/labelcheck/pkg/anthropic"
)

const defaultConfidence = 0.5

// Extractor sends single label images to the vision API and parses the
// structured response.
type Extractor struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewExtractor builds an Extractor. maxTokens <= 0 selects a default
// large enough for the full warning transcription.
func NewExtractor(client anthropic.Client, modelID string, maxTokens int64) *Extractor {
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	return &Extractor{client: client, model: modelID, maxTokens: maxTokens}
}

// ExtractOne runs the vision extraction for a single image.
func (e *Extractor) ExtractOne(ctx context.Context, img LabelImage) (model.RawExtraction, error) {
	resp, err := e.client.CreateMessage(ctx, buildRequest(e.model, e.maxTokens, img))
	if err != nil {
		return model.RawExtraction{}, eris.Wrapf(err, "extraction: image %d (%s)", img.Index, img.Name)
	}
	return e.parseResponse(resp, img)
}

// PrimeOne extracts a single image through a cache-priming request. Run it
// for an application's first image before fanning out the rest: the response
// doubles as that image's result, and every later request reads the shared
// system prompt from cache instead of re-writing it.
func (e *Extractor) PrimeOne(ctx context.Context, img LabelImage) (model.RawExtraction, error) {
	resp, err := anthropic.PrimerRequest(ctx, e.client, buildRequest(e.model, e.maxTokens, img))
	if err != nil {
		return model.RawExtraction{}, eris.Wrapf(err, "extraction: image %d (%s)", img.Index, img.Name)
	}
	return e.parseResponse(resp, img)
}

func (e *Extractor) parseResponse(resp *anthropic.MessageResponse, img LabelImage) (model.RawExtraction, error) {
	resp.Usage.LogCost(e.model, "extraction")

	ex, err := parseExtraction(resp.Text())
	if err != nil {
		return model.RawExtraction{}, eris.Wrapf(err, "extraction: image %d (%s)", img.Index, img.Name)
	}

	zap.L().Debug("image extracted",
		zap.Int("image_index", img.Index),
		zap.String("image", img.Name),
		zap.Float64("confidence", ex.Confidence),
	)
	return ex, nil
}

// rawResponse mirrors the JSON contract of the extraction prompt. All
// fields are nullable because the model reports unreadable fields as null.
type rawResponse struct {
	BrandName         *string        `json:"brand_name"`
	ClassType         *string        `json:"class_type"`
	AlcoholContent    *string        `json:"alcohol_content"`
	NetContents       *string        `json:"net_contents"`
	BottlerProducer   *string        `json:"bottler_producer"`
	CountryOfOrigin   *string        `json:"country_of_origin"`
	GovernmentWarning *string        `json:"government_warning"`
	Confidence        *float64       `json:"confidence"`
	WarningFormatting *rawFormatting `json:"warning_formatting"`
}

type rawFormatting struct {
	IsUppercase *bool  `json:"is_uppercase"`
	IsBold      *bool  `json:"is_bold"`
	FontSize    string `json:"font_size"`
	Visibility  string `json:"visibility"`
}

// parseExtraction decodes the model's JSON reply into a RawExtraction.
func parseExtraction(text string) (model.RawExtraction, error) {
	cleaned := cleanJSON(text)

	var raw rawResponse
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return model.RawExtraction{}, eris.Wrap(err, "parse extraction JSON")
	}

	ex := model.RawExtraction{
		BrandName:         deref(raw.BrandName),
		ClassType:         deref(raw.ClassType),
		AlcoholContent:    deref(raw.AlcoholContent),
		NetContents:       deref(raw.NetContents),
		BottlerProducer:   deref(raw.BottlerProducer),
		CountryOfOrigin:   deref(raw.CountryOfOrigin),
		GovernmentWarning: deref(raw.GovernmentWarning),
		Confidence:        clampConfidence(raw.Confidence),
	}

	if f := raw.WarningFormatting; f != nil {
		ex.Formatting = &model.WarningFormatting{
			IsUppercase: model.TriFromBool(f.IsUppercase),
			IsBold:      model.TriFromBool(f.IsBold),
			FontSize:    model.ParseFontSize(f.FontSize),
			Visibility:  model.ParseVisibility(f.Visibility),
		}
	}

	return ex, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// clampConfidence forces confidence into [0, 1]; a missing value reads as
// the neutral default so one unscored image cannot dominate the merge.
func clampConfidence(c *float64) float64 {
	if c == nil {
		return defaultConfidence
	}
	switch {
	case *c < 0:
		return 0
	case *c > 1:
		return 1
	default:
		return *c
	}
}

// cleanJSON strips markdown fences and extracts the JSON object.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
