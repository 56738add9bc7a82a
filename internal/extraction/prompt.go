package extraction

import (
	"github.com/copperworks/labelcheck/pkg/anthropic"
)

// systemPrompt instructs the model to return one JSON object per image.
// Fields it cannot read are null, never guessed.
const systemPrompt = `You are an expert at reading alcohol beverage labels from photographs.

Examine the label image and extract the following fields. Return ONLY a JSON object, no prose, with exactly these keys:

{
  "brand_name": string or null,
  "class_type": string or null,
  "alcohol_content": string or null,
  "net_contents": string or null,
  "bottler_producer": string or null,
  "country_of_origin": string or null,
  "government_warning": string or null,
  "confidence": number between 0 and 1,
  "warning_formatting": {
    "is_uppercase": boolean or null,
    "is_bold": boolean or null,
    "font_size": "normal" | "small" | "very_small" | "unknown",
    "visibility": "prominent" | "moderate" | "subtle" | "unknown"
  } or null
}

Rules:
- brand_name is the product's brand as printed, e.g. "Jack Daniel's".
- class_type is the beverage class or type, e.g. "Kentucky Straight Bourbon Whiskey".
- alcohol_content is the alcohol strength exactly as printed, e.g. "40% ALC/VOL" or "80 PROOF".
- net_contents is the volume statement exactly as printed, e.g. "750 mL".
- bottler_producer is the bottler, producer, or importer statement.
- country_of_origin is the country named on the label, if any.
- government_warning is the full GOVERNMENT WARNING statement transcribed verbatim, preserving its capitalization. null if the warning does not appear in this image.
- warning_formatting describes how the GOVERNMENT WARNING header looks visually. Only fill it when the warning is visible; otherwise use null. is_uppercase refers to the "GOVERNMENT WARNING:" header. is_bold refers to the same header. Use null for anything you cannot judge from the image.
- confidence reflects how clearly you could read this label overall.
- If a field is not present or not legible, use null. Never invent values.`

// buildRequest assembles the vision request for one label image.
func buildRequest(model string, maxTokens int64, img LabelImage) anthropic.MessageRequest {
	temp := 0.0
	return anthropic.MessageRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		System:      anthropic.BuildCachedSystemBlocks(systemPrompt),
		Temperature: &temp,
		Messages: []anthropic.Message{
			anthropic.UserMessage(
				anthropic.ImagePart(img.MediaType, img.Base64()),
				anthropic.TextPart("Extract the label fields from this image."),
			),
		},
	}
}
