package ai

import (
	"strings"

	"docsummary/internal/model"
)

var lengthGuidance = map[string]string{
	"short":  "Keep it brief (about 3-5 bullet points total).",
	"medium": "Provide moderate detail (about 6-10 bullet points total).",
	"long":   "Provide detailed coverage with clear sectioning and complete key points.",
}

// summaryPromptTemplate is rendered by literal placeholder replacement. Source
// text is substituted last and each placeholder exactly once, so option values
// cannot be re-expanded; source text containing placeholder-like tokens is
// passed through untouched (known limitation, not a security boundary).
const summaryPromptTemplate = `You are a precise document summarization assistant.

## Output Requirements
- Language: {{language}}
- Tone: {{tone}}
- Length: {{length}}
- Length guidance: {{lengthGuidance}}
- Output format: valid Markdown only

## Required Structure
1. Title heading
2. Key points (bulleted)
3. Action items or conclusions

## Rules
- Keep facts grounded in the source text.
- Do not add external facts.
- Be clear and concise.

## Source Text
{{inputText}}`

// BuildSummaryPrompt renders the summary instruction prompt for the given
// source text and options. Pure; no validation happens here.
func BuildSummaryPrompt(sourceText string, opts model.SummaryOptions) string {
	p := summaryPromptTemplate
	p = strings.Replace(p, "{{language}}", opts.Language, 1)
	p = strings.Replace(p, "{{tone}}", opts.Tone, 1)
	p = strings.Replace(p, "{{length}}", opts.Length, 1)
	p = strings.Replace(p, "{{lengthGuidance}}", lengthGuidance[opts.Length], 1)
	p = strings.Replace(p, "{{inputText}}", sourceText, 1)
	return p
}
