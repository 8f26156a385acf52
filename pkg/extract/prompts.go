package extract

import (
	"fmt"
	"strings"
)

// systemPrompt keeps the delegate on-task across backends. Individual
// requests carry the schema and the page text.
const systemPrompt = `You are a precise data extraction engine for online marketplace listings. You respond only with the requested JSON and never add commentary.`

// extractionPromptTemplate asks the delegate to turn one chunk of page
// text into the listing array. The schema is spelled out field by field
// because smaller models drift on loosely specified output shapes.
const extractionPromptTemplate = `Extract every product listing from the following text content of an eBay search results page.

Task: %s

Respond with a JSON array only. Each element must be an object with exactly these string fields:
  "title": the product title
  "price": the displayed price text, e.g. "£123.45"
  "condition": the item condition, or "Not specified"
  "brand": the brand name if identifiable from the title, or "Not specified"
  "seller": the seller name, or "Not specified"
  "shipping": the shipping cost text, or "Not specified"
  "description": a short description, or "Not specified"

Rules:
- Include only real product listings. Ignore navigation, adverts, and the "Shop on eBay" placeholder.
- Never invent listings that are not in the text.
- If no listings are present, respond with [].
- Respond with the JSON array and nothing else. No markdown fences, no explanation.

Text content:
%s`

// repairPromptTemplate is the single retry used when the first response
// does not parse as the listing array.
const repairPromptTemplate = `Convert this text into a valid JSON array of product listing objects with the string fields "title", "price", "condition", "brand", "seller", "shipping", "description". Respond with the JSON array only, no markdown fences and no explanation.

Text:
%s`

// answerPromptTemplate drives the conversational responder. The summary is
// pre-rendered from analysis results so the delegate never computes
// statistics itself.
const answerPromptTemplate = `You are a helpful market analysis assistant. Answer the user's question using only the market data summary below. Be concise and concrete. If the summary does not contain the answer, say so rather than guessing.

Market data summary:
%s

Question: %s`

// ExtractionPrompt renders the per-chunk extraction request. The
// instruction describes what the caller is after, typically naming the
// search term.
func ExtractionPrompt(instruction, chunk string) string {
	return fmt.Sprintf(extractionPromptTemplate, strings.TrimSpace(instruction), chunk)
}

// RepairPrompt renders the one-shot repair request for a malformed
// delegate response.
func RepairPrompt(malformed string) string {
	return fmt.Sprintf(repairPromptTemplate, malformed)
}

// AnswerPrompt renders the conversational request for the responder.
func AnswerPrompt(summary, question string) string {
	return fmt.Sprintf(answerPromptTemplate, strings.TrimSpace(summary), strings.TrimSpace(question))
}
