package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/neurodoc-ai/neurodoc/internal/model"
)

// Placeholders injected into the chat prompt when a context source yields
// nothing. The model sees them as plain statements of fact.
const (
	NoSearchPlaceholder     = "No search performed."
	SearchFailedPlaceholder = "Search failed."
	NoDocumentPlaceholder   = "No document uploaded."
)

const (
	chatMemoryDepth      = 5
	interviewMemoryDepth = 3

	chatTopK      = 2
	mindmapTopK   = 3
	interviewTopK = 5

	mindmapContextBudget   = 3000
	interviewContextBudget = 2000

	interviewStartQuery = "Experience Projects Skills"
)

const promptDateLayout = "Monday, 02 January 2006"

var searchTriggers = []string{"current", "latest", "news", "who is", "price", "today"}

// NeedsWebSearch reports whether the query mentions anything time-sensitive
// enough to warrant a live lookup.
func NeedsWebSearch(query string) bool {
	lowered := strings.ToLower(query)
	for _, trigger := range searchTriggers {
		if strings.Contains(lowered, trigger) {
			return true
		}
	}
	return false
}

// FormatMemory renders history as "ROLE: content" lines, oldest first.
func FormatMemory(messages []model.Message) string {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(msg.Role), msg.Content))
	}
	return strings.Join(lines, "\n")
}

func JoinChunks(chunks []model.ScoredChunk, sep string) string {
	parts := make([]string, 0, len(chunks))
	for _, sc := range chunks {
		parts = append(parts, sc.Chunk.Text)
	}
	return strings.Join(parts, sep)
}

// Truncate cuts to at most max runes. Budgets count characters, not bytes,
// so multi-byte text is not cut short.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// truncateEllipsis marks an actual cut with "..."; untruncated text passes
// through unchanged.
func truncateEllipsis(s string, max int) string {
	cut := Truncate(s, max)
	if cut != s {
		return cut + "..."
	}
	return s
}

func BuildChatPrompt(now time.Time, memory, webResults, pdfContext, query string) string {
	var b strings.Builder
	b.WriteString("You are NeuroDoc.\n")
	b.WriteString("Date: " + now.Format(promptDateLayout) + "\n\n")
	b.WriteString("[MEMORY]: " + memory + "\n")
	b.WriteString("[WEB]: " + webResults + "\n")
	b.WriteString("[PDF]: " + pdfContext + "\n")
	b.WriteString("[USER]: " + query + "\n\n")
	b.WriteString("Answer helpfully.")
	return b.String()
}

func BuildMindMapPrompt(contextText string) string {
	var b strings.Builder
	b.WriteString("Create a Mind Map JSON from: \"" + Truncate(contextText, mindmapContextBudget) + "...\"\n")
	b.WriteString(`Return ONLY JSON: {"nodes": [{"id": "1", "label": "Concept"}], "edges": [{"source": "1", "target": "2", "label": "link"}]}` + "\n")
	b.WriteString("Limit 8 nodes.")
	return b.String()
}

func BuildInterviewStartPrompt(resumeContext string) string {
	var b strings.Builder
	b.WriteString("Act as a Senior Technical Recruiter.\n")
	b.WriteString("Review this candidate's resume snippet:\n")
	b.WriteString("\"" + truncateEllipsis(resumeContext, interviewContextBudget) + "\"\n\n")
	b.WriteString("Your Goal: Start a technical interview.\n")
	b.WriteString("Task:\n")
	b.WriteString("1. briefly acknowledge their background (1 sentence).\n")
	b.WriteString("2. Ask the FIRST tough technical question based on a specific project or skill mentioned in the resume.\n")
	b.WriteString("3. Do NOT provide the answer. Just ask.")
	return b.String()
}

func BuildInterviewChatPrompt(memory, answer string) string {
	var b strings.Builder
	b.WriteString("You are a Senior Technical Recruiter.\n\n")
	b.WriteString("[INTERVIEW HISTORY]\n")
	b.WriteString(memory + "\n\n")
	b.WriteString("[CANDIDATE'S LAST ANSWER]\n")
	b.WriteString("\"" + answer + "\"\n\n")
	b.WriteString("TASK:\n")
	b.WriteString("1. Evaluate answer.\n")
	b.WriteString("2. Ask follow-up.")
	return b.String()
}
