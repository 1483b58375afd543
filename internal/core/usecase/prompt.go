package usecase

import (
	"fmt"
	"strings"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/taxonomy"
)

// buildClassificationPrompt assembles the context-augmented prompt shared by
// the primary and fallback models: document excerpt, nearest taxonomy
// definitions and curated examples, the full label vocabulary, and a strict
// answer format the parser understands.
func buildClassificationPrompt(text, filename string, excerptChars int, rc domain.RetrievalContext, registry *taxonomy.Registry) string {
	var b strings.Builder

	b.WriteString("You are a legal document classification expert for an immigration and criminal law firm.\n\n")

	if len(rc.SimilarCategories) > 0 {
		b.WriteString("Most relevant category definitions for this document:\n")
		for _, c := range rc.SimilarCategories {
			fmt.Fprintf(&b, "- %s: %s (similarity %.2f)\n", c.Name, c.Description, c.Score)
		}
		b.WriteString("\n")
	}

	if len(rc.SimilarExamples) > 0 {
		b.WriteString("Similar classified examples:\n")
		for _, ex := range rc.SimilarExamples {
			fmt.Fprintf(&b, "- %q -> Category: %s; Type: %s (similarity %.2f)\n", ex.Text, ex.Category, ex.DocType, ex.Score)
		}
		b.WriteString("\n")
	}

	if len(rc.SimilarDocuments) > 0 {
		b.WriteString("Previously classified documents similar to this one:\n")
		for _, d := range rc.SimilarDocuments {
			fmt.Fprintf(&b, "- %s -> Category: %s; Type: %s (similarity %.2f)\n", d.Filename, d.Category, d.DocType, d.Score)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Valid categories:\n%s\n\n", strings.Join(registry.CategoryNames(), "\n"))
	fmt.Fprintf(&b, "Valid document types:\n%s\n\n", strings.Join(registry.DocTypeNames(), "\n"))

	if filename != "" {
		fmt.Fprintf(&b, "Filename: %s\n", filename)
	}
	fmt.Fprintf(&b, "Document text:\n%s\n\n", excerpt(text, excerptChars))

	b.WriteString("Classify this document. Use only labels from the lists above.\n")
	b.WriteString("Respond in exactly this format:\n")
	b.WriteString("Category: <category>; Type: <document type>\n")
	b.WriteString("Reasoning: <one sentence>\n")

	return b.String()
}

// excerpt bounds the document text embedded in prompts. Truncation is by
// bytes on a rune boundary; legal documents front-load identifying content.
func excerpt(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	cut := text[:limit]
	for len(cut) > 0 && !isRuneStart(text[len(cut)]) {
		cut = cut[:len(cut)-1]
	}
	return cut
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }
