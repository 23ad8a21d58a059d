package readable

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML such as Article.Content.
	Convert(html string) (string, error)
}
