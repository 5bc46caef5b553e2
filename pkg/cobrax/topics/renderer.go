package topics

// Renderer formats topic content for display
type Renderer interface {
	// Render formats content; format is the topic file extension, such
	// as ".md"
	Render(content string, format string) string
}

// PlainRenderer shows topics as written
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
