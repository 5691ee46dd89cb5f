package domain

// Renderer is the presentation collaborator that draws result pages.
// A fresh page (start == 0) replaces whatever was drawn before;
// any other page is appended.
type Renderer interface {
	RenderPage(items []*Entry, start int, fresh bool)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(items []*Entry, start int, fresh bool)

// RenderPage calls f
func (f RendererFunc) RenderPage(items []*Entry, start int, fresh bool) {
	f(items, start, fresh)
}

// SettingsStore is simple key/value persistence for user settings
// such as the configured cloud link.
type SettingsStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}
