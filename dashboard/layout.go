package dashboard

// Category is one section of the dashboard. Categories come from the
// surrounding layout; the dashboard never creates or renames them.
type Category struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	MaxTools int    `json:"max_tools" yaml:"max_tools"` // 0 means unlimited
}
