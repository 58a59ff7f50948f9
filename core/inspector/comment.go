package inspector

// DefaultCommentContext is used when a comment is added without a context label.
const DefaultCommentContext = "global"

// Comment is a free-text note attached to a frame by a handler,
// for example to be rendered under the frame's source snippet.
type Comment struct {
	Text    string `json:"comment"`
	Context string `json:"context"`
}
