package tree

import "errors"

// Sentinel errors for tree construction and validation.
// Callers branch with errors.Is; call sites attach context with %w.
var (
	// ErrNilNode indicates a nil *Node where an element was required.
	ErrNilNode = errors.New("tree: node is nil")

	// ErrEmptyTag indicates an element without a tag.
	ErrEmptyTag = errors.New("tree: tag is empty")

	// ErrSharedNode indicates a node reachable through more than one parent
	// (or through itself), i.e. the structure is not a tree.
	ErrSharedNode = errors.New("tree: node has more than one parent")

	// ErrDuplicateAttribute indicates an element declaring the same attribute twice.
	ErrDuplicateAttribute = errors.New("tree: duplicate attribute")

	// ErrNoRoot indicates the input contained no element at all.
	ErrNoRoot = errors.New("tree: document has no root element")

	// ErrUnboundPrefix indicates a namespace prefix with no xmlns declaration in scope.
	ErrUnboundPrefix = errors.New("tree: namespace prefix is not bound")

	// ErrMultipleRoots indicates a second top-level element after the root closed.
	ErrMultipleRoots = errors.New("tree: document has more than one root element")
)
