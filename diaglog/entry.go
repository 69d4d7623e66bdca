package diaglog

import "fmt"

// Kind classifies a single disagreement.
type Kind string

const (
	KindRoot             Kind = "root"              // document roots disagree on tag or attributes
	KindTag              Kind = "tag"               // tags differ
	KindExtraAttribute   Kind = "extra_attribute"   // comparison has an attribute the reference lacks
	KindMissingAttribute Kind = "missing_attribute" // reference attribute absent from comparison
	KindAttributeValue   Kind = "attribute_value"   // same attribute, different values
	KindText             Kind = "text"              // text differs
	KindTail             Kind = "tail"              // tail differs
	KindChildCount       Kind = "child_count"       // children length differs
	KindUnmatchedChild   Kind = "unmatched_child"   // no comparison child with the same tag and attributes
	KindChildMismatch    Kind = "child_mismatch"    // candidate found but its subtree differs
)

// Entry is one human-readable disagreement with enough context to locate it.
//
// Path addresses the reference element ("/a/b[2]", 1-based among siblings);
// Depth is its distance from the root. Ref and Comp hold the two conflicting
// values (tag names, attribute values, text, counts) when they apply.
type Entry struct {
	Kind    Kind
	Depth   int
	Path    string
	Tag     string
	Attr    string
	Ref     string
	Comp    string
	Message string
}

// String renders the entry as a single log line: "path: message".
func (e Entry) String() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}
