package editsync

// EditOperation is a minimal delete+insert pair derived from two text
// versions. It is applied delete-before-insert against the text engine.
// Offsets and lengths are in runes.
type EditOperation struct {
	DeleteOffset int
	DeleteLength int
	InsertOffset int
	InsertText   string
}

// HasDelete returns true if the operation removes text.
func (op EditOperation) HasDelete() bool {
	return op.DeleteLength > 0
}

// HasInsert returns true if the operation adds text.
func (op EditOperation) HasInsert() bool {
	return op.InsertText != ""
}

// IsZero returns true if the operation changes nothing.
func (op EditOperation) IsZero() bool {
	return !op.HasDelete() && !op.HasInsert()
}

// Diff computes the edit that transforms old into new by trimming the longest
// common prefix and suffix. The suffix scan is bounded so that the prefix and
// suffix regions never overlap when the strings share a long repeated pattern.
// Returns ok=false when the strings are equal.
//
// This is a greedy common-affix diff, not a minimal-edit-distance diff. It is
// O(n) and sufficient for character-level typing bursts.
func Diff(oldText, newText string) (EditOperation, bool) {
	if oldText == newText {
		return EditOperation{}, false
	}

	o := []rune(oldText)
	n := []rune(newText)

	limit := len(o)
	if len(n) < limit {
		limit = len(n)
	}

	prefix := 0
	for prefix < limit && o[prefix] == n[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < limit-prefix && o[len(o)-1-suffix] == n[len(n)-1-suffix] {
		suffix++
	}

	return EditOperation{
		DeleteOffset: prefix,
		DeleteLength: len(o) - prefix - suffix,
		InsertOffset: prefix,
		InsertText:   string(n[prefix : len(n)-suffix]),
	}, true
}

// Apply replays an edit operation against a text version, delete before
// insert. Used by tests and by callers maintaining an optimistic shadow copy.
func Apply(text string, op EditOperation) string {
	r := []rune(text)

	afterDelete := make([]rune, 0, len(r)-op.DeleteLength)
	afterDelete = append(afterDelete, r[:op.DeleteOffset]...)
	afterDelete = append(afterDelete, r[op.DeleteOffset+op.DeleteLength:]...)

	if !op.HasInsert() {
		return string(afterDelete)
	}

	ins := []rune(op.InsertText)
	out := make([]rune, 0, len(afterDelete)+len(ins))
	out = append(out, afterDelete[:op.InsertOffset]...)
	out = append(out, ins...)
	out = append(out, afterDelete[op.InsertOffset:]...)
	return string(out)
}
