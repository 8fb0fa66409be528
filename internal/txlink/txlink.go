// Package txlink segments assistant text around embedded transaction-hash
// references so the UI can render the hash as a block-explorer link.
// Detection is decoupled from presentation: callers get tagged segments,
// not markup.
package txlink

import "regexp"

// Matches the literal label followed by a hex-ish token. The token class
// deliberately includes 'x' so the 0x prefix stays part of the hash.
var txPattern = regexp.MustCompile(`TX Hash:\s*([0-9a-fA-Fx]+)`)

type SegmentKind int

const (
	SegmentPlain SegmentKind = iota
	SegmentLink
)

// Segment is a run of message text. Plain segments carry only Text; link
// segments carry the raw hash token in both Text and Hash.
type Segment struct {
	Kind SegmentKind
	Text string
	Hash string
}

// Segments splits text around the first transaction-hash reference. The
// plain prefix keeps everything up to and including the label and any
// whitespace before the token. Text without a reference comes back as a
// single plain segment, unchanged.
func Segments(text string) []Segment {
	match := txPattern.FindStringSubmatchIndex(text)
	if match == nil {
		return []Segment{{Kind: SegmentPlain, Text: text}}
	}
	hashStart, hashEnd := match[2], match[3]
	hash := text[hashStart:hashEnd]
	segments := []Segment{
		{Kind: SegmentPlain, Text: text[:hashStart]},
		{Kind: SegmentLink, Text: hash, Hash: hash},
	}
	if rest := text[hashEnd:]; rest != "" {
		segments = append(segments, Segment{Kind: SegmentPlain, Text: rest})
	}
	return segments
}

// Hash returns the first transaction hash in text, if any.
func Hash(text string) (string, bool) {
	match := txPattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// Linker builds explorer URLs for detected hashes.
type Linker struct {
	ExplorerBase string
}

func (l Linker) URL(hash string) string {
	return l.ExplorerBase + "/tx/" + hash
}
