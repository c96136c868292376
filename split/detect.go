package split

import (
	"bytes"
	"fmt"

	"github.com/h2non/filetype"
)

// detectHeaderLen is how many leading bytes are enough for magic number
// matching.
const detectHeaderLen = 262

// checkTextSource guards against feeding the line slicer something that is
// clearly not a stylesheet: archives, images and other known binary formats
// are recognized by magic numbers, anything with NUL bytes in the header is
// rejected as binary too.
func checkTextSource(head []byte) error {
	if t, err := filetype.Match(head); err == nil && t != filetype.Unknown {
		return fmt.Errorf("recognized as %s (%s), not a text file", t.Extension, t.MIME.Value)
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return fmt.Errorf("binary content")
	}
	return nil
}
