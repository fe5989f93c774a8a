package build

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

// header sample size - enough for filetype matchers and all BOM variants
const sniffLen = 262

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

// detectUTF recognizes Unicode BOMs. Four byte marks are checked first, the
// UTF-32 LE mark starts with the UTF-16 LE one.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	default:
		return encUnknown
	}
}

// selectReader wraps r so that the decoded stream is always plain UTF-8
// without a BOM.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
	case encUTF16BigEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder())
	case encUTF16LittleEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder())
	case encUTF32BigEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.BigEndian, utf32.UseBOM).NewDecoder())
	case encUTF32LittleEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.LittleEndian, utf32.UseBOM).NewDecoder())
	default:
		// this should never happen
		panic("unsupported source encoding")
	}
}

// isArchiveFile sniffs whether path is a zip archive we can look into.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, err
	}
	return filetype.Is(buf[:n], "zip"), nil
}

// isManifestFile matches path against the configured manifest pattern and
// detects source encoding from the BOM when one is present.
func isManifestFile(path, pattern string) (bool, srcEncoding, error) {
	matched, err := filepath.Match(pattern, filepath.Base(path))
	if err != nil {
		return false, encUnknown, fmt.Errorf("bad manifest pattern %q: %w", pattern, err)
	}
	if !matched {
		return false, encUnknown, nil
	}

	enc, err := fileEncoding(path)
	if err != nil {
		return false, encUnknown, err
	}
	return true, enc, nil
}

// isTemplateFile recognizes a bare template source given explicitly as
// input, a css file compiled as a single style template.
func isTemplateFile(path string) (bool, srcEncoding, error) {
	if !strings.EqualFold(filepath.Ext(path), ".css") {
		return false, encUnknown, nil
	}

	enc, err := fileEncoding(path)
	if err != nil {
		return false, encUnknown, err
	}
	return true, enc, nil
}

func fileEncoding(path string) (srcEncoding, error) {
	f, err := os.Open(path)
	if err != nil {
		return encUnknown, err
	}
	defer f.Close()

	buf := make([]byte, 4)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return encUnknown, err
	}
	return detectUTF(buf[:n]), nil
}

// manifestEncodingInArchive detects source encoding of an archived manifest.
func manifestEncodingInArchive(f *zip.File) (srcEncoding, error) {
	r, err := f.Open()
	if err != nil {
		return encUnknown, err
	}
	defer r.Close()

	buf := make([]byte, 4)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return encUnknown, err
	}
	return detectUTF(buf[:n]), nil
}
