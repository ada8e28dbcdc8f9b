package typeface

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/npillmayer/typeface/fontstream"
)

// Fingerprint identifies the content of a typeface. It is the MD5 sum of a
// 1024 byte buffer, holding the size of the font program followed by its
// first 1020 bytes.
type Fingerprint [md5.Size]byte

func (fp Fingerprint) String() string {
	return hex.EncodeToString(fp[:])
}

const fingerprintBufferSize = 1024

// computeFingerprint hashes stream 0 of a set. The size is stored as a
// 32-bit little-endian value, short fonts are padded with zeros.
func computeFingerprint(streams *fontstream.Set) (Fingerprint, error) {
	const op = "fingerprint"
	src, err := streams.Source(0)
	if err != nil {
		return Fingerprint{}, newError(Precondition, op, err)
	}
	var buf [fingerprintBufferSize]byte
	size := src.Size()
	binary.LittleEndian.PutUint32(buf[:4], uint32(size))
	n := int(min(size, fingerprintBufferSize)) - 4
	if n > 0 {
		read, err := src.ReadAt(buf[4:4+n], 0)
		if read != n {
			if err == nil || err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return Fingerprint{}, newError(InvalidInput, op,
				fmt.Errorf("%w: %d of %d bytes: %w", ErrShortRead, read, n, err))
		}
	}
	return md5.Sum(buf[:]), nil
}
