package model

import (
	"encoding/binary"
	"fmt"
	"io"
)

// N-gram keys are serialized with a one byte order tag followed by each
// word id as a little-endian uint32. The tag keeps the three key domains
// disjoint inside the shared bucket array, so a bigram can never alias a
// trigram even when the perfect hash sends both to the same slot range.
const (
	keyTagGram1 byte = 1
	keyTagGram2 byte = 2
	keyTagGram3 byte = 3
)

func encodeKey1(buf []byte, w WordID) []byte {
	buf = append(buf[:0], keyTagGram1)
	return binary.LittleEndian.AppendUint32(buf, uint32(w))
}

func encodeKey2(buf []byte, w1, w2 WordID) []byte {
	buf = append(buf[:0], keyTagGram2)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(w1))
	return binary.LittleEndian.AppendUint32(buf, uint32(w2))
}

func encodeKey3(buf []byte, w1, w2, w3 WordID) []byte {
	buf = append(buf[:0], keyTagGram3)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(w1))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(w2))
	return binary.LittleEndian.AppendUint32(buf, uint32(w3))
}

// Fixed-width primitives shared by key serialization and model persistence.
// Everything on disk is little-endian, same as the wire encoding above.

func writeUint16(w io.Writer, v uint16) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func writeUint32(w io.Writer, v uint32) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func writeUint64(w io.Writer, v uint64) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func writeFloat64(w io.Writer, v float64) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func readUint16(r io.Reader) (uint16, error) {
	var v uint16
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readUint32(r io.Reader) (uint32, error) {
	var v uint32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readUint64(r io.Reader) (uint64, error) {
	var v uint64
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readFloat64(r io.Reader) (float64, error) {
	var v float64
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

// writeString stores a length-prefixed UTF-8 string. The uint16 prefix is
// plenty: vocabulary words are capped well below it by maxWordLen.
func writeString(w io.Writer, s string) error {
	if len(s) > 0xFFFF {
		return fmt.Errorf("string too long for codec: %d bytes", len(s))
	}
	if err := writeUint16(w, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	n, err := readUint16(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
