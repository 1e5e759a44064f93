package utils

import (
	"io"
	"os"
	"unicode/utf8"
)

// sniffLength defines the maximum number of bytes read when detecting binary content.
const sniffLength = 8000

// IsBinary reports whether the provided byte slice appears to contain binary data.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
	}
	return !utf8.Valid(data)
}

// IsFileBinary reads up to sniffLength bytes from the file at path and determines
// if the content appears to be binary.
func IsFileBinary(path string) bool {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return false
	}
	defer fileHandle.Close()

	buffer := make([]byte, sniffLength)
	bytesRead, readError := fileHandle.Read(buffer)
	if readError != nil && readError != io.EOF {
		return false
	}
	sniffed := buffer[:bytesRead]
	if bytesRead == sniffLength {
		sniffed = trimPartialTrailingRune(sniffed)
	}
	return IsBinary(sniffed)
}

// trimPartialTrailingRune drops a multi-byte rune cut off by the sniff window
// so the truncation itself is not mistaken for invalid text.
func trimPartialTrailingRune(data []byte) []byte {
	for trailing := 1; trailing <= utf8.UTFMax && trailing <= len(data); trailing++ {
		boundary := len(data) - trailing
		if utf8.RuneStart(data[boundary]) {
			if decodedRune, decodedSize := utf8.DecodeRune(data[boundary:]); decodedRune == utf8.RuneError && decodedSize <= 1 {
				return data[:boundary]
			}
			return data
		}
	}
	return data
}
