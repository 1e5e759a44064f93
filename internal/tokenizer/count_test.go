package tokenizer_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kasugano/shinju/internal/tokenizer"
)

type stubCounter struct {
	failure error
}

func (stubCounter) Name() string { return "stub" }

func (counter stubCounter) CountString(input string) (int, error) {
	if counter.failure != nil {
		return 0, counter.failure
	}
	return len([]rune(input)), nil
}

// TestCountBytes verifies binary detection and rune counting.
func TestCountBytes(testingInstance *testing.T) {
	testCases := []struct {
		name            string
		data            []byte
		expectedTokens  int
		expectedCounted bool
	}{
		{name: "plain_text", data: []byte("hello"), expectedTokens: 5, expectedCounted: true},
		{name: "empty_content", data: nil, expectedTokens: 0, expectedCounted: true},
		{name: "binary_content", data: []byte{0x00, 0x01}, expectedTokens: 0, expectedCounted: false},
		{name: "invalid_utf8", data: []byte{0xff, 0xfe, 0xfd}, expectedTokens: 0, expectedCounted: false},
	}

	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingInstance *testing.T) {
			result, countError := tokenizer.CountBytes(stubCounter{}, testCase.data)
			if countError != nil {
				testingInstance.Fatalf("CountBytes error: %v", countError)
			}
			if result.Counted != testCase.expectedCounted {
				testingInstance.Fatalf("expected counted=%t, got %t", testCase.expectedCounted, result.Counted)
			}
			if result.Tokens != testCase.expectedTokens {
				testingInstance.Fatalf("expected %d tokens, got %d", testCase.expectedTokens, result.Tokens)
			}
		})
	}
}

// TestCountBytesPropagatesCounterFailure verifies counter errors surface.
func TestCountBytesPropagatesCounterFailure(testingInstance *testing.T) {
	counterFailure := errors.New("count failed")
	_, countError := tokenizer.CountBytes(stubCounter{failure: counterFailure}, []byte("text"))
	if !errors.Is(countError, counterFailure) {
		testingInstance.Fatalf("expected counter failure, got %v", countError)
	}
}

// TestCountFile verifies reading and counting a file on disk.
func TestCountFile(testingInstance *testing.T) {
	directory := testingInstance.TempDir()
	filePath := filepath.Join(directory, "sample.txt")
	if writeError := os.WriteFile(filePath, []byte("sample"), 0o600); writeError != nil {
		testingInstance.Fatalf("write sample: %v", writeError)
	}

	result, countError := tokenizer.CountFile(stubCounter{}, filePath)
	if countError != nil {
		testingInstance.Fatalf("CountFile error: %v", countError)
	}
	if !result.Counted || result.Tokens != 6 {
		testingInstance.Fatalf("unexpected result: %+v", result)
	}

	if _, countError = tokenizer.CountFile(stubCounter{}, filepath.Join(directory, "absent.txt")); countError == nil {
		testingInstance.Fatalf("expected error for missing file")
	}
}
