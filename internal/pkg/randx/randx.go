/*
Package randx provides functions for generating cryptographically secure random
identifiers: zero-padded 3-digit connection ID candidates and standard UUID v4
strings for transport sessions, chat sessions, and messages.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// ConnectionIDSpace is the number of possible connection IDs (000-999).
const ConnectionIDSpace = 1000

// ConnectionIDCandidate draws one random zero-padded 3-digit connection ID
// using crypto/rand. The caller decides whether the candidate is free.
func ConnectionIDCandidate() (string, error) {
	num, err := rand.Int(rand.Reader, big.NewInt(ConnectionIDSpace))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number for connection ID: %v", err)
	}

	return fmt.Sprintf("%03d", num.Int64()), nil
}

// SessionID generates a standard UUID v4 string identifying a transport
// connection or a chat session.
func SessionID() string {
	return uuid.New().String()
}

// MessageID generates a standard UUID v4 string to serve as a unique identifier for a message.
func MessageID() string {
	return uuid.New().String()
}
