// Package qr renders ticket identifiers as scannable PNG images.
package qr

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const size = 256

// Encode returns a PNG whose payload is the ticket identifier. Scanners feed
// the decoded payload straight into the verification endpoint.
func Encode(ticketID string) ([]byte, error) {
	png, err := qrcode.Encode(ticketID, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
