package utils

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const DefaultPaymentNote = "Collecto Payment"

// GenerateUPILink builds a upi://pay deep link for the given payee.
// GPay is picky: it wants this exact parameter order and %20 (not +) for
// spaces in the name and note, so the query string is built by hand.
func GenerateUPILink(upiID, name string, amount float64, note string) string {
	if note == "" {
		note = DefaultPaymentNote
	}

	return fmt.Sprintf(
		"upi://pay?pa=%s&pn=%s&am=%s&cu=INR&tn=%s&mc=0000&mode=02&purpose=00",
		upiID,
		encodeComponent(name),
		strconv.FormatFloat(amount, 'f', -1, 64),
		encodeComponent(note),
	)
}

// GenerateQRCode renders the UPI link as a PNG data URL suitable for an
// <img> src attribute.
func GenerateQRCode(upiLink string) (string, error) {
	png, err := qrcode.Encode(upiLink, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("qr encode: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
