package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignPayload computes the hex HMAC-SHA256 digest of "orderID|paymentID",
// the scheme Razorpay uses to sign checkout confirmations.
func SignPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature recomputes the digest and compares it to the client-supplied
// signature in constant time.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	expected := SignPayload(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
