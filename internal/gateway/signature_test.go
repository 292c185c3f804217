package gateway

import "testing"

func TestSignAndVerify(t *testing.T) {
	const secret = "key_secret"

	sig := SignPayload(secret, "order_1", "pay_1")
	if len(sig) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(sig))
	}
	if !VerifySignature(secret, "order_1", "pay_1", sig) {
		t.Fatal("valid signature rejected")
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	const secret = "key_secret"
	sig := SignPayload(secret, "order_1", "pay_1")

	if VerifySignature(secret, "order_2", "pay_1", sig) {
		t.Fatal("accepted signature for a different order")
	}
	if VerifySignature(secret, "order_1", "pay_2", sig) {
		t.Fatal("accepted signature for a different payment")
	}
	if VerifySignature("other_secret", "order_1", "pay_1", sig) {
		t.Fatal("accepted signature under a different secret")
	}
	flip := "0"
	if sig[63] == '0' {
		flip = "1"
	}
	if VerifySignature(secret, "order_1", "pay_1", sig[:63]+flip) {
		t.Fatal("accepted a flipped digest")
	}
}
