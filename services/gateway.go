package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// GatewayOrder is the payment intent handed to the frontend.
type GatewayOrder struct {
	Ref    string `json:"ref"`
	Amount int64  `json:"amount"`
}

// PaymentGateway is the external payment collaborator. Verification
// failure must keep invoices off PAID and leave the cart alone.
type PaymentGateway interface {
	CreateOrder(amount int64, receipt string) (*GatewayOrder, error)
	VerifySignature(gatewayOrderRef, gatewayPaymentRef, signature string) bool
}

// HMACGateway implements the razorpay-style contract: the gateway
// signs "orderRef|paymentRef" with the shared secret and the backend
// recomputes the HMAC-SHA256 to verify.
type HMACGateway struct {
	KeyID  string
	Secret string
}

func NewHMACGateway(keyID, secret string) *HMACGateway {
	return &HMACGateway{KeyID: keyID, Secret: secret}
}

func (g *HMACGateway) CreateOrder(amount int64, receipt string) (*GatewayOrder, error) {
	return &GatewayOrder{
		Ref:    "order_" + uuid.NewString(),
		Amount: amount,
	}, nil
}

func (g *HMACGateway) VerifySignature(orderRef, paymentRef, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.Secret))
	mac.Write([]byte(orderRef + "|" + paymentRef))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign is used by tests and the dev sandbox to produce a valid
// signature for a given order/payment pair.
func (g *HMACGateway) Sign(orderRef, paymentRef string) string {
	mac := hmac.New(sha256.New, []byte(g.Secret))
	mac.Write([]byte(orderRef + "|" + paymentRef))
	return hex.EncodeToString(mac.Sum(nil))
}
