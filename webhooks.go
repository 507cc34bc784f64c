package docsdk

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Webhooks groups the webhook endpoints and signature checks.
type Webhooks struct {
	executor *requestExecutor
	secret   string
}

func (w *Webhooks) Create(ctx context.Context, req WebhookRequest) (*Result[*WebhookResponse], error) {
	return execute[*WebhookResponse](ctx, w.executor, post(SegmentWebhooks).withBody(req), TypeWebhook)
}

// List returns the webhooks of the current user. FilterURL narrows by URL.
func (w *Webhooks) List(ctx context.Context, opts ListOptions) (*Result[*Page[WebhookResponse]], error) {
	req := get(SegmentUsers, SegmentMe, SegmentWebhooks).withQuery(opts.values())
	return execute[*Page[WebhookResponse]](ctx, w.executor, req, TypeWebhookPage)
}

func (w *Webhooks) Delete(ctx context.Context, webhookID string) (*Result[Void], error) {
	if webhookID == "" {
		return nil, ErrEmptyID
	}
	return execute[Void](ctx, w.executor, del(SegmentWebhooks, webhookID), TypeVoid)
}

// Verify checks the DocSDK-Signature header value of a webhook call: the hex
// HMAC-SHA256 of the raw payload keyed with the signing secret.
func (w *Webhooks) Verify(payload []byte, signature string) (bool, error) {
	return VerifySignature(w.secret, payload, signature)
}

// Parse verifies the signature and decodes the payload.
func (w *Webhooks) Parse(payload []byte, signature string) (*WebhookPayload, error) {
	ok, err := w.Verify(payload, signature)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSignatureMismatch
	}

	var event WebhookPayload
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("decode webhook payload: %w", err)
	}
	return &event, nil
}

func VerifySignature(secret string, payload []byte, signature string) (bool, error) {
	if secret == "" {
		return false, ErrMissingSecret
	}
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return false, ErrEmptySignature
	}

	given, err := hex.DecodeString(signature)
	if err != nil {
		return false, nil
	}
	return hmac.Equal(given, Sign(secret, payload)), nil
}

// Sign computes the raw signature bytes for payload.
func Sign(secret string, payload []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return mac.Sum(nil)
}
