// Package payload decodes the small JSON convention embedded in chat
// message bodies. Clients send either plain text or an object like
// {"type":"INVOICE","invoiceId":42}; the server stores the raw content
// unchanged but keeps the decoded variant alongside it so consumers do
// not have to re-parse free text.
package payload

import (
	"encoding/json"
	"strconv"
)

const (
	KindText            = "TEXT"
	KindInvoice         = "INVOICE"
	KindInvoicePaid     = "INVOICE_PAID"
	KindInvoiceRejected = "INVOICE_REJECTED"
)

// Payload is the decoded variant of a chat message body.
type Payload struct {
	Kind      string
	Text      string
	InvoiceID *int64
}

type wireEnvelope struct {
	Type      string          `json:"type"`
	InvoiceID json.RawMessage `json:"invoiceId"`
}

// Decode interprets a message body. Anything that is not a recognized
// envelope comes back as KindText carrying the raw content; sending a
// message never fails on account of its body shape.
func Decode(content string) Payload {
	text := Payload{Kind: KindText, Text: content}

	var env wireEnvelope
	if err := json.Unmarshal([]byte(content), &env); err != nil {
		return text
	}

	switch env.Type {
	case KindInvoice, KindInvoicePaid, KindInvoiceRejected:
	default:
		return text
	}

	id, ok := decodeInvoiceID(env.InvoiceID)
	if !ok {
		return text
	}

	return Payload{Kind: env.Type, Text: content, InvoiceID: &id}
}

// decodeInvoiceID accepts both numeric ids and their string form, the
// two encodings observed from clients.
func decodeInvoiceID(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.ParseInt(s, 10, 64); err == nil {
			return parsed, true
		}
	}

	return 0, false
}

// Encode renders an invoice reference or status notice in the wire
// convention. Text payloads are the content itself.
func Encode(kind string, invoiceID int64) string {
	body, _ := json.Marshal(map[string]any{
		"type":      kind,
		"invoiceId": invoiceID,
	})
	return string(body)
}
