// Package whatsapp builds wa.me deep links. The links are returned to the
// client and opened there; nothing is sent from the server and no response is
// handled.
package whatsapp

import "net/url"

const paymentConfirmationText = "Payment Confirmation - I have completed my Instapay payment for my barber appointment"

// Link builds a pre-filled chat deep link for the given phone number.
func Link(phone, text string) string {
	u := url.URL{
		Scheme: "https",
		Host:   "wa.me",
		Path:   "/" + phone,
	}
	if text != "" {
		q := url.Values{}
		q.Set("text", text)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// PaymentConfirmationLink is the link shown on the payment page after the
// customer uploads an Instapay screenshot.
func PaymentConfirmationLink(shopPhone string) string {
	return Link(shopPhone, paymentConfirmationText)
}
