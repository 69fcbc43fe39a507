package notify

import (
	"fmt"

	"github.com/glowbook/salon-api/internal/domain/verification"
)

type template struct {
	subject string
	body    string
}

// One fixed template per verification status. %s slots: business name, then
// reviewer notes (body only).
var statusTemplates = map[verification.Status]template{
	verification.StatusPending: {
		subject: "Your Glowbook listing is awaiting review",
		body: "<p>Hi %s,</p>" +
			"<p>Your business listing has been received and is waiting for our team to pick it up. " +
			"We will be in touch as soon as the review starts.</p>" +
			"<p>%s</p>",
	},
	verification.StatusInReview: {
		subject: "Your Glowbook listing is in review",
		body: "<p>Hi %s,</p>" +
			"<p>Our team has started reviewing your business listing and documents. " +
			"You may be asked for additional information.</p>" +
			"<p>%s</p>",
	},
	verification.StatusApproved: {
		subject: "Your Glowbook listing has been approved",
		body: "<p>Hi %s,</p>" +
			"<p>Congratulations — your business has been verified and is now live on Glowbook. " +
			"Customers can find and book your services, and payments will be routed to your account.</p>" +
			"<p>%s</p>",
	},
	verification.StatusRejected: {
		subject: "Your Glowbook listing could not be approved",
		body: "<p>Hi %s,</p>" +
			"<p>Unfortunately we could not approve your business listing at this time. " +
			"Please review the notes below, update your details and resubmit.</p>" +
			"<p>%s</p>",
	},
}

func render(status verification.Status, businessName, notes string) (subject, body string, ok bool) {
	t, ok := statusTemplates[status]
	if !ok {
		return "", "", false
	}
	return t.subject, fmt.Sprintf(t.body, businessName, notes), true
}
