package service

import (
	"fmt"
	"time"

	"github.com/firesalehomes/firesale/internal/model"
)

func sellerLeadNotificationTemplate(lead *model.SellerLead, appURL, appName string) (string, string) {
	subject := fmt.Sprintf("New seller lead: %s", lead.PropertyAddress)
	body := fmt.Sprintf(`A new seller lead was submitted.

Address:   %s
Timeline:  %s
Condition: %s
Reason:    %s
Name:      %s
Contact:   %s

Review it in the admin panel: %s/admin

The %s Team`, lead.PropertyAddress, lead.Timeline, lead.Condition, lead.Reason,
		lead.Name, lead.Contact, appURL, appName)

	return subject, body
}

func sellerConfirmationTemplate(name, appName string) (string, string) {
	subject := fmt.Sprintf("We received your property details - %s", appName)
	body := fmt.Sprintf(`Hi %s,

Thanks for telling us about your property. Your details are now in front of
our network of cash buyers.

When an investor is ready to make an offer, they will reach out to you
directly using the contact information you provided. There is nothing else
you need to do, and listing with us is always free for sellers.

Best,
The %s Team`, name, appName)

	return subject, body
}

func unlockConfirmationTemplate(investorName string, lead *model.SellerLead, exclusiveUntil time.Time, appName string) (string, string) {
	subject := fmt.Sprintf("Lead unlocked: %s", lead.PropertyAddress)
	body := fmt.Sprintf(`Hi %s,

Your payment is confirmed and the seller's contact details are now yours.

Property: %s
Seller:   %s
Contact:  %s

You have exclusive access to this lead until %s. Other investors cannot
unlock it before then, so reach out while the window is yours.

Best,
The %s Team`, investorName, lead.PropertyAddress, lead.Name, lead.Contact,
		exclusiveUntil.Format("Mon, 02 Jan 2006 15:04 MST"), appName)

	return subject, body
}

func passwordResetEmailTemplate(name, resetURL, appName string) (string, string) {
	subject := fmt.Sprintf("Reset your password for %s", appName)
	body := fmt.Sprintf(`Hi %s,

You requested to reset your password. Use this link to choose a new one:
%s

This link expires in 1 hour and can only be used once.

If you didn't request this, you can safely ignore this email. Your password
won't be changed.

Best,
The %s Team`, name, resetURL, appName)

	return subject, body
}
